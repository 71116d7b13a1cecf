// Package unleashed implements the signed HTTP client for the Unleashed
// Software REST API. Requests are authenticated with an HMAC-SHA256 signature
// computed over the canonical (sorted, URL-encoded) query string.
package unleashed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ProductionAPIURL is the public Unleashed API endpoint.
const ProductionAPIURL = "https://api.unleashedsoftware.com"

// Config holds the credentials and connection settings for the Unleashed API.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// APIID is the account's api-auth-id.
	APIID string
	// APIKey is the shared secret used to sign the query string.
	APIKey string
	// ClientType identifies this integration to Unleashed (client-type header).
	ClientType string
	// TimeoutSeconds is the HTTP request timeout.
	TimeoutSeconds int
}

// NewConfig creates a configuration with production defaults.
func NewConfig(apiID, apiKey, clientType string) *Config {
	return &Config{
		BaseURL:        ProductionAPIURL,
		APIID:          apiID,
		APIKey:         apiKey,
		ClientType:     clientType,
		TimeoutSeconds: 30,
	}
}

// IsConfigured reports whether every credential needed to sign and address a
// request is present.
func (c *Config) IsConfigured() bool {
	return c != nil && c.BaseURL != "" && c.APIID != "" && c.APIKey != "" && c.ClientType != ""
}

// Sign computes the api-auth-signature for a canonical query string:
// base64(HMAC-SHA256(APIKey, query)). The query must be the exact byte
// sequence sent on the wire; Unleashed verifies the signature against it
// bit-for-bit. An empty query signs the empty string.
func (c *Config) Sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.APIKey))
	mac.Write([]byte(query))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
