package unleashed

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/exporter/internal/domain/export"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:        baseURL,
		APIID:          "test-id",
		APIKey:         "test-key",
		ClientType:     "test-client",
		TimeoutSeconds: 5,
	}
}

func TestCanonicalQuery(t *testing.T) {
	assert.Equal(t, "", CanonicalQuery(nil))
	assert.Equal(t, "", CanonicalQuery(url.Values{}))

	params := url.Values{}
	params.Set("pageSize", "200")
	params.Set("modifiedSince", "2024-01-01")
	assert.Equal(t, "modifiedSince=2024-01-01&pageSize=200", CanonicalQuery(params))
}

func TestCanonicalQueryPermutationInvariant(t *testing.T) {
	a := url.Values{}
	a.Set("z", "1")
	a.Set("a", "2")
	a.Set("m", "3")

	b := url.Values{}
	b.Set("m", "3")
	b.Set("z", "1")
	b.Set("a", "2")

	assert.Equal(t, CanonicalQuery(a), CanonicalQuery(b))
}

func TestClientGetSendsSignedHeaders(t *testing.T) {
	var gotHeaders http.Header
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Items":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	params := url.Values{}
	params.Set("pageSize", "200")

	doc, err := client.Get(context.Background(), "/Products", params)
	require.NoError(t, err)
	assert.NotNil(t, doc["Items"])

	assert.Equal(t, "test-id", gotHeaders.Get("api-auth-id"))
	assert.Equal(t, "test-client", gotHeaders.Get("client-type"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))

	// The signature must verify against the exact query string on the wire.
	mac := hmac.New(sha256.New, []byte("test-key"))
	mac.Write([]byte(gotQuery))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, gotHeaders.Get("api-auth-signature"))
}

func TestClientGetEmptyQuerySignsEmptyString(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("api-auth-signature")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Get(context.Background(), "/Warehouses", nil)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("test-key"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	assert.Equal(t, want, gotSig)
}

func TestClientGetNotConfigured(t *testing.T) {
	client := NewClient(&Config{})
	_, err := client.Get(context.Background(), "/Products", nil)
	assert.ErrorIs(t, err, export.ErrNotConfigured)
}

func TestClientGetUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"description":"invalid signature"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Get(context.Background(), "/Products", nil)
	require.Error(t, err)

	var upstream *export.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusForbidden, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "invalid signature")
	assert.ErrorIs(t, err, export.ErrRequestFailed)
}

func TestClientGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Get(context.Background(), "/Products", nil)
	assert.ErrorIs(t, err, export.ErrUpstreamUnavailable)
}

func TestClientGetInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	_, err := client.Get(context.Background(), "/Products", nil)
	assert.ErrorIs(t, err, export.ErrInvalidResponse)
}

func TestClientRecordsLastExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Items":[]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	assert.Nil(t, client.LastStatusCode())
	assert.Empty(t, client.LastURL())

	_, err := client.Get(context.Background(), "/Customers", nil)
	require.NoError(t, err)

	require.NotNil(t, client.LastStatusCode())
	assert.Equal(t, http.StatusOK, *client.LastStatusCode())
	assert.Contains(t, client.LastURL(), "/Customers")
}

func TestClientDecodesNumbersVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Items":[{"DefaultSellPrice":10.2500}]}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL))
	doc, err := client.Get(context.Background(), "/Products", nil)
	require.NoError(t, err)

	items, ok := doc["Items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	num, ok := item["DefaultSellPrice"].(json.Number)
	require.True(t, ok, "numbers must decode as json.Number")
	assert.Equal(t, "10.2500", num.String())
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	err := &export.UpstreamError{StatusCode: 500, Body: "boom"}
	assert.True(t, errors.Is(err, export.ErrRequestFailed))
}
