package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// RawPayload is the unmodified JSON response of one upstream endpoint call,
// retained for replay and audit. Rows are append-only and never mutated.
// Two calls producing byte-identical JSON share a hash but still get their
// own rows; dedup is an audit query concern, not an insert-time constraint.
type RawPayload struct {
	PayloadID   int64
	RunID       *string
	CompanyID   *string
	Endpoint    string
	HTTPStatus  *int
	PageNumber  *int
	APICursor   *string
	RequestURL  *string
	PayloadJSON string
	PayloadHash string
	ExtractedAt time.Time
}

// CanonicalJSON serializes a decoded payload back to its canonical form.
// encoding/json emits map keys in sorted order, so two structurally identical
// documents always serialize to identical bytes, which is what makes the
// payload hash a usable duplicate detector.
func CanonicalJSON(payload any) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("provenance: serialize payload: %w", err)
	}
	return string(b), nil
}

// HashPayload returns the hex SHA-256 digest of the exact serialized bytes.
func HashPayload(payloadJSON string) string {
	sum := sha256.Sum256([]byte(payloadJSON))
	return hex.EncodeToString(sum[:])
}

// NewRawPayload builds an audit row for one endpoint call. Optional fields
// are stored as NULL when unset; pageNumber 0 means unknown.
func NewRawPayload(runID, companyID, endpoint string, httpStatus *int, payload any, requestURL string, pageNumber int, apiCursor string) (*RawPayload, error) {
	payloadJSON, err := CanonicalJSON(payload)
	if err != nil {
		return nil, err
	}

	p := &RawPayload{
		Endpoint:    endpoint,
		HTTPStatus:  httpStatus,
		PayloadJSON: payloadJSON,
		PayloadHash: HashPayload(payloadJSON),
		ExtractedAt: time.Now().UTC(),
	}
	if runID != "" {
		p.RunID = &runID
	}
	if companyID != "" {
		p.CompanyID = &companyID
	}
	if requestURL != "" {
		p.RequestURL = &requestURL
	}
	if pageNumber > 0 {
		p.PageNumber = &pageNumber
	}
	if apiCursor != "" {
		p.APICursor = &apiCursor
	}
	return p, nil
}
