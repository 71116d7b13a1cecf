package provenance

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSONSortsKeys(t *testing.T) {
	a, err := CanonicalJSON(map[string]any{"b": 1, "a": 2, "c": 3})
	require.NoError(t, err)
	b, err := CanonicalJSON(map[string]any{"c": 3, "a": 2, "b": 1})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `{"a":2,"b":1,"c":3}`, a)
}

func TestCanonicalJSONPreservesNumberDigits(t *testing.T) {
	// Documents decoded with UseNumber must re-serialize with the upstream
	// digits intact, trailing zeros included.
	dec := json.NewDecoder(strings.NewReader(`{"qty":10.2500,"price":1e3}`))
	dec.UseNumber()
	var doc map[string]any
	require.NoError(t, dec.Decode(&doc))

	out, err := CanonicalJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, `{"price":1e3,"qty":10.2500}`, out)
}

func TestHashPayload(t *testing.T) {
	h := HashPayload(`{"a":1}`)
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashPayload(`{"a":1}`))
	assert.NotEqual(t, h, HashPayload(`{"a":2}`))
}

func TestNewRawPayload(t *testing.T) {
	status := 200
	p, err := NewRawPayload("run-1", "company-1", "Products", &status,
		map[string]any{"Items": []any{}}, "https://api.example.com/Products", 1, "cursor-1")
	require.NoError(t, err)

	require.NotNil(t, p.RunID)
	assert.Equal(t, "run-1", *p.RunID)
	require.NotNil(t, p.CompanyID)
	assert.Equal(t, "company-1", *p.CompanyID)
	assert.Equal(t, "Products", p.Endpoint)
	require.NotNil(t, p.HTTPStatus)
	assert.Equal(t, 200, *p.HTTPStatus)
	require.NotNil(t, p.PageNumber)
	assert.Equal(t, 1, *p.PageNumber)
	assert.Equal(t, `{"Items":[]}`, p.PayloadJSON)
	assert.Equal(t, HashPayload(p.PayloadJSON), p.PayloadHash)
	assert.False(t, p.ExtractedAt.IsZero())
}

func TestNewRawPayloadOptionalFieldsStoredAsNil(t *testing.T) {
	p, err := NewRawPayload("", "", "Products", nil, map[string]any{}, "", 0, "")
	require.NoError(t, err)

	assert.Nil(t, p.RunID)
	assert.Nil(t, p.CompanyID)
	assert.Nil(t, p.HTTPStatus)
	assert.Nil(t, p.PageNumber)
	assert.Nil(t, p.APICursor)
	assert.Nil(t, p.RequestURL)
}

func TestNewRawPayloadUnserializablePayload(t *testing.T) {
	_, err := NewRawPayload("run-1", "", "Products", nil, map[string]any{"bad": func() {}}, "", 0, "")
	assert.Error(t, err)
}
