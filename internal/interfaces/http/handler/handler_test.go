package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/exporter/internal/application/audit"
	"github.com/erp/exporter/internal/application/exports"
	"github.com/erp/exporter/internal/infrastructure/schedule"
	"github.com/erp/exporter/internal/interfaces/http/dto"
	"github.com/erp/exporter/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubClient serves a minimal live document for any endpoint.
type stubClient struct {
	configured bool
	err        error
}

func (s *stubClient) Get(ctx context.Context, path string, params url.Values) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return map[string]any{"Items": []any{}}, nil
}

func (s *stubClient) IsConfigured() bool   { return s.configured }
func (s *stubClient) LastStatusCode() *int { return nil }
func (s *stubClient) LastURL() string      { return "" }

func setupTestRouter(t *testing.T, client exports.Client, useLive bool) *gin.Engine {
	t.Helper()

	registry := exports.NewRegistry(client, nil, useLive, nil)
	service := exports.NewService(registry, audit.NewTracker(nil, nil), nil)
	store := schedule.NewStore(filepath.Join(t.TempDir(), "schedules.json"))

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewExportHandler(registry, service, "", StatusInfo{BaseURL: "https://api.example.com", ClientType: "test"}, nil)).
		Register(NewScheduleHandler(store, registry)).
		Setup()
	return engine
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{configured: true}, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, true, data["live_api"])
	assert.Equal(t, true, data["api_configured"])
	assert.Equal(t, "https://api.example.com", data["base_url"])
	assert.EqualValues(t, 9, data["exports"])
}

func TestListExports(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exports?category=sales", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	entries := resp.Data.([]any)
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, "sales", e.(map[string]any)["category"])
	}
}

func TestRunSelectedReturnsWorkbook(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	body := bytes.NewBufferString(`{"keys":["products","customers"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/exports/run", body)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	// xlsx files are zip archives.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestRunSelectedValidation(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	for _, body := range []string{`{}`, `{"keys":[]}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/exports/run", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestRunUnknownExport(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/exports/nonsense/run", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestScheduleLifecycle(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	// Create.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules",
		strings.NewReader(`{"report_key":"products","frequency":"weekly"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeResponse(t, w).Data.(map[string]any)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	// List.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/schedules", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w).Data.([]any), 1)

	// Delete.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/schedules/"+id, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Delete again.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/schedules/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScheduleValidation(t *testing.T) {
	engine := setupTestRouter(t, &stubClient{}, false)

	// Unknown frequency.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules",
		strings.NewReader(`{"report_key":"products","frequency":"hourly"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown export key.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/schedules",
		strings.NewReader(`{"report_key":"nonsense","frequency":"daily"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
