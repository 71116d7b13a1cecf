package exports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/exporter/internal/application/audit"
	"github.com/erp/exporter/internal/domain/export"
	"github.com/erp/exporter/internal/domain/provenance"
)

// memoryRunRepo is an in-memory provenance.RunRepository.
type memoryRunRepo struct {
	runs map[string]*provenance.Run
	err  error
}

func newMemoryRunRepo() *memoryRunRepo {
	return &memoryRunRepo{runs: make(map[string]*provenance.Run)}
}

func (m *memoryRunRepo) Create(ctx context.Context, run *provenance.Run) error {
	if m.err != nil {
		return m.err
	}
	copied := *run
	m.runs[run.RunID] = &copied
	return nil
}

func (m *memoryRunRepo) Finish(ctx context.Context, runID string, status provenance.RunStatus, finishedAt time.Time, notes *string) error {
	if m.err != nil {
		return m.err
	}
	run, ok := m.runs[runID]
	if !ok {
		return nil
	}
	run.Status = status
	run.FinishedAt = &finishedAt
	run.Notes = notes
	return nil
}

func (m *memoryRunRepo) single(t *testing.T) *provenance.Run {
	t.Helper()
	require.Len(t, m.runs, 1)
	for _, run := range m.runs {
		return run
	}
	return nil
}

// failingPayloadRepo simulates a provenance store outage during capture.
type failingPayloadRepo struct{}

func (failingPayloadRepo) Insert(ctx context.Context, payload *provenance.RawPayload) error {
	return provenance.ErrStoreUnavailable
}

func TestRunBatchSuccess(t *testing.T) {
	client := &fakeClient{configured: true, docs: map[string]string{
		"/Products":  `{"Items":[{"ProductCode":"P1"}]}`,
		"/Customers": `{"Items":[{"CustomerCode":"C1"}]}`,
	}}
	runs := newMemoryRunRepo()
	tracker := audit.NewTracker(runs, nil)
	registry := NewRegistry(client, nil, true, nil)
	service := NewService(registry, tracker, nil)

	results, err := service.RunBatch(context.Background(), []string{"products", "customers"}, "company-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Products", results[0].SheetName)
	assert.Equal(t, "Customers", results[1].SheetName)

	run := runs.single(t)
	assert.Equal(t, provenance.RunStatusSuccess, run.Status)
	require.NotNil(t, run.FinishedAt)
	assert.Nil(t, run.Notes)
	require.NotNil(t, run.CompanyID)
	assert.Equal(t, "company-1", *run.CompanyID)
}

func TestRunBatchFailureMarksRunFailed(t *testing.T) {
	client := &fakeClient{configured: true, err: export.ErrUpstreamUnavailable}
	runs := newMemoryRunRepo()
	tracker := audit.NewTracker(runs, nil)
	registry := NewRegistry(client, nil, true, nil)
	service := NewService(registry, tracker, nil)

	_, err := service.RunBatch(context.Background(), []string{"products"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, export.ErrUpstreamUnavailable)

	run := runs.single(t)
	assert.Equal(t, provenance.RunStatusFailed, run.Status)
	require.NotNil(t, run.Notes)
	assert.Contains(t, *run.Notes, "products")
}

func TestRunBatchUnknownKeyFailsRun(t *testing.T) {
	runs := newMemoryRunRepo()
	tracker := audit.NewTracker(runs, nil)
	registry := NewRegistry(&fakeClient{configured: true}, nil, true, nil)
	service := NewService(registry, tracker, nil)

	_, err := service.RunBatch(context.Background(), []string{"nonsense"}, "")
	assert.ErrorIs(t, err, export.ErrUnknownExport)
	assert.Equal(t, provenance.RunStatusFailed, runs.single(t).Status)
}

func TestRunBatchWithoutStore(t *testing.T) {
	client := &fakeClient{configured: true}
	tracker := audit.NewTracker(nil, nil)
	registry := NewRegistry(client, nil, true, nil)
	service := NewService(registry, tracker, nil)

	results, err := service.RunBatch(context.Background(), []string{"warehouses"}, "")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestRunBatchUnreachableStoreDegradesToUntracked(t *testing.T) {
	client := &fakeClient{configured: true}
	runs := newMemoryRunRepo()
	runs.err = provenance.ErrStoreUnavailable
	tracker := audit.NewTracker(runs, nil)
	registry := NewRegistry(client, nil, true, nil)
	service := NewService(registry, tracker, nil)

	results, err := service.RunBatch(context.Background(), []string{"products"}, "")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestCaptureOutageDoesNotAbortExtraction(t *testing.T) {
	client := &fakeClient{configured: true, docs: map[string]string{
		"/Products": `{"Items":[{"ProductCode":"P1"}]}`,
	}}
	recorder := audit.NewRecorder(failingPayloadRepo{})
	registry := NewRegistry(client, recorder, true, nil)
	service := NewService(registry, audit.NewTracker(nil, nil), nil)

	results, err := service.RunBatch(context.Background(), []string{"products"}, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Rows, 1)
}
