// Package exports holds the per-resource mappers that project Unleashed API
// documents into flat header/row tables, the registry that resolves export
// keys, and the batch service that ties extraction to run tracking.
package exports

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/erp/exporter/internal/application/audit"
	"github.com/erp/exporter/internal/domain/export"
)

// Client is the upstream API surface the mappers need: signed single-page
// GETs plus the audit state of the last exchange.
type Client interface {
	Get(ctx context.Context, path string, params url.Values) (map[string]any, error)
	IsConfigured() bool
	LastStatusCode() *int
	LastURL() string
}

// Resource is the fixed-shape registry record for one export. Every resource
// exposes the same two generators: Dummy returns a static sample with a
// reduced header set, FromAPI maps the live document. A nil FromAPI marks a
// pure static export.
type Resource struct {
	Key         string
	Category    string
	Label       string
	Description string
	Dummy       func() export.Result
	FromAPI     func(ctx context.Context, deps Deps) (export.Result, error)
}

// Deps carries the collaborators a live mapper needs. Recorder may be nil;
// RunID and CompanyID are optional provenance attribution.
type Deps struct {
	Client    Client
	Recorder  *audit.Recorder
	RunID     string
	CompanyID string
	Log       *zap.Logger
}

// Fetch performs one signed endpoint call and captures the raw response for
// replay/audit. Capture failure is logged and discarded: provenance is
// strictly secondary to returning usable rows.
func (d Deps) Fetch(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	doc, err := d.Client.Get(ctx, "/"+endpoint, params)
	if err != nil {
		return nil, err
	}

	if d.Recorder != nil {
		captureErr := d.Recorder.Capture(ctx, audit.CaptureInput{
			RunID:      d.RunID,
			CompanyID:  d.CompanyID,
			Endpoint:   endpoint,
			HTTPStatus: d.Client.LastStatusCode(),
			RequestURL: d.Client.LastURL(),
			PageNumber: 1,
			Payload:    doc,
		})
		if captureErr != nil && d.Log != nil {
			d.Log.Warn("raw payload capture failed",
				zap.String("endpoint", endpoint),
				zap.Error(captureErr))
		}
	}

	return doc, nil
}
