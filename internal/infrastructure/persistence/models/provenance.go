// Package models holds the persistence models for the provenance store.
package models

import (
	"time"

	"github.com/erp/exporter/internal/domain/provenance"
)

// RunModel is the persistence model for an extraction run.
type RunModel struct {
	RunID      string     `gorm:"type:uuid;primaryKey;column:run_id"`
	CompanyID  *string    `gorm:"type:varchar(100)"`
	Status     string     `gorm:"type:varchar(10);not null"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time ``
	Notes      *string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RunModel) TableName() string {
	return "etl_runs"
}

// ToDomain converts the persistence model to a domain Run.
func (m *RunModel) ToDomain() *provenance.Run {
	return &provenance.Run{
		RunID:      m.RunID,
		CompanyID:  m.CompanyID,
		Status:     provenance.RunStatus(m.Status),
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Run.
func (m *RunModel) FromDomain(run *provenance.Run) {
	m.RunID = run.RunID
	m.CompanyID = run.CompanyID
	m.Status = string(run.Status)
	m.StartedAt = run.StartedAt
	m.FinishedAt = run.FinishedAt
	m.Notes = run.Notes
}

// RawPayloadModel is the persistence model for one captured API response.
// Rows are append-only; this subsystem never updates or deletes them.
type RawPayloadModel struct {
	PayloadID   int64     `gorm:"primaryKey;autoIncrement;column:payload_id"`
	RunID       *string   `gorm:"type:uuid;index"`
	CompanyID   *string   `gorm:"type:varchar(100)"`
	Endpoint    string    `gorm:"type:varchar(100);not null;index"`
	HTTPStatus  *int      `gorm:"column:http_status"`
	PageNumber  *int      ``
	APICursor   *string   `gorm:"type:varchar(255);column:api_cursor"`
	RequestURL  *string   `gorm:"type:text;column:request_url"`
	PayloadJSON string    `gorm:"type:text;not null;column:payload_json"`
	PayloadHash string    `gorm:"type:char(64);not null;index"`
	ExtractedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RawPayloadModel) TableName() string {
	return "raw_api_payloads"
}

// ToDomain converts the persistence model to a domain RawPayload.
func (m *RawPayloadModel) ToDomain() *provenance.RawPayload {
	return &provenance.RawPayload{
		PayloadID:   m.PayloadID,
		RunID:       m.RunID,
		CompanyID:   m.CompanyID,
		Endpoint:    m.Endpoint,
		HTTPStatus:  m.HTTPStatus,
		PageNumber:  m.PageNumber,
		APICursor:   m.APICursor,
		RequestURL:  m.RequestURL,
		PayloadJSON: m.PayloadJSON,
		PayloadHash: m.PayloadHash,
		ExtractedAt: m.ExtractedAt,
	}
}

// FromDomain populates the persistence model from a domain RawPayload.
func (m *RawPayloadModel) FromDomain(p *provenance.RawPayload) {
	m.PayloadID = p.PayloadID
	m.RunID = p.RunID
	m.CompanyID = p.CompanyID
	m.Endpoint = p.Endpoint
	m.HTTPStatus = p.HTTPStatus
	m.PageNumber = p.PageNumber
	m.APICursor = p.APICursor
	m.RequestURL = p.RequestURL
	m.PayloadJSON = p.PayloadJSON
	m.PayloadHash = p.PayloadHash
	m.ExtractedAt = p.ExtractedAt
}
