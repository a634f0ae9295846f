// Package runs implements the run-history domain: every finished pipeline
// run is recorded for inspection, retry decisions, and aggregate statistics.
package runs

import (
	"time"

	"github.com/google/uuid"
)

// Run is the persisted record of one pipeline run.
type Run struct {
	ID             uuid.UUID `json:"id"`
	Filename       string    `json:"filename"`
	SourcePath     string    `json:"source_path"`
	Stage          string    `json:"stage"`
	Success        bool      `json:"success"`
	Domain         string    `json:"domain"`
	Confidence     float64   `json:"confidence"`
	Method         string    `json:"method"`
	AgreementLevel string    `json:"agreement_level"`
	Reasoning      string    `json:"reasoning"`
	OutputPath     *string   `json:"output_path,omitempty"`
	Error          *string   `json:"error,omitempty"`

	VisionConfidence float64 `json:"vision_confidence"`
	VisionDegraded   bool    `json:"vision_degraded"`
	TextMethod       string  `json:"text_method"`
	TextConfidence   float64 `json:"text_confidence"`

	PageCount  int   `json:"page_count"`
	SizeBytes  int64 `json:"size_bytes"`
	DurationMS int64 `json:"duration_ms"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// DomainCount is one domain's share of recorded runs.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// MethodCount is one decision method's share of recorded runs.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// Statistics aggregates the recorded run history.
type Statistics struct {
	TotalRuns     int           `json:"total_runs"`
	Completed     int           `json:"completed"`
	Failed        int           `json:"failed"`
	AvgConfidence float64       `json:"avg_confidence"`
	AvgDurationMS float64       `json:"avg_duration_ms"`
	Domains       []DomainCount `json:"domains"`
	Methods       []MethodCount `json:"methods"`
}
