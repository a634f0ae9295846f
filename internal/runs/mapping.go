package runs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dossier-ai/dossier/pkg/repository"
)

// runColumns is the canonical column list shared by every query that scans
// a full Run row.
const runColumns = `
	id, filename, source_path, stage, success,
	domain, confidence, method, agreement_level, reasoning,
	output_path, error,
	vision_confidence, vision_degraded, text_method, text_confidence,
	page_count, size_bytes, duration_ms,
	started_at, completed_at, created_at`

// Filters contains optional criteria for run queries. Nil fields are
// ignored. Filename uses case-insensitive contains matching; the rest
// match exactly.
type Filters struct {
	Domain   *string `json:"domain,omitempty"`
	Method   *string `json:"method,omitempty"`
	Stage    *string `json:"stage,omitempty"`
	Success  *bool   `json:"success,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("domain"); d != "" {
		f.Domain = &d
	}
	if m := values.Get("method"); m != "" {
		f.Method = &m
	}
	if s := values.Get("stage"); s != "" {
		f.Stage = &s
	}
	if v := values.Get("success"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Success = &b
		}
	}
	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

// where renders the filters as a WHERE clause with positional arguments,
// continuing the placeholder numbering from the given offset.
func (f Filters) where(argOffset int) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, argOffset+len(args)))
	}

	if f.Domain != nil {
		add("domain = $%d", *f.Domain)
	}
	if f.Method != nil {
		add("method = $%d", *f.Method)
	}
	if f.Stage != nil {
		add("stage = $%d", *f.Stage)
	}
	if f.Success != nil {
		add("success = $%d", *f.Success)
	}
	if f.Filename != nil {
		add("filename ILIKE '%%' || $%d || '%%'", *f.Filename)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanRun(s repository.Scanner) (Run, error) {
	var r Run
	err := s.Scan(
		&r.ID,
		&r.Filename,
		&r.SourcePath,
		&r.Stage,
		&r.Success,
		&r.Domain,
		&r.Confidence,
		&r.Method,
		&r.AgreementLevel,
		&r.Reasoning,
		&r.OutputPath,
		&r.Error,
		&r.VisionConfidence,
		&r.VisionDegraded,
		&r.TextMethod,
		&r.TextConfidence,
		&r.PageCount,
		&r.SizeBytes,
		&r.DurationMS,
		&r.StartedAt,
		&r.CompletedAt,
		&r.CreatedAt,
	)
	return r, err
}

func scanDomainCount(s repository.Scanner) (DomainCount, error) {
	var c DomainCount
	err := s.Scan(&c.Domain, &c.Count)
	return c, err
}

func scanMethodCount(s repository.Scanner) (MethodCount, error) {
	var c MethodCount
	err := s.Scan(&c.Method, &c.Count)
	return c, err
}
