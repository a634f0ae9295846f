package formatting

import (
	"errors"
	"testing"
)

type payload struct {
	Domain     string  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

func TestParseDirect(t *testing.T) {
	got, err := Parse[payload](`{"domain": "finance", "confidence": 0.9}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Domain != "finance" || got.Confidence != 0.9 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseFenced(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"json fence", "```json\n{\"domain\": \"law\"}\n```"},
		{"bare fence", "```\n{\"domain\": \"law\"}\n```"},
		{"fence with prose", "Here is the result:\n```json\n{\"domain\": \"law\"}\n```\nDone."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse[payload](tt.content)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.Domain != "law" {
				t.Fatalf("domain = %q", got.Domain)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	_, err := Parse[payload]("the document is about finance")
	if !errors.Is(err, ErrParseFailed) {
		t.Fatalf("err = %v, want ErrParseFailed", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{1048576, 2, "1.00 MB"},
		{1073741824, 0, "1 GB"},
		{2048, -1, "2 KB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}

func TestBytesToMB(t *testing.T) {
	tests := []struct {
		n    int64
		want float64
	}{
		{0, 0},
		{1048576, 1},
		{1572864, 1.5},
		{123456, 0.12},
	}

	for _, tt := range tests {
		if got := BytesToMB(tt.n); got != tt.want {
			t.Errorf("BytesToMB(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}
