package pipeline

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/catalog"
	"github.com/dossier-ai/dossier/internal/intake"
	"github.com/dossier-ai/dossier/internal/organize"
	"github.com/dossier-ai/dossier/internal/router"
	"github.com/dossier-ai/dossier/internal/textclass"
	"github.com/dossier-ai/dossier/internal/vision"
)

// State is the single record threaded through one document's pipeline run.
// Each stage writes only its own fields and never re-derives an earlier
// stage's output. The two classifier branches write disjoint fields; the
// stage tag and message log are the only fields they share, guarded by mu.
type State struct {
	ID         uuid.UUID `json:"id"`
	SourcePath string    `json:"source_path"`
	Filename   string    `json:"filename"`

	Metadata intake.Metadata `json:"metadata"`
	Preview  string          `json:"preview,omitempty"`

	Vision    vision.Result      `json:"vision"`
	Text      textclass.Result   `json:"text"`
	Decision  router.Decision    `json:"decision"`
	Placement organize.Placement `json:"placement"`

	Stage    Stage    `json:"stage"`
	Error    string   `json:"error,omitempty"`
	Messages []string `json:"messages"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	mu sync.Mutex
}

// NewState creates a fresh pending state for one source document.
func NewState(path string) *State {
	return &State{
		ID:         uuid.New(),
		SourcePath: path,
		Filename:   filepath.Base(path),
		Stage:      StagePending,
		Messages:   []string{},
		StartedAt:  time.Now().UTC(),
	}
}

func (s *State) setStage(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stage = stage
}

// logf appends a progress message to the ordered message log.
func (s *State) logf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, fmt.Sprintf(format, args...))
}

// Success reports whether the run reached the completed stage.
func (s *State) Success() bool {
	return s.Stage == StageCompleted
}

// Duration is the wall time the run took. Zero until the run finishes.
func (s *State) Duration() time.Duration {
	if s.CompletedAt.IsZero() {
		return 0
	}
	return s.CompletedAt.Sub(s.StartedAt)
}

// Result is the caller-facing summary of a finished run.
type Result struct {
	ID         uuid.UUID       `json:"id"`
	Success    bool            `json:"success"`
	Filename   string          `json:"filename"`
	Domain     catalog.Domain  `json:"domain,omitempty"`
	Confidence float64         `json:"confidence"`
	OutputPath string          `json:"output_path,omitempty"`
	Decision   router.Decision `json:"decision"`
	Stage      Stage           `json:"stage"`
	Error      string          `json:"error,omitempty"`
	DurationMS int64           `json:"duration_ms"`
}

// Result summarizes the finished state for callers that do not need the
// full stage-by-stage record.
func (s *State) Result() Result {
	return Result{
		ID:         s.ID,
		Success:    s.Success(),
		Filename:   s.Filename,
		Domain:     s.Decision.FinalDomain,
		Confidence: s.Decision.Confidence,
		OutputPath: s.Placement.Destination,
		Decision:   s.Decision,
		Stage:      s.Stage,
		Error:      s.Error,
		DurationMS: s.Duration().Milliseconds(),
	}
}
