// Package pipeline orchestrates the fixed five-stage classification run:
// intake, two concurrent classifier branches, routing, and filing.
//
// The fork is an AND-join: routing waits for both branches, never races
// them. Both branch stages carry bounded-failure contracts, so the join
// always completes. Only intake and filing can end a run unsuccessfully.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dossier-ai/dossier/internal/intake"
	"github.com/dossier-ai/dossier/internal/organize"
	"github.com/dossier-ai/dossier/internal/router"
	"github.com/dossier-ai/dossier/internal/textclass"
	"github.com/dossier-ai/dossier/internal/vision"
)

// DefaultBatchLimit bounds concurrent document runs in RunBatch.
const DefaultBatchLimit = 4

// Observer receives one observation per run: StartRun when it begins and
// ObserveRun when it reaches a terminal stage.
type Observer interface {
	StartRun()
	ObserveRun(domain, method string, success bool, duration time.Duration)
}

// Extractor produces classification inputs for a source document.
// intake.Extractor is the production implementation.
type Extractor interface {
	Extract(ctx context.Context, path string) (*intake.Extraction, error)
}

// Runtime bundles the stage implementations a pipeline run depends on.
type Runtime struct {
	Extractor Extractor
	Vision    *vision.Classifier
	Text      *textclass.Classifier
	Router    *router.Router
	Organizer organize.System
	Observer  Observer
	Logger    *slog.Logger

	// Mode selects how documents are filed, organize.ModeCopy or
	// organize.ModeMove. Empty defaults to copy so sources are preserved.
	Mode string

	// BatchLimit bounds concurrent runs in RunBatch. Zero means
	// DefaultBatchLimit.
	BatchLimit int
}

// Pipeline executes classification runs.
type Pipeline struct {
	rt     Runtime
	logger *slog.Logger
}

// New creates a pipeline over the given runtime.
func New(rt Runtime) *Pipeline {
	if rt.Mode == "" {
		rt.Mode = organize.ModeCopy
	}
	if rt.BatchLimit <= 0 {
		rt.BatchLimit = DefaultBatchLimit
	}
	return &Pipeline{
		rt:     rt,
		logger: rt.Logger.With("system", "pipeline"),
	}
}

// Run executes the full pipeline for one document and returns its final
// state. The returned state is always terminal; inspect Success and the
// decision's method tag to learn how the classification was produced.
func (p *Pipeline) Run(ctx context.Context, path string) *State {
	st := NewState(path)

	if p.rt.Observer != nil {
		p.rt.Observer.StartRun()
	}

	ext, ok := p.runIntake(ctx, st)
	if !ok {
		return p.finish(st)
	}

	p.runClassifiers(ctx, st, ext)
	p.runRouting(ctx, st)
	p.runOrganizing(ctx, st)

	return p.finish(st)
}

func (p *Pipeline) runIntake(ctx context.Context, st *State) (*intake.Extraction, bool) {
	st.setStage(StageIntakeRunning)

	ext, err := p.rt.Extractor.Extract(ctx, st.SourcePath)
	if err != nil {
		st.setStage(StageIntakeFailed)
		st.Error = err.Error()
		st.logf("intake failed: %v", err)
		st.setStage(StageFailed)
		return nil, false
	}

	st.Metadata = ext.Metadata
	st.Preview = ext.Preview
	st.setStage(StageIntakeDone)
	st.logf("extracted %d pages, %d text characters, %d preview images",
		ext.Metadata.PageCount, len(ext.Text), len(ext.Images))
	return ext, true
}

// runClassifiers forks the two classifier branches and AND-joins them.
// Neither branch can fail the run: vision degrades to a placeholder and
// text recovers through its keyword fallback, so g.Wait always returns nil.
func (p *Pipeline) runClassifiers(ctx context.Context, st *State, ext *intake.Extraction) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st.setStage(StageVisionRunning)
		st.Vision = p.rt.Vision.Classify(gctx, ext.Images, st.Filename)
		if st.Vision.Degraded() {
			st.logf("vision analysis degraded: %s", st.Vision.Error)
		} else {
			st.logf("vision analysis resolved: %d domain hints", len(st.Vision.DomainHints))
		}
		return nil
	})

	g.Go(func() error {
		st.setStage(StageTextRunning)
		st.Text = p.rt.Text.Classify(gctx, ext.Text, st.Filename)
		st.logf("text classification resolved: %s via %s", st.Text.PrimaryDomain, st.Text.Method)
		return nil
	})

	g.Wait()
}

func (p *Pipeline) runRouting(ctx context.Context, st *State) {
	st.setStage(StageRoutingRunning)
	st.Decision = p.rt.Router.Route(ctx, st.Vision, st.Text, st.Filename)
	st.setStage(StageRoutingDone)
	st.logf("routed to %s via %s (%s agreement)",
		st.Decision.FinalDomain, st.Decision.Method, st.Decision.AgreementLevel)
}

func (p *Pipeline) runOrganizing(ctx context.Context, st *State) {
	st.setStage(StageOrganizingRunning)

	st.Placement = p.rt.Organizer.Place(ctx, organize.Request{
		Source:   st.SourcePath,
		Filename: st.Filename,
		Domain:   st.Decision.FinalDomain,
		Mode:     p.rt.Mode,
	})

	if !st.Placement.Success {
		st.setStage(StageOrganizationFailed)
		st.Error = st.Placement.Error
		st.logf("filing failed: %s", st.Placement.Error)
		return
	}

	st.setStage(StageCompleted)
	st.logf("filed to %s", st.Placement.Destination)
}

func (p *Pipeline) finish(st *State) *State {
	st.CompletedAt = time.Now().UTC()

	if p.rt.Observer != nil {
		p.rt.Observer.ObserveRun(
			string(st.Decision.FinalDomain),
			st.Decision.Method,
			st.Success(),
			st.Duration(),
		)
	}

	p.logger.Info(
		"pipeline run finished",
		"id", st.ID,
		"filename", st.Filename,
		"stage", st.Stage,
		"domain", st.Decision.FinalDomain,
		"method", st.Decision.Method,
		"duration", st.Duration(),
	)
	return st
}

// RunBatch executes the pipeline for each path with bounded concurrency.
// Results are returned in input order; a failed run occupies its slot like
// any other terminal state.
func (p *Pipeline) RunBatch(ctx context.Context, paths []string) []*State {
	results := make([]*State, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(p.rt.BatchLimit)

	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.Run(ctx, path)
			return nil
		})
	}

	g.Wait()
	return results
}
