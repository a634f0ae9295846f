package runs

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/pkg/pagination"
	"github.com/dossier-ai/dossier/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the run-history system backed by the given database.
func New(db *sql.DB, logger *slog.Logger, pageCfg pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "runs"),
		pagination: pageCfg,
	}
}

func (r *repo) Handler() *Handler {
	return &Handler{
		system:     r,
		logger:     r.logger,
		pagination: r.pagination,
	}
}

// Record flattens a finished pipeline state into one run row. Idempotent
// on run ID: recording the same state twice returns ErrDuplicate.
func (r *repo) Record(ctx context.Context, st *pipeline.State) (*Run, error) {
	if st == nil || st.CompletedAt.IsZero() {
		return nil, fmt.Errorf("%w: state is not finished", ErrInvalidRun)
	}

	query := fmt.Sprintf(`
		INSERT INTO runs (
			id, filename, source_path, stage, success,
			domain, confidence, method, agreement_level, reasoning,
			output_path, error,
			vision_confidence, vision_degraded, text_method, text_confidence,
			page_count, size_bytes, duration_ms,
			started_at, completed_at
		)
		VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16,
			$17, $18, $19,
			$20, $21
		)
		RETURNING %s`, runColumns)

	var outputPath, runErr *string
	if st.Placement.Destination != "" {
		outputPath = &st.Placement.Destination
	}
	if st.Error != "" {
		runErr = &st.Error
	}

	run, err := repository.QueryOne(ctx, r.db, query, []any{
		st.ID,
		st.Filename,
		st.SourcePath,
		st.Stage.String(),
		st.Success(),
		string(st.Decision.FinalDomain),
		st.Decision.Confidence,
		st.Decision.Method,
		st.Decision.AgreementLevel,
		st.Decision.Reasoning,
		outputPath,
		runErr,
		st.Vision.Confidence,
		st.Vision.Degraded(),
		st.Text.Method,
		st.Text.Confidence,
		st.Metadata.PageCount,
		st.Metadata.SizeBytes,
		st.Duration().Milliseconds(),
		st.StartedAt,
		st.CompletedAt,
	}, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("run recorded",
		"id", run.ID,
		"filename", run.Filename,
		"domain", run.Domain,
		"stage", run.Stage)
	return &run, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	if filters.Filename == nil && page.Search != nil {
		filters.Filename = page.Search
	}

	where, args := filters.where(0)

	var total int
	countQuery := "SELECT COUNT(*) FROM runs" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM runs%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		runColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())

	data, err := repository.QueryMany(ctx, r.db, query, args, scanRun)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	query := fmt.Sprintf("SELECT %s FROM runs WHERE id = $1", runColumns)

	run, err := repository.QueryOne(ctx, r.db, query, []any{id}, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &run, nil
}

func (r *repo) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics

	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE success),
			COUNT(*) FILTER (WHERE NOT success),
			COALESCE(AVG(confidence) FILTER (WHERE success), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM runs`)
	if err := row.Scan(
		&stats.TotalRuns,
		&stats.Completed,
		&stats.Failed,
		&stats.AvgConfidence,
		&stats.AvgDurationMS,
	); err != nil {
		return nil, err
	}

	domains, err := repository.QueryMany(ctx, r.db, `
		SELECT domain, COUNT(*) FROM runs
		WHERE success
		GROUP BY domain
		ORDER BY COUNT(*) DESC, domain`, nil, scanDomainCount)
	if err != nil {
		return nil, err
	}
	stats.Domains = domains

	methods, err := repository.QueryMany(ctx, r.db, `
		SELECT method, COUNT(*) FROM runs
		WHERE method <> ''
		GROUP BY method
		ORDER BY COUNT(*) DESC, method`, nil, scanMethodCount)
	if err != nil {
		return nil, err
	}
	stats.Methods = methods

	return &stats, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, "DELETE FROM runs WHERE id = $1", id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("run deleted", "id", id)
	return nil
}
