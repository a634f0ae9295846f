package runs

import (
	"context"

	"github.com/google/uuid"

	"github.com/dossier-ai/dossier/internal/pipeline"
	"github.com/dossier-ai/dossier/pkg/pagination"
)

// System defines the public contract for run-history operations.
type System interface {
	Handler() *Handler

	Record(ctx context.Context, st *pipeline.State) (*Run, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Run], error)
	Find(ctx context.Context, id uuid.UUID) (*Run, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
