package samples

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/pkg/pagination"
)

// System defines the public contract for sample domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)

	Find(ctx context.Context, id uuid.UUID) (*Record, error)
	Create(ctx context.Context, cmd CreateCommand) (*Record, error)
	CreateBatch(ctx context.Context, cmds []CreateCommand) (int, error)
	Classify(ctx context.Context, id uuid.UUID, cmd ClassifyCommand) (*Record, error)
	Summary(ctx context.Context) (*Summary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
