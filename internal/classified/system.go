package classified

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/pkg/pagination"
)

// System defines the public contract for classified sample operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Result], error)

	Find(ctx context.Context, id uuid.UUID) (*Result, error)
	Create(ctx context.Context, sampleID uuid.UUID, cmd CreateCommand) (*Result, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
