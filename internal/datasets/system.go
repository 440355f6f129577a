package datasets

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/pkg/pagination"
)

// System defines the public contract for dataset domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Dataset], error)

	Find(ctx context.Context, id uuid.UUID) (*Dataset, error)
	Create(ctx context.Context, cmd CreateCommand) (*Dataset, error)
	Import(ctx context.Context, id uuid.UUID) (*ImportResult, error)
	// Download returns the raw file. The caller must close the reader.
	Download(ctx context.Context, id uuid.UUID) (*Dataset, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
