package classified

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/internal/metrics"
	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/pagination"
	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
)

type repo struct {
	db         *sql.DB
	samples    samples.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a classified sample repository implementing the System interface.
func New(
	db *sql.DB,
	samples samples.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		samples:    samples,
		logger:     logger.With("system", "classified"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Result], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Classification")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanResult)
	if err != nil {
		return nil, fmt.Errorf("list classified samples: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Result, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanResult)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, sampleID uuid.UUID, cmd CreateCommand) (*Result, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rec, err := r.samples.Find(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("find sample %s: %w", sampleID, err)
	}

	unknown, err := rec.Unknown()
	if err != nil {
		return nil, err
	}

	cs := samples.NewClassifiedSample(cmd.Classification, unknown)

	insertQ := `
		INSERT INTO classified_samples(
			sepal_length, sepal_width, petal_length, petal_width, classification
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sepal_length, sepal_width, petal_length, petal_width,
				  classification, classified_at`

	insertArgs := []any{
		cs.SepalLength,
		cs.SepalWidth,
		cs.PetalLength,
		cs.PetalWidth,
		cs.Classification,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Result, error) {
		return repository.QueryOne(ctx, tx, insertQ, insertArgs, scanResult)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	metrics.RecordClassifiedSample()
	r.logger.Info("sample classified",
		"id", c.ID,
		"classification", c.Classification,
	)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM classified_samples WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classified sample deleted", "id", id)
	return nil
}
