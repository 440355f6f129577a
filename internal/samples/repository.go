package samples

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/internal/metrics"
	"github.com/JaimeStill/iris/pkg/pagination"
	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a sample repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "samples"),
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
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Species", "Classification")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Record, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanRecord)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		return insert(ctx, tx, cmd)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	metrics.RecordSampleCreated(string(s.Kind))
	r.logger.Info("sample created", "id", s.ID, "kind", s.Kind)
	return &s, nil
}

func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) (int, error) {
	for i := range cmds {
		if err := cmds[i].Validate(); err != nil {
			return 0, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		for i, cmd := range cmds {
			if _, err := insert(ctx, tx, cmd); err != nil {
				return 0, fmt.Errorf("insert sample %d: %w", i, err)
			}
		}
		return len(cmds), nil
	})

	if err != nil {
		return 0, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	for _, cmd := range cmds {
		metrics.RecordSampleCreated(string(cmd.Kind))
	}

	r.logger.Info("sample batch created", "count", n)
	return n, nil
}

func (r *repo) Classify(ctx context.Context, id uuid.UUID, cmd ClassifyCommand) (*Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	classifyQ := `
		UPDATE samples
		SET classification = $1, updated_at = NOW()
		WHERE id = $2 AND kind = 'testing'
		RETURNING ` + columns

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Record, error) {
		s, err := repository.QueryOne(ctx, tx, classifyQ, []any{cmd.Classification, id}, scanRecord)
		if err == nil {
			return s, nil
		}

		// Distinguish a missing sample from one of the wrong kind.
		var kind string
		if findErr := tx.QueryRowContext(ctx, "SELECT kind FROM samples WHERE id = $1", id).Scan(&kind); findErr == nil {
			return Record{}, fmt.Errorf("%w: %s sample cannot be classified", ErrInvalidKind, kind)
		}
		return Record{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	})

	if err != nil {
		return nil, err
	}

	matched := s.Matches != nil && *s.Matches
	metrics.RecordTestingClassified(matched)
	r.logger.Info("testing sample classified",
		"id", s.ID,
		"classification", cmd.Classification,
		"matches", matched,
	)
	return &s, nil
}

func (r *repo) Summary(ctx context.Context) (*Summary, error) {
	summaryQ := `
		SELECT
			COUNT(*),
			COUNT(classification),
			COUNT(*) FILTER (WHERE classification = species)
		FROM samples
		WHERE kind = 'testing'`

	var total, classified, matched int
	if err := r.db.QueryRowContext(ctx, summaryQ).Scan(&total, &classified, &matched); err != nil {
		return nil, fmt.Errorf("summarize testing samples: %w", err)
	}

	s := NewSummary(total, classified, matched)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM samples WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("sample deleted", "id", id)
	return nil
}

func insert(ctx context.Context, tx *sql.Tx, cmd CreateCommand) (Record, error) {
	insertQ := `
		INSERT INTO samples(
			kind, sepal_length, sepal_width, petal_length, petal_width, species, dataset_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns

	var species *string
	if cmd.Kind.Known() {
		species = &cmd.Species
	}

	args := []any{
		string(cmd.Kind),
		cmd.SepalLength,
		cmd.SepalWidth,
		cmd.PetalLength,
		cmd.PetalWidth,
		species,
		cmd.DatasetID,
	}

	return repository.QueryOne(ctx, tx, insertQ, args, scanRecord)
}
