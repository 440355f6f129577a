package datasets

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/iris/internal/metrics"
	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/formatting"
	"github.com/JaimeStill/iris/pkg/pagination"
	"github.com/JaimeStill/iris/pkg/query"
	"github.com/JaimeStill/iris/pkg/repository"
	"github.com/JaimeStill/iris/pkg/storage"
)

const (
	importConcurrency = 4
	importClaimTTL    = 30 * time.Minute
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	samples    samples.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a dataset repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	samples samples.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		samples:    samples,
		logger:     logger.With("system", "datasets"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Dataset], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanDataset)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDataset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Dataset, error) {
	if !cmd.Purpose.Valid() {
		return nil, ErrInvalidPurpose
	}
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}

	id := uuid.New()
	key := buildStorageKey(id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload dataset blob: %w", err)
	}

	q := `
		INSERT INTO datasets(id, filename, content_type, size_bytes, storage_key, purpose)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + columns

	insertArgs := []any{
		id,
		cmd.Filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		key,
		string(cmd.Purpose),
	}

	d, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanDataset)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"dataset created",
		"id", d.ID,
		"filename", d.Filename,
		"size", formatting.FormatBytes(d.SizeBytes, 1),
		"purpose", d.Purpose,
	)
	return &d, nil
}

// Import stores every row of the dataset as a sample tagged with the
// dataset id. The dataset is claimed before any row is written, so a
// concurrent import gets ErrImportInProgress. Rows are written in batches of
// ImportBatchSize; if any batch fails, the rows already stored for the
// dataset are removed and the claim is released so the import can be retried.
func (r *repo) Import(ctx context.Context, id uuid.UUID) (*ImportResult, error) {
	d, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.ImportedAt != nil {
		return nil, ErrAlreadyImported
	}

	if err := r.claim(ctx, id); err != nil {
		return nil, err
	}

	result, err := r.importRows(ctx, d)
	if err != nil {
		r.release(context.WithoutCancel(ctx), id)
		return nil, err
	}

	metrics.RecordDatasetRows(string(result.Dataset.Purpose), result.Imported)
	r.logger.Info("dataset imported",
		"id", id,
		"purpose", result.Dataset.Purpose,
		"rows", result.Imported,
	)
	return result, nil
}

// claim marks the dataset as being imported. A claim older than
// importClaimTTL belongs to an abandoned import; taking it over removes the
// rows that import left behind.
func (r *repo) claim(ctx context.Context, id uuid.UUID) error {
	claimQ := `
		UPDATE datasets
		SET import_started_at = NOW()
		WHERE id = $1
		  AND imported_at IS NULL
		  AND (import_started_at IS NULL OR import_started_at < NOW() - make_interval(secs => $2))`

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(ctx, tx, claimQ, id, importClaimTTL.Seconds()); err != nil {
			return struct{}{}, err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM samples WHERE dataset_id = $1", id)
		return struct{}{}, err
	})

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrImportInProgress, id)
	}
	if err != nil {
		return fmt.Errorf("claim dataset %s: %w", id, err)
	}
	return nil
}

// release drops the rows a failed import stored and clears its claim.
func (r *repo) release(ctx context.Context, id uuid.UUID) {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "DELETE FROM samples WHERE dataset_id = $1", id); err != nil {
			return struct{}{}, err
		}
		_, err := tx.ExecContext(ctx,
			"UPDATE datasets SET import_started_at = NULL WHERE id = $1 AND imported_at IS NULL", id)
		return struct{}{}, err
	})
	if err != nil {
		r.logger.Warn("import cleanup failed", "id", id, "error", err)
	}
}

func (r *repo) importRows(ctx context.Context, d *Dataset) (*ImportResult, error) {
	body, err := r.storage.Download(ctx, d.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download dataset blob: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read dataset blob: %w", err)
	}

	cmds, err := decodeRows(data, d.Purpose)
	if err != nil {
		return nil, err
	}
	for i := range cmds {
		cmds[i].DatasetID = &d.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for _, batch := range batches(cmds, ImportBatchSize) {
		g.Go(func() error {
			_, err := r.samples.CreateBatch(gctx, batch)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("import dataset %s: %w", d.ID, err)
	}

	markQ := `
		UPDATE datasets
		SET row_count = $1, imported_at = NOW()
		WHERE id = $2 AND imported_at IS NULL
		RETURNING ` + columns

	updated, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Dataset, error) {
		return repository.QueryOne(ctx, tx, markQ, []any{len(cmds), d.ID}, scanDataset)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrAlreadyImported, ErrDuplicate)
	}

	return &ImportResult{Dataset: &updated, Imported: len(cmds)}, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Dataset, io.ReadCloser, error) {
	d, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := r.storage.Download(ctx, d.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download dataset blob: %w", err)
	}

	return d, body, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM datasets WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, d.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", d.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("dataset deleted", "id", id)
	return nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	return fmt.Sprintf("datasets/%s/%s", id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	if name == "." || name == "/" || name == "" {
		name = "dataset.csv"
	}
	return url.PathEscape(name)
}
