// Package storage keeps dataset files in an Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/JaimeStill/iris/pkg/lifecycle"
)

// System stores blobs by key within a single container.
type System interface {
	// Start registers a startup hook that creates the container if missing.
	Start(lc *lifecycle.Coordinator) error
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	// Download returns the blob body; the caller closes it.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type blobStore struct {
	container *container.Client
	name      string
	logger    *slog.Logger
}

// New builds a container client from cfg. No request is made until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := container.NewClientFromConnectionString(cfg.ConnectionString, cfg.ContainerName, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &blobStore{
		container: client,
		name:      cfg.ContainerName,
		logger:    logger.With("system", "storage", "container", cfg.ContainerName),
	}, nil
}

func (s *blobStore) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() error {
		_, err := s.container.Create(lc.Context(), nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			s.logger.Error("container create failed", "error", err)
			return fmt.Errorf("create container %s: %w", s.name, err)
		}
		s.logger.Info("container ready")
		return nil
	})
	return nil
}

func (s *blobStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.container.NewBlockBlobClient(key).UploadStream(ctx, r, &blockblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	return blobError("upload", key, err)
}

func (s *blobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := s.container.NewBlobClient(key).DownloadStream(ctx, nil)
	if err != nil {
		return nil, blobError("download", key, err)
	}
	return resp.Body, nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.container.NewBlobClient(key).Delete(ctx, nil)
	return blobError("delete", key, err)
}

func (s *blobStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := s.container.NewBlobClient(key).GetProperties(ctx, nil)
	switch {
	case err == nil:
		return true, nil
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return false, nil
	}
	return false, blobError("stat", key, err)
}

// blobError maps a missing blob to ErrNotFound and wraps anything else.
func blobError(op, key string, err error) error {
	switch {
	case err == nil:
		return nil
	case bloberror.HasCode(err, bloberror.BlobNotFound):
		return fmt.Errorf("%s %s: %w", op, key, ErrNotFound)
	}
	return fmt.Errorf("%s blob %s: %w", op, key, err)
}

// validateKey accepts relative, slash-separated keys in canonical form.
func validateKey(key string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case strings.Contains(key, ".."),
		strings.HasPrefix(key, "/"),
		strings.Contains(key, `\`),
		path.Clean(key) != key:
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
