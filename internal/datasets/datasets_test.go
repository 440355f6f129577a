package datasets_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/iris/internal/datasets"
	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/lifecycle"
	"github.com/JaimeStill/iris/pkg/pagination"
	"github.com/JaimeStill/iris/pkg/storage"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", datasets.ErrNotFound, http.StatusNotFound},
		{"duplicate", datasets.ErrDuplicate, http.StatusConflict},
		{"already imported", datasets.ErrAlreadyImported, http.StatusConflict},
		{"import in progress", fmt.Errorf("%w: id", datasets.ErrImportInProgress), http.StatusConflict},
		{"file too large", datasets.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid file", fmt.Errorf("%w: row 3", datasets.ErrInvalidFile), http.StatusBadRequest},
		{"invalid purpose", datasets.ErrInvalidPurpose, http.StatusBadRequest},
		{"blob not found", fmt.Errorf("download dataset blob: %w", storage.ErrNotFound), http.StatusNotFound},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := datasets.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("valid purpose", func(t *testing.T) {
		f := datasets.FiltersFromQuery(url.Values{"purpose": {"unknown"}, "filename": {"iris"}})

		if f.Purpose == nil || *f.Purpose != "unknown" {
			t.Errorf("Purpose = %v, want unknown", f.Purpose)
		}
		if f.Filename == nil || *f.Filename != "iris" {
			t.Errorf("Filename = %v, want iris", f.Filename)
		}
	})

	t.Run("invalid purpose ignored", func(t *testing.T) {
		f := datasets.FiltersFromQuery(url.Values{"purpose": {"classified"}})

		if f.Purpose != nil {
			t.Errorf("Purpose = %v, want nil", *f.Purpose)
		}
	})
}

// fakeStore records uploads and fails them on demand.
type fakeStore struct {
	uploadErr error
	uploads   []string
}

func (s *fakeStore) Start(*lifecycle.Coordinator) error { return nil }

func (s *fakeStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads = append(s.uploads, key)
	_, err := io.Copy(io.Discard, r)
	return err
}

func (s *fakeStore) Download(context.Context, string) (io.ReadCloser, error) {
	return nil, storage.ErrNotFound
}

func (s *fakeStore) Delete(context.Context, string) error { return nil }

func (s *fakeStore) Exists(context.Context, string) (bool, error) { return false, nil }

func TestCreateRejectsBeforeStorage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

	tests := []struct {
		name    string
		cmd     datasets.CreateCommand
		wantErr error
	}{
		{
			"invalid purpose",
			datasets.CreateCommand{Data: []byte(csvBody), Filename: "iris.csv", Purpose: samples.KindClassified},
			datasets.ErrInvalidPurpose,
		},
		{
			"empty file",
			datasets.CreateCommand{Filename: "iris.csv", Purpose: samples.KindTraining},
			datasets.ErrInvalidFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			sys := datasets.New(nil, store, nil, logger, cfg)

			_, err := sys.Create(context.Background(), tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if len(store.uploads) != 0 {
				t.Errorf("uploads = %v, want none", store.uploads)
			}
		})
	}

	t.Run("upload failure stops create", func(t *testing.T) {
		store := &fakeStore{uploadErr: errors.New("blob unavailable")}
		sys := datasets.New(nil, store, nil, logger, cfg)

		cmd := datasets.CreateCommand{
			Data:        []byte(csvBody),
			Filename:    "iris.csv",
			ContentType: "text/csv",
			Purpose:     samples.KindTraining,
		}

		_, err := sys.Create(context.Background(), cmd)
		if !errors.Is(err, store.uploadErr) {
			t.Errorf("Create() error = %v, want upload error", err)
		}
	})
}
