package classified_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/iris/internal/classified"
	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/pagination"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", classified.ErrNotFound, http.StatusNotFound},
		{"duplicate", classified.ErrDuplicate, http.StatusConflict},
		{"invalid classification", classified.ErrInvalidClassification, http.StatusBadRequest},
		{"source sample not found", fmt.Errorf("find sample: %w", samples.ErrNotFound), http.StatusNotFound},
		{"source sample wrong kind", samples.ErrInvalidKind, http.StatusConflict},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classified.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCreateCommandValidate(t *testing.T) {
	t.Run("trims classification", func(t *testing.T) {
		cmd := classified.CreateCommand{Classification: " setosa\n"}
		if err := cmd.Validate(); err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if cmd.Classification != "setosa" {
			t.Errorf("Classification = %q, want setosa", cmd.Classification)
		}
	})

	t.Run("blank classification", func(t *testing.T) {
		cmd := classified.CreateCommand{Classification: "  "}
		if err := cmd.Validate(); !errors.Is(err, classified.ErrInvalidClassification) {
			t.Errorf("Validate() = %v, want ErrInvalidClassification", err)
		}
	})
}

func TestFiltersFromQuery(t *testing.T) {
	f := classified.FiltersFromQuery(url.Values{"classification": {"setosa"}})
	if f.Classification == nil || *f.Classification != "setosa" {
		t.Errorf("Classification = %v, want setosa", f.Classification)
	}

	empty := classified.FiltersFromQuery(url.Values{})
	if empty.Classification != nil {
		t.Errorf("Classification = %v, want nil", *empty.Classification)
	}
}

// sampleSource serves Find from a fixed set of records.
type sampleSource struct {
	samples.System
	records map[uuid.UUID]samples.Record
}

func (s *sampleSource) Find(_ context.Context, id uuid.UUID) (*samples.Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, samples.ErrNotFound
	}
	return &rec, nil
}

func TestCreateRejectsBeforeInsert(t *testing.T) {
	species := "setosa"
	training := samples.Record{
		ID:      uuid.New(),
		Sample:  samples.NewSample(5.1, 3.5, 1.4, 0.2),
		Kind:    samples.KindTraining,
		Species: &species,
	}

	src := &sampleSource{records: map[uuid.UUID]samples.Record{training.ID: training}}
	sys := classified.New(
		nil,
		src,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)

	tests := []struct {
		name    string
		id      uuid.UUID
		cmd     classified.CreateCommand
		wantErr error
	}{
		{"blank classification", training.ID, classified.CreateCommand{}, classified.ErrInvalidClassification},
		{"missing sample", uuid.New(), classified.CreateCommand{Classification: "setosa"}, samples.ErrNotFound},
		{"known sample", training.ID, classified.CreateCommand{Classification: "setosa"}, samples.ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Create(context.Background(), tt.id, tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
