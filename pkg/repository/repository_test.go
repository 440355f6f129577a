package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/iris/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")
	foreignKey := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{"nil", nil, nil, ""},
		{"no rows", sql.ErrNoRows, errNotFound, "not found"},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), errNotFound, "not found"},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate, "duplicate"},
		{
			"unique violation with constraint",
			&pgconn.PgError{Code: "23505", ConstraintName: "classified_samples_sample_id_key"},
			errDuplicate,
			"duplicate: classified_samples_sample_id_key",
		},
		{"foreign key passes through", foreignKey, foreignKey, foreignKey.Error()},
		{"other passes through", other, other, "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)
			if tt.wantIs == nil {
				if got != nil {
					t.Errorf("MapError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.wantIs) {
				t.Errorf("MapError() = %v, want %v", got, tt.wantIs)
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("MapError() message = %q, want %q", got.Error(), tt.wantMsg)
			}
		})
	}
}
