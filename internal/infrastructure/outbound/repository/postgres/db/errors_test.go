package db_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"noders-content-service/internal/infrastructure/outbound/repository/postgres/db"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"no rows", pgx.ErrNoRows, true},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), true},
		{"invalid uuid", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "x"`}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"other", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.IsNotFound(tt.err))
		})
	}
}
