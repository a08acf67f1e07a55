package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous id prefix")
)

// parseNullableDate parses a nullable calendar date column.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(domain.DateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
