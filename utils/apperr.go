// utils/apperr.go
package utils

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrMessage flattens any failure into the single string shown to the
// operator: a Postgres error yields its message, falling back to a
// SQLSTATE/detail/hint composition; any other error yields Error();
// a message-less error is JSON-stringified as the last resort.
func ErrMessage(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Message != "" {
			return pgErr.Message
		}
		var parts []string
		if pgErr.Code != "" {
			parts = append(parts, "SQLSTATE "+pgErr.Code)
		}
		if pgErr.Detail != "" {
			parts = append(parts, pgErr.Detail)
		}
		if pgErr.Hint != "" {
			parts = append(parts, pgErr.Hint)
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
		if b, jsonErr := json.Marshal(pgErr); jsonErr == nil {
			return string(b)
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	if b, jsonErr := json.Marshal(err); jsonErr == nil {
		return string(b)
	}
	return "unknown error"
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
