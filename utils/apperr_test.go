package utils_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"go-shop-backoffice/utils"
)

// blankError carries data but renders no message, forcing the JSON
// fallback.
type blankError struct {
	Op string `json:"op"`
}

func (blankError) Error() string { return "" }

func TestErrMessagePrefersPgMessage(t *testing.T) {
	err := &pgconn.PgError{
		Code:    "P0001",
		Message: "insufficient stock for variant 9",
		Detail:  "requested 500g, available 120g",
	}
	assert.Equal(t, "insufficient stock for variant 9", utils.ErrMessage(err))
}

func TestErrMessageComposesCodeDetailHint(t *testing.T) {
	err := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (order_code)=(ORD-1) already exists.",
		Hint:   "Use another code.",
	}
	assert.Equal(t,
		"SQLSTATE 23505; Key (order_code)=(ORD-1) already exists.; Use another code.",
		utils.ErrMessage(err))
}

func TestErrMessageUnwrapsWrappedPgError(t *testing.T) {
	pg := &pgconn.PgError{Message: "confirm_order: order already confirmed"}
	wrapped := fmt.Errorf("confirming: %w", pg)
	assert.Equal(t, "confirm_order: order already confirmed", utils.ErrMessage(wrapped))
}

func TestErrMessagePlainError(t *testing.T) {
	assert.Equal(t, "dial timeout", utils.ErrMessage(errors.New("dial timeout")))
	assert.Equal(t, "", utils.ErrMessage(nil))
}

func TestErrMessageJSONFallback(t *testing.T) {
	assert.Equal(t, `{"op":"upload"}`, utils.ErrMessage(blankError{Op: "upload"}))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, utils.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, utils.IsUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, utils.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, utils.IsUniqueViolation(errors.New("23505")))
}

func TestGenReceiptRef(t *testing.T) {
	at := time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "RC-2025-000042", utils.GenReceiptRef(42, at))
	assert.Equal(t, "RC-2025-1000000", utils.GenReceiptRef(1000000, at))
}
