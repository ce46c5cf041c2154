// utils/codes.go
package utils

import (
	"fmt"
	"time"
)

func GenReceiptRef(seq int64, t time.Time) string {
	return fmt.Sprintf("RC-%d-%06d", t.Year(), seq)
}
