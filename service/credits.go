package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-shop-backoffice/models"
)

// SettleEpsilon treats near-zero balances as settled; float arithmetic
// over many partial payments leaves dust.
const SettleEpsilon = 1e-6

// Balance is the open remainder of a credit, never negative.
func Balance(cr models.Credit) float64 {
	b := cr.Amount - cr.AmountPaid
	if b < 0 {
		return 0
	}
	return b
}

// NormalizePhone strips everything but digits so "0812-33" and "081233"
// land in the same group.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GroupKey picks one bucket per credit row. Precedence: customer link,
// then phone, then name, then the row itself. Every row lands in
// exactly one group even when the customer link is missing.
func GroupKey(cr models.Credit) string {
	if cr.CustomerID != nil && *cr.CustomerID > 0 {
		return fmt.Sprintf("c:%d", *cr.CustomerID)
	}
	if p := NormalizePhone(cr.CustomerPhone); p != "" {
		return "p:" + p
	}
	if n := strings.ToLower(strings.TrimSpace(cr.CustomerName)); n != "" {
		return "n:" + n
	}
	return fmt.Sprintf("r:%d", cr.ID)
}

// CreditGroup is derived per request, never persisted.
type CreditGroup struct {
	Key           string          `json:"key"`
	CustomerID    *uint           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	TotalAmount   float64         `json:"total_amount"`
	TotalPaid     float64         `json:"total_paid"`
	TotalBalance  float64         `json:"total_balance"`
	LastActivity  time.Time       `json:"last_activity"`
	Members       []models.Credit `json:"members"`
}

// GroupCredits buckets rows by GroupKey. Members are ordered
// newest-created-first for display; settlement re-sorts its own copy.
// Groups come back most-recent-activity-first.
func GroupCredits(credits []models.Credit) []CreditGroup {
	byKey := map[string]*CreditGroup{}
	var order []string

	for _, cr := range credits {
		key := GroupKey(cr)
		g, ok := byKey[key]
		if !ok {
			g = &CreditGroup{Key: key}
			byKey[key] = g
			order = append(order, key)
		}
		if g.CustomerID == nil && cr.CustomerID != nil {
			g.CustomerID = cr.CustomerID
		}
		if g.CustomerName == "" {
			g.CustomerName = cr.CustomerName
		}
		if g.CustomerPhone == "" {
			g.CustomerPhone = cr.CustomerPhone
		}
		g.TotalAmount += cr.Amount
		g.TotalPaid += cr.AmountPaid
		g.TotalBalance += Balance(cr)
		if cr.CreatedAt.After(g.LastActivity) {
			g.LastActivity = cr.CreatedAt
		}
		if cr.UpdatedAt.After(g.LastActivity) {
			g.LastActivity = cr.UpdatedAt
		}
		g.Members = append(g.Members, cr)
	}

	groups := make([]CreditGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sort.SliceStable(g.Members, func(i, j int) bool {
			return g.Members[i].CreatedAt.After(g.Members[j].CreatedAt)
		})
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LastActivity.After(groups[j].LastActivity)
	})
	return groups
}

// PaymentSplit is one credit's share of a group payment.
type PaymentSplit struct {
	CreditID uint    `json:"credit_id"`
	Applied  float64 `json:"applied"`
}

// AllocatePayment pays down a group's open credits oldest-created-first,
// partially settling each until the payment runs out. The amount is
// capped at the group's outstanding balance. Returns the per-credit
// splits and the total actually applied.
func AllocatePayment(members []models.Credit, amount float64) ([]PaymentSplit, float64) {
	if amount <= 0 || len(members) == 0 {
		return nil, 0
	}

	open := make([]models.Credit, 0, len(members))
	var outstanding float64
	for _, cr := range members {
		b := Balance(cr)
		if b > SettleEpsilon {
			open = append(open, cr)
			outstanding += b
		}
	}
	if len(open) == 0 {
		return nil, 0
	}

	// FIFO settlement: oldest row first, id breaks created_at ties.
	sort.SliceStable(open, func(i, j int) bool {
		if open[i].CreatedAt.Equal(open[j].CreatedAt) {
			return open[i].ID < open[j].ID
		}
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})

	remaining := amount
	if remaining > outstanding {
		remaining = outstanding
	}

	var splits []PaymentSplit
	var applied float64
	for _, cr := range open {
		if remaining <= SettleEpsilon {
			break
		}
		pay := Balance(cr)
		if pay > remaining {
			pay = remaining
		}
		splits = append(splits, PaymentSplit{CreditID: cr.ID, Applied: pay})
		applied += pay
		remaining -= pay
	}
	return splits, applied
}

// IsSettled resolves the three stored settlement signals, which can
// disagree on old rows. A recognized status string wins; then the
// is_paid flag, then paid_at, then the numeric balance.
func IsSettled(cr models.Credit) bool {
	switch strings.ToLower(strings.TrimSpace(cr.Status)) {
	case models.CreditStatusPaid, "settled":
		return true
	case models.CreditStatusUnpaid, models.CreditStatusPartial, "open":
		return false
	}
	if cr.IsPaid {
		return true
	}
	if cr.PaidAt != nil {
		return true
	}
	return Balance(cr) <= SettleEpsilon
}
