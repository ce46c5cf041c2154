package service

import (
	"sort"
	"time"

	"go-shop-backoffice/models"
)

type movementKey struct {
	orderID   uint
	variantID uint
}

// SalesLine is one order item with its cost joined in.
type SalesLine struct {
	OrderItemID  uint    `json:"order_item_id"`
	VariantID    uint    `json:"variant_id"`
	ProductName  string  `json:"product_name"`
	VariantLabel string  `json:"variant_label"`
	QtyGrams     float64 `json:"qty_grams"`
	QtyUnits     float64 `json:"qty_units"`
	Revenue      float64 `json:"revenue"`
	Cost         float64 `json:"cost"`
	Profit       float64 `json:"profit"`
}

type OrderSales struct {
	OrderID      uint        `json:"order_id"`
	OrderCode    string      `json:"order_code"`
	CustomerName string      `json:"customer_name"`
	PlacedAt     time.Time   `json:"placed_at"`
	Revenue      float64     `json:"revenue"`
	Cost         float64     `json:"cost"`
	Profit       float64     `json:"profit"`
	Lines        []SalesLine `json:"lines"`
}

type SalesSummary struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

type SalesReport struct {
	Summary SalesSummary `json:"summary"`
	Orders  []OrderSales `json:"orders"`
}

// BuildSalesReport joins order lines against cost-bearing sale
// movements keyed by (order id, variant id). A line with no matching
// movement costs zero; missing cost data is a valid outcome, not an
// error. Each movement bucket is consumed once so a duplicate variant
// line does not double-count cost.
func BuildSalesReport(orders []models.Order, movements []models.InventoryMovement) SalesReport {
	costs := map[movementKey]float64{}
	for _, mv := range movements {
		if mv.Type != models.MovementSale || mv.OrderID == nil {
			continue
		}
		costs[movementKey{orderID: *mv.OrderID, variantID: mv.VariantID}] += mv.CostTotal
	}

	used := map[movementKey]bool{}
	report := SalesReport{Orders: make([]OrderSales, 0, len(orders))}
	for _, o := range orders {
		os := OrderSales{
			OrderID:      o.ID,
			OrderCode:    o.OrderCode,
			CustomerName: o.CustomerName,
			PlacedAt:     o.PlacedAt,
		}
		for _, it := range o.Items {
			line := SalesLine{
				OrderItemID:  it.ID,
				VariantID:    it.VariantID,
				ProductName:  it.ProductName,
				VariantLabel: it.VariantLabel,
				QtyGrams:     it.QtyGrams,
				QtyUnits:     it.QtyUnits,
				Revenue:      it.LineTotal,
			}
			key := movementKey{orderID: o.ID, variantID: it.VariantID}
			if !used[key] {
				line.Cost = costs[key]
				used[key] = true
			}
			line.Profit = line.Revenue - line.Cost
			os.Revenue += line.Revenue
			os.Cost += line.Cost
			os.Lines = append(os.Lines, line)
		}
		os.Profit = os.Revenue - os.Cost
		report.Summary.Orders++
		report.Summary.Revenue += os.Revenue
		report.Summary.Cost += os.Cost
		report.Summary.Profit += os.Profit
		report.Orders = append(report.Orders, os)
	}
	return report
}

// DailySales is one calendar day of the ranged report.
type DailySales struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// BuildDailyRollup groups per-order sales by the calendar day of
// placed_at, days ascending.
func BuildDailyRollup(orders []OrderSales) []DailySales {
	byDay := map[string]*DailySales{}
	for _, o := range orders {
		day := o.PlacedAt.Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &DailySales{Date: day}
			byDay[day] = d
		}
		d.Orders++
		d.Revenue += o.Revenue
		d.Cost += o.Cost
		d.Profit += o.Profit
	}

	days := make([]DailySales, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
