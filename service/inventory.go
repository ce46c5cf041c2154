package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"go-shop-backoffice/models"
)

// EffectiveQty is the quantity that matters for a variant: grams for
// weight-sold variants, units otherwise.
func EffectiveQty(sellType models.SellType, qtyGrams, qtyUnits float64) float64 {
	if sellType == models.SellByWeight {
		return qtyGrams
	}
	return qtyUnits
}

// IsLowStock is true when the quantity sits at or below a positive
// reorder threshold. A zero threshold disables the alert instead of
// always firing it.
func IsLowStock(qty, reorderLevel float64) bool {
	return reorderLevel > 0 && qty <= reorderLevel
}

// StockValue is qty * avgCost, only when both are positive. Nil means
// "no value data", which is not the same as zero value.
func StockValue(qty, avgCost float64) *float64 {
	if qty <= 0 || avgCost <= 0 {
		return nil
	}
	v := qty * avgCost
	return &v
}

// ValuationRow is one variant in the valuation report.
type ValuationRow struct {
	VariantID    uint             `json:"variant_id"`
	ProductName  string           `json:"product_name"`
	VariantLabel string           `json:"variant_label"`
	CategoryName string           `json:"category_name"`
	SellType     string           `json:"sell_type"`
	Qty          float64          `json:"qty"`
	AvgCost      float64          `json:"avg_cost"`
	Value        *decimal.Decimal `json:"value"`
}

type CategoryValuation struct {
	CategoryName string          `json:"category_name"`
	Rows         []ValuationRow  `json:"rows"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type ValuationReport struct {
	Categories []CategoryValuation `json:"categories"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
	Valued     int                 `json:"valued"`
	Unvalued   int                 `json:"unvalued"`
}

// BuildValuation groups rows by category and totals their values with
// exact decimals. Rows without value data count separately so the
// report can say "3 variants unvalued" instead of folding them into a
// zero.
func BuildValuation(rows []ValuationRow) ValuationReport {
	byCat := map[string]*CategoryValuation{}
	for _, row := range rows {
		name := row.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		g, ok := byCat[name]
		if !ok {
			g = &CategoryValuation{CategoryName: name}
			byCat[name] = g
		}
		g.Rows = append(g.Rows, row)
	}

	report := ValuationReport{Categories: make([]CategoryValuation, 0, len(byCat))}
	for _, g := range byCat {
		for _, row := range g.Rows {
			if row.Value == nil {
				report.Unvalued++
				continue
			}
			report.Valued++
			g.Subtotal = g.Subtotal.Add(*row.Value)
		}
		report.GrandTotal = report.GrandTotal.Add(g.Subtotal)
		report.Categories = append(report.Categories, *g)
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		return report.Categories[i].CategoryName < report.Categories[j].CategoryName
	})
	return report
}
