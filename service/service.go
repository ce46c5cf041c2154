package service

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ===== DTOs =====

type InventoryRow struct {
	VariantID    uint      `json:"variant_id"`
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	VariantLabel string    `json:"variant_label"`
	CategoryName string    `json:"category_name"`
	SellType     string    `json:"sell_type"`
	QtyGrams     float64   `json:"qty_grams"`
	QtyUnits     float64   `json:"qty_units"`
	AvgCost      float64   `json:"avg_cost"`
	ReorderLevel float64   `json:"reorder_level"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ===== Overview filter =====

type InventoryFilter struct {
	Query      string // matches product name / variant label / category
	CategoryID *uint
	SellType   string
	Page       int    // 1-based
	PageSize   int    // default 50
	SortBy     string // "product","-product","qty","-qty","updated","-updated"
}

// ===== Service =====

type Service interface {
	InventoryOverview(ctx context.Context, f InventoryFilter) ([]InventoryRow, int64, error)
}

type service struct{ db *gorm.DB }

func NewService(db *gorm.DB) Service { return &service{db: db} }

// ===== Implementation =====

func (s *service) InventoryOverview(ctx context.Context, f InventoryFilter) ([]InventoryRow, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 || f.PageSize > 500 {
		f.PageSize = 50
	}

	q := s.db.WithContext(ctx).
		Table("inventory_levels").
		Select(`
			inventory_levels.variant_id,
			p.id AS product_id,
			p.name AS product_name,
			pv.label AS variant_label,
			c.name AS category_name,
			pv.sell_type,
			inventory_levels.qty_grams,
			inventory_levels.qty_units,
			inventory_levels.avg_cost,
			pv.reorder_level,
			inventory_levels.updated_at
		`).
		// inner joins, the FKs are required
		Joins("INNER JOIN product_variants pv ON pv.id = inventory_levels.variant_id").
		Joins("INNER JOIN products p ON p.id = pv.product_id").
		Joins("INNER JOIN categories c ON c.id = p.category_id")

	// Filters
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(`p.name ILIKE ? OR pv.label ILIKE ? OR c.name ILIKE ?`, like, like, like)
	}
	if f.CategoryID != nil {
		q = q.Where("p.category_id = ?", *f.CategoryID)
	}
	if f.SellType != "" {
		q = q.Where("pv.sell_type = ?", f.SellType)
	}

	// Count
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	qtyExpr := "CASE WHEN pv.sell_type = 'weight' THEN inventory_levels.qty_grams ELSE inventory_levels.qty_units END"
	switch f.SortBy {
	case "product":
		q = q.Order("p.name ASC")
	case "-product":
		q = q.Order("p.name DESC")
	case "qty":
		q = q.Order(qtyExpr + " ASC")
	case "-qty":
		q = q.Order(qtyExpr + " DESC")
	case "updated":
		q = q.Order("inventory_levels.updated_at ASC")
	case "-updated":
		q = q.Order("inventory_levels.updated_at DESC")
	default:
		q = q.Order("inventory_levels.variant_id ASC")
	}

	// Pagination
	offset := (f.Page - 1) * f.PageSize
	var rows []InventoryRow
	if err := q.Offset(offset).Limit(f.PageSize).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
