package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/service"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/*
REPORT ROUTES:

GET /api/admin/reports/sales/daily        ?date=YYYY-MM-DD
GET /api/admin/reports/sales              ?date_from&date_to
GET /api/admin/reports/inventory/valuation
GET /api/admin/reports/expenses           ?date_from&date_to&category

Common query params:
- date_from=YYYY-MM-DD
- date_to=YYYY-MM-DD
- page=1, page_size=50
- sort=... (signed keys, "-total" means DESC)
*/

// ================= Common helpers =================

func getIntQ(c *gin.Context, key string, def int) int {
	v, _ := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if v <= 0 {
		return def
	}
	return v
}

func getUintQPtr(c *gin.Context, key string) *uint {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			u := uint(n)
			return &u
		}
	}
	return nil
}

func getDatePtr(c *gin.Context, key string) *time.Time {
	if s := strings.TrimSpace(c.Query(key)); s != "" {
		// format: 2006-01-02
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
	}
	return nil
}

func applyPagingSort(q *gorm.DB, page, size int, sortBy string, allowed map[string]string, defaultOrder string) *gorm.DB {
	applied := false
	if strings.HasPrefix(sortBy, "-") {
		if col, ok := allowed[sortBy[1:]]; ok {
			q = q.Order(col + " DESC")
			applied = true
		}
	} else if col, ok := allowed[sortBy]; ok {
		q = q.Order(col + " ASC")
		applied = true
	}
	if !applied {
		q = q.Order(defaultOrder)
	}

	offset := (page - 1) * size
	return q.Offset(offset).Limit(size)
}

// confirmed orders with items, placed inside [from, to)
func confirmedOrdersBetween(from, to time.Time) ([]models.Order, []models.InventoryMovement, error) {
	var orders []models.Order
	if err := config.DB.Preload("Items").
		Where("status = ?", models.OrderConfirmed).
		Where("placed_at >= ? AND placed_at < ?", from, to).
		Order("placed_at ASC, id ASC").
		Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	if len(orders) == 0 {
		return orders, nil, nil
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	var movements []models.InventoryMovement
	if err := config.DB.Where("order_id IN ?", ids).Find(&movements).Error; err != nil {
		return nil, nil, err
	}
	return orders, movements, nil
}

// ================= Sales: one day =================

func ReportSalesDaily(c *gin.Context) {
	date := getDatePtr(c, "date")
	if date == nil {
		now := time.Now().UTC()
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		date = &d
	}
	from := date.Truncate(24 * time.Hour)
	to := from.Add(24 * time.Hour)

	orders, movements, err := confirmedOrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build report", "error": utils.ErrMessage(err)})
		return
	}

	report := service.BuildSalesReport(orders, movements)
	c.JSON(http.StatusOK, gin.H{
		"date":    from.Format("2006-01-02"),
		"summary": report.Summary,
		"data":    report.Orders,
	})
}

// ================= Sales: date range with daily rollup =================

func ReportSales(c *gin.Context) {
	dateTo := getDatePtr(c, "date_to")
	if dateTo == nil {
		now := time.Now().UTC()
		d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		dateTo = &d
	}
	dateFrom := getDatePtr(c, "date_from")
	if dateFrom == nil {
		d := dateTo.AddDate(0, 0, -6)
		dateFrom = &d
	}
	from := dateFrom.Truncate(24 * time.Hour)
	to := dateTo.Truncate(24 * time.Hour).Add(24 * time.Hour)
	if !from.Before(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must not be after date_to"})
		return
	}

	orders, movements, err := confirmedOrdersBetween(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build report", "error": utils.ErrMessage(err)})
		return
	}

	report := service.BuildSalesReport(orders, movements)
	c.JSON(http.StatusOK, gin.H{
		"date_from": from.Format("2006-01-02"),
		"date_to":   dateTo.Format("2006-01-02"),
		"summary":   report.Summary,
		"days":      service.BuildDailyRollup(report.Orders),
		"data":      report.Orders,
	})
}

// ================= Inventory valuation =================

func ReportInventoryValuation(c *gin.Context) {
	rows, _, err := service.NewService(config.DB).InventoryOverview(c.Request.Context(), service.InventoryFilter{Page: 1, PageSize: 500})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build report", "error": utils.ErrMessage(err)})
		return
	}

	valRows := make([]service.ValuationRow, 0, len(rows))
	for _, row := range rows {
		qty := service.EffectiveQty(models.SellType(row.SellType), row.QtyGrams, row.QtyUnits)
		vr := service.ValuationRow{
			VariantID:    row.VariantID,
			ProductName:  row.ProductName,
			VariantLabel: row.VariantLabel,
			CategoryName: row.CategoryName,
			SellType:     row.SellType,
			Qty:          qty,
			AvgCost:      row.AvgCost,
		}
		if v := service.StockValue(qty, row.AvgCost); v != nil {
			d := decimal.NewFromFloat(*v)
			vr.Value = &d
		}
		valRows = append(valRows, vr)
	}

	report := service.BuildValuation(valRows)
	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"grand_total": report.GrandTotal,
			"valued":      report.Valued,
			"unvalued":    report.Unvalued,
		},
		"data": report.Categories,
	})
}

// ================= Expenses grouped by category =================

type ExpenseCategoryRow struct {
	Category string  `json:"category"`
	Cnt      int64   `json:"cnt"`
	Total    float64 `json:"total"`
}

type ExpenseReportSummary struct {
	CountTx    int64   `json:"count_tx"`
	GrandTotal float64 `json:"grand_total"`
}

func ReportExpenses(c *gin.Context) {
	db := config.DB

	page := getIntQ(c, "page", 1)
	size := getIntQ(c, "page_size", 50)
	sortBy := c.DefaultQuery("sort", "-total")
	dateFrom := getDatePtr(c, "date_from")
	dateTo := getDatePtr(c, "date_to")
	category := strings.TrimSpace(c.Query("category"))

	q := db.Table("expenses e").
		Select(`
			e.category,
			COUNT(e.id) AS cnt,
			COALESCE(SUM(e.amount),0) AS total
		`).
		Group("e.category")

	if dateFrom != nil {
		q = q.Where("e.incurred_on >= ?", dateFrom.Truncate(24*time.Hour))
	}
	if dateTo != nil {
		q = q.Where("e.incurred_on < ?", dateTo.Truncate(24*time.Hour).Add(24*time.Hour))
	}
	if category != "" {
		q = q.Where("e.category = ?", category)
	}

	// summary through a subquery so LIMIT/OFFSET do not interfere
	var summary ExpenseReportSummary
	if err := db.Table("(?) as x", q.Session(&gorm.Session{})).
		Select("COALESCE(SUM(cnt),0) AS count_tx, COALESCE(SUM(total),0) AS grand_total").
		Scan(&summary).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	allowed := map[string]string{
		"category": "e.category",
		"total":    "total",
		"cnt":      "cnt",
	}
	q = applyPagingSort(q, page, size, sortBy, allowed, "total DESC")

	var rows []ExpenseCategoryRow
	if err := q.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    summary,
		"data":       rows,
		"pagination": gin.H{"page": page, "page_size": size},
	})
}
