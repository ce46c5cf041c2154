// controllers/inventory_controller.go
package controllers

import (
	"net/http"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/service"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
)

// inventoryView is one overview row with the derived flags attached.
type inventoryView struct {
	service.InventoryRow
	EffectiveQty float64  `json:"effective_qty"`
	LowStock     bool     `json:"low_stock"`
	StockValue   *float64 `json:"stock_value"`
}

func toInventoryViews(rows []service.InventoryRow) []inventoryView {
	views := make([]inventoryView, 0, len(rows))
	for _, row := range rows {
		qty := service.EffectiveQty(models.SellType(row.SellType), row.QtyGrams, row.QtyUnits)
		views = append(views, inventoryView{
			InventoryRow: row,
			EffectiveQty: qty,
			LowStock:     service.IsLowStock(qty, row.ReorderLevel),
			StockValue:   service.StockValue(qty, row.AvgCost),
		})
	}
	return views
}

func inventoryFilterFromQuery(c *gin.Context) service.InventoryFilter {
	f := service.InventoryFilter{
		Query:    c.Query("q"),
		SellType: c.Query("sell_type"),
		Page:     getIntQ(c, "page", 1),
		PageSize: getIntQ(c, "page_size", 50),
		SortBy:   c.Query("sort_by"),
	}
	f.CategoryID = getUintQPtr(c, "category_id")
	return f
}

// ===== overview: levels joined with variant/product info
func InventoryList(c *gin.Context) {
	f := inventoryFilterFromQuery(c)

	rows, total, err := service.NewService(config.DB).InventoryOverview(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch inventory", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory fetched",
		"data":    toInventoryViews(rows),
		"pagination": gin.H{
			"page":      f.Page,
			"page_size": f.PageSize,
			"total":     total,
		},
	})
}

// ===== only rows at or below their reorder level
func InventoryAlerts(c *gin.Context) {
	f := service.InventoryFilter{Page: 1, PageSize: 500}

	rows, _, err := service.NewService(config.DB).InventoryOverview(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch inventory", "error": utils.ErrMessage(err)})
		return
	}

	var alerts []inventoryView
	for _, v := range toInventoryViews(rows) {
		if v.LowStock {
			alerts = append(alerts, v)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Low stock alerts", "total": len(alerts), "data": alerts})
}

// ===== movement log, newest first
func MovementList(c *gin.Context) {
	q := config.DB.Model(&models.InventoryMovement{}).Preload("Variant").Order("created_at DESC, id DESC")

	if vid := c.Query("variant_id"); vid != "" {
		q = q.Where("variant_id = ?", vid)
	}
	if mt := c.Query("type"); mt != "" {
		q = q.Where("type = ?", mt)
	}
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("created_at >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("created_at < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch movements", "error": utils.ErrMessage(err)})
		return
	}

	page := getIntQ(c, "page", 1)
	pageSize := getIntQ(c, "page_size", 50)
	if pageSize > 500 {
		pageSize = 500
	}

	var rows []models.InventoryMovement
	if err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch movements", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Movements fetched",
		"data":    rows,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

type MovementCreateInput struct {
	VariantID    uint    `json:"variant_id" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	QtyGrams     float64 `json:"qty_grams"`
	QtyUnits     float64 `json:"qty_units"`
	CostTotal    float64 `json:"cost_total"`
	SupplierName string  `json:"supplier_name"`
	Note         string  `json:"note"`
}

// ===== manual stock change; the remote procedure does the actual
// write (level update + movement row, atomically)
func MovementCreate(c *gin.Context) {
	var in MovementCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mt := models.MovementType(in.Type)
	if !mt.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be restock, sale, return, or adjustment"})
		return
	}

	var variant models.ProductVariant
	if err := config.DB.First(&variant, in.VariantID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Variant not found"})
		return
	}

	// the variant's sell type decides which quantity column moves
	if variant.SellType == models.SellByWeight {
		if in.QtyGrams == 0 || in.QtyUnits != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Weight variants move grams"})
			return
		}
	} else {
		if in.QtyUnits == 0 || in.QtyGrams != 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unit variants move units"})
			return
		}
	}
	if mt == models.MovementRestock && in.CostTotal <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restock needs a positive cost"})
		return
	}

	if err := config.DB.Exec(
		"SELECT apply_inventory_movement(?, ?, ?, ?, ?, ?, ?)",
		in.VariantID, string(mt), in.QtyGrams, in.QtyUnits, in.CostTotal, in.SupplierName, in.Note,
	).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Movement rejected", "error": utils.ErrMessage(err)})
		return
	}

	var level models.InventoryLevel
	config.DB.Where("variant_id = ?", in.VariantID).First(&level)

	c.JSON(http.StatusOK, gin.H{"message": "Movement applied", "data": level})
}
