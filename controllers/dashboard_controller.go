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

// ===== the numbers on the landing screen
func DashboardStats(c *gin.Context) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var todayRevenue float64
	var todayOrders int64
	if err := config.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderConfirmed).
		Where("placed_at >= ? AND placed_at < ?", today, today.Add(24*time.Hour)).
		Count(&todayOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build dashboard", "error": utils.ErrMessage(err)})
		return
	}
	config.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderConfirmed).
		Where("placed_at >= ? AND placed_at < ?", today, today.Add(24*time.Hour)).
		Select("COALESCE(SUM(total),0)").Scan(&todayRevenue)

	var pendingOrders int64
	config.DB.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&pendingOrders)

	// outstanding mixes stored signals, so walk the rows
	var credits []models.Credit
	if err := config.DB.Find(&credits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build dashboard", "error": utils.ErrMessage(err)})
		return
	}
	var creditOutstanding float64
	var openCredits int
	for _, cr := range credits {
		if !service.IsSettled(cr) {
			openCredits++
			creditOutstanding += service.Balance(cr)
		}
	}

	rows, _, err := service.NewService(config.DB).InventoryOverview(c.Request.Context(), service.InventoryFilter{Page: 1, PageSize: 500})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build dashboard", "error": utils.ErrMessage(err)})
		return
	}
	var lowStock int
	for _, row := range rows {
		qty := service.EffectiveQty(models.SellType(row.SellType), row.QtyGrams, row.QtyUnits)
		if service.IsLowStock(qty, row.ReorderLevel) {
			lowStock++
		}
	}

	var monthExpenses float64
	config.DB.Model(&models.Expense{}).
		Where("incurred_on >= ? AND incurred_on < ?", monthStart, monthStart.AddDate(0, 1, 0)).
		Select("COALESCE(SUM(amount),0)").Scan(&monthExpenses)

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard fetched",
		"data": gin.H{
			"today_revenue":      todayRevenue,
			"today_orders":       todayOrders,
			"pending_orders":     pendingOrders,
			"open_credits":       openCredits,
			"credit_outstanding": creditOutstanding,
			"low_stock":          lowStock,
			"month_expenses":     monthExpenses,
		},
	})
}
