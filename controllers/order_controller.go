// controllers/order_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	errNotFound         = errors.New("NOT_FOUND")
	errBadStatus        = errors.New("BAD_STATUS")
	errAlreadyProcessed = errors.New("ALREADY_PROCESSED")
)

// ===== storefront orders, newest placed first
func OrderList(c *gin.Context) {
	q := config.DB.Model(&models.Order{}).Preload("Items").Preload("Customer").Order("placed_at DESC, id DESC")

	if st := c.Query("status"); st != "" {
		q = q.Where("status = ?", st)
	}
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("placed_at >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("placed_at < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": utils.ErrMessage(err)})
		return
	}

	page := getIntQ(c, "page", 1)
	pageSize := getIntQ(c, "page_size", 50)
	if pageSize > 200 {
		pageSize = 200
	}

	var orders []models.Order
	if err := q.Offset((page - 1) * pageSize).Limit(pageSize).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders fetched",
		"data":    orders,
		"pagination": gin.H{
			"page":      page,
			"page_size": pageSize,
			"total":     total,
		},
	})
}

func OrderDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").Preload("Customer").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order fetched", "data": order})
}

// ===== confirm: the remote procedure deducts stock and writes the
// cost-bearing sale movements; any error it raises is shown as-is
func OrderConfirm(c *gin.Context) {
	id := c.Param("id")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var o models.Order
		if err := tx.First(&o, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if o.Status != models.OrderPending {
			return errBadStatus
		}

		if err := tx.Exec("SELECT confirm_order(?)", o.ID).Error; err != nil {
			return err
		}

		// idempotent: flip to confirmed only while still pending
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", o.ID, models.OrderPending).
			Updates(map[string]any{
				"status":     models.OrderConfirmed,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}
		return nil
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Order confirmed"})
	case errors.Is(err, errNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	case errors.Is(err, errBadStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only pending orders can be confirmed"})
	case errors.Is(err, errAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"message": "Order was already processed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to confirm order", "error": utils.ErrMessage(err)})
	}
}
