package controllers

import (
	"net/http"
	"strconv"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
)

type ExpenseCreateInput struct {
	Label      string  `json:"label" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Category   string  `json:"category" binding:"required"`
	IncurredOn string  `json:"incurred_on" binding:"required"` // YYYY-MM-DD
	Note       string  `json:"note"`
}

func CreateExpense(c *gin.Context) {
	var in ExpenseCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incurred, err := time.Parse("2006-01-02", in.IncurredOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incurred_on must be YYYY-MM-DD"})
		return
	}

	adminID, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	expense := models.Expense{
		Label:       in.Label,
		Amount:      in.Amount,
		Category:    in.Category,
		IncurredOn:  incurred,
		Note:        in.Note,
		CreatedByID: adminID,
	}
	if err := config.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create expense", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense created", "data": expense})
}

func GetAllExpenses(c *gin.Context) {
	q := config.DB.Model(&models.Expense{}).Order("incurred_on DESC, id DESC")

	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if month := c.Query("month"); month != "" {
		// month=YYYY-MM
		if t, err := time.Parse("2006-01", month); err == nil {
			q = q.Where("incurred_on >= ? AND incurred_on < ?", t, t.AddDate(0, 1, 0))
		}
	}
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("incurred_on >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("incurred_on < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expenses", "error": utils.ErrMessage(err)})
		return
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expenses fetched", "total": total, "data": expenses})
}

type ExpenseUpdateInput struct {
	Label      *string  `json:"label,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Category   *string  `json:"category,omitempty"`
	IncurredOn *string  `json:"incurred_on,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func UpdateExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	var in ExpenseUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Label != nil {
		updates["label"] = *in.Label
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
			return
		}
		updates["amount"] = *in.Amount
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.IncurredOn != nil {
		t, err := time.Parse("2006-01-02", *in.IncurredOn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "incurred_on must be YYYY-MM-DD"})
			return
		}
		updates["incurred_on"] = t
	}
	if in.Note != nil {
		updates["note"] = *in.Note
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	updates["updated_at"] = time.Now()

	if err := config.DB.Model(&expense).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update expense", "error": utils.ErrMessage(err)})
		return
	}

	config.DB.First(&expense, id)
	c.JSON(http.StatusOK, gin.H{"message": "Expense updated", "data": expense})
}

func DeleteExpense(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	if err := config.DB.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
