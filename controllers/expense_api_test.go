package controllers_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
)

func seedExpense(t *testing.T, label, category string, amount float64, incurredOn time.Time) models.Expense {
	t.Helper()
	e := models.Expense{Label: label, Amount: amount, Category: category, IncurredOn: incurredOn}
	require.NoError(t, config.DB.Create(&e).Error)
	return e
}

func TestExpenseCRUDFlow(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	w := doJSON(t, r, "POST", "/api/admin/expenses/", token, gin.H{
		"label": "Fuel", "amount": 50, "category": "Transport", "incurred_on": "08/05/2025",
	})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM-DD")

	w = doJSON(t, r, "POST", "/api/admin/expenses/", token, gin.H{
		"label": "Fuel", "amount": -5, "category": "Transport", "incurred_on": "2025-08-05",
	})
	assert.Equal(t, 400, w.Code) // gt=0 binding

	w = doJSON(t, r, "POST", "/api/admin/expenses/", token, gin.H{
		"label": "Fuel", "amount": 50, "category": "Transport", "incurred_on": "2025-08-05",
	})
	require.Equal(t, 200, w.Code, w.Body.String())
	var created struct {
		Data models.Expense `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)
	assert.NotZero(t, created.Data.CreatedByID) // stamped from the token

	seedExpense(t, "Electricity", "Utilities", 30, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC))

	w = doJSON(t, r, "GET", "/api/admin/expenses/?month=2025-08", token, nil)
	require.Equal(t, 200, w.Code)
	var list struct {
		Total float64          `json:"total"`
		Data  []models.Expense `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Fuel", list.Data[0].Label)
	assert.InDelta(t, 50.0, list.Total, 1e-6)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/expenses/%d", created.Data.ID), token, gin.H{"amount": -1})
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/admin/expenses/%d", created.Data.ID), token, gin.H{
		"label": "Diesel", "amount": 65,
	})
	require.Equal(t, 200, w.Code)
	var updated struct {
		Data models.Expense `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Diesel", updated.Data.Label)
	assert.InDelta(t, 65.0, updated.Data.Amount, 1e-6)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/admin/expenses/%d", created.Data.ID), token, nil)
	require.Equal(t, 200, w.Code)
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/admin/expenses/%d", created.Data.ID), token, nil)
	assert.Equal(t, 404, w.Code)
}

func TestExpenseReportEndpoint(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	aug := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	seedExpense(t, "Fuel", "Transport", 60, aug)
	seedExpense(t, "Parking", "Transport", 40, aug.AddDate(0, 0, 2))
	seedExpense(t, "Electricity", "Utilities", 30, aug.AddDate(0, 0, 4))

	w := doJSON(t, r, "GET", "/api/admin/reports/expenses", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Summary struct {
			CountTx    int64   `json:"count_tx"`
			GrandTotal float64 `json:"grand_total"`
		} `json:"summary"`
		Data []struct {
			Category string  `json:"category"`
			Cnt      int64   `json:"cnt"`
			Total    float64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 3, resp.Summary.CountTx)
	assert.InDelta(t, 130.0, resp.Summary.GrandTotal, 1e-6)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Transport", resp.Data[0].Category) // biggest bucket first
	assert.EqualValues(t, 2, resp.Data[0].Cnt)
	assert.InDelta(t, 100.0, resp.Data[0].Total, 1e-6)

	w = doJSON(t, r, "GET", "/api/admin/reports/expenses?category=Utilities", token, nil)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Summary.CountTx)
	assert.InDelta(t, 30.0, resp.Summary.GrandTotal, 1e-6)
}

func TestDashboardStats(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	variant := seedVariant(t, models.SellByUnit, 10)
	setLevel(t, variant.ID, 0, 3, 0) // below the reorder level

	now := time.Now().UTC()
	seedOrder(t, variant.ID, models.OrderConfirmed, now, 120)
	seedOrder(t, variant.ID, models.OrderPending, now, 80)
	seedOrder(t, variant.ID, models.OrderConfirmed, now.AddDate(0, 0, -3), 999) // not today

	require.NoError(t, config.DB.Create(&models.Credit{
		CustomerName: "Ana", CustomerPhone: "081233", Amount: 100, AmountPaid: 40, Status: models.CreditStatusPartial,
	}).Error)
	require.NoError(t, config.DB.Create(&models.Credit{
		CustomerName: "Bo", Amount: 30, AmountPaid: 30, Status: models.CreditStatusPaid, IsPaid: true,
	}).Error)

	seedExpense(t, "Rent", "Facilities", 200, now)

	w := doJSON(t, r, "GET", "/api/admin/dashboard", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			TodayRevenue      float64 `json:"today_revenue"`
			TodayOrders       int64   `json:"today_orders"`
			PendingOrders     int64   `json:"pending_orders"`
			OpenCredits       int     `json:"open_credits"`
			CreditOutstanding float64 `json:"credit_outstanding"`
			LowStock          int     `json:"low_stock"`
			MonthExpenses     float64 `json:"month_expenses"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 120.0, resp.Data.TodayRevenue, 1e-6)
	assert.EqualValues(t, 1, resp.Data.TodayOrders)
	assert.EqualValues(t, 1, resp.Data.PendingOrders)
	assert.Equal(t, 1, resp.Data.OpenCredits)
	assert.InDelta(t, 60.0, resp.Data.CreditOutstanding, 1e-6)
	assert.Equal(t, 1, resp.Data.LowStock)
	assert.InDelta(t, 200.0, resp.Data.MonthExpenses, 1e-6)
}
