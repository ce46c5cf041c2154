package controllers_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
)

func TestCreditCreateAndList(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	w := doJSON(t, r, "POST", "/api/admin/credits/", token, gin.H{
		"customer_name":  "Ana",
		"customer_phone": "0812-33",
		"amount":         150.0,
		"note":           "groceries tab",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	// a credit with no identity at all is refused
	w = doJSON(t, r, "POST", "/api/admin/credits/", token, gin.H{"amount": 50.0})
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "GET", "/api/admin/credits/", token, nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Data []struct {
			Amount  float64 `json:"amount"`
			Balance float64 `json:"balance"`
			Settled bool    `json:"settled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.InDelta(t, 150.0, resp.Data[0].Balance, 1e-6)
	assert.False(t, resp.Data[0].Settled)
}

func TestCreditGroupsEndpoint(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	rows := []models.Credit{
		{CustomerName: "Ana", CustomerPhone: "081233", Amount: 100, CreatedAt: time.Now().Add(-48 * time.Hour)},
		{CustomerName: "Ana", CustomerPhone: "0812-33", Amount: 50, CreatedAt: time.Now().Add(-24 * time.Hour)},
		{CustomerName: "Bo", Amount: 30, AmountPaid: 30, Status: models.CreditStatusPaid, IsPaid: true},
	}
	for i := range rows {
		require.NoError(t, config.DB.Create(&rows[i]).Error)
	}

	w := doJSON(t, r, "GET", "/api/admin/credits/groups", token, nil)
	require.Equal(t, 200, w.Code)

	var resp struct {
		Summary struct {
			Groups      int     `json:"groups"`
			Outstanding float64 `json:"outstanding"`
		} `json:"summary"`
		Data []struct {
			Key          string  `json:"key"`
			TotalBalance float64 `json:"total_balance"`
			Members      []struct {
				ID uint `json:"id"`
			} `json:"members"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// the settled group is hidden, the two phone spellings merge
	require.Equal(t, 1, resp.Summary.Groups)
	assert.InDelta(t, 150.0, resp.Summary.Outstanding, 1e-6)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "p:081233", resp.Data[0].Key)
	require.Len(t, resp.Data[0].Members, 2)

	// newest-created member listed first
	assert.Equal(t, rows[1].ID, resp.Data[0].Members[0].ID)
}

func TestCreditUpdateGuards(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	open := models.Credit{CustomerName: "Ana", Amount: 100, AmountPaid: 40}
	require.NoError(t, config.DB.Create(&open).Error)
	settled := models.Credit{CustomerName: "Bo", Amount: 50, AmountPaid: 50, Status: models.CreditStatusPaid, IsPaid: true}
	require.NoError(t, config.DB.Create(&settled).Error)

	// cannot shrink below what was already paid
	w := doJSON(t, r, "PUT", "/api/admin/credits/1", token, gin.H{"amount": 30.0})
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "PUT", "/api/admin/credits/1", token, gin.H{"amount": 120.0})
	require.Equal(t, 200, w.Code)
	var cr models.Credit
	require.NoError(t, config.DB.First(&cr, open.ID).Error)
	assert.InDelta(t, 120.0, cr.Amount, 1e-6)

	// settled rows are frozen
	w = doJSON(t, r, "PUT", "/api/admin/credits/2", token, gin.H{"amount": 80.0})
	assert.Equal(t, 400, w.Code)

	w = doJSON(t, r, "PUT", "/api/admin/credits/999", token, gin.H{"amount": 80.0})
	assert.Equal(t, 404, w.Code)
}

func TestCustomerDeleteRefusedWhileOwing(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	customer := models.Customer{Name: "Ana", Phone: "081233"}
	require.NoError(t, config.DB.Create(&customer).Error)
	credit := models.Credit{CustomerID: &customer.ID, CustomerName: "Ana", Amount: 80}
	require.NoError(t, config.DB.Create(&credit).Error)

	w := doJSON(t, r, "DELETE", "/api/admin/customers/1", token, nil)
	assert.Equal(t, 400, w.Code)

	// settle, then the delete goes through
	require.NoError(t, config.DB.Model(&credit).Updates(map[string]any{
		"amount_paid": 80.0, "status": models.CreditStatusPaid, "is_paid": true,
	}).Error)

	w = doJSON(t, r, "DELETE", "/api/admin/customers/1", token, nil)
	assert.Equal(t, 200, w.Code)
}
