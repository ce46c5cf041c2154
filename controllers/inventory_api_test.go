package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
)

func setLevel(t *testing.T, variantID uint, qtyGrams, qtyUnits, avgCost float64) {
	t.Helper()
	err := config.DB.Model(&models.InventoryLevel{}).
		Where("variant_id = ?", variantID).
		Updates(map[string]any{"qty_grams": qtyGrams, "qty_units": qtyUnits, "avg_cost": avgCost}).Error
	require.NoError(t, err)
}

func TestMovementCreateValidation(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)
	weight := seedVariant(t, models.SellByWeight, 0)
	unit := seedVariant(t, models.SellByUnit, 0)

	cases := []struct {
		name string
		body gin.H
		want string
	}{
		{"unknown type", gin.H{"variant_id": unit.ID, "type": "melt", "qty_units": 1}, "restock, sale, return"},
		{"missing variant", gin.H{"variant_id": 9999, "type": "adjustment", "qty_units": 1}, "Variant not found"},
		{"weight variant in units", gin.H{"variant_id": weight.ID, "type": "adjustment", "qty_units": 3}, "Weight variants move grams"},
		{"unit variant in grams", gin.H{"variant_id": unit.ID, "type": "adjustment", "qty_grams": 250}, "Unit variants move units"},
		{"restock without cost", gin.H{"variant_id": unit.ID, "type": "restock", "qty_units": 10}, "Restock needs a positive cost"},
	}
	for _, tc := range cases {
		w := doJSON(t, r, "POST", "/api/admin/inventory/movements", token, tc.body)
		assert.Equal(t, 400, w.Code, tc.name)
		assert.Contains(t, w.Body.String(), tc.want, tc.name)
	}
}

func TestMovementCreateDelegatesToProcedure(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)
	unit := seedVariant(t, models.SellByUnit, 0)

	w := doJSON(t, r, "POST", "/api/admin/inventory/movements", token, gin.H{
		"variant_id":    unit.ID,
		"type":          "restock",
		"qty_units":     10,
		"cost_total":    80,
		"supplier_name": "CV Sumber",
	})

	// the handler never writes the level or the movement row itself;
	// without the procedure nothing must change
	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "Movement rejected")
	assert.Contains(t, w.Body.String(), "apply_inventory_movement")

	var cnt int64
	require.NoError(t, config.DB.Model(&models.InventoryMovement{}).Count(&cnt).Error)
	assert.EqualValues(t, 0, cnt)

	var level models.InventoryLevel
	require.NoError(t, config.DB.Where("variant_id = ?", unit.ID).First(&level).Error)
	assert.Zero(t, level.QtyUnits)
}

func TestInventoryListAndAlerts(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	low := seedVariant(t, models.SellByWeight, 100)
	setLevel(t, low.ID, 50, 0, 2) // 50g left against a 100g reorder level
	fine := seedVariant(t, models.SellByUnit, 0)
	setLevel(t, fine.ID, 0, 5, 0)

	w := doJSON(t, r, "GET", "/api/admin/inventory/", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var list struct {
		Data []struct {
			VariantID    uint     `json:"variant_id"`
			EffectiveQty float64  `json:"effective_qty"`
			LowStock     bool     `json:"low_stock"`
			StockValue   *float64 `json:"stock_value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 2)

	byID := map[uint]int{}
	for i, row := range list.Data {
		byID[row.VariantID] = i
	}
	lowRow := list.Data[byID[low.ID]]
	assert.True(t, lowRow.LowStock)
	assert.InDelta(t, 50.0, lowRow.EffectiveQty, 1e-6)
	require.NotNil(t, lowRow.StockValue)
	assert.InDelta(t, 100.0, *lowRow.StockValue, 1e-6)

	fineRow := list.Data[byID[fine.ID]]
	assert.False(t, fineRow.LowStock)
	assert.Nil(t, fineRow.StockValue) // no avg cost yet

	w = doJSON(t, r, "GET", "/api/admin/inventory/alerts", token, nil)
	require.Equal(t, 200, w.Code)
	var alerts struct {
		Total int `json:"total"`
		Data  []struct {
			VariantID uint `json:"variant_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Equal(t, 1, alerts.Total)
	assert.Equal(t, low.ID, alerts.Data[0].VariantID)
}

func TestValuationReportEndpoint(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)

	valued := seedVariant(t, models.SellByWeight, 0)
	setLevel(t, valued.ID, 100, 0, 1.5)
	unvalued := seedVariant(t, models.SellByUnit, 0)
	setLevel(t, unvalued.ID, 0, 5, 0)

	w := doJSON(t, r, "GET", "/api/admin/reports/inventory/valuation", token, nil)
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Summary struct {
			GrandTotal string `json:"grand_total"`
			Valued     int    `json:"valued"`
			Unvalued   int    `json:"unvalued"`
		} `json:"summary"`
		Data []struct {
			CategoryName string `json:"category_name"`
			Subtotal     string `json:"subtotal"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "150", resp.Summary.GrandTotal)
	assert.Equal(t, 1, resp.Summary.Valued)
	assert.Equal(t, 1, resp.Summary.Unvalued)
	require.Len(t, resp.Data, 1) // both variants sit under Groceries
	assert.Equal(t, "Groceries", resp.Data[0].CategoryName)
	assert.Equal(t, "150", resp.Data[0].Subtotal)
}

func postUpload(t *testing.T, r *gin.Engine, token, variantID, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("variant_id", variantID))
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-a-real-image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/admin/uploads/variant-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadVariantImage(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t, r)
	variant := seedVariant(t, models.SellByUnit, 0)

	w := postUpload(t, r, token, fmt.Sprint(variant.ID), "photo.jpg")
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			URL        string `json:"url"`
			ObjectName string `json:"object_name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.URL, config.App.BaseURL+"/uploads/"))
	assert.True(t, strings.HasSuffix(resp.Data.ObjectName, ".jpg"))

	saved := filepath.Join(config.App.UploadDir, resp.Data.ObjectName)
	_, err := os.Stat(saved)
	require.NoError(t, err)

	// only image extensions pass
	w = postUpload(t, r, token, fmt.Sprint(variant.ID), "notes.txt")
	assert.Equal(t, 400, w.Code)

	w = postUpload(t, r, token, "9999", "photo.jpg")
	assert.Equal(t, 404, w.Code)

	// listing and deleting cleans both the row and the file
	w = doJSON(t, r, "GET", fmt.Sprintf("/api/admin/variants/%d/images", variant.ID), token, nil)
	require.Equal(t, 200, w.Code)
	var images struct {
		Data []struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &images))
	require.Len(t, images.Data, 1)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/admin/images/%d", images.Data[0].ID), token, nil)
	require.Equal(t, 200, w.Code)
	_, err = os.Stat(saved)
	assert.True(t, os.IsNotExist(err))
}
