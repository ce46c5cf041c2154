package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/routes"
	"go-shop-backoffice/utils"
)

// setupTest wires the handlers to a throwaway sqlite file. The two
// remote procedures do not exist there, which is exactly what the
// confirm/movement tests lean on.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Credit{},
		&models.CreditPayment{},
		&models.Category{},
		&models.Subcategory{},
		&models.SubSubcategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.VariantImage{},
		&models.InventoryLevel{},
		&models.InventoryMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.Expense{},
	))

	config.DB = db
	config.App = &config.Config{
		Port:      "8080",
		JWTSecret: "test-secret",
		UploadDir: filepath.Join(dir, "uploads"),
		BaseURL:   "http://localhost:8080",
	}
	utils.AdminSecret = []byte(config.App.JWTSecret)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/api/admin/register", "", gin.H{
		"username":  "admin1",
		"full_name": "Test Admin",
		"password":  "secret123",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", "/api/admin/login", "", gin.H{
		"username": "admin1",
		"password": "secret123",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// seedVariant creates the category/product/variant chain plus the
// stock row most fixtures need.
func seedVariant(t *testing.T, sellType models.SellType, reorder float64) models.ProductVariant {
	t.Helper()

	category := models.Category{Name: "Groceries"}
	require.NoError(t, config.DB.Where("name = ?", category.Name).FirstOrCreate(&category).Error)

	product := models.Product{Name: "Rice", CategoryID: category.ID, IsActive: true}
	require.NoError(t, config.DB.Create(&product).Error)

	variant := models.ProductVariant{
		ProductID:    product.ID,
		Label:        "Premium",
		SellType:     sellType,
		Price:        12,
		ReorderLevel: reorder,
		IsActive:     true,
	}
	require.NoError(t, config.DB.Create(&variant).Error)
	require.NoError(t, config.DB.Create(&models.InventoryLevel{VariantID: variant.ID}).Error)
	return variant
}
