package main

import (
	"log"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/routes"
	"go-shop-backoffice/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	config.LoadConfig()
	config.ConnectDB()

	config.DB.AutoMigrate(
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
	)

	config.SeedAdmin()
	config.SeedCategories()

	// override secret from ENV
	if config.App.JWTSecret != "" {
		utils.AdminSecret = []byte(config.App.JWTSecret)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // admin SPA
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", config.App.UploadDir)

	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "🚀 Back-office API is running"})
	})

	_ = r.Run(":" + config.App.Port)
}
