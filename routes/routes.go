package routes

import (
	"go-shop-backoffice/controllers"
	"go-shop-backoffice/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{

		// ================= ADMIN APP =================
		admin := api.Group("/admin")
		{
			admin.POST("/register", controllers.AdminRegister)
			admin.POST("/login", controllers.AdminLogin)

			// everything below needs an admin token
			adminAuth := admin.Group("/", middlewares.AdminAuth())

			// profile
			adminAuth.GET("/profile", controllers.GetAdminProfile)
			adminAuth.PUT("/profile", controllers.AdminUpdateProfile)
			adminAuth.PUT("/profile/password", controllers.AdminChangePassword)

			adminAuth.GET("/dashboard", controllers.DashboardStats)

			customer := adminAuth.Group("/customers")
			{
				customer.GET("/", controllers.GetAllCustomers)
				customer.GET("/:id", controllers.GetCustomerByID)
				customer.POST("/", controllers.CreateCustomer)
				customer.PUT("/:id", controllers.UpdateCustomer)
				customer.DELETE("/:id", controllers.DeleteCustomer)
			}

			credit := adminAuth.Group("/credits")
			{
				credit.GET("/", controllers.CreditList)
				credit.GET("/groups", controllers.CreditGroups)
				credit.POST("/", controllers.CreditCreate)
				credit.PUT("/:id", controllers.CreditUpdate)
				credit.GET("/:id/payments", controllers.CreditPaymentHistory)
				credit.POST("/payments", controllers.CreditGroupPay)
			}

			category := adminAuth.Group("/categories")
			{
				category.GET("/", controllers.GetAllCategories)
				category.POST("/", controllers.CreateCategory)
				category.PUT("/:id", controllers.UpdateCategory)
				category.DELETE("/:id", controllers.DeleteCategory)
			}

			subcategory := adminAuth.Group("/subcategories")
			{
				subcategory.POST("/", controllers.CreateSubcategory)
				subcategory.PUT("/:id", controllers.UpdateSubcategory)
				subcategory.DELETE("/:id", controllers.DeleteSubcategory)
			}

			subsub := adminAuth.Group("/subsubcategories")
			{
				subsub.POST("/", controllers.CreateSubSubcategory)
				subsub.PUT("/:id", controllers.UpdateSubSubcategory)
				subsub.DELETE("/:id", controllers.DeleteSubSubcategory)
			}

			product := adminAuth.Group("/products")
			{
				product.GET("/", controllers.GetAllProducts)
				product.GET("/:id", controllers.GetProductByID)
				product.POST("/", controllers.CreateProduct)
				product.PUT("/:id", controllers.UpdateProduct)
				product.DELETE("/:id", controllers.DeleteProduct)
				product.GET("/:id/variants", controllers.GetVariantsByProduct)
				product.POST("/:id/variants", controllers.CreateVariant)
			}

			variant := adminAuth.Group("/variants")
			{
				variant.PUT("/:id", controllers.UpdateVariant)
				variant.GET("/:id/images", controllers.GetVariantImages)
			}

			inventory := adminAuth.Group("/inventory")
			{
				inventory.GET("/", controllers.InventoryList)
				inventory.GET("/alerts", controllers.InventoryAlerts)
				inventory.GET("/movements", controllers.MovementList)
				inventory.POST("/movements", controllers.MovementCreate)
			}

			order := adminAuth.Group("/orders")
			{
				order.GET("/", controllers.OrderList)
				order.GET("/:id", controllers.OrderDetail)
				order.POST("/:id/confirm", controllers.OrderConfirm)
			}

			expense := adminAuth.Group("/expenses")
			{
				expense.GET("/", controllers.GetAllExpenses)
				expense.POST("/", controllers.CreateExpense)
				expense.PUT("/:id", controllers.UpdateExpense)
				expense.DELETE("/:id", controllers.DeleteExpense)
			}

			adminAuth.POST("/uploads/variant-image", controllers.UploadVariantImage)
			adminAuth.DELETE("/images/:id", controllers.DeleteVariantImage)

			report := adminAuth.Group("/reports")
			{
				report.GET("/sales/daily", controllers.ReportSalesDaily)
				report.GET("/sales", controllers.ReportSales)
				report.GET("/inventory/valuation", controllers.ReportInventoryValuation)
				report.GET("/expenses", controllers.ReportExpenses)
			}
		}
	}
}
