// controllers/product_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type ProductCreateInput struct {
	Name             string `json:"name" binding:"required"`
	CategoryID       uint   `json:"category_id" binding:"required"`
	SubcategoryID    *uint  `json:"subcategory_id"`
	SubSubcategoryID *uint  `json:"sub_subcategory_id"`
	Description      string `json:"description"`
}

func CreateProduct(c *gin.Context) {
	var in ProductCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, in.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
		return
	}
	if in.SubcategoryID != nil {
		var sub models.Subcategory
		if err := config.DB.Where("id = ? AND category_id = ?", *in.SubcategoryID, in.CategoryID).First(&sub).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subcategory does not belong to the category"})
			return
		}
	}
	if in.SubSubcategoryID != nil {
		if in.SubcategoryID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sub-subcategory needs its subcategory"})
			return
		}
		var subsub models.SubSubcategory
		if err := config.DB.Where("id = ? AND subcategory_id = ?", *in.SubSubcategoryID, *in.SubcategoryID).First(&subsub).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sub-subcategory does not belong to the subcategory"})
			return
		}
	}

	product := models.Product{
		Name:             in.Name,
		CategoryID:       in.CategoryID,
		SubcategoryID:    in.SubcategoryID,
		SubSubcategoryID: in.SubSubcategoryID,
		Description:      in.Description,
		IsActive:         true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product created", "data": product})
}

func GetAllProducts(c *gin.Context) {
	q := config.DB.Model(&models.Product{}).
		Preload("Category").
		Preload("Variants").
		Preload("Variants.Images").
		Order("name ASC")

	if search := c.Query("q"); search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}
	if cid := c.Query("category_id"); cid != "" {
		q = q.Where("category_id = ?", cid)
	}
	if c.Query("active") == "true" {
		q = q.Where("is_active = true")
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Products fetched", "data": products})
}

func GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.
		Preload("Category").
		Preload("Subcategory").
		Preload("SubSubcategory").
		Preload("Variants").
		Preload("Variants.Images").
		First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product fetched", "data": product})
}

type ProductUpdateInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var in ProductUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	config.DB.First(&product, id)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "data": product})
}

func DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// movement history must keep resolving, refuse while any exists
	var cnt int64
	config.DB.Model(&models.InventoryMovement{}).
		Joins("JOIN product_variants pv ON pv.id = inventory_movements.variant_id").
		Where("pv.product_id = ?", product.ID).
		Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product has inventory history"})
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ================= VARIANTS =================

type VariantCreateInput struct {
	Label        string         `json:"label" binding:"required"`
	SellType     string         `json:"sell_type" binding:"required,oneof=weight unit"`
	Price        float64        `json:"price" binding:"required,gt=0"`
	ReorderLevel float64        `json:"reorder_level"`
	Attributes   datatypes.JSON `json:"attributes"`
}

func CreateVariant(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var in VariantCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.ReorderLevel < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reorder level cannot be negative"})
		return
	}

	variant := models.ProductVariant{
		ProductID:    product.ID,
		Label:        in.Label,
		SellType:     models.SellType(in.SellType),
		Price:        in.Price,
		ReorderLevel: in.ReorderLevel,
		Attributes:   in.Attributes,
		IsActive:     true,
	}
	if err := config.DB.Create(&variant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	// every variant starts with an (empty) stock row
	config.DB.Create(&models.InventoryLevel{VariantID: variant.ID})

	c.JSON(http.StatusOK, gin.H{"message": "Variant created", "data": variant})
}

type VariantUpdateInput struct {
	Label        *string         `json:"label,omitempty"`
	SellType     *string         `json:"sell_type,omitempty"`
	Price        *float64        `json:"price,omitempty"`
	ReorderLevel *float64        `json:"reorder_level,omitempty"`
	Attributes   *datatypes.JSON `json:"attributes,omitempty"`
	IsActive     *bool           `json:"is_active,omitempty"`
}

func UpdateVariant(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var variant models.ProductVariant
	if err := config.DB.First(&variant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	var in VariantUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.SellType != nil && models.SellType(*in.SellType) != variant.SellType {
		if *in.SellType != string(models.SellByWeight) && *in.SellType != string(models.SellByUnit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sell type must be weight or unit"})
			return
		}
		// quantities recorded under the old type would change meaning
		var cnt int64
		config.DB.Model(&models.InventoryMovement{}).Where("variant_id = ?", variant.ID).Count(&cnt)
		if cnt > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sell type is fixed once the variant has movements"})
			return
		}
		updates["sell_type"] = *in.SellType
	}
	if in.Label != nil {
		updates["label"] = *in.Label
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		updates["price"] = *in.Price
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reorder level cannot be negative"})
			return
		}
		updates["reorder_level"] = *in.ReorderLevel
	}
	if in.Attributes != nil {
		updates["attributes"] = *in.Attributes
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := config.DB.Model(&variant).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	config.DB.First(&variant, id)
	c.JSON(http.StatusOK, gin.H{"message": "Variant updated", "data": variant})
}

func GetVariantsByProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var variants []models.ProductVariant
	if err := config.DB.Preload("Images").Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch variants", err)
		return
	}
	utils.Success(c, "Variants fetched", variants)
}
