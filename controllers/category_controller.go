package controllers

import (
	"net/http"
	"strconv"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
)

// ================= CATEGORIES =================

func CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	category := models.Category{Name: input.Name}
	if err := config.DB.Create(&category).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category created", "data": category})
}

func GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.Preload("Subcategories.SubSubcategories").Order("name ASC").Find(&categories).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}
	utils.Success(c, "Categories fetched", categories)
}

func UpdateCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := config.DB.Model(&category).Update("name", input.Name).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "data": category})
}

func DeleteCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	// products keep pointing at their category, refuse while any exist
	var cnt int64
	config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category still has products"})
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ================= SUBCATEGORIES =================

func CreateSubcategory(c *gin.Context) {
	var input struct {
		CategoryID uint   `json:"category_id" binding:"required"`
		Name       string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	var parent models.Category
	if err := config.DB.First(&parent, input.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	sub := models.Subcategory{CategoryID: input.CategoryID, Name: input.Name}
	if err := config.DB.Create(&sub).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Subcategory name already exists in this category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory created", "data": sub})
}

func UpdateSubcategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var sub models.Subcategory
	if err := config.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := config.DB.Model(&sub).Update("name", input.Name).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Subcategory name already exists in this category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory updated", "data": sub})
}

func DeleteSubcategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var sub models.Subcategory
	if err := config.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	if err := config.DB.Delete(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subcategory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted"})
}

// ================= SUB-SUBCATEGORIES =================

func CreateSubSubcategory(c *gin.Context) {
	var input struct {
		SubcategoryID uint   `json:"subcategory_id" binding:"required"`
		Name          string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	var parent models.Subcategory
	if err := config.DB.First(&parent, input.SubcategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subcategory not found"})
		return
	}

	sub := models.SubSubcategory{SubcategoryID: input.SubcategoryID, Name: input.Name}
	if err := config.DB.Create(&sub).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Name already exists in this subcategory"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-subcategory created", "data": sub})
}

func UpdateSubSubcategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var sub models.SubSubcategory
	if err := config.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sub-subcategory not found"})
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := config.DB.Model(&sub).Update("name", input.Name).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Name already exists in this subcategory"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-subcategory updated", "data": sub})
}

func DeleteSubSubcategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var sub models.SubSubcategory
	if err := config.DB.First(&sub, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sub-subcategory not found"})
		return
	}

	if err := config.DB.Delete(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sub-subcategory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sub-subcategory deleted"})
}
