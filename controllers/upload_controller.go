package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ===== multipart upload, then a row recording the public URL
func UploadVariantImage(c *gin.Context) {
	variantIDStr := c.PostForm("variant_id")
	variantID, err := strconv.Atoi(variantIDStr)
	if err != nil || variantID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant_id is required"})
		return
	}

	var variant models.ProductVariant
	if err := config.DB.First(&variant, variantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only jpg, jpeg, png, or webp files"})
		return
	}

	adminID, err := currentAdminID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	objectName := uuid.NewString() + ext
	if err := os.MkdirAll(config.App.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload dir"})
		return
	}
	dst := filepath.Join(config.App.UploadDir, objectName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	image := models.VariantImage{
		VariantID:    variant.ID,
		URL:          config.App.BaseURL + "/uploads/" + objectName,
		ObjectName:   objectName,
		UploadedByID: adminID,
	}
	if err := config.DB.Create(&image).Error; err != nil {
		os.Remove(dst)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record image", "error": utils.ErrMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "data": image})
}

func GetVariantImages(c *gin.Context) {
	variantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var images []models.VariantImage
	if err := config.DB.Where("variant_id = ?", variantID).Order("id DESC").Find(&images).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch images", err)
		return
	}
	utils.Success(c, "Images fetched", images)
}

func DeleteVariantImage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	var image models.VariantImage
	if err := config.DB.First(&image, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := config.DB.Delete(&image).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	// best effort, the row is already gone
	if image.ObjectName != "" {
		os.Remove(filepath.Join(config.App.UploadDir, image.ObjectName))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
