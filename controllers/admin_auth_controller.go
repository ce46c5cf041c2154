package controllers

import (
	"net/http"
	"time"

	"go-shop-backoffice/config"
	"go-shop-backoffice/models"
	"go-shop-backoffice/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminRegisterInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func AdminRegister(c *gin.Context) {
	var in AdminRegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists models.Admin
	if err := config.DB.Where("username = ?", in.Username).First(&exists).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	admin := models.Admin{
		Username:     in.Username,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Address:      in.Address,
		AvatarURL:    utils.DefaultAvatar(in.FullName),
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := config.DB.Create(&admin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin created", "username": admin.Username})
}

type AdminLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func AdminLogin(c *gin.Context) {
	var in AdminLoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ? AND is_active = true", in.Username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		return
	}

	now := time.Now()
	config.DB.Model(&admin).Update("last_login_at", now)

	token, _ := utils.GenerateAdminToken(admin.ID, admin.Username, 24*time.Hour)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login ok",
		"token":   token,
	})
}

func GetAdminProfile(c *gin.Context) {
	aid, _ := c.Get("admin_id")

	var admin models.Admin
	if err := config.DB.First(&admin, aid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Admin not found",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile fetched",
		"data":    admin, // PasswordHash hidden via json:"-"
	})
}

type AdminUpdateProfileInput struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func AdminUpdateProfile(c *gin.Context) {
	adminID, _ := c.Get("admin_id")

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Admin not found",
			"error":   err.Error(),
		})
		return
	}

	var in AdminUpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid payload",
			"error":   err.Error(),
		})
		return
	}

	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}
	if in.Address != nil {
		updates["address"] = *in.Address
	}
	if in.AvatarURL != nil {
		updates["avatar_url"] = *in.AvatarURL
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}
	updates["updated_at"] = time.Now()

	if err := config.DB.Model(&admin).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
		return
	}

	config.DB.First(&admin, adminID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"data":    admin,
	})
}

type AdminChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func AdminChangePassword(c *gin.Context) {
	adminID, _ := c.Get("admin_id")

	var admin models.Admin
	if err := config.DB.First(&admin, adminID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Admin not found"})
		return
	}

	var in AdminChangePasswordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid payload",
			"error":   err.Error(),
		})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "Current password is wrong",
		})
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err := config.DB.Model(&admin).Update("password_hash", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to change password",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}
