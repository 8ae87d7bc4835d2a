package controllers

import (
	"cake-shop/models"
	"cake-shop/utils"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type AuthController struct{}

// Register godoc
// @Summary Register new user
// @Description Register a new account; admin access is granted separately via the admins table
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	ctx := context.Background()

	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE email=$1", req.Email).Scan(&exists)
	if exists > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	now := time.Now()
	var userID int
	err = models.DB.QueryRow(ctx,
		"INSERT INTO users (email, password, full_name, created_at, updated_at) VALUES ($1,$2,$3,$4,$4) RETURNING id",
		req.Email, hash, req.FullName, now).Scan(&userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create user: " + err.Error()})
		return
	}

	token, _ := utils.GenerateToken(userID, req.Email)

	c.JSON(201, gin.H{
		"success": true, "message": "Registration successful",
		"data": gin.H{
			"token": token,
			"user":  gin.H{"id": userID, "email": req.Email, "full_name": req.FullName},
		},
	})
}

// Login godoc
// @Summary Login
// @Description Authenticate and receive a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var user models.User
	err := models.DB.QueryRow(context.Background(),
		"SELECT id, email, password, full_name FROM users WHERE email=$1",
		req.Email).Scan(&user.ID, &user.Email, &user.Password, &user.FullName)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	ok, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !ok {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	var isAdmin int
	models.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM admins WHERE user_id=$1", user.ID).Scan(&isAdmin)

	c.JSON(200, gin.H{
		"success": true, "message": "Login successful",
		"data": gin.H{
			"token": token,
			"user": gin.H{
				"id": user.ID, "email": user.Email,
				"full_name": user.FullName, "is_admin": isAdmin > 0,
			},
		},
	})
}

// GetProfile godoc
// @Summary Get profile
// @Description Get the authenticated user's profile
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var user models.User
	err := models.DB.QueryRow(context.Background(),
		"SELECT id, email, full_name, created_at FROM users WHERE id=$1",
		userID).Scan(&user.ID, &user.Email, &user.FullName, &user.CreatedAt)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Profile retrieved", "data": user})
}

// ChangePassword godoc
// @Summary Change password
// @Description Change the authenticated user's password
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/change-password [post]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var currentHash string
	err := models.DB.QueryRow(context.Background(),
		"SELECT password FROM users WHERE id=$1", userID).Scan(&currentHash)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "User not found"})
		return
	}

	ok, err := utils.VerifyPassword(currentHash, req.OldPassword)
	if err != nil || !ok {
		c.JSON(400, gin.H{"success": false, "message": "Old password is incorrect"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	_, err = models.DB.Exec(context.Background(),
		"UPDATE users SET password=$1, updated_at=$2 WHERE id=$3", newHash, time.Now(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to update password"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Password changed successfully"})
}
