package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"crimewatch/config"
	"crimewatch/database"
	"crimewatch/utils"
)

// LoginRequest contains the credentials for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest contains the data for user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse is the structure returned after login
type LoginResponse struct {
	Token  string        `json:"token"`
	User   database.User `json:"user"`
	Expiry int64         `json:"expiry"`
}

// Login authenticates a user and returns a JWT token
func Login(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest LoginRequest
		if err := c.ShouldBindJSON(&loginRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}

		var user database.User
		err := db.Where("username = ?", loginRequest.Username).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Same response as a bad password so usernames can't be probed
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		if !utils.CheckPasswordHash(loginRequest.Password, user.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		expiryTime := time.Now().Add(cfg.JWTExpiration())
		token, err := utils.GenerateJWT(cfg.JWTSecret, user.ID, user.Username, user.IsAdmin, expiryTime)
		if err != nil {
			log.Printf("JWT error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:  token,
			User:   user,
			Expiry: expiryTime.Unix(),
		})
	}
}

// Register creates a new (non-admin) user account
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var registerRequest RegisterRequest
		if err := c.ShouldBindJSON(&registerRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing database.User
		err := db.Where("username = ?", registerRequest.Username).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username taken"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		hash, err := utils.HashPassword(registerRequest.Password)
		if err != nil {
			log.Printf("Password hashing error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
			return
		}

		user := database.User{
			Username:     registerRequest.Username,
			PasswordHash: hash,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Registered! Log in now.",
			"user_id": user.ID,
		})
	}
}
