package handler

import (
	"net/http"
	"strings"
	"time"

	"resihub/backend/internal/api/middleware"
	"resihub/backend/internal/config"
	"resihub/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// generateToken issues a capability token for the given user ID.
func (h *Handler) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(config.TokenTTL).Unix(),
		"iss": config.TokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.secret)
}

// Register creates a resident account and returns a fresh token. The role is
// always resident; admin accounts are created through the operator CLI.
func (h *Handler) Register(c *gin.Context) {
	var payload struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		FlatNumber  string `json:"flatNumber"`
		PhoneNumber string `json:"phoneNumber"`
	}

	if err := c.ShouldBindJSON(&payload); err != nil ||
		strings.TrimSpace(payload.Name) == "" ||
		strings.TrimSpace(payload.Email) == "" ||
		payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide name, email, and password",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	existing, err := h.Store.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating account"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating account"})
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(payload.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleResident,
		FlatNumber:   strings.TrimSpace(payload.FlatNumber),
		PhoneNumber:  strings.TrimSpace(payload.PhoneNumber),
	}
	if err := h.Store.CreateUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating account"})
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login verifies credentials and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&payload); err != nil || payload.Email == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide email and password",
		})
		return
	}

	user, err := h.Store.GetUserByEmail(strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error logging in"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Me returns the authenticated caller's account record.
func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access denied. No token provided."})
		return
	}

	user, err := h.Store.GetUserByID(p.ID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
