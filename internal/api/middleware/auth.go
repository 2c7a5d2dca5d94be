// Package middleware provides the request authentication and role gating
// used in front of the complaint routes.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"resihub/backend/internal/models"
	"resihub/backend/internal/storage"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

// principalKey is the gin context key the authenticated principal is stored
// under.
const principalKey = "principal"

// Principal is the normalized identity attached to the request after the
// bearer token has been verified and resolved to a live user.
type Principal struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// CurrentPrincipal returns the principal attached by Authenticate.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

// Authenticate verifies the bearer token and resolves its subject to a live
// user. The three failure modes (no token, invalid token, expired token) all
// map to 401 but carry distinct messages for the client.
func Authenticate(store storage.Storage, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWith(c, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		rawToken := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(rawToken, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, http.StatusUnauthorized, "Token expired.")
				return
			}
			abortWith(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, http.StatusUnauthorized, "Invalid token.")
			return
		}
		subject, _ := claims["id"].(string)
		if subject == "" {
			abortWith(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		// The subject must still exist; tokens of deleted accounts are dead.
		user, err := store.GetUserByID(subject)
		if err != nil {
			abortWith(c, http.StatusInternalServerError, "Server error during authentication.")
			return
		}
		if user == nil {
			abortWith(c, http.StatusUnauthorized, "Invalid token. User not found.")
			return
		}

		c.Set(principalKey, &Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})
		c.Next()
	}
}

// RequireAdmin rejects non-admin principals. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok || p.Role != models.RoleAdmin {
			abortWith(c, http.StatusForbidden, "Access denied. Admin privileges required.")
			return
		}
		c.Next()
	}
}

// RequireResident rejects non-resident principals. Must run after
// Authenticate.
func RequireResident() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok || p.Role != models.RoleResident {
			abortWith(c, http.StatusForbidden, "Access denied. Resident privileges required.")
			return
		}
		c.Next()
	}
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
