package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware guards a route group behind a JWT role. The authenticated
// id lands in the context as "user_id"; for manager tokens that id is the
// restaurant id.
func RoleMiddleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenRole, err := ExtractRoleFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if tokenRole != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: " + role + " access required"})
			c.Abort()
			return
		}

		userID, err := ExtractIDFromToken(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token ID"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)

		c.Next()
	}
}

func ExtractRoleFromToken(authHeader string) (string, error) {
	claims, err := claimsFromHeader(authHeader)
	if err != nil {
		return "", err
	}

	role, ok := claims["user_role"].(string)
	if !ok {
		return "", errors.New("role not found in token")
	}

	return role, nil
}

func ExtractIDFromToken(authHeader string) (uint, error) {
	claims, err := claimsFromHeader(authHeader)
	if err != nil {
		return 0, err
	}

	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, errors.New("id not found or invalid type")
	}

	return uint(idFloat), nil
}

func claimsFromHeader(authHeader string) (map[string]interface{}, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errors.New("invalid token format")
	}
	return ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
}
