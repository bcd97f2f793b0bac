package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
)

// AuthMiddleware requires a member access token in the Authorization header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return requireToken(secret, headerToken)
}

// StreamAuthMiddleware is AuthMiddleware for SSE routes. EventSource cannot
// set headers, so the access_token query parameter is accepted as well.
func StreamAuthMiddleware(secret string) gin.HandlerFunc {
	return requireToken(secret, streamToken)
}

// OptionalStreamAuthMiddleware sets the member identity when a valid access
// token is presented in the header or query and lets anonymous requests
// through otherwise.
func OptionalStreamAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, errMsg := streamToken(c)
		if errMsg == "" {
			if claims, err := ValidateToken(tokenString, secret); err == nil && claims.TokenType == KindAccess {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func requireToken(secret string, extract func(*gin.Context) (string, string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, errMsg := extract(c)
		if errMsg != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMsg})
			return
		}

		claims, err := ValidateToken(tokenString, secret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or malformed token"})
			}
			return
		}

		if claims.TokenType != KindAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *JWTClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserEmail, claims.Email)
}

// streamToken prefers the Authorization header and falls back to the
// access_token query parameter.
func streamToken(c *gin.Context) (string, string) {
	if c.GetHeader("Authorization") == "" {
		if q := c.Query("access_token"); q != "" {
			return q, ""
		}
	}
	return headerToken(c)
}

func headerToken(c *gin.Context) (string, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "Authorization header required"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
		return "", "Invalid authorization header format"
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", "Token is empty"
	}

	return tokenString, ""
}

func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
