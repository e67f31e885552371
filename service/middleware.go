package service

import (
	"errors"
	"net/http"
	"strings"

	"nexuscrm/response"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	keyUserID   = "x-user-id"
	keyUserName = "x-user-name"
	keyUserRole = "x-user-role"
)

// AuthMiddleware parses the bearer token and stores the caller's
// identity in the request context. Requests without a valid token
// never reach a handler.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.HTTPError(c, http.StatusUnauthorized, "missing bearer token", response.InvalidToken)
			c.Abort()
			return
		}
		msg, err := h.tokens.CheckToken(token)
		if err != nil {
			code := response.InvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = response.TokenExpired
			}
			response.HTTPError(c, http.StatusUnauthorized, "invalid token", code)
			c.Abort()
			return
		}
		c.Set(keyUserID, msg.UserID)
		c.Set(keyUserName, msg.Username)
		c.Set(keyUserRole, msg.Role)
		c.Next()
	}
}

// currentUserID returns the authenticated user's id set by
// AuthMiddleware.
func currentUserID(c *gin.Context) uint {
	id, _ := c.Get(keyUserID)
	uid, _ := id.(uint)
	return uid
}
