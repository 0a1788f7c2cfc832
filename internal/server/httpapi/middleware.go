package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"zorgkaart/internal/common"
	"zorgkaart/internal/server/auth"
)

// CORS allows the local development frontends. The API is same-origin in
// production, behind the reverse proxy.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
}

// RequireAuth validates the session token on protected routes. The token is
// taken from the Authorization header, or from the token query parameter as
// a fallback for EventSource clients that cannot set headers.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorEnvelope{
				Error: APIError{Message: "geen sessietoken", Code: "unauthorized"},
			})
			return
		}
		if err := auth.ValidateToken(token, secret); err != nil {
			msg := "ongeldig sessietoken"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "sessie verlopen"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorEnvelope{
				Error: APIError{Message: msg, Code: "unauthorized"},
			})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return c.Query("token")
}
