package delivery

import (
	"errors"
	"net/http"
	"strings"

	"vidtube-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the presented access token and attaches the
// resolved user to the request context. The cookie takes precedence over
// the Authorization header when both are present.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, _ := c.Cookie(accessCookie)
		if accessToken == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				accessToken = parts[1]
			}
		}

		if accessToken == "" {
			respond(c, http.StatusUnauthorized, nil, "access token is missing")
			c.Abort()
			return
		}

		user, err := authUsecase.ValidateAccessToken(accessToken)
		if err != nil {
			message := "invalid or expired access token"
			if errors.Is(err, usecase.ErrUserNotFound) {
				message = "user not found"
			}
			respond(c, http.StatusUnauthorized, nil, message)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
