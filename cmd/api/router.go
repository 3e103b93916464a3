package api

import (
	"net/http"

	"vidtube-backend/internal/auth/delivery"
	authUsecase "vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUc, cfg)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
			users.POST("/refresh-token", authHandler.RefreshToken)

			// Secured routes
			users.POST("/logout", delivery.AuthMiddleware(authUc), authHandler.Logout)
			users.POST("/change-password", delivery.AuthMiddleware(authUc), authHandler.ChangePassword)
			users.GET("/profile", delivery.AuthMiddleware(authUc), authHandler.Me)
			users.PATCH("/profile", delivery.AuthMiddleware(authUc), authHandler.UpdateProfile)
			users.PATCH("/avatar", delivery.AuthMiddleware(authUc), authHandler.UpdateAvatar)
			users.PATCH("/cover-image", delivery.AuthMiddleware(authUc), authHandler.UpdateCoverImage)
		}
	}
}
