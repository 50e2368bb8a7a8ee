package auth

import (
	"claims-portal-api/internal/logs"
	"claims-portal-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authService *AuthService, logService *logs.LogService) {
	authController := &AuthController{AuthService: authService, LS: logService}

	public := r.Group("/api/auth")
	{
		public.POST("/login", authController.Login)
		public.POST("/logout", authController.Logout)
		public.POST("/refresh", authController.Refresh)
		public.GET("/me", authController.Me)
		public.POST("/otp", authController.SendOTP)
		public.POST("/reset-password", authController.ResetPassword)
	}

	gated := r.Group("/api/auth")
	gated.Use(middlewares.AuthMiddleware())
	{
		gated.GET("/users", middlewares.RequireRole(RoleOwner, RoleAdmin), authController.GetUsers)
		gated.POST("/users", middlewares.RequireRole(RoleOwner), authController.CreateUser)
	}
}
