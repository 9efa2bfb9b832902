package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/login", r.authHandler.Login)

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("/session", r.authHandler.Session)

			// Revokes every token issued to the caller
			protected.POST("/logout", r.authHandler.Logout)
		}
	}
}
