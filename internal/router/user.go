package router

import (
	"github.com/Payphone-Digital/admin-panel/internal/model"
	"github.com/gin-gonic/gin"
)

func (r *Router) userRoutes(version *gin.RouterGroup) {
	users := version.Group("/users")
	users.Use(r.jwtMw.RequireAuth())
	{
		users.GET("/me", r.userHandler.Me)
		users.GET("/:id", r.userHandler.GetByID)

		// Administration
		admin := users.Group("")
		admin.Use(r.jwtMw.RequireRole(model.RoleAdmin))
		{
			admin.GET("", r.userHandler.List)
			admin.POST("", r.userHandler.Create)
			admin.PUT("/:id", r.userHandler.Update)
			admin.DELETE("/:id", r.userHandler.Delete)
		}
	}
}
