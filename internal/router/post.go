package router

import "github.com/gin-gonic/gin"

func (r *Router) postRoutes(version *gin.RouterGroup) {
	posts := version.Group("/posts")
	posts.Use(r.jwtMw.RequireAuth())
	{
		posts.GET("", r.postHandler.List)
		posts.POST("", r.postHandler.Create)
		posts.GET("/:id", r.postHandler.GetByID)
		posts.PUT("/:id", r.postHandler.Update)
		posts.DELETE("/:id", r.postHandler.Delete)
	}
}
