package router

import (
	"time"

	"github.com/Payphone-Digital/admin-panel/config"
	"github.com/Payphone-Digital/admin-panel/internal/handler"
	"github.com/Payphone-Digital/admin-panel/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	userHandler   *handler.UserHandler
	authHandler   *handler.AuthHandler
	postHandler   *handler.PostHandler
	healthHandler *handler.HealthHandler

	jwtMw  *middleware.JWTMiddleware
	Config *config.Config
}

func NewRouter(
	user *handler.UserHandler,
	auth *handler.AuthHandler,
	post *handler.PostHandler,
	health *handler.HealthHandler,

	jwtMw *middleware.JWTMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		userHandler:   user,
		authHandler:   auth,
		postHandler:   post,
		healthHandler: health,

		jwtMw:  jwtMw,
		Config: config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())
	router.Use(middleware.ContextMiddleware(r.Config.App.Timeout))

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)
		api.GET("/health/live", r.healthHandler.BasicHealth)

		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			r.authRoutes(v1)
			r.userRoutes(v1)
			r.postRoutes(v1)
		}
	}

	return router
}
