package v1

import (
	"sparknest-backend/config"
	"sparknest-backend/internal/delivery/http/middleware"
	"sparknest-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SubmissionUC domain.SubmissionUsecase
	HealthUC     domain.HealthUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.BodyLimit(deps.Config.MaxBodyBytes))
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	NewMiscHandler(api, deps.Config.PingMessage, deps.HealthUC)
	NewSubmissionHandler(api, deps.SubmissionUC) // Contact and project forms (no auth required)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
