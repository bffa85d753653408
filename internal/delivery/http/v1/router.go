package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-contact-backend/config"
	"go-contact-backend/internal/delivery/http/middleware"
	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	Sessions  domain.SessionStore
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Session(deps.Config.SessionSecret, deps.Config.SessionCookieSecure))
	r.Use(middleware.ErrorHandler())

	// Anything outside the contract, wrong method included, is a 404
	r.HandleMethodNotAllowed = true
	r.NoRoute(pageNotFound)
	r.NoMethod(pageNotFound)

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "System operational")
	})

	// Contact form (public), throttled per session before body parsing
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	throttle := middleware.SubmissionThrottle(deps.Sessions, window)
	NewContactHandler(v1, deps.ContactUC, throttle)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func pageNotFound(c *gin.Context) {
	c.Error(apperror.NotFound("Page not found."))
}
