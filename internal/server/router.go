package server

import (
	"github.com/gin-gonic/gin"

	"github.com/fotoflesz/printshop-backend/internal/http/handlers"
	"github.com/fotoflesz/printshop-backend/internal/http/middleware"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	UploadHandler *handlers.UploadHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/upload", cfg.UploadHandler.Upload)

	return router
}
