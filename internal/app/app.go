package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/fotoflesz/printshop-backend/internal/http/handlers"
	"github.com/fotoflesz/printshop-backend/internal/ingest"
	"github.com/fotoflesz/printshop-backend/internal/platform/logger"
	"github.com/fotoflesz/printshop-backend/internal/server"
)

// App wires the server side of the system: ingest service, upload handler,
// router. The editing-session side (renderer, previewer, pricing catalog,
// order queue, submitter) is a library consumed by client sessions and is
// deliberately not constructed here.
type App struct {
	Log    *logger.Logger
	Cfg    Config
	Router *gin.Engine
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig()

	ingestService := ingest.NewService(log, cfg.UploadRoot)
	uploadHandler := handlers.NewUploadHandler(log, ingestService, int64(cfg.MaxUploadMB)<<20)

	router := server.NewRouter(server.RouterConfig{
		Log:           log,
		UploadHandler: uploadHandler,
	})

	return &App{
		Log:    log,
		Cfg:    cfg,
		Router: router,
	}, nil
}

func (a *App) Run() error {
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}
