package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studycards-backend/internal/logger"
)

type App struct {
	Log      *logger.Logger
	Router   *gin.Engine
	Cfg      Config
	Stores   Stores
	Services Services
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

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	clients := wireClients(log)

	storeset, err := wireStores(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	serviceset, err := wireServices(log, cfg, clients, storeset)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, storeset, serviceset)
	router := wireRouter(cfg, handlerset)

	return &App{
		Log:      log,
		Router:   router,
		Cfg:      cfg,
		Stores:   storeset,
		Services: serviceset,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
