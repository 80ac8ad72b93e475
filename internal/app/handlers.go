package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studycards-backend/internal/handlers"
	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/server"
)

type Handlers struct {
	Course *handlers.CourseHandler
	File   *handlers.FileHandler
	Card   *handlers.CardHandler
}

func wireHandlers(log *logger.Logger, stores Stores, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Course: handlers.NewCourseHandler(log, stores.Courses),
		File:   handlers.NewFileHandler(log, stores.Files),
		Card:   handlers.NewCardHandler(log, serviceset.Cards),
	}
}

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		CourseHandler: handlerset.Course,
		FileHandler:   handlerset.File,
		CardHandler:   handlerset.Card,
		UploadDir:     cfg.UploadDir,
	})
}
