package app

import (
	"fmt"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/store/jsonstore"
)

type Stores struct {
	Courses jsonstore.CourseStore
	Files   jsonstore.FileStore
	Cards   jsonstore.CardStore
}

func wireStores(log *logger.Logger, cfg Config) (Stores, error) {
	log.Info("Wiring stores...")

	courses, err := jsonstore.NewCourseStore(cfg.DataDir, log)
	if err != nil {
		return Stores{}, fmt.Errorf("init course store: %w", err)
	}
	files, err := jsonstore.NewFileStore(cfg.DataDir, log)
	if err != nil {
		return Stores{}, fmt.Errorf("init file store: %w", err)
	}
	cards, err := jsonstore.NewCardStore(cfg.DataDir, log)
	if err != nil {
		return Stores{}, fmt.Errorf("init card store: %w", err)
	}
	return Stores{Courses: courses, Files: files, Cards: cards}, nil
}
