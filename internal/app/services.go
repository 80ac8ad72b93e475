package app

import (
	"fmt"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/render"
	"github.com/yungbote/studycards-backend/internal/services"
)

type Services struct {
	Author services.NoteAuthor
	Cards  services.CardService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, stores Stores) (Services, error) {
	log.Info("Wiring services...")

	renderCfg, err := render.LoadConfig(cfg.RenderConfigPath)
	if err != nil {
		return Services{}, fmt.Errorf("load render config: %w", err)
	}
	fonts := render.LoadFonts(log, renderCfg.FontPaths)

	var textClient render.TextClient
	var imageClient render.IllustrationClient
	if clients.Gemini != nil {
		textClient = clients.Gemini
		if cfg.EnableIllustrations {
			imageClient = clients.Gemini
		}
	}

	classifier := render.NewClassifier(log, textClient, renderCfg.Keywords, cfg.ClassifyTimeout)
	illustrator := render.NewIllustrator(log, imageClient, cfg.IllustrationTimeout)
	composer := render.NewCardComposer(log, renderCfg, fonts)

	author := services.NewNoteAuthor(log, textClient)
	cards := services.NewCardService(
		log,
		stores.Files,
		stores.Cards,
		author,
		classifier,
		illustrator,
		composer,
		cfg.UploadDir,
		cfg.MaxConcurrentRenders,
	)

	return Services{Author: author, Cards: cards}, nil
}
