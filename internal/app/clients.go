package app

import (
	"github.com/yungbote/studycards-backend/internal/clients/gemini"
	"github.com/yungbote/studycards-backend/internal/logger"
)

type Clients struct {
	Gemini gemini.Client
}

// wireClients builds the outbound AI client. A missing API key is not
// fatal: the client stays nil and every AI-backed path runs in its
// deterministic offline fallback mode.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring clients...")

	geminiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Warn("gemini client unavailable, running offline", "error", err)
		return Clients{}
	}
	return Clients{Gemini: geminiClient}
}
