package app

import (
	"time"

	"github.com/yungbote/studycards-backend/internal/logger"
	"github.com/yungbote/studycards-backend/internal/utils"
)

type Config struct {
	Port                string
	DataDir             string
	UploadDir           string
	RenderConfigPath    string
	EnableIllustrations bool

	ClassifyTimeout     time.Duration
	IllustrationTimeout time.Duration

	MaxConcurrentRenders int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8000", log)
	dataDir := utils.GetEnv("DATA_DIR", "data", log)
	uploadDir := utils.GetEnv("UPLOAD_DIR", "uploads", log)
	renderConfigPath := utils.GetEnv("RENDER_CONFIG_PATH", "", log)
	enableIllustrations := utils.GetEnvAsBool("ENABLE_ILLUSTRATIONS", true, log)
	classifyTimeoutSeconds := utils.GetEnvAsInt("CLASSIFY_TIMEOUT_SECONDS", 20, log)
	illustrationTimeoutSeconds := utils.GetEnvAsInt("ILLUSTRATION_TIMEOUT_SECONDS", 30, log)
	maxConcurrentRenders := utils.GetEnvAsInt("MAX_CONCURRENT_RENDERS", 2, log)
	return Config{
		Port:                 port,
		DataDir:              dataDir,
		UploadDir:            uploadDir,
		RenderConfigPath:     renderConfigPath,
		EnableIllustrations:  enableIllustrations,
		ClassifyTimeout:      time.Duration(classifyTimeoutSeconds) * time.Second,
		IllustrationTimeout:  time.Duration(illustrationTimeoutSeconds) * time.Second,
		MaxConcurrentRenders: maxConcurrentRenders,
	}
}
