package logger

import (
	"go.uber.org/zap"

	"shieldhero-quiz/internal/config"
)

// New builds the process logger. The terminal owns stdout, so output goes to cfg.Log.Path.
func New(cfg config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Log.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Log.Path != "" {
		zc.OutputPaths = []string{cfg.Log.Path}
		zc.ErrorOutputPaths = []string{cfg.Log.Path}
	}
	return zc.Build()
}
