package config

import "go.uber.org/zap"

// NewLogger returns a production (JSON) logger in production and a
// development (console) logger everywhere else.
func NewLogger(cfg Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
