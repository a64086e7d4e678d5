package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the zap logger the export service logs through. Debug level
// selects zap's development profile; everything else logs through the
// production profile.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config
	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	// Console encoding is for local export runs; stacktraces are dropped
	// there so reconciliation summaries stay readable.
	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRayID attaches the request's ray id so every line logged while
// exporting one quote can be correlated. It is a no-op when the ray id
// middleware did not run.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	rid, ok := c.Locals("ray_id").(string)
	if ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
