package events

import (
	"go.uber.org/zap"

	"github.com/claimdeck/claimdeck/internal/logging"
)

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(version, user string) {
	logging.L().Info("app.start", zap.String("version", version), zap.String("user", user))
}

func (AppTracer) Stop() {
	logging.L().Info("app.stop")
}
