package events

import (
	"go.uber.org/zap"

	"github.com/claimdeck/claimdeck/internal/logging"
)

type UITracer struct{}

type RemoteTracer struct{}

type CacheTracer struct{}

var (
	UI     = UITracer{}
	Remote = RemoteTracer{}
	Cache  = CacheTracer{}
)

func (UITracer) ModeChange(from, to string) {
	logging.L().Debug("ui.mode", zap.String("from", from), zap.String("to", to))
}

func (UITracer) WeekChange(monday string) {
	logging.L().Debug("ui.week", zap.String("monday", monday))
}

func (UITracer) Selection(day, entry int) {
	logging.L().Debug("ui.selection", zap.Int("day", day), zap.Int("entry", entry))
}

func (UITracer) Cancel(epoch int) {
	logging.L().Debug("ui.cancel", zap.Int("epoch", epoch))
}

func (RemoteTracer) Started(op string, epoch int) {
	logging.L().Debug("remote.start", zap.String("op", op), zap.Int("epoch", epoch))
}

func (RemoteTracer) Finished(op string, epoch int, err error) {
	if err != nil {
		logging.L().Warn("remote.finish", zap.String("op", op), zap.Int("epoch", epoch), zap.Error(err))
		return
	}
	logging.L().Debug("remote.finish", zap.String("op", op), zap.Int("epoch", epoch))
}

func (RemoteTracer) Dropped(op string, epoch, current int) {
	logging.L().Debug("remote.dropped", zap.String("op", op), zap.Int("epoch", epoch), zap.Int("current", current))
}

func (CacheTracer) Loaded(entries int) {
	logging.L().Debug("cache.loaded", zap.Int("entries", entries))
}

func (CacheTracer) Refreshed(entries int) {
	logging.L().Debug("cache.refreshed", zap.Int("entries", entries))
}

func (CacheTracer) Warn(err error) {
	if err == nil {
		return
	}
	logging.L().Warn("cache.warning", zap.Error(err))
}
