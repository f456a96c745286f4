package cache

import (
	"log/slog"
	"time"
)

// Observer receives structured cache instrumentation. It replaces the
// string logging the original page sprinkled through its managers.
type Observer interface {
	CacheHit(id int)
	CacheMiss(id int)
	FetchRetry(id int, attempt int, delay time.Duration, err error)
	LoadSucceeded(id int, latency time.Duration)
	LoadFailed(id int, attempts int, err error)
}

// NopObserver discards all instrumentation.
type NopObserver struct{}

func (NopObserver) CacheHit(int)                                  {}
func (NopObserver) CacheMiss(int)                                 {}
func (NopObserver) FetchRetry(int, int, time.Duration, error)     {}
func (NopObserver) LoadSucceeded(int, time.Duration)              {}
func (NopObserver) LoadFailed(int, int, error)                    {}

// LogObserver emits instrumentation as structured slog events.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver creates a LogObserver.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{log: logger.With("component", "cache")}
}

func (o *LogObserver) CacheHit(id int) {
	o.log.Debug("cache.hit", slog.Int("verb_id", id))
}

func (o *LogObserver) CacheMiss(id int) {
	o.log.Debug("cache.miss", slog.Int("verb_id", id))
}

func (o *LogObserver) FetchRetry(id int, attempt int, delay time.Duration, err error) {
	o.log.Warn("cache.retry",
		slog.Int("verb_id", id),
		slog.Int("attempt", attempt),
		slog.Duration("delay", delay),
		slog.String("error", err.Error()),
	)
}

func (o *LogObserver) LoadSucceeded(id int, latency time.Duration) {
	o.log.Info("cache.loaded", slog.Int("verb_id", id), slog.Duration("latency", latency))
}

func (o *LogObserver) LoadFailed(id int, attempts int, err error) {
	o.log.Error("cache.failed",
		slog.Int("verb_id", id),
		slog.Int("attempts", attempts),
		slog.String("error", err.Error()),
	)
}
