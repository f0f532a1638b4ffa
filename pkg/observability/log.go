package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level events to
// a charmbracelet logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger. A nil logger uses the
// package-level default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

// Register installs h as the pipeline, cache and session hooks.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetSessionHooks(h)
}

func (h *LogHooks) OnSizesComplete(_ context.Context, source string, count int, d time.Duration, err error) {
	h.done("sizes", err, "source", source, "count", count, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, count int) {
	h.logger.Debug("layout started", "rectangles", count)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placed int, d time.Duration, err error) {
	h.done("layout", err, "placed", placed, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnSessionCreated(_ context.Context, id string) {
	h.logger.Debug("session created", "id", id)
}

func (h *LogHooks) OnRectanglePlaced(_ context.Context, id string, index, steps int, err error) {
	h.done("placement", err, "session", id, "index", index, "steps", steps)
}

func (h *LogHooks) OnSessionDeleted(_ context.Context, id string) {
	h.logger.Debug("session deleted", "id", id)
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "error", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ SessionHooks  = (*LogHooks)(nil)
)
