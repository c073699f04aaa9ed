package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a logger. It implements
// all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.logger.Debug("parse started", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("parse failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("parse finished", "source", source, "nodes", nodeCount, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnLayoutStart(_ context.Context, renderer string, nodeCount int) {
	h.logger.Debug("layout started", "renderer", renderer, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, renderer string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "renderer", renderer, "err", err)
		return
	}
	h.logger.Debug("layout finished", "renderer", renderer, "took", d.Round(time.Microsecond))
}

func (h *LogHooks) OnRenderStart(_ context.Context, renderer, format string) {
	h.logger.Debug("render started", "renderer", renderer, "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, renderer, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "renderer", renderer, "format", format, "err", err)
		return
	}
	h.logger.Debug("render finished", "renderer", renderer, "format", format, "bytes", size, "took", d.Round(time.Microsecond))
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

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
