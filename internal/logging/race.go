package logging

import (
	"context"
	"log/slog"
)

// RaceProvider reports the active race id and track name. Empty values are omitted.
type RaceProvider func() (raceID, track string)

// RaceHandler stamps each record with the current race context.
type RaceHandler struct {
	inner    slog.Handler
	provider RaceProvider
}

// NewRaceHandler wraps inner. A nil provider makes it a pass-through.
func NewRaceHandler(inner slog.Handler, provider RaceProvider) *RaceHandler {
	return &RaceHandler{inner: inner, provider: provider}
}

func (h *RaceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *RaceHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.provider != nil {
		raceID, track := h.provider()
		if raceID != "" {
			r.AddAttrs(slog.String("raceId", raceID))
		}
		if track != "" {
			r.AddAttrs(slog.String("track", track))
		}
	}
	return h.inner.Handle(ctx, r)
}

func (h *RaceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RaceHandler{inner: h.inner.WithAttrs(attrs), provider: h.provider}
}

func (h *RaceHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &RaceHandler{inner: h.inner.WithGroup(name), provider: h.provider}
}
