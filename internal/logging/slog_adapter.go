// Bookrec - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookrec

package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// SlogHandler is a slog.Handler that writes through a zerolog logger.
type SlogHandler struct {
	logger zerolog.Logger
	attrs  []slog.Attr
	groups []string
}

// NewSlogHandler wraps logger in a slog.Handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSlogHandler(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger}
}

// NewSlogLogger returns a slog.Logger backed by the global zerolog logger,
// tagged with component.
//
//	sup := suture.New("bookrec", suture.Spec{
//	    EventHook: (&sutureslog.Handler{Logger: logging.NewSlogLogger("supervisor")}).MustHook(),
//	})
func NewSlogLogger(component string) *slog.Logger {
	return slog.New(NewSlogHandler(WithComponent(component)))
}

// Enabled implements slog.Handler.
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	zl := slogToZerologLevel(level)
	return zl >= h.logger.GetLevel() && zl >= zerolog.GlobalLevel()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Record is passed by value per slog.Handler interface
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	event := h.logger.WithLevel(slogToZerologLevel(record.Level))
	if event == nil {
		return nil
	}

	for _, attr := range h.attrs {
		addAttr(event, attr, nil)
	}
	record.Attrs(func(attr slog.Attr) bool {
		addAttr(event, attr, h.groups)
		return true
	})

	event.Msg(record.Message)
	return nil
}

// WithAttrs implements slog.Handler. Keys are qualified with the groups open
// at this point, so later WithGroup calls do not apply to them.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		a.Key = qualify(a.Key, h.groups)
		merged = append(merged, a)
	}
	return &SlogHandler{logger: h.logger, attrs: merged, groups: h.groups}
}

// WithGroup implements slog.Handler.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &SlogHandler{logger: h.logger, attrs: h.attrs, groups: groups}
}

// addAttr writes attr to event, prefixing the key with any open groups.
func addAttr(event *zerolog.Event, attr slog.Attr, groups []string) {
	attr.Value = attr.Value.Resolve()

	key := qualify(attr.Key, groups)

	switch attr.Value.Kind() {
	case slog.KindString:
		event.Str(key, attr.Value.String())
	case slog.KindInt64:
		event.Int64(key, attr.Value.Int64())
	case slog.KindUint64:
		event.Uint64(key, attr.Value.Uint64())
	case slog.KindFloat64:
		event.Float64(key, attr.Value.Float64())
	case slog.KindBool:
		event.Bool(key, attr.Value.Bool())
	case slog.KindDuration:
		event.Dur(key, attr.Value.Duration())
	case slog.KindTime:
		event.Time(key, attr.Value.Time())
	case slog.KindGroup:
		nested := append(append([]string{}, groups...), attr.Key)
		for _, ga := range attr.Value.Group() {
			addAttr(event, ga, nested)
		}
	default:
		if err, ok := attr.Value.Any().(error); ok {
			event.AnErr(key, err)
			return
		}
		event.Interface(key, attr.Value.Any())
	}
}

func qualify(key string, groups []string) string {
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}
	return key
}

func slogToZerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level < slog.LevelDebug:
		return zerolog.TraceLevel
	case level < slog.LevelInfo:
		return zerolog.DebugLevel
	case level < slog.LevelWarn:
		return zerolog.InfoLevel
	case level < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
