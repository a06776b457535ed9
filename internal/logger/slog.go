package logger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// FrameworkComponent tags records that the agent framework emits through log/slog
const FrameworkComponent = "openai-agents"

// SlogHandler forwards log/slog records into a zerolog logger. Every record is
// written at debug level; its slog level is kept in the slog_level field.
type SlogHandler struct {
	logger zerolog.Logger
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*SlogHandler)(nil)

// NewSlogHandler returns a handler writing to logger
func NewSlogHandler(logger zerolog.Logger) *SlogHandler {
	return &SlogHandler{logger: logger.With().Str("component", FrameworkComponent).Logger()}
}

// Enabled reports whether framework records are written at all
func (h *SlogHandler) Enabled(context.Context, slog.Level) bool {
	return h.logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
}

// Handle writes one record
func (h *SlogHandler) Handle(_ context.Context, r slog.Record) error {
	event := h.logger.Debug()
	if event == nil {
		return nil
	}

	event = event.Str("slog_level", r.Level.String())
	for _, attr := range h.attrs {
		event = addAttr(event, "", attr)
	}

	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(attr slog.Attr) bool {
		event = addAttr(event, prefix, attr)
		return true
	})

	event.Msg(r.Message)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	prefix := strings.Join(h.groups, ".")

	next := h.clone()
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		next.attrs = append(next.attrs, attr)
	}
	return next
}

// WithGroup returns a handler that qualifies later attribute keys with name
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *SlogHandler) clone() *SlogHandler {
	return &SlogHandler{
		logger: h.logger,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

// addAttr flattens groups into dotted keys
func addAttr(event *zerolog.Event, prefix string, attr slog.Attr) *zerolog.Event {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return event
	}

	key := attr.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			event = addAttr(event, key, member)
		}
		return event
	}

	return event.Interface(key, attr.Value.Any())
}
