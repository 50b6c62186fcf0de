package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/journal"
)

// JournalHandler writes log records to the systemd journal with structured
// fields.
type JournalHandler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewJournalHandler creates a handler that sends records to the journal.
func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{level: level}
}

// IsJournalAvailable reports whether the journal socket can be reached.
func IsJournalAvailable() bool {
	return journal.Enabled()
}

func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *JournalHandler) Handle(_ context.Context, record slog.Record) error {
	fields := map[string]string{
		"SYSLOG_IDENTIFIER": "vidcaps",
	}

	for _, attr := range h.attrs {
		addField(fields, h.group, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		addField(fields, h.group, attr)
		return true
	})

	return journal.Send(record.Message, journalPriority(record.Level), fields)
}

func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	combined = append(combined, h.attrs...)
	combined = append(combined, attrs...)
	return &JournalHandler{level: h.level, attrs: combined, group: h.group}
}

func (h *JournalHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "_" + name
	}
	return &JournalHandler{level: h.level, attrs: h.attrs, group: group}
}

// addField converts a slog attribute to an uppercase journal field.
func addField(fields map[string]string, group string, attr slog.Attr) {
	key := attr.Key
	if group != "" {
		key = group + "_" + key
	}
	fields[journalFieldName(key)] = fmt.Sprint(attr.Value.Any())
}

// journalFieldName sanitizes a key into a valid journal field name. Journal
// fields must be uppercase ASCII letters, digits, and underscores, and must
// not start with a digit.
func journalFieldName(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]byte{'X'}, out...)
	}
	return string(out)
}

// journalPriority maps slog levels to syslog priorities.
func journalPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}
