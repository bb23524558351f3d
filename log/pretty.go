package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
)

func defaultOutput() io.Writer { return os.Stderr }

// ANSI color codes for pretty printing.
const (
	ansiReset   = "\033[0m"
	ansiDim     = "\033[2m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// prettyTextHandler renders records as a colored level tag, the message,
// then dimmed key=value attributes.
type prettyTextHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if a := h.replace(slog.Time(slog.TimeKey, r.Time)); !r.Time.IsZero() &&
		!a.Equal(slog.Attr{}) {
		buf.WriteString(ansiDim)
		buf.WriteString(a.Value.String())
		buf.WriteString(ansiReset)
		buf.WriteByte(' ')
	}

	buf.WriteString(levelColor(r.Level))
	buf.WriteString(Level(r.Level).String())
	buf.WriteString(ansiReset)
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(ansiDim)
			buf.WriteString(src.File)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(src.Line))
			buf.WriteString(ansiReset)
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

// WithGroup is a no-op: this handler flattens groups, which suits the
// shallow attribute sets the CLI logs.
func (h *prettyTextHandler) WithGroup(string) slog.Handler { return h }

func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(ansiDim)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(ansiReset)
	buf.WriteString(valueColor(a.Value))
	buf.WriteString(a.Value.String())
	buf.WriteString(ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	case level >= slog.LevelDebug:
		return ansiBlue
	default:
		return ansiMagenta
	}
}

func valueColor(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return ansiYellow
	case slog.KindBool:
		if v.Bool() {
			return ansiGreen
		}

		return ansiRed
	case slog.KindDuration, slog.KindTime:
		return ansiMagenta
	default:
		return ansiCyan
	}
}
