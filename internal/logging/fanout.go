package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// fanoutHandler sends each record to every handler enabled for its level.
type fanoutHandler []slog.Handler

// newFanout drops nil handlers. A single handler is returned as is.
func newFanout(handlers ...slog.Handler) slog.Handler {
	out := fanoutHandler{}
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

// Handle reports every handler failure. A failing handler does not keep the
// record from the others.
func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return f
	}
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) each(fn func(slog.Handler) slog.Handler) fanoutHandler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}
