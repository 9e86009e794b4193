package logging

import (
	"context"
	"log/slog"
	"slices"
)

// ContextProvider returns attributes describing live process state, such as
// how many participants have mass removal on. It is called once per record.
type ContextProvider func() []slog.Attr

type ctxAttrsKey struct{}

// WithContextAttrs returns a child of ctx carrying attrs. Records logged with
// the returned context through a ContextHandler get attrs appended.
func WithContextAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if prev, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		attrs = append(slices.Clip(prev), attrs...)
	}
	return context.WithValue(ctx, ctxAttrsKey{}, attrs)
}

// ContextHandler appends call-scoped attributes from the context and
// process-wide ones from an optional provider before delegating.
type ContextHandler struct {
	slog.Handler
	provider ContextProvider
}

// NewContextHandler wraps inner. provider may be nil.
func NewContextHandler(inner slog.Handler, provider ContextProvider) *ContextHandler {
	return &ContextHandler{Handler: inner, provider: provider}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}
	if h.provider != nil {
		r.AddAttrs(h.provider()...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs), provider: h.provider}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &ContextHandler{Handler: h.Handler.WithGroup(name), provider: h.provider}
}
