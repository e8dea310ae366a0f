package logging

import (
	"context"
	"errors"
	"log/slog"
)

// tee writes each record to the terminal and to the rolling file. The two
// sides filter by their own level, so the file can keep raw trace bodies
// while the terminal stays at info.
type tee struct {
	term slog.Handler
	file slog.Handler
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	return t.term.Enabled(ctx, level) || t.file.Enabled(ctx, level)
}

func (t tee) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler signature
	var termErr, fileErr error

	if t.term.Enabled(ctx, r.Level) {
		termErr = t.term.Handle(ctx, r.Clone())
	}

	if t.file.Enabled(ctx, r.Level) {
		fileErr = t.file.Handle(ctx, r)
	}

	return errors.Join(termErr, fileErr)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return tee{term: t.term.WithAttrs(attrs), file: t.file.WithAttrs(attrs)}
}

func (t tee) WithGroup(name string) slog.Handler {
	return tee{term: t.term.WithGroup(name), file: t.file.WithGroup(name)}
}
