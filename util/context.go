package util

import "context"

type warningsKey struct{}

type warnings struct {
	errs []error
}

// WithWarnings returns a copy of ctx carrying a warning collector. Phases
// record non-fatal conditions into it so the command layer can surface them
// after the phase returns.
func WithWarnings(ctx context.Context) context.Context {
	return context.WithValue(ctx, warningsKey{}, new(warnings))
}

func AddWarning(ctx context.Context, err error) {
	if w, ok := ctx.Value(warningsKey{}).(*warnings); ok {
		w.errs = append(w.errs, err)
	}
}

func Warnings(ctx context.Context) []error {
	if w, ok := ctx.Value(warningsKey{}).(*warnings); ok {
		return w.errs
	}

	return nil
}
