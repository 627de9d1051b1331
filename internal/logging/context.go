package logging

import "context"

type contextKey struct{}

// Fields are attached to every log record emitted with a context that
// carries them.
type Fields struct {
	SessionID string
	Module    string
	Component string // e.g. "conversation", "questiongen"
}

// WithFields merges f into the fields already on ctx; empty values keep
// the existing ones.
func WithFields(ctx context.Context, f Fields) context.Context {
	merged := FieldsFrom(ctx)
	if f.SessionID != "" {
		merged.SessionID = f.SessionID
	}
	if f.Module != "" {
		merged.Module = f.Module
	}
	if f.Component != "" {
		merged.Component = f.Component
	}
	return context.WithValue(ctx, contextKey{}, merged)
}

// FieldsFrom returns the fields on ctx, or the zero value.
func FieldsFrom(ctx context.Context) Fields {
	if f, ok := ctx.Value(contextKey{}).(Fields); ok {
		return f
	}
	return Fields{}
}
