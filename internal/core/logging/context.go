package logging

import "context"

type scopeKey struct{}

// Scope names the resource an operation works on. Empty fields are left
// out of log events.
type Scope struct {
	File string
	Lang string
	Key  string
}

func (s Scope) empty() bool {
	return s == Scope{}
}

// ScopeOf returns the scope stored in ctx, or the zero Scope.
func ScopeOf(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(Scope)
	return s
}

func withScope(ctx context.Context, update func(*Scope)) context.Context {
	s := ScopeOf(ctx)
	update(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithFile sets the resource file of the scope.
func WithFile(ctx context.Context, file string) context.Context {
	return withScope(ctx, func(s *Scope) { s.File = file })
}

// WithLang sets the language folder of the scope, e.g. "fr-FR".
func WithLang(ctx context.Context, lang string) context.Context {
	return withScope(ctx, func(s *Scope) { s.Lang = lang })
}

// WithKey sets the resource key of the scope.
func WithKey(ctx context.Context, key string) context.Context {
	return withScope(ctx, func(s *Scope) { s.Key = key })
}

// WithEntry scopes ctx to one key of file.
func WithEntry(ctx context.Context, file, key string) context.Context {
	return withScope(ctx, func(s *Scope) {
		s.File = file
		s.Key = key
	})
}

// GetFile retrieves the resource file name from the context.
func GetFile(ctx context.Context) string { return ScopeOf(ctx).File }

// GetLang retrieves the language from the context.
func GetLang(ctx context.Context) string { return ScopeOf(ctx).Lang }

// GetKey retrieves the resource key from the context.
func GetKey(ctx context.Context) string { return ScopeOf(ctx).Key }
