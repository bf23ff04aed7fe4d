package logging

import (
	"github.com/rs/zerolog"
)

// ContextHook adds the file, lang and key of the event's context scope.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	s := ScopeOf(e.GetCtx())
	if s.empty() {
		return
	}

	if s.File != "" {
		e.Str("file", s.File)
	}
	if s.Lang != "" {
		e.Str("lang", s.Lang)
	}
	if s.Key != "" {
		e.Str("key", s.Key)
	}
}
