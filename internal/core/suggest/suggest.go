// Package suggest fetches machine translation suggestions for one key of a
// resource file from a language model provider.
package suggest

import (
	"context"
	"errors"
)

var (
	// ErrDisabled is returned when no provider is configured.
	ErrDisabled = errors.New("suggestions are disabled")
	// ErrEmpty is returned when a provider answered without any usable
	// translation.
	ErrEmpty = errors.New("no suggestions returned")
)

// Source is the text translations are made from.
type Source struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// Request asks for translations of one key into Targets.
type Request struct {
	File    string
	Key     string
	Source  Source
	Targets []string
}

// Entry is one proposed translation.
type Entry struct {
	Lang string `json:"lang"`
	Text string `json:"text"`
}

// Suggestion is the ordered set of proposed translations for one key of
// File.
type Suggestion struct {
	File    string  `json:"file,omitempty"`
	Key     string  `json:"key"`
	Entries []Entry `json:"entries"`
}

// Empty reports whether the suggestion has no entries.
func (s Suggestion) Empty() bool {
	return len(s.Entries) == 0
}

// Text returns the proposed text for lang.
func (s Suggestion) Text(lang string) (string, bool) {
	for _, e := range s.Entries {
		if e.Lang == lang {
			return e.Text, true
		}
	}
	return "", false
}

// Suggester produces translation suggestions.
type Suggester interface {
	Suggest(ctx context.Context, req Request) (Suggestion, error)
}

// SuggesterFunc adapts a function to Suggester.
type SuggesterFunc func(ctx context.Context, req Request) (Suggestion, error)

func (f SuggesterFunc) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	return f(ctx, req)
}

// Disabled is the Suggester used when the provider is "none".
var Disabled Suggester = SuggesterFunc(func(context.Context, Request) (Suggestion, error) {
	return Suggestion{}, ErrDisabled
})
