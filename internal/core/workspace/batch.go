package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/colonyops/reswed/internal/core/history"
)

// Status is the outcome of a batch operation for one language.
type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// LangResult is the outcome of a batch operation for one language. Err is
// set for skipped and failed languages.
type LangResult struct {
	Lang   string
	Status Status
	Err    error
}

// BatchResult reports a multi-language operation language by language.
// Every language is attempted; successful writes are not rolled back when a
// later language fails.
type BatchResult struct {
	Op    history.Op
	Key   string
	Langs []LangResult
}

func (r *BatchResult) add(lang string, status Status, err error) {
	r.Langs = append(r.Langs, LangResult{Lang: lang, Status: status, Err: err})
}

func (r BatchResult) langsWith(s Status) []string {
	var out []string
	for _, l := range r.Langs {
		if l.Status == s {
			out = append(out, l.Lang)
		}
	}
	return out
}

// Applied returns the languages that were changed and written.
func (r BatchResult) Applied() []string { return r.langsWith(StatusApplied) }

// Skipped returns the languages left untouched.
func (r BatchResult) Skipped() []string { return r.langsWith(StatusSkipped) }

// Failed returns the languages whose change or write failed.
func (r BatchResult) Failed() []string { return r.langsWith(StatusFailed) }

// Partial reports whether some languages were applied and others failed.
func (r BatchResult) Partial() bool {
	return len(r.Applied()) > 0 && len(r.Failed()) > 0
}

// Err joins the errors of all failed languages, or returns nil.
func (r BatchResult) Err() error {
	var errs []error
	for _, l := range r.Langs {
		if l.Status == StatusFailed {
			errs = append(errs, fmt.Errorf("%s: %w", l.Lang, l.Err))
		}
	}
	return errors.Join(errs...)
}

// Summary renders a one line description such as
// "rename Title: applied en-US, fr-FR; skipped de-DE".
func (r BatchResult) Summary() string {
	var parts []string
	for _, s := range []Status{StatusApplied, StatusSkipped, StatusFailed} {
		if langs := r.langsWith(s); len(langs) > 0 {
			parts = append(parts, string(s)+" "+strings.Join(langs, ", "))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s %s: no languages", r.Op, r.Key)
	}
	return fmt.Sprintf("%s %s: %s", r.Op, r.Key, strings.Join(parts, "; "))
}
