package reswed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/rs/zerolog"
)

// ErrNothingToTranslate is returned when every language of a key is empty.
var ErrNothingToTranslate = errors.New("key has no text in any language")

// SuggestService fetches suggestions for keys of the open file and applies
// them through the editor.
type SuggestService struct {
	editor    *workspace.Editor
	suggester suggest.Suggester
	timeout   time.Duration
	log       zerolog.Logger
}

// NewSuggestService creates a SuggestService. A zero timeout leaves requests
// bounded only by the caller's context.
func NewSuggestService(editor *workspace.Editor, s suggest.Suggester, timeout time.Duration) *SuggestService {
	if s == nil {
		s = suggest.Disabled
	}
	return &SuggestService{
		editor:    editor,
		suggester: s,
		timeout:   timeout,
		log:       logging.Component("suggest"),
	}
}

// Request builds the suggestion request for key from the editor's current
// state. The source is the first language, in language order, with
// non-empty text; every other language is a target.
func (s *SuggestService) Request(key string) (suggest.Request, error) {
	snap := s.editor.Snapshot()
	if snap.Empty() {
		return suggest.Request{}, workspace.ErrNoFile
	}
	if !snap.HasKey(key) {
		return suggest.Request{}, fmt.Errorf("%w: %s", workspace.ErrKeyNotFound, key)
	}

	req := suggest.Request{File: snap.Filename, Key: key}
	for _, lang := range snap.Languages {
		if req.Source.Lang == "" && snap.Value(lang, key) != "" {
			req.Source = suggest.Source{Lang: lang, Text: snap.Value(lang, key)}
			continue
		}
		req.Targets = append(req.Targets, lang)
	}

	if req.Source.Lang == "" {
		return suggest.Request{}, fmt.Errorf("%w: %s", ErrNothingToTranslate, key)
	}
	return req, nil
}

// Fetch asks the provider for translations of key.
func (s *SuggestService) Fetch(ctx context.Context, key string) (suggest.Suggestion, error) {
	req, err := s.Request(key)
	if err != nil {
		return suggest.Suggestion{}, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx = logging.WithKey(logging.WithFile(ctx, req.File), key)

	start := time.Now()
	sugg, err := s.suggester.Suggest(ctx, req)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Dur("took", time.Since(start)).Msg("suggestion failed")
		return suggest.Suggestion{}, fmt.Errorf("suggest %s: %w", key, err)
	}

	s.log.Debug().Ctx(ctx).Int("entries", len(sugg.Entries)).Dur("took", time.Since(start)).Msg("suggestion fetched")
	sugg.File = req.File
	if sugg.Key == "" {
		sugg.Key = key
	}
	return sugg, nil
}

// Apply writes one suggested translation of key in file. It fails with
// workspace.ErrFileChanged when file is no longer open.
func (s *SuggestService) Apply(ctx context.Context, file, key string, e suggest.Entry) error {
	return s.editor.UpdateTextIn(ctx, file, e.Lang, key, e.Text)
}

// ApplyAll writes every entry of sugg to sugg.File in order, one language at
// a time. It stops at the first failure; entries before it stay applied.
func (s *SuggestService) ApplyAll(ctx context.Context, sugg suggest.Suggestion) error {
	for _, e := range sugg.Entries {
		if err := s.Apply(ctx, sugg.File, sugg.Key, e); err != nil {
			return fmt.Errorf("apply %s: %w", e.Lang, err)
		}
	}
	return nil
}

// ClearCache drops cached suggestions when the provider is cached.
func (s *SuggestService) ClearCache(ctx context.Context) (int, error) {
	c, ok := s.suggester.(*suggest.Cached)
	if !ok {
		return 0, nil
	}
	return c.Clear(ctx)
}
