package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/core/logging"
	"github.com/colonyops/reswed/internal/core/resw"
	"github.com/colonyops/reswed/internal/core/validate"
)

// Editor owns the documents of the open resource file. It is the only
// writer of those documents: every mutation goes through one of its
// commands, which run one at a time and persist each changed language
// before returning.
type Editor struct {
	store       Store
	recorder    history.Recorder
	baseLang    string
	defaultText string
	log         zerolog.Logger
	now         func() time.Time

	mu       sync.Mutex
	filename string
	langs    []string
	keys     []string
	docs     map[string]*resw.Document
}

// Option configures an Editor.
type Option func(*Editor)

// WithBaseLanguage sets the language whose keys define the key list and
// which is listed first.
func WithBaseLanguage(lang string) Option {
	return func(e *Editor) { e.baseLang = lang }
}

// WithDefaultText sets the value given to newly added keys.
func WithDefaultText(text string) Option {
	return func(e *Editor) { e.defaultText = text }
}

// WithRecorder records every applied change.
func WithRecorder(r history.Recorder) Option {
	return func(e *Editor) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLogger sets the editor's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// NewEditor creates an Editor with no file open.
func NewEditor(store Store, opts ...Option) *Editor {
	e := &Editor{
		store:       store,
		recorder:    history.Discard,
		defaultText: resw.DefaultText,
		log:         logging.Component("editor"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open loads file and makes it the current file.
func (e *Editor) Open(ctx context.Context, file string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	docs, err := e.store.Load(ctx, file)
	if err != nil {
		return fmt.Errorf("open %s: %w", file, err)
	}

	e.filename = file
	e.setDocs(docs)
	e.log.Info().Str("file", file).Strs("langs", e.langs).Int("keys", len(e.keys)).Msg("opened resource file")
	return nil
}

// Close forgets the current file.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filename = ""
	e.langs = nil
	e.keys = nil
	e.docs = nil
}

// setDocs installs docs and derives the language and key lists.
// Callers hold e.mu.
func (e *Editor) setDocs(docs map[string]*resw.Document) {
	langs := make([]string, 0, len(docs))
	for lang := range docs {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	langs = OrderLanguages(langs, e.baseLang)

	e.docs = docs
	e.langs = langs
	e.keys = nil
	if len(langs) > 0 {
		e.keys = docs[langs[0]].Keys()
	}
}

// Filename returns the open file, or "" when none is open.
func (e *Editor) Filename() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filename
}

// Languages returns the languages of the open file, base language first.
func (e *Editor) Languages() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.langs)
}

// Keys returns the keys of the base language in document order.
func (e *Editor) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.keys)
}

// Value returns the text of key in lang, or "" when either is unknown.
func (e *Editor) Value(lang, key string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value(lang, key)
}

func (e *Editor) value(lang, key string) string {
	doc, ok := e.docs[lang]
	if !ok {
		return ""
	}
	v, _ := doc.Value(key)
	return v
}

// Snapshot returns an immutable copy of the open file's table.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Filename:  e.filename,
		Languages: slices.Clone(e.langs),
		Keys:      slices.Clone(e.keys),
		values:    make(map[string]map[string]string, len(e.langs)),
	}
	for _, lang := range e.langs {
		row := make(map[string]string, len(e.keys))
		for _, key := range e.keys {
			row[key] = e.value(lang, key)
		}
		s.values[lang] = row
	}
	return s
}

// UpdateText sets key in lang to text and writes that language. A key that
// the base language has but lang lacks is added to lang. On a failed write
// the in-memory value is restored.
func (e *Editor) UpdateText(ctx context.Context, lang, key, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.updateText(ctx, lang, key, text)
}

// UpdateTextIn is UpdateText guarded by the open file: it fails with
// ErrFileChanged, writing nothing, unless file is still the open file.
func (e *Editor) UpdateTextIn(ctx context.Context, file, lang, key, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.filename != file {
		return fmt.Errorf("update %s in %s: %w", key, file, ErrFileChanged)
	}
	return e.updateText(ctx, lang, key, text)
}

func (e *Editor) updateText(ctx context.Context, lang, key, text string) error {
	if e.filename == "" {
		return ErrNoFile
	}
	doc, ok := e.docs[lang]
	if !ok {
		return fmt.Errorf("update %s: %s: %w", key, lang, ErrUnknownLanguage)
	}
	if !slices.Contains(e.keys, key) {
		return fmt.Errorf("update %s: %w", key, ErrKeyNotFound)
	}

	ctx = logging.WithLang(logging.WithEntry(ctx, e.filename, key), lang)

	old, existed := doc.Value(key)
	if existed {
		doc.SetValue(key, text)
	} else if err := doc.Append(resw.NewData(key, text)); err != nil {
		return fmt.Errorf("update %s: %s: %w", key, lang, err)
	}

	if err := e.store.Save(ctx, lang, e.filename, doc); err != nil {
		if existed {
			doc.SetValue(key, old)
		} else {
			doc.Remove(key)
		}
		return fmt.Errorf("update %s: %s: %w", key, lang, err)
	}

	e.record(ctx, lang, key, history.OpUpdate, old, text)
	e.log.Debug().Ctx(ctx).Msg("updated text")
	return nil
}

// SubmitLang writes the current document of lang.
func (e *Editor) SubmitLang(ctx context.Context, lang string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submit(ctx, lang)
}

func (e *Editor) submit(ctx context.Context, lang string) error {
	if e.filename == "" {
		return ErrNoFile
	}
	doc, ok := e.docs[lang]
	if !ok {
		return fmt.Errorf("submit %s: %w", lang, ErrUnknownLanguage)
	}
	if err := e.store.Save(ctx, lang, e.filename, doc); err != nil {
		return fmt.Errorf("submit %s: %w", lang, err)
	}
	return nil
}

// Reload discards in-memory documents and reads the open file again.
func (e *Editor) Reload(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reload(ctx)
}

func (e *Editor) reload(ctx context.Context) error {
	if e.filename == "" {
		return ErrNoFile
	}
	docs, err := e.store.Load(ctx, e.filename)
	if err != nil {
		return fmt.Errorf("reload %s: %w", e.filename, err)
	}
	e.setDocs(docs)
	return nil
}

// AddKey appends key with the default text to every language, writing each
// language in order, then reloads. The key is validated and rejected with
// ErrKeyExists when it is already in the key list; a language that already
// has the key on its own is skipped.
func (e *Editor) AddKey(ctx context.Context, key string) (BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := BatchResult{Op: history.OpAdd, Key: key}
	if e.filename == "" {
		return result, ErrNoFile
	}
	if err := validate.Key(key); err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if slices.Contains(e.keys, key) {
		return result, fmt.Errorf("add %s: %w", key, ErrKeyExists)
	}

	ctx = logging.WithEntry(ctx, e.filename, key)

	for _, lang := range e.langs {
		doc := e.docs[lang]
		if doc.Has(key) {
			result.add(lang, StatusSkipped, ErrKeyExists)
			continue
		}
		if err := doc.Append(resw.NewData(key, e.defaultText)); err != nil {
			result.add(lang, StatusFailed, err)
			continue
		}
		if err := e.submit(logging.WithLang(ctx, lang), lang); err != nil {
			result.add(lang, StatusFailed, err)
			continue
		}
		result.add(lang, StatusApplied, nil)
		e.record(ctx, lang, key, history.OpAdd, "", e.defaultText)
	}

	return result, e.finishBatch(ctx, result)
}

// RemoveKey deletes key from every language that has it, writing each
// changed language in order, then reloads.
func (e *Editor) RemoveKey(ctx context.Context, key string) (BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := BatchResult{Op: history.OpRemove, Key: key}
	if e.filename == "" {
		return result, ErrNoFile
	}
	if !slices.Contains(e.keys, key) {
		return result, fmt.Errorf("remove %s: %w", key, ErrKeyNotFound)
	}

	ctx = logging.WithEntry(ctx, e.filename, key)

	for _, lang := range e.langs {
		doc := e.docs[lang]
		old, _ := doc.Value(key)
		if doc.Remove(key) == 0 {
			result.add(lang, StatusSkipped, ErrKeyNotFound)
			continue
		}
		if err := e.submit(logging.WithLang(ctx, lang), lang); err != nil {
			result.add(lang, StatusFailed, err)
			continue
		}
		result.add(lang, StatusApplied, nil)
		e.record(ctx, lang, key, history.OpRemove, old, "")
	}

	return result, e.finishBatch(ctx, result)
}

// RenameKey renames the data element named oldKey to newKey in every
// language that has it. Every language is written, renamed or not, and the
// file is reloaded. Languages without oldKey are reported as skipped with
// ErrKeyNotFound.
func (e *Editor) RenameKey(ctx context.Context, oldKey, newKey string) (BatchResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := BatchResult{Op: history.OpRename, Key: oldKey}
	if e.filename == "" {
		return result, ErrNoFile
	}
	if err := validate.Key(newKey); err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	if newKey != oldKey && slices.Contains(e.keys, newKey) {
		return result, fmt.Errorf("rename %s to %s: %w", oldKey, newKey, ErrKeyExists)
	}

	ctx = logging.WithEntry(ctx, e.filename, oldKey)

	for _, lang := range e.langs {
		doc := e.docs[lang]
		renamed := doc.Rename(oldKey, newKey)

		if err := e.submit(logging.WithLang(ctx, lang), lang); err != nil {
			result.add(lang, StatusFailed, err)
			continue
		}
		if !renamed {
			result.add(lang, StatusSkipped, ErrKeyNotFound)
			continue
		}
		result.add(lang, StatusApplied, nil)
		e.record(ctx, lang, newKey, history.OpRename, oldKey, newKey)
	}

	return result, e.finishBatch(ctx, result)
}

// finishBatch reloads after a batch so memory matches storage, including
// after partial failures, and logs the outcome.
func (e *Editor) finishBatch(ctx context.Context, result BatchResult) error {
	reloadErr := e.reload(ctx)

	if len(result.Failed()) > 0 {
		e.log.Warn().Ctx(ctx).AnErr("batch_error", result.Err()).Str("op", string(result.Op)).Msg(result.Summary())
	} else {
		e.log.Info().Ctx(ctx).Str("op", string(result.Op)).Msg(result.Summary())
	}

	if reloadErr != nil {
		return errors.Join(result.Err(), reloadErr)
	}
	return result.Err()
}

func (e *Editor) record(ctx context.Context, lang, key string, op history.Op, oldVal, newVal string) {
	entry := history.Entry{
		File: e.filename,
		Lang: lang,
		Key:  key,
		Op:   op,
		Old:  oldVal,
		New:  newVal,
		At:   e.now(),
	}
	if err := e.recorder.Record(ctx, entry); err != nil {
		e.log.Warn().Err(err).Ctx(logging.WithLang(ctx, lang)).Msg("failed to record history")
	}
}
