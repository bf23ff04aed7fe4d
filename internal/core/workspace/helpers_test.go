package workspace

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/core/resw"
)

// kv is one key/value pair of a test document.
type kv struct{ key, value string }

func reswXML(pairs ...kv) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n<root>\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "  <data name=%q xml:space=\"preserve\">\n    <value>%s</value>\n  </data>\n", p.key, p.value)
	}
	b.WriteString("</root>\n")
	return b.String()
}

// memStore keeps serialized documents so every Load parses fresh trees,
// like reading from disk.
type memStore struct {
	files  map[string]map[string][]byte
	saves  []string
	loads  int
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		files:  make(map[string]map[string][]byte),
		failOn: make(map[string]error),
	}
}

func (s *memStore) put(file, lang, xml string) {
	if s.files[file] == nil {
		s.files[file] = make(map[string][]byte)
	}
	s.files[file][lang] = []byte(xml)
}

func (s *memStore) Load(_ context.Context, file string) (map[string]*resw.Document, error) {
	s.loads++
	langs, ok := s.files[file]
	if !ok {
		return nil, ErrFileNotFound
	}
	out := make(map[string]*resw.Document, len(langs))
	for lang, data := range langs {
		doc, err := resw.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		out[lang] = doc
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, lang, file string, doc *resw.Document) error {
	s.saves = append(s.saves, lang)
	if err := s.failOn[lang]; err != nil {
		return err
	}
	s.files[file][lang] = doc.Bytes()
	return nil
}

// stored parses what the store currently holds for lang.
func (s *memStore) stored(t *testing.T, file, lang string) *resw.Document {
	t.Helper()
	doc, err := resw.Parse(bytes.NewReader(s.files[file][lang]))
	require.NoError(t, err)
	return doc
}

type recorder struct {
	entries []history.Entry
}

func (r *recorder) Record(_ context.Context, e history.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

// openEditor returns an editor with Strings.resw open in en-US, de-DE and
// fr-FR, base language en-US.
func openEditor(t *testing.T) (*Editor, *memStore, *recorder) {
	t.Helper()

	store := newMemStore()
	store.put("Strings.resw", "en-US", reswXML(kv{"Title", "Hello"}, kv{"Greeting", "Hi"}))
	store.put("Strings.resw", "fr-FR", reswXML(kv{"Title", "Bonjour"}, kv{"Greeting", "Salut"}))
	store.put("Strings.resw", "de-DE", reswXML(kv{"Title", "Hallo"}, kv{"Greeting", "Hi"}))

	rec := &recorder{}
	e := NewEditor(store, WithBaseLanguage("en-US"), WithRecorder(rec))
	require.NoError(t, e.Open(context.Background(), "Strings.resw"))

	store.saves = nil
	store.loads = 0
	return e, store, rec
}
