package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/reswed/internal/core/resw"
)

// Store loads and persists the per-language documents of a resource file.
type Store interface {
	// Load parses every language of file, keyed by language.
	Load(ctx context.Context, file string) (map[string]*resw.Document, error)
	// Save writes one language of file.
	Save(ctx context.Context, lang, file string, doc *resw.Document) error
}

// FSStore reads and writes resource files inside a Workspace.
type FSStore struct {
	ws *Workspace
}

var _ Store = (*FSStore)(nil)

// NewFSStore creates a Store backed by the workspace's files.
func NewFSStore(ws *Workspace) *FSStore {
	return &FSStore{ws: ws}
}

func (s *FSStore) Load(ctx context.Context, file string) (map[string]*resw.Document, error) {
	res, ok := s.ws.Resource(file)
	if !ok {
		return nil, fmt.Errorf("%s: %w", file, ErrFileNotFound)
	}

	docs := make(map[string]*resw.Document, len(res.Langs))
	for _, lang := range res.Langs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := s.ws.Path(lang, file)
		if err != nil {
			return nil, err
		}

		doc, err := readDocument(p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		docs[lang] = doc
	}

	return docs, nil
}

func readDocument(p string) (*resw.Document, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return resw.Parse(f)
}

// Save writes doc through a temporary file in the same directory and renames
// it over the target, so readers never observe a partial file.
func (s *FSStore) Save(ctx context.Context, lang, file string, doc *resw.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := s.ws.Path(lang, file)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "."+filepath.Base(p)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := doc.Encode(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode %s: %w", p, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(p); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("save %s: %w", p, err)
	}
	return nil
}
