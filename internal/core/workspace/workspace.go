// Package workspace discovers .resw resources on disk and owns the editing
// state of the resource file currently open.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/reswed/internal/core/validate"
)

// DefaultPattern matches .resw files at any depth under the root.
const DefaultPattern = "**/*.resw"

// Resource is one logical resource file and the languages it exists in.
type Resource struct {
	File  string
	Langs []string
	paths map[string]string // lang -> slash path relative to root
}

// Workspace indexes the .resw files under a root directory. The directory
// holding each file names its language, for example
// Strings/en-US/Resources.resw. Files sharing a base name and project
// directory form one resource.
type Workspace struct {
	root    string
	pattern string
	fsys    fs.FS

	mu    sync.RWMutex
	files map[string]*Resource
}

// Discover scans root for files matching pattern. An empty pattern means
// DefaultPattern.
func Discover(root, pattern string) (*Workspace, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	w := &Workspace{
		root:    abs,
		pattern: pattern,
		fsys:    os.DirFS(abs),
	}
	if err := w.Refresh(); err != nil {
		return nil, err
	}
	return w, nil
}

// Refresh rescans the root directory.
func (w *Workspace) Refresh() error {
	matches, err := doublestar.Glob(w.fsys, w.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("scan %s: %w", w.root, err)
	}
	sort.Strings(matches)

	// Resources are grouped by the directory holding the language folders
	// plus the base name, so Strings/en-US/R.resw and Other/en-US/R.resw stay
	// apart.
	type group struct{ dir, name string }
	groups := make(map[group]*Resource)
	dirsByName := make(map[string][]string)

	for _, m := range matches {
		dir := path.Dir(m)
		if dir == "." {
			log.Debug().Str("path", m).Msg("skipping resource outside a language directory")
			continue
		}

		lang := path.Base(dir)
		if err := validate.Language(lang); err != nil {
			log.Debug().Str("path", m).Str("dir", lang).Msg("skipping resource in non-language directory")
			continue
		}

		g := group{dir: path.Dir(dir), name: path.Base(m)}
		res, ok := groups[g]
		if !ok {
			res = &Resource{paths: make(map[string]string)}
			groups[g] = res
			dirsByName[g.name] = append(dirsByName[g.name], g.dir)
		}
		res.paths[lang] = m
		res.Langs = append(res.Langs, lang)
	}

	files := make(map[string]*Resource, len(groups))
	for g, res := range groups {
		res.File = resourceID(g.dir, g.name, len(dirsByName[g.name]) > 1)
		sort.Strings(res.Langs)
		files[res.File] = res
	}

	w.mu.Lock()
	w.files = files
	w.mu.Unlock()
	return nil
}

// resourceID names a resource by its base name, qualified with the slash
// path of its project directory when another project has the same name.
func resourceID(dir, name string, ambiguous bool) string {
	if !ambiguous || dir == "." {
		return name
	}
	return dir + "/" + name
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// Files returns the resource file names, sorted.
func (w *Workspace) Files() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resource returns the named resource file.
func (w *Workspace) Resource(file string) (Resource, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	res, ok := w.files[file]
	if !ok {
		return Resource{}, false
	}
	return Resource{File: res.File, Langs: slices.Clone(res.Langs), paths: res.paths}, true
}

// Languages returns the languages file exists in, sorted, or nil when the
// file is unknown.
func (w *Workspace) Languages(file string) []string {
	res, ok := w.Resource(file)
	if !ok {
		return nil
	}
	return res.Langs
}

// Path returns the absolute path of file in lang.
func (w *Workspace) Path(lang, file string) (string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	res, ok := w.files[file]
	if !ok {
		return "", fmt.Errorf("%s: %w", file, ErrFileNotFound)
	}
	rel, ok := res.paths[lang]
	if !ok {
		return "", fmt.Errorf("%s/%s: %w", lang, file, ErrUnknownLanguage)
	}
	return filepath.Join(w.root, filepath.FromSlash(rel)), nil
}

// OrderLanguages returns langs with base first (when present) and the rest
// in their existing order.
func OrderLanguages(langs []string, base string) []string {
	out := make([]string, 0, len(langs))
	if base != "" && slices.Contains(langs, base) {
		out = append(out, base)
	}
	for _, l := range langs {
		if l != base {
			out = append(out, l)
		}
	}
	return out
}
