package workspace

import "errors"

var (
	// ErrNoFile is returned by Editor operations when no file is open.
	ErrNoFile = errors.New("no file open")
	// ErrFileNotFound is returned when a resource file is not in the workspace.
	ErrFileNotFound = errors.New("resource file not found")
	// ErrUnknownLanguage is returned for a language the open file lacks.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrKeyExists is returned when adding or renaming onto an existing key.
	ErrKeyExists = errors.New("key already exists")
	// ErrKeyNotFound is returned when a key is absent.
	ErrKeyNotFound = errors.New("key not found")
	// ErrFileChanged is returned when a write targets a file that is no
	// longer the open one.
	ErrFileChanged = errors.New("open file changed")
	// ErrInvalidKey wraps key validation failures.
	ErrInvalidKey = errors.New("invalid key")
)
