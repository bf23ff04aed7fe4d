// Package history defines edit history domain types and interfaces.
package history

import (
	"context"
	"time"
)

// Op names the kind of change recorded in an Entry.
type Op string

const (
	OpUpdate Op = "update"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpRename Op = "rename"
)

// Entry is one applied change to one language of a resource file.
// For renames Old and New hold the key names; otherwise they hold the text
// before and after the change.
type Entry struct {
	ID   int64     `json:"id"`
	File string    `json:"file"`
	Lang string    `json:"lang"`
	Key  string    `json:"key"`
	Op   Op        `json:"op"`
	Old  string    `json:"old,omitempty"`
	New  string    `json:"new,omitempty"`
	At   time.Time `json:"at"`
}

// Filter narrows a history listing. Zero values match everything.
type Filter struct {
	File  string
	Key   string
	Limit int
}

// Recorder appends entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store persists and lists entries, newest first.
type Store interface {
	Recorder
	List(ctx context.Context, f Filter) ([]Entry, error)
}

// Discard is a Recorder that drops every entry.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(context.Context, Entry) error { return nil }
