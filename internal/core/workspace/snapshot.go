package workspace

// Snapshot is an immutable copy of the open file's key x language table.
type Snapshot struct {
	Filename  string
	Languages []string
	Keys      []string
	values    map[string]map[string]string
}

// Empty reports whether no file was open when the snapshot was taken.
func (s Snapshot) Empty() bool {
	return s.Filename == ""
}

// Value returns the text of key in lang, or "".
func (s Snapshot) Value(lang, key string) string {
	return s.values[lang][key]
}

// HasKey reports whether key is in the snapshot's key list.
func (s Snapshot) HasKey(key string) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}
