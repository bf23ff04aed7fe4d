package tui

// BuildInfo holds build-time metadata for display in the TUI.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// String renders the version line shown in the status bar.
func (b BuildInfo) String() string {
	if b.Version == "" {
		return "reswed dev"
	}
	s := "reswed " + b.Version
	if b.Commit != "" {
		s += " (" + b.Commit + ")"
	}
	return s
}
