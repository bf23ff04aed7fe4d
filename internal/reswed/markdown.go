package reswed

import (
	"context"
	"fmt"
	"text/template"

	"github.com/colonyops/reswed/internal/core/history"
	"github.com/colonyops/reswed/internal/core/resw"
	"github.com/colonyops/reswed/internal/core/suggest"
	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/colonyops/reswed/pkg/tmpl"
)

const keyTemplate = `# {{ .Key }}

{{ code .FullKey }} in {{ code .File }}

| Language | Text |
|----------|------|
{{- range .Values }}
| {{ lang .Lang }} ({{ .Lang }}) | {{ if .Text }}{{ cell .Text }}{{ else }}*empty*{{ end }} |
{{- end }}
{{ if .History }}
## Recent changes
{{ range .History }}
- {{ .At.Format "2006-01-02 15:04" }} {{ .Op }} {{ .Lang }}{{ if .New }}: {{ code .New }}{{ end }}
{{- end }}
{{ end }}`

type keyValue struct {
	Lang string
	Text string
}

type keyDoc struct {
	Key     string
	File    string
	FullKey string
	Values  []keyValue
	History []history.Entry
}

// KeyMarkdown renders key of the open file as a markdown document with its
// text in every language and up to historyLimit recent changes.
func (a *App) KeyMarkdown(ctx context.Context, key string, historyLimit int) (string, error) {
	snap := a.Editor.Snapshot()
	if snap.Empty() {
		return "", workspace.ErrNoFile
	}
	if !snap.HasKey(key) {
		return "", fmt.Errorf("%w: %s", workspace.ErrKeyNotFound, key)
	}

	doc := keyDoc{
		Key:     key,
		File:    snap.Filename,
		FullKey: resw.FullKey(snap.Filename, key),
	}
	for _, l := range snap.Languages {
		doc.Values = append(doc.Values, keyValue{Lang: l, Text: snap.Value(l, key)})
	}

	if historyLimit > 0 && a.History != nil {
		entries, err := a.History.List(ctx, history.Filter{File: snap.Filename, Key: key, Limit: historyLimit})
		if err != nil {
			a.log.Warn().Err(err).Str("key", key).Msg("list history for key")
		}
		doc.History = entries
	}

	return tmpl.Render(keyTemplate, doc, template.FuncMap{"lang": suggest.LanguageName})
}
