package suggest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const systemPrompt = `You translate user interface strings for a Windows application.
Return EXACTLY ONE JSON object and nothing else. Each property name is a
target language tag and each value is the translated string. Keep
placeholders such as {0} and %s unchanged and keep leading or trailing
whitespace as in the source.`

// LanguageName returns an English display name such as "French (France)"
// for tag, or tag itself when it cannot be parsed.
func LanguageName(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.English.Tags().Name(t); name != "" {
		return name
	}
	return tag
}

// BuildPrompt renders the user message for req.
func BuildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Resource key: %s\n", req.Key)
	if req.File != "" {
		fmt.Fprintf(&b, "Resource file: %s\n", req.File)
	}
	fmt.Fprintf(&b, "Source language: %s (%s)\n", req.Source.Lang, LanguageName(req.Source.Lang))

	src, _ := json.Marshal(req.Source.Text)
	fmt.Fprintf(&b, "Source text: %s\n\n", src)

	b.WriteString("Target languages:\n")
	for _, t := range req.Targets {
		fmt.Fprintf(&b, "- %s (%s)\n", t, LanguageName(t))
	}

	b.WriteString("\nRespond with a JSON object mapping each target language tag to its translation.")
	return b.String()
}

// ParseResponse extracts the translations from a model reply. Markdown code
// fences and text around the JSON object are ignored. Entries keep the
// object's property order; languages not in targets are dropped.
func ParseResponse(key, raw string, targets []string) (Suggestion, error) {
	body := stripFences(raw)

	start := strings.IndexByte(body, '{')
	end := strings.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return Suggestion{}, fmt.Errorf("parse suggestion: no JSON object in response: %w", ErrEmpty)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body[start : end+1])))
	if _, err := dec.Token(); err != nil {
		return Suggestion{}, fmt.Errorf("parse suggestion: %w", err)
	}

	s := Suggestion{Key: key}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Suggestion{}, fmt.Errorf("parse suggestion: %w", err)
		}
		lang, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return Suggestion{}, fmt.Errorf("parse suggestion %s: %w", lang, err)
		}
		text, ok := value.(string)
		if !ok || seen[lang] || (len(targets) > 0 && !slices.Contains(targets, lang)) {
			continue
		}
		seen[lang] = true
		s.Entries = append(s.Entries, Entry{Lang: lang, Text: text})
	}

	if s.Empty() {
		return s, ErrEmpty
	}
	return s, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
