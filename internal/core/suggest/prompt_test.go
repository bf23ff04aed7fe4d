package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		targets []string
		want    []Entry
		wantErr error
	}{
		{
			name:    "plain object keeps order",
			raw:     `{"fr-FR": "Bonjour", "de-DE": "Hallo"}`,
			targets: []string{"de-DE", "fr-FR"},
			want:    []Entry{{Lang: "fr-FR", Text: "Bonjour"}, {Lang: "de-DE", Text: "Hallo"}},
		},
		{
			name:    "fenced",
			raw:     "```json\n{\"fr-FR\": \"Bonjour\"}\n```",
			targets: []string{"fr-FR"},
			want:    []Entry{{Lang: "fr-FR", Text: "Bonjour"}},
		},
		{
			name:    "surrounding prose",
			raw:     "Here you go:\n{\"fr-FR\": \"Salut\"}\nEnjoy.",
			targets: []string{"fr-FR"},
			want:    []Entry{{Lang: "fr-FR", Text: "Salut"}},
		},
		{
			name:    "drops unrequested and non-string values",
			raw:     `{"it-IT": "Ciao", "fr-FR": "Bonjour", "de-DE": 3}`,
			targets: []string{"fr-FR", "de-DE"},
			want:    []Entry{{Lang: "fr-FR", Text: "Bonjour"}},
		},
		{
			name: "no targets keeps everything",
			raw:  `{"it-IT": "Ciao"}`,
			want: []Entry{{Lang: "it-IT", Text: "Ciao"}},
		},
		{
			name:    "empty string is a valid translation",
			raw:     `{"fr-FR": ""}`,
			targets: []string{"fr-FR"},
			want:    []Entry{{Lang: "fr-FR", Text: ""}},
		},
		{
			name:    "no object",
			raw:     "sorry, I cannot help",
			targets: []string{"fr-FR"},
			wantErr: ErrEmpty,
		},
		{
			name:    "nothing usable",
			raw:     `{"it-IT": "Ciao"}`,
			targets: []string{"fr-FR"},
			wantErr: ErrEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse("Greeting", tt.raw, tt.targets)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Greeting", got.Key)
			assert.Equal(t, tt.want, got.Entries)
		})
	}
}

func TestParseResponse_Malformed(t *testing.T) {
	_, err := ParseResponse("K", `{"fr-FR": "unterminated}`, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(Request{
		File:    "Resources.resw",
		Key:     "Greeting",
		Source:  Source{Lang: "en-US", Text: "Hello \"world\""},
		Targets: []string{"fr-FR", "de-DE"},
	})

	assert.Contains(t, p, "Resource key: Greeting")
	assert.Contains(t, p, "Resource file: Resources.resw")
	assert.Contains(t, p, `Source text: "Hello \"world\""`)
	assert.Contains(t, p, "- fr-FR (")
	assert.Contains(t, p, "- de-DE (")
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "French", LanguageName("fr"))
	assert.Equal(t, "not a tag!", LanguageName("not a tag!"))
}

func TestSuggestion_Text(t *testing.T) {
	s := Suggestion{Key: "K", Entries: []Entry{{Lang: "fr-FR", Text: "Bonjour"}}}

	text, ok := s.Text("fr-FR")
	assert.True(t, ok)
	assert.Equal(t, "Bonjour", text)

	_, ok = s.Text("de-DE")
	assert.False(t, ok)
	assert.False(t, s.Empty())
	assert.True(t, Suggestion{}.Empty())
}
