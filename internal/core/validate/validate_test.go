package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Title", false},
		{"dotted property path", "SaveButton.Content", false},
		{"with inner space", "Save As", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"leading space", " Title", true},
		{"trailing newline", "Title\n", true},
		{"slash", "Menu/Title", true},
		{"control char", "Ti\x00tle", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Key(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "Key(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestKeyField(t *testing.T) {
	err := criterio.ValidateStruct(KeyField("key", ""))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "key")

	assert.NoError(t, criterio.ValidateStruct(KeyField("key", "Title")))
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"locale", "en-US", false},
		{"short", "fr", false},
		{"empty", "", true},
		{"path", "en/US", true},
		{"windows path", `en\US`, true},
		{"script subtag", "zh-Hant-TW", false},
		{"not a tag", "not a tag!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Language(tt.input)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
