package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_Accumulates(t *testing.T) {
	ctx := WithFile(context.Background(), "Resources.resw")
	ctx = WithKey(ctx, "AppTitle")
	ctx = WithLang(ctx, "fr-FR")

	assert.Equal(t, Scope{File: "Resources.resw", Lang: "fr-FR", Key: "AppTitle"}, ScopeOf(ctx))
	assert.Equal(t, "Resources.resw", GetFile(ctx))
	assert.Equal(t, "fr-FR", GetLang(ctx))
	assert.Equal(t, "AppTitle", GetKey(ctx))
}

func TestScope_NotPresent(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Scope{}, ScopeOf(ctx))
	assert.Empty(t, GetFile(ctx))
	assert.Empty(t, GetLang(ctx))
	assert.Empty(t, GetKey(ctx))
}

func TestScope_ChildDoesNotLeakIntoParent(t *testing.T) {
	parent := WithEntry(context.Background(), "Errors.resw", "NotFound.Text")

	for _, lang := range []string{"en-US", "de-DE"} {
		child := WithLang(parent, lang)
		assert.Equal(t, lang, GetLang(child))
		assert.Equal(t, "NotFound.Text", GetKey(child))
	}
	assert.Empty(t, GetLang(parent))
}

func TestWithEntry_ReplacesKey(t *testing.T) {
	ctx := WithLang(WithEntry(context.Background(), "Errors.resw", "Old"), "en-US")
	ctx = WithEntry(ctx, "Errors.resw", "New")

	assert.Equal(t, Scope{File: "Errors.resw", Lang: "en-US", Key: "New"}, ScopeOf(ctx))
}
