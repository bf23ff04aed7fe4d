package reswed

import (
	"context"
	"testing"

	"github.com/colonyops/reswed/internal/core/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_KeyMarkdown(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.app.KeyMarkdown(ctx, "Title", 5)
	require.ErrorIs(t, err, workspace.ErrNoFile)

	require.NoError(t, f.app.OpenFile(ctx, "Strings.resw"))
	require.NoError(t, f.app.Editor.UpdateText(ctx, "en", "Title", "Editor | Main"))

	md, err := f.app.KeyMarkdown(ctx, "Title", 5)
	require.NoError(t, err)

	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "`/Strings/Title` in `Strings.resw`")
	assert.Contains(t, md, `| English (en) | Editor \| Main |`)
	assert.Contains(t, md, "| French (fr) | *empty* |")
	assert.Contains(t, md, "## Recent changes")
	assert.Contains(t, md, "update en: `Editor | Main`")

	_, err = f.app.KeyMarkdown(ctx, "Nope", 0)
	require.ErrorIs(t, err, workspace.ErrKeyNotFound)
}

func TestApp_KeyMarkdownWithoutHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	require.NoError(t, f.app.OpenFile(ctx, "Strings.resw"))

	md, err := f.app.KeyMarkdown(ctx, "Greeting", 0)
	require.NoError(t, err)
	assert.NotContains(t, md, "Recent changes")
	assert.Contains(t, md, "| English (en) | Hello |")
}
