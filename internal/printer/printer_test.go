package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("saved %s", "en-US")
	p.Warnf("skipped %d", 1)
	p.Errorf("failed")
	p.Infof("note")
	p.Printf("plain")
	p.Success("Key added", "Strings.resw")

	want := "✓ saved en-US\n! skipped 1\n✗ failed\n• note\nplain\n✓ Key added\n  Strings.resw\n"
	assert.Equal(t, want, ansi.Strip(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
