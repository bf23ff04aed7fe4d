// Package printer writes styled, human-oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/reswed/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to a writer using the active theme.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext stores p in ctx.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.w, s)
}

func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(styles.IconCheck) + " " + fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedStyle.Render("•") + " " + fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningStyle.Render("!") + " " + fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(styles.IconCross) + " " + fmt.Sprintf(format, args...))
}

// Success prints a title with a muted detail line.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		p.line("  " + styles.MutedStyle.Render(detail))
	}
}

// Section prints a header followed by a divider.
func (p *Printer) Section(title string) {
	p.line("")
	p.line(styles.CommandHeaderStyle.Render(title))
	p.line(styles.DividerStyle.Render("────────────────────────────────"))
}
