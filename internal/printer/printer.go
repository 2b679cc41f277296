// Package printer writes styled, human oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/alert"
	"github.com/Ntiendat-2k3/Fast-Food-Website-sub001/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to a writer, usually stderr so that stdout
// stays machine readable.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a stderr printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(styles.IconNotifySuccess), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedStyle.Render(styles.IconNotifyInfo), format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.CountBadgeStyle.Render(styles.IconNotifyWarning), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(styles.IconNotifyError), format, args...)
}

// Success prints a title with an optional muted detail line.
func (p *Printer) Success(title, detail string) {
	p.Successf("%s", title)
	if detail != "" {
		p.Printf("  %s", styles.MutedStyle.Render(detail))
	}
}

// Alert prints an alert at its level. It is used as an alert.Bus
// subscriber so command feedback matches the board's toasts.
func (p *Printer) Alert(a alert.Alert) {
	switch a.Level {
	case alert.LevelError:
		p.Errorf("%s", a.Message)
	case alert.LevelWarning:
		p.Warnf("%s", a.Message)
	case alert.LevelSuccess:
		p.Successf("%s", a.Message)
	default:
		p.Infof("%s", a.Message)
	}
}

func (p *Printer) line(icon, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
