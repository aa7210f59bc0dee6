package notifier

import (
	"context"
	"io"

	"github.com/fatih/color"
	"github.com/secmon-lab/tapnote/pkg/domain/interfaces"
	"github.com/secmon-lab/tapnote/pkg/domain/model/tap"
)

// Console writes tap notifications to a terminal with color formatting.
// Useful for CLI mode and debugging.
type Console struct {
	w io.Writer
}

var _ interfaces.TapNotifier = (*Console)(nil)

// NewConsole creates a console notifier writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (n *Console) NotifyTap(ctx context.Context, ev *tap.EventNotification) error {
	return tap.Visit[error](ev.Notification(), &consolePrinter{w: n.w, message: ev.Message()})
}

type consolePrinter struct {
	w       io.Writer
	message string
}

func (p *consolePrinter) Matched(tap.Matched) error {
	_, err := color.New(color.FgGreen, color.Bold).Fprintf(p.w, "✔ %s\n", p.message)
	return err
}

func (p *consolePrinter) NotMatched(tap.NotMatched) error {
	_, err := color.New(color.FgYellow, color.Bold).Fprintf(p.w, "… %s\n", p.message)
	return err
}

func (p *consolePrinter) InvalidMatch(x tap.InvalidMatch) error {
	red := color.New(color.FgRed, color.Bold)
	gray := color.New(color.FgHiBlack)

	if _, err := red.Fprintf(p.w, "✘ %s\n", p.message); err != nil {
		return err
	}
	for _, id := range x.InvalidMatches() {
		if _, err := gray.Fprintf(p.w, "  - %s\n", id); err != nil {
			return err
		}
	}
	return nil
}
