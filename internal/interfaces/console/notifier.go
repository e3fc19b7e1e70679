package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rankmath/repair-action-scheduler/internal/domain/models"
)

// Notifier prints repair notices to a terminal.
type Notifier struct {
	out io.Writer
}

// NewNotifier creates a Notifier writing to out, or stdout when out is nil.
func NewNotifier(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stdout
	}
	return &Notifier{out: out}
}

// Notify writes the notice, one message per line, under a level marker.
func (n *Notifier) Notify(_ context.Context, notice models.Notice) error {
	if _, err := fmt.Fprintf(n.out, "%s Repair Action Scheduler\n", levelMarker(notice.Level)); err != nil {
		return err
	}
	for _, msg := range notice.Messages {
		if _, err := fmt.Fprintf(n.out, "  %s\n", msg); err != nil {
			return err
		}
	}
	return nil
}

func levelMarker(level models.NoticeLevel) string {
	switch level {
	case models.NoticeError:
		return color.New(color.FgRed).Sprint("[ERROR]")
	case models.NoticeWarning:
		return color.New(color.FgYellow).Sprint("[WARN] ")
	default:
		return color.New(color.FgGreen).Sprint("[INFO] ")
	}
}

// StatusLabel renders a table health marker for the inspect report.
func StatusLabel(ins models.Inspection) string {
	switch {
	case !ins.Exists:
		return color.New(color.FgRed).Sprint("MISSING")
	case !ins.Sound():
		return color.New(color.FgYellow).Sprint("CORRUPT")
	default:
		return color.New(color.FgGreen).Sprint("OK     ")
	}
}

// YesNo renders a boolean column for the inspect report.
func YesNo(v bool) string {
	if v {
		return color.New(color.FgGreen).Sprint("yes")
	}
	return color.New(color.FgRed).Sprint("no ")
}
