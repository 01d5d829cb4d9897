// Package console prints rendered boards to a terminal with colors.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"bord/internal/engine"
	"bord/internal/model"
)

type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer

	chrome    lipgloss.Style
	header    lipgloss.Style
	completed lipgloss.Style
	low       lipgloss.Style
	medium    lipgloss.Style
	high      lipgloss.Style
}

// New returns a Printer writing to w. With color false, or when w is not a
// terminal, lines are printed without escape codes.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:         w,
		renderer:  r,
		chrome:    r.NewStyle().Foreground(lipgloss.Color("6")),
		header:    r.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
		completed: r.NewStyle().Foreground(lipgloss.Color("2")),
		low:       r.NewStyle().Foreground(lipgloss.Color("4")),
		medium:    r.NewStyle().Foreground(lipgloss.Color("3")),
		high:      r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (p *Printer) taskStyle(task *model.Task) lipgloss.Style {
	switch {
	case task == nil:
		return p.renderer.NewStyle()
	case task.IsCompleted:
		return p.completed
	case task.Priority >= model.PriorityHigh:
		return p.high
	case task.Priority == model.PriorityMedium:
		return p.medium
	default:
		return p.low
	}
}

func (p *Printer) style(line engine.Line) lipgloss.Style {
	switch line.Kind {
	case engine.LineTitle, engine.LineRule, engine.LineSeparator, engine.LineSummary:
		return p.chrome
	case engine.LineBoardHeader:
		return p.header
	case engine.LineTask:
		return p.taskStyle(line.Task)
	default:
		return p.renderer.NewStyle()
	}
}

// Print writes every line of the report.
func (p *Printer) Print(report engine.Report) error {
	for _, line := range report.Lines {
		text := line.Text
		if text != "" {
			text = p.style(line).Render(text)
		}
		if _, err := fmt.Fprintln(p.w, text); err != nil {
			return err
		}
	}
	return nil
}

// Message prints a single uncolored line, used for error notices.
func (p *Printer) Message(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
