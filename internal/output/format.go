// Package output provides formatters for menu output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskmenu/internal/taskstore"
)

const (
	// Separator is the rule printed above and below section titles.
	Separator = "------------"

	// EmptyMessage is printed in place of an empty task listing.
	EmptyMessage = "no tasks found"
)

// Palette shared with the styles below.
var (
	accentColor  = lipgloss.Color("#5FAFAF")
	subtleColor  = lipgloss.Color("#666666")
	successColor = lipgloss.Color("#87AF87")
	errorColor   = lipgloss.Color("#AF5F5F")
)

// styles are bound to a renderer for a specific writer, so plain writers
// (pipes, buffers) receive unstyled text.
type styles struct {
	title   lipgloss.Style
	subtle  lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(accentColor),
		subtle:  r.NewStyle().Foreground(subtleColor),
		success: r.NewStyle().Foreground(successColor),
		err:     r.NewStyle().Foreground(errorColor),
	}
}

// MenuItem is one selectable line of the menu.
type MenuItem struct {
	Key   string
	Label string
}

// Printer writes formatted output to a single writer. Its styles are
// resolved once, so a long-lived Printer should be reused across calls.
type Printer struct {
	w  io.Writer
	st styles
}

// NewPrinter creates a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, st: newStyles(w)}
}

// Header writes a section title between two separator lines.
func (p *Printer) Header(title string) {
	fmt.Fprintln(p.w, p.st.subtle.Render(Separator))
	fmt.Fprintln(p.w, p.st.title.Render(title))
	fmt.Fprintln(p.w, p.st.subtle.Render(Separator))
}

// Task formats a single task line.
// Format: "{ID:>4}  [x]  {DESCRIPTION}\n", with "[ ]" for pending tasks.
func (p *Printer) Task(task taskstore.Task) {
	mark := p.st.subtle.Render("[ ]")
	if task.Completed {
		mark = p.st.success.Render("[x]")
	}
	fmt.Fprintf(p.w, "%4d  %s  %s\n", task.ID, mark, normalizeDescription(task.Description))
}

// Tasks writes a titled listing, or EmptyMessage when tasks is empty.
func (p *Printer) Tasks(title string, tasks []taskstore.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(p.w, EmptyMessage)
		return
	}
	p.Header(title)
	for _, t := range tasks {
		p.Task(t)
	}
}

// Summary writes the summary block. The percentage is rounded to one
// decimal here and nowhere else.
func (p *Printer) Summary(s taskstore.Summary) {
	p.Header("Summary")
	fmt.Fprintf(p.w, "%-12s%d\n", "Total:", s.Total)
	fmt.Fprintf(p.w, "%-12s%d\n", "Completed:", s.Completed)
	fmt.Fprintf(p.w, "%-12s%d\n", "Pending:", s.Pending)
	fmt.Fprintf(p.w, "%-12s%s\n", "Progress:", FormatPercent(s.PercentComplete))
}

// Menu writes the menu header and its options.
func (p *Printer) Menu(title string, items []MenuItem) {
	p.Header(title)
	for _, item := range items {
		fmt.Fprintf(p.w, "  %s. %s\n", item.Key, item.Label)
	}
}

// Error writes a user-facing error line: "error: {MSG}\n".
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.st.err.Render("error: "+msg))
}

// FormatHeader writes a section title between two separator lines.
func FormatHeader(w io.Writer, title string) { NewPrinter(w).Header(title) }

// FormatTask formats a single task line.
func FormatTask(w io.Writer, task taskstore.Task) { NewPrinter(w).Task(task) }

// FormatTasks writes a titled listing, or EmptyMessage when tasks is empty.
func FormatTasks(w io.Writer, title string, tasks []taskstore.Task) {
	NewPrinter(w).Tasks(title, tasks)
}

// FormatSummary writes the summary block.
func FormatSummary(w io.Writer, s taskstore.Summary) { NewPrinter(w).Summary(s) }

// FormatPercent renders a percentage with one decimal, e.g. "33.3%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatMenu writes the menu header and its options.
func FormatMenu(w io.Writer, title string, items []MenuItem) {
	NewPrinter(w).Menu(title, items)
}

// FormatError writes a user-facing error line.
func FormatError(w io.Writer, msg string) { NewPrinter(w).Error(msg) }

// normalizeDescription normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")

	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
