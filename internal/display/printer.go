// Package display renders page snapshots for the terminal.
package display

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobsearch-console/internal/format"
	"github.com/jonathan/jobsearch-console/internal/pages"
	"github.com/jonathan/jobsearch-console/internal/tasks"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
	// lineWidth is the usable width inside a box
	lineWidth = boxWidth - 4
)

// Messages shown for resource states.
const (
	loadingText = "Loading…"
	errorMark   = "⚠ "
)

// Printer writes boxes to out.
type Printer struct {
	out io.Writer

	Locale   format.Locale
	Location *time.Location
	Salary   format.SalaryLabels
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:      out,
		Locale:   format.LocaleRU,
		Location: time.Local,
		Salary:   format.DefaultSalaryLabels(),
	}
}

// printBox prints a formatted box with a title and content. Long lines are
// wrapped at word boundaries.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", lineWidth, format.Truncate(title, lineWidth))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range wrap(content, lineWidth) {
		fmt.Fprintf(p.out, "│ %-*s │\n", lineWidth, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printNotice prints a one-line box without a title bar.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printNotice(text string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	for _, line := range wrap(text, lineWidth) {
		fmt.Fprintf(p.out, "│ %-*s │\n", lineWidth, line)
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintError prints an error banner. Nothing is printed for an empty message.
func (p *Printer) PrintError(msg string) {
	if msg == "" {
		return
	}
	p.printNotice(errorMark + msg)
}

// PrintNotice prints an informational banner.
func (p *Printer) PrintNotice(msg string) {
	if msg == "" {
		return
	}
	p.printNotice(msg)
}

// PrintTask prints the state of a tracked task. Idle tasks print nothing.
func (p *Printer) PrintTask(title string, ts pages.TaskState) {
	if ts.Phase == tasks.PhaseIdle && ts.Error == "" {
		return
	}
	p.printBox(title, taskLine(ts))
}

func taskLine(ts pages.TaskState) string {
	id := ts.ID
	if id == "" {
		id = "(starting)"
	}
	switch ts.Phase {
	case tasks.PhaseSuccess:
		if ts.Message != "" {
			return fmt.Sprintf("✓ %s: %s", id, ts.Message)
		}
		return fmt.Sprintf("✓ %s finished", id)
	case tasks.PhaseFailure:
		return fmt.Sprintf("✗ %s: %s", id, ts.Error)
	case tasks.PhasePending:
		return fmt.Sprintf("… %s %s", id, ts.State)
	default:
		return errorMark + ts.Error
	}
}

// resourceState returns the text for a resource that has no data to show:
// still loading, failed, or loaded but empty.
func resourceState[T any](r pages.Resource[T], isEmpty func(T) bool, empty string) (string, bool) {
	switch {
	case r.Error != "":
		return errorMark + r.Error, true
	case r.Loading || !r.Loaded:
		return loadingText, true
	case r.Empty(isEmpty):
		return empty, true
	}
	return "", false
}

// list appends up to limit items under a heading, noting how many were cut.
func list(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// wrap splits text into lines of at most width runes, breaking at spaces
// where possible. Existing line breaks and leading indentation are kept.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		indent := para[:len(para)-len(strings.TrimLeft(para, " "))]
		room := width - utf8.RuneCountInString(indent)
		if room < 1 {
			indent, room = "", width
		}

		var line []rune
		flush := func() {
			out = append(out, indent+string(line))
			line = line[:0]
		}
		for _, word := range words {
			w := []rune(word)
			for len(w) > room {
				if len(line) > 0 {
					flush()
				}
				line = append(line, w[:room]...)
				flush()
				w = w[room:]
			}
			if len(w) == 0 {
				continue
			}
			if len(line) > 0 && len(line)+1+len(w) > room {
				flush()
			}
			if len(line) > 0 {
				line = append(line, ' ')
			}
			line = append(line, w...)
		}
		if len(line) > 0 {
			flush()
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
