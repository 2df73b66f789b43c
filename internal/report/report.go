// Package report renders a resolution result for humans: the load order and
// the issue list, with severity coloring when the output supports it.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vk/plugrid/internal/issue"
	"github.com/vk/plugrid/internal/resolve"
)

var (
	headerColor  = color.New(color.FgBlue, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// fatalKinds are the findings that make the printed order unusable or
// absent; everything else renders as a warning.
var fatalKinds = map[issue.Kind]bool{
	issue.CircularDependency: true,
}

// Writer renders resolution results to a single output stream.
type Writer struct {
	out io.Writer
	// noColor disables ANSI coloring regardless of TTY detection.
	noColor bool
}

// NewWriter creates a report writer. fatih/color already disables itself on
// non-TTY outputs; noColor forces plain output unconditionally.
func NewWriter(out io.Writer, noColor bool) *Writer {
	return &Writer{out: out, noColor: noColor}
}

// Write renders the full report: issues first (so they are visible even when
// the order is long), then the load order or the reason there is none.
func (w *Writer) Write(result *resolve.Result) {
	if len(result.Issues) > 0 {
		w.printf(headerColor, "Validation issues (%d)\n", len(result.Issues))
		for _, i := range result.Issues {
			if fatalKinds[i.Kind] {
				w.printf(errorColor, "  ✗ %s\n", i)
			} else {
				w.printf(warningColor, "  ⚠ %s\n", i)
			}
		}
		fmt.Fprintln(w.out)
	}

	if len(result.Order) == 0 {
		if result.HasCycle() {
			w.printf(errorColor, "No load order: resolution blocked by circular dependencies.\n")
		} else {
			w.printf(dimColor, "No plugins to load.\n")
		}
		return
	}

	w.printf(successColor, "Load order (%d plugins)\n", len(result.Order))
	for i, id := range result.Order {
		fmt.Fprintf(w.out, "  %3d. %s\n", i+1, id)
	}
}

// printf writes through the given color when coloring is enabled and falls
// back to plain formatting otherwise.
func (w *Writer) printf(c *color.Color, format string, args ...any) {
	if w.noColor {
		fmt.Fprintf(w.out, format, args...)
		return
	}
	_, _ = c.Fprintf(w.out, format, args...)
}
