// Package format renders Codecov records for the terminal.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/fatih/color"

	"github.com/s0up4200/codecovctl/schema"
)

// Options controls rendering.
type Options struct {
	// TTY selects aligned tables; otherwise rows are tab separated.
	TTY   bool
	Color bool
	Width int
	// Coverage below WarnBelow is red, at or above GoodAbove green, yellow between.
	WarnBelow float64
	GoodAbove float64
}

// Printer writes records to w.
type Printer struct {
	w    io.Writer
	opts Options

	red    *color.Color
	yellow *color.Color
	green  *color.Color
	bold   *color.Color
	faint  *color.Color
}

// New creates a Printer.
func New(w io.Writer, opts Options) *Printer {
	if opts.Width <= 0 {
		opts.Width = 120
	}
	p := &Printer{
		w:      w,
		opts:   opts,
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.red, p.yellow, p.green, p.bold, p.faint} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Coverage formats a percentage, colored by the configured thresholds.
func (p *Printer) Coverage(pct float64) string {
	return p.coverageColor(pct).Sprint(Percent(pct))
}

func (p *Printer) coverageColor(pct float64) *color.Color {
	switch {
	case pct < p.opts.WarnBelow:
		return p.red
	case pct >= p.opts.GoodAbove:
		return p.green
	default:
		return p.yellow
	}
}

// Percent formats a coverage percentage without color.
func Percent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PageFooter prints the pagination position when running on a terminal.
func (p *Printer) PageFooter(shown, count, totalPages int, hasNext bool) {
	if !p.opts.TTY {
		return
	}
	msg := fmt.Sprintf("\nShowing %d of %d (%d page", shown, count, totalPages)
	if totalPages != 1 {
		msg += "s"
	}
	msg += ")"
	if hasNext {
		msg += ", use --all to fetch every page"
	}
	fmt.Fprintln(p.w, p.faint.Sprint(msg))
}

func (p *Printer) table(headers ...string) tableprinter.TablePrinter {
	t := tableprinter.New(p.w, p.opts.TTY, p.opts.Width)
	t.AddHeader(headers, tableprinter.WithColor(paint(p.bold)))
	return t
}

func (p *Printer) addCoverage(t tableprinter.TablePrinter, totals *schema.CommitTotal) {
	if totals == nil {
		t.AddField("-")
		return
	}
	t.AddField(Percent(totals.Coverage), tableprinter.WithColor(paint(p.coverageColor(totals.Coverage))))
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func boolField(b *bool) string {
	if b == nil {
		return "-"
	}
	return strconv.FormatBool(*b)
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func firstLine(s *string) string {
	if s == nil {
		return "-"
	}
	line, _, _ := strings.Cut(*s, "\n")
	return line
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func paint(c *color.Color) func(string) string {
	return func(s string) string { return c.Sprint(s) }
}
