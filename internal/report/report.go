// Package report renders probability results for people: fixed console
// lines, a markdown summary of a batch and an HTML page built from it.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"goprob/app"
	"goprob/domain/probability"
)

// Format selects a batch rendering
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown or html)", s)
}

// Options control number formatting
type Options struct {
	// Precision is the number of decimals for estimates; 0 prints the
	// shortest form that round-trips.
	Precision int
}

// Decimal formats v with the configured precision
func (o Options) Decimal(v float64) string {
	if o.Precision <= 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', o.Precision, 64)
}

// ExactLine is the console line for an enumerated result
func ExactLine(r probability.ExactResult) string {
	return fmt.Sprintf("Probability is %d / %d", r.Matching, r.Total)
}

// EstimateLine is the console line for a Monte Carlo result. Scaled
// estimates are areas and are reported as such.
func EstimateLine(e probability.Estimate, opts Options) string {
	if e.Scale != 0 {
		return "The area is " + opts.Decimal(e.Value())
	}
	return "Probability is " + opts.Decimal(e.Probability())
}

// WriteResult prints one scenario result in console form
func WriteResult(w io.Writer, r app.ScenarioResult, opts Options) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", r.Scenario, r.Description)
	if r.Exact != nil {
		b.WriteString(ExactLine(*r.Exact))
		b.WriteByte('\n')
	}
	if r.Estimate != nil {
		b.WriteString(EstimateLine(*r.Estimate, opts))
		b.WriteByte('\n')
		if r.Interval != nil {
			fmt.Fprintf(&b, "  %.0f%% interval [%s, %s] over %d trials\n",
				r.Interval.Level*100, opts.Decimal(r.Interval.Lower), opts.Decimal(r.Interval.Upper), r.Estimate.Trials)
		}
		if r.Exact == nil && r.Reference != 0 {
			fmt.Fprintf(&b, "  reference %s\n", opts.Decimal(r.Reference))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Write renders a batch in the given format
func Write(w io.Writer, batch *app.BatchResult, format Format, opts Options) error {
	switch format {
	case FormatText:
		return writeText(w, batch, opts)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(batch, opts))
		return err
	case FormatHTML:
		_, err := w.Write(HTML(batch, opts))
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

func writeText(w io.Writer, batch *app.BatchResult, opts Options) error {
	for i, r := range batch.Results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := WriteResult(w, r, opts); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nrun %s fingerprint %s (%d ms)\n", batch.RunID, shortHash(batch), batch.RuntimeMs)
	return err
}

func shortHash(batch *app.BatchResult) string {
	h := batch.Fingerprint.String()
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
