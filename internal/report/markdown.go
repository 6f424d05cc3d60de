package report

import (
	"bytes"
	"fmt"
	"strings"

	"goprob/app"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const title = "Probability Report"

// Markdown renders a batch as a markdown document with one table row per scenario
func Markdown(batch *app.BatchResult, opts Options) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("- **Run:** %s\n", batch.RunID))
	buf.WriteString(fmt.Sprintf("- **Started:** %s\n", batch.StartedAt))
	buf.WriteString(fmt.Sprintf("- **Fingerprint:** `%s`\n", batch.Fingerprint))
	buf.WriteString(fmt.Sprintf("- **Runtime:** %d ms\n\n", batch.RuntimeMs))

	buf.WriteString("| Scenario | Exact | Exact value | Estimate | Interval | Trials | Reference |\n")
	buf.WriteString("|---|---|---|---|---|---|---|\n")
	for _, r := range batch.Results {
		exact, exactValue := "", ""
		if r.Exact != nil {
			exact = fmt.Sprintf("%d / %d", r.Exact.Matching, r.Exact.Total)
			exactValue = opts.Decimal(r.Exact.Probability())
		}
		estimate, interval, trials := "", "", ""
		if r.Estimate != nil {
			estimate = opts.Decimal(r.Estimate.Value())
			trials = fmt.Sprintf("%d", r.Estimate.Trials)
			if r.Interval != nil {
				interval = fmt.Sprintf("[%s, %s]", opts.Decimal(r.Interval.Lower), opts.Decimal(r.Interval.Upper))
			}
		}
		reference := ""
		if r.Reference != 0 {
			reference = opts.Decimal(r.Reference)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			cell(r.Scenario), exact, exactValue, estimate, interval, trials, reference))
	}

	buf.WriteString("\n## Scenarios\n\n")
	for _, r := range batch.Results {
		buf.WriteString(fmt.Sprintf("- **%s**: %s\n", r.Scenario, cell(r.Description)))
	}
	return buf.String()
}

// HTML renders the markdown report as a complete HTML page
func HTML(batch *app.BatchResult, opts Options) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(Markdown(batch, opts)))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: title,
	})
	return markdown.Render(doc, renderer)
}

// cell escapes pipes so text cannot break the table
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
