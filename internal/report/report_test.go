package report

import (
	"bytes"
	"strings"
	"testing"

	"goprob/app"
	"goprob/domain/core"
	"goprob/domain/probability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() *app.BatchResult {
	results := []app.ScenarioResult{
		{
			Scenario:    "full-house",
			Description: "Full house in a five card hand",
			Exact:       &probability.ExactResult{Matching: 3744, Total: 2598960},
			Estimate:    &probability.Estimate{Hits: 14, Trials: 10000},
			Interval:    &probability.Interval{Lower: 0.0008, Upper: 0.0023, Level: 0.95},
			Reference:   3744.0 / 2598960.0,
		},
		{
			Scenario:    "circle-intersection-area",
			Description: "Area shared by two circles",
			Estimate:    &probability.Estimate{Hits: 2047, Trials: 10000, Scale: 24},
			Interval:    &probability.Interval{Lower: 4.75, Upper: 5.08, Level: 0.95},
			Reference:   4.9135,
		},
	}
	return &app.BatchResult{
		RunID:       "run-7",
		Results:     results,
		Fingerprint: app.Fingerprint(results),
		StartedAt:   core.Now(),
		RuntimeMs:   12,
	}
}

func TestConsoleLines(t *testing.T) {
	assert.Equal(t, "Probability is 13 / 270725",
		ExactLine(probability.ExactResult{Matching: 13, Total: 270725}))

	assert.Equal(t, "Probability is 0.6667",
		EstimateLine(probability.Estimate{Hits: 6667, Trials: 10000}, Options{}))
	assert.Equal(t, "Probability is 0.66670",
		EstimateLine(probability.Estimate{Hits: 6667, Trials: 10000}, Options{Precision: 5}))
	assert.Equal(t, "The area is 4.9128",
		EstimateLine(probability.Estimate{Hits: 2047, Trials: 10000, Scale: 24}, Options{}))
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"text":      FormatText,
		" Markdown": FormatMarkdown,
		"md":        FormatMarkdown,
		"HTML":      FormatHTML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), FormatText, Options{Precision: 4}))

	out := buf.String()
	assert.Contains(t, out, "full-house: Full house in a five card hand\nProbability is 3744 / 2598960\nProbability is 0.0014\n")
	assert.Contains(t, out, "The area is 4.9128\n")
	assert.Contains(t, out, "95% interval [4.7500, 5.0800] over 10000 trials")
	assert.Contains(t, out, "reference 4.9135")
	assert.Contains(t, out, "run run-7 fingerprint ")
	// exact scenarios do not repeat their reference
	assert.Equal(t, 1, strings.Count(out, "reference"))
}

func TestMarkdownTable(t *testing.T) {
	md := Markdown(sampleBatch(), Options{Precision: 3})

	assert.True(t, strings.HasPrefix(md, "# Probability Report\n"))
	assert.Contains(t, md, "- **Run:** run-7")
	assert.Contains(t, md, "| full-house | 3744 / 2598960 | 0.001 | 0.001 | [0.001, 0.002] | 10000 | 0.001 |")
	assert.Contains(t, md, "| circle-intersection-area |  |  | 4.913 | [4.750, 5.080] | 10000 | 4.913 |")
	assert.Equal(t, "a \\| b", cell("a | b"))
}

func TestHTMLRendersTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBatch(), FormatHTML, Options{}))

	out := buf.String()
	assert.Contains(t, out, "<title>Probability Report</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>full-house</td>")
	assert.Contains(t, out, "3744 / 2598960")
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleBatch(), Format("pdf"), Options{}))
}
