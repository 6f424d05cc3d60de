package excel

import (
	"fmt"
	"log"
	"os"
	"time"

	"goprob/app"

	"github.com/xuri/excelize/v2"
)

// Sheet names used in exported workbooks
const (
	ResultsSheet = "Results"
	RunSheet     = "Run"
)

var resultHeaders = []interface{}{
	"Scenario", "Description", "Matching", "Total", "Exact",
	"Hits", "Trials", "Estimate", "Lower", "Upper", "Level", "Reference", "Runtime ms",
}

// WorkbookWriter exports batch results as an xlsx workbook
type WorkbookWriter struct{}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write builds the workbook for batch and saves it to path
func (w *WorkbookWriter) Write(batch *app.BatchResult, path string) error {
	startTime := time.Now()
	f, err := w.Build(batch)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	log.Printf("[WorkbookWriter] wrote %d results to %s in %.2fms",
		len(batch.Results), path, float64(time.Since(startTime).Nanoseconds())/1e6)
	return nil
}

// Build lays out the Results and Run sheets. The caller closes the file.
func (w *WorkbookWriter) Build(batch *app.BatchResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name results sheet: %w", err)
	}

	if err := writeResults(f, batch); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRun(f, batch); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeResults(f *excelize.File, batch *app.BatchResult) error {
	if err := f.SetSheetRow(ResultsSheet, "A1", &resultHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(resultHeaders), 1)
	if err := f.SetCellStyle(ResultsSheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style headers: %w", err)
	}

	for i, r := range batch.Results {
		row := make([]interface{}, len(resultHeaders))
		row[0] = r.Scenario
		row[1] = r.Description
		if r.Exact != nil {
			row[2] = r.Exact.Matching
			row[3] = r.Exact.Total
			row[4] = r.Exact.Probability()
		}
		if r.Estimate != nil {
			row[5] = r.Estimate.Hits
			row[6] = r.Estimate.Trials
			row[7] = r.Estimate.Value()
		}
		if r.Interval != nil {
			row[8] = r.Interval.Lower
			row[9] = r.Interval.Upper
			row[10] = r.Interval.Level
		}
		if r.Reference != 0 {
			row[11] = r.Reference
		}
		row[12] = r.RuntimeMs

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.Scenario, err)
		}
	}

	if err := f.SetColWidth(ResultsSheet, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(ResultsSheet, "B", "B", 60)
}

func writeRun(f *excelize.File, batch *app.BatchResult) error {
	if _, err := f.NewSheet(RunSheet); err != nil {
		return fmt.Errorf("failed to create run sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Run ID", batch.RunID.String()},
		{"Started", batch.StartedAt.String()},
		{"Fingerprint", batch.Fingerprint.String()},
		{"Runtime ms", batch.RuntimeMs},
		{"Scenarios", len(batch.Results)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(RunSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write run metadata: %w", err)
		}
	}
	return nil
}

// ReadRows returns the string rows of one sheet of an exported workbook
func ReadRows(path, sheet string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook not found: %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	return rows, nil
}
