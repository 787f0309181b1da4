package export

import (
	"fmt"
	"io"

	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/chart"
	"github.com/rohitbamniya4141/Smart-Study-Planner/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	planSheet     = "Plan"
	totalsSheet   = "Totals"
	progressSheet = "Progress"
)

// WriteXLSX writes a workbook with the plan rows, per-subject totals with a
// pie chart, and cumulative progress with a line chart.
func WriteXLSX(w io.Writer, plan *domain.Plan) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), planSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writePlanSheet(f, plan); err != nil {
		return err
	}
	if err := writeTotalsSheet(f, chart.Pie(plan)); err != nil {
		return err
	}
	if err := writeProgressSheet(f, chart.Progress(plan)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writePlanSheet(f *excelize.File, plan *domain.Plan) error {
	header := []interface{}{"Day", "Subject", "Minutes"}
	if err := f.SetSheetRow(planSheet, "A1", &header); err != nil {
		return fmt.Errorf("plan header: %w", err)
	}

	row := 2
	for _, d := range plan.Days {
		for _, a := range d.Allocations {
			values := []interface{}{d.Label(), a.Subject, a.Minutes}
			if err := setRow(f, planSheet, row, values); err != nil {
				return fmt.Errorf("plan row: %w", err)
			}
			row++
		}
	}
	return nil
}

func writeTotalsSheet(f *excelize.File, slices []chart.Slice) error {
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return fmt.Errorf("create totals sheet: %w", err)
	}
	header := []interface{}{"Subject", "Minutes", "Percent"}
	if err := f.SetSheetRow(totalsSheet, "A1", &header); err != nil {
		return fmt.Errorf("totals header: %w", err)
	}
	for i, s := range slices {
		values := []interface{}{s.Subject, s.Minutes, s.Percent}
		if err := setRow(f, totalsSheet, i+2, values); err != nil {
			return fmt.Errorf("totals row: %w", err)
		}
	}
	if len(slices) == 0 {
		return nil
	}

	last := len(slices) + 1
	err := f.AddChart(totalsSheet, "E2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", totalsSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", totalsSheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", totalsSheet, last),
		}},
		Title:    []excelize.RichTextRun{{Text: chart.PieTitle}},
		Legend:   excelize.ChartLegend{Position: "right"},
		PlotArea: excelize.ChartPlotArea{ShowPercent: true},
	})
	if err != nil {
		return fmt.Errorf("add pie chart: %w", err)
	}
	return nil
}

func writeProgressSheet(f *excelize.File, l chart.Lines) error {
	if _, err := f.NewSheet(progressSheet); err != nil {
		return fmt.Errorf("create progress sheet: %w", err)
	}

	header := []interface{}{l.XLabel}
	for _, line := range l.Lines {
		header = append(header, line.Subject)
	}
	if err := f.SetSheetRow(progressSheet, "A1", &header); err != nil {
		return fmt.Errorf("progress header: %w", err)
	}
	for i, day := range l.Days {
		values := []interface{}{day}
		for _, line := range l.Lines {
			values = append(values, line.Points[i])
		}
		if err := setRow(f, progressSheet, i+2, values); err != nil {
			return fmt.Errorf("progress row: %w", err)
		}
	}
	if len(l.Lines) == 0 || len(l.Days) == 0 {
		return nil
	}

	last := len(l.Days) + 1
	series := make([]excelize.ChartSeries, 0, len(l.Lines))
	for i := range l.Lines {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return fmt.Errorf("progress column: %w", err)
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", progressSheet, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", progressSheet, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", progressSheet, col, col, last),
		})
	}

	cell, err := excelize.CoordinatesToCellName(len(l.Lines)+3, 2)
	if err != nil {
		return fmt.Errorf("chart anchor: %w", err)
	}
	err = f.AddChart(progressSheet, cell, &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: l.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: l.XLabel}},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
			Title:          []excelize.RichTextRun{{Text: l.YLabel}},
		},
	})
	if err != nil {
		return fmt.Errorf("add line chart: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
