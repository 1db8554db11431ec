// Package export renders weekly rollups as xlsx workbooks.
package export

import (
	"fmt"

	"github.com/mkalens/support-insights/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary   = "Summary"
	sheetEmployees = "Employees"
	sheetDaily     = "Daily"

	dateLayout = "2006-01-02"
)

// WeeklyWorkbook builds an xlsx workbook for one weekly bucket with three
// sheets: a week summary, the per-employee breakdown, and the day-by-day
// breakdown. The caller owns the returned file and must Close it.
func WeeklyWorkbook(bucket models.WeeklyBucket) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeSummary(f, bucket); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(sheetEmployees); err != nil {
		f.Close()
		return nil, fmt.Errorf("create employees sheet: %w", err)
	}
	if err := writeEmployees(f, bucket); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(sheetDaily); err != nil {
		f.Close()
		return nil, fmt.Errorf("create daily sheet: %w", err)
	}
	if err := writeDaily(f, bucket); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeSummary(f *excelize.File, bucket models.WeeklyBucket) error {
	rows := [][]any{
		{"Week Start", bucket.WeekStart.Format(dateLayout)},
		{"Week End", bucket.WeekEnd.Format(dateLayout)},
		{"Interactions", bucket.Interactions},
		{"Unique Tickets", bucket.UniqueTickets},
		{"Average Score", bucket.AvgScore},
		{"SLA Violations", bucket.SLAViolations},
		{"Positive", bucket.Sentiment.Positive},
		{"Negative", bucket.Sentiment.Negative},
		{"Neutral", bucket.Sentiment.Neutral},
		{"Mixed", bucket.Sentiment.Mixed},
	}

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("summary cell (%d,%d): %w", j+1, i+1, err)
			}
			if err := f.SetCellValue(sheetSummary, cell, value); err != nil {
				return fmt.Errorf("summary cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeEmployees(f *excelize.File, bucket models.WeeklyBucket) error {
	header := []any{"Employee", "Interactions", "Unique Tickets", "Average Score", "SLA Violations", "Positive", "Negative", "Neutral", "Mixed"}
	if err := setRow(f, sheetEmployees, 1, header); err != nil {
		return err
	}

	for i, emp := range bucket.Employees {
		row := []any{
			emp.Employee,
			emp.Interactions,
			emp.UniqueTickets,
			emp.AvgScore,
			emp.SLAViolations,
			emp.Sentiment.Positive,
			emp.Sentiment.Negative,
			emp.Sentiment.Neutral,
			emp.Sentiment.Mixed,
		}
		if err := setRow(f, sheetEmployees, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDaily(f *excelize.File, bucket models.WeeklyBucket) error {
	header := []any{"Date", "Unique Tickets", "Average Score"}
	if err := setRow(f, sheetDaily, 1, header); err != nil {
		return err
	}

	for i, day := range bucket.Daily {
		row := []any{
			bucket.WeekStart.AddDate(0, 0, i).Format(dateLayout),
			day.UniqueTickets,
			day.AvgScore,
		}
		if err := setRow(f, sheetDaily, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for j, value := range values {
		cell, err := excelize.CoordinatesToCellName(j+1, row)
		if err != nil {
			return fmt.Errorf("%s cell (%d,%d): %w", sheet, j+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("%s cell %s: %w", sheet, cell, err)
		}
	}
	return nil
}
