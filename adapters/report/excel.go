package report

import (
	"math"

	"github.com/xuri/excelize/v2"

	"recentstats/internal/correlation"
	"recentstats/internal/errors"
)

const workbookSheet = "Correlations"

// WriteWorkbook writes the correlation table as an xlsx workbook. Missing
// coefficients leave their cells empty.
func WriteWorkbook(path string, rows []correlation.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workbookSheet); err != nil {
		return errors.ReportFailed("preparing workbook", err)
	}

	for i, h := range tableHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.ReportFailed("preparing workbook", err)
		}
		if err := f.SetCellValue(workbookSheet, cell, h); err != nil {
			return errors.ReportFailed("writing workbook header", err)
		}
	}

	for r, row := range rows {
		values := []float64{float64(row.Window), row.AVG, row.OBP, row.SLG}
		for c, v := range values {
			if c > 0 && math.IsNaN(v) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.ReportFailed("writing workbook", err)
			}
			if c == 0 {
				err = f.SetCellValue(workbookSheet, cell, row.Window)
			} else {
				err = f.SetCellValue(workbookSheet, cell, v)
			}
			if err != nil {
				return errors.ReportFailed("writing workbook", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportFailed("saving workbook", err)
	}
	return nil
}
