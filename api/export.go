/*
export.go - File renderings of the admin detail report

PURPOSE:
  Serializes the report's detail rows for download: flat CSV with a header
  row (standard library quoting, nothing fancier), and an XLSX workbook for
  people who live in spreadsheets. One row per work entry joined with the
  user's identity fields; the period/month/year columns are derived from
  each entry's date.
*/
package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/nickharris808/tribalhours/timesheet"
)

var exportHeader = []string{
	"user_id", "email", "last_name", "date",
	"hours_worked", "tasks_done", "facility",
	"period", "month", "year",
}

func exportRow(d timesheet.DetailRow) []string {
	period := d.Period()
	return []string{
		d.UserID,
		d.Email,
		d.LastName,
		d.Date.String(),
		d.Hours.String(),
		d.Tasks,
		d.Facility,
		string(period.Label),
		strconv.Itoa(int(d.Date.Month())),
		strconv.Itoa(d.Date.Year()),
	}
}

func writeReportCSV(w http.ResponseWriter, report timesheet.Report) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, d := range report.Detail {
		if err := cw.Write(exportRow(d)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeReportXLSX(w http.ResponseWriter, report timesheet.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for i, d := range report.Detail {
		for col, value := range exportRow(d) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			// Hours as a number so spreadsheet sums work out of the box.
			if col == 4 {
				f.SetCellValue(sheet, cell, d.Hours.InexactFloat64())
				continue
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report.xlsx"))
	return f.Write(w)
}
