// Package export renders timesheet spreadsheets and pushes them to the
// public file host.
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"dochadzka/models"
	"dochadzka/timesheet"
)

var individualHeader = []interface{}{
	"Kód zamestnanca", "Meno zamestnanca", "Dátum", "Čas",
	"Zaokrúhlený čas", "Akcia", "Obed", "Trvanie dovolenky", "Prevádzka",
}

// BuildIndividual renders the raw log listing, oldest entry first.
func BuildIndividual(logs []models.AttendanceLog) (*excelize.File, error) {
	sorted := make([]models.AttendanceLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	f := excelize.NewFile()
	const sheet = "Dochádzka"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &individualHeader); err != nil {
		return nil, err
	}

	for i, l := range sorted {
		v := l.View()
		lunch := ""
		if l.Action == models.ActionLunch {
			lunch = "Áno"
		}
		vacation := ""
		if l.Action == models.ActionVacation {
			vacation = models.FormatVacation(l.VacationHours)
		}
		row := []interface{}{v.Kod, v.Meno, v.Datum, v.Cas, v.ZaokruhlenyCas, v.Akcia, lunch, vacation, v.Prevadzka}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// BuildSummary renders the two-sheet summary workbook: the per-employee
// totals ("Súhrn") and the day-of-month matrix ("Tabuľka dní") with
// columns 01..lastDay.
func BuildSummary(rows []*timesheet.Summary, matrix []timesheet.Row, lastDay int) (*excelize.File, error) {
	f := excelize.NewFile()
	const sumSheet = "Súhrn"
	if err := f.SetSheetName("Sheet1", sumSheet); err != nil {
		return nil, err
	}

	sumHeader := []interface{}{
		"Kód zamestnanca", "Meno zamestnanca", "Originálny čas",
		"Zaokruhlený čas", "Obedy", "Dovolenka", "Spolu",
	}
	if err := f.SetSheetRow(sumSheet, "A1", &sumHeader); err != nil {
		return nil, err
	}
	for i, s := range rows {
		row := []interface{}{
			s.Code, s.Name,
			timesheet.FormatHours(s.RawSeconds),
			timesheet.FormatHours(s.RoundedSeconds),
			s.Lunches, s.VacationHours, s.TotalHours(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sumSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const tableSheet = "Tabuľka dní"
	if _, err := f.NewSheet(tableSheet); err != nil {
		return nil, err
	}
	tableHeader := []interface{}{"Meno zamestnanca", "Prevádzka"}
	for d := 1; d <= lastDay; d++ {
		tableHeader = append(tableHeader, fmt.Sprintf("%02d", d))
	}
	if err := f.SetSheetRow(tableSheet, "A1", &tableHeader); err != nil {
		return nil, err
	}
	for i, r := range matrix {
		row := []interface{}{r.Name, r.StoreGroup}
		for d := 1; d <= lastDay; d++ {
			row = append(row, r.Cells[fmt.Sprintf("%02d", d)])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(tableSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Filename produces the timestamped export name, e.g.
// Vypis_Spolu_2024-01-10T08-30-00.xlsx.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.UTC().Format("2006-01-02T15-04-05"))
}
