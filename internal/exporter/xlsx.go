package exporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/nthumods/mods-backend/internal/model"
	"github.com/nthumods/mods-backend/internal/timetable"
	"github.com/xuri/excelize/v2"
)

// WorkbookSheet is the name of the single sheet GenerateWorkbook writes.
const WorkbookSheet = "Timetable"

var workbookHeaders = []interface{}{
	"Course ID", "Name (ZH)", "Name (EN)", "Credits", "Venues", "Times", "Conflict", "Duplicate",
}

// GenerateWorkbook writes the course list as an XLSX workbook, one row per
// selected entry, followed by a total-credits row.
func GenerateWorkbook(courses []model.Course, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", WorkbookSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(WorkbookSheet, "A1", &workbookHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := f.SetCellStyle(WorkbookSheet, "A1", "H1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	conflicts := timetable.Conflicts(courses)
	dups := make(map[string]bool)
	for _, id := range timetable.Duplicates(courses) {
		dups[id] = true
	}

	row := 2
	for _, c := range courses {
		var venues, times []string
		for _, m := range c.Meetings() {
			venues = append(venues, m.Venue)
			times = append(times, m.Time)
		}

		values := []interface{}{
			c.RawID,
			c.NameZh,
			c.NameEn,
			c.Credits,
			strings.Join(venues, ", "),
			strings.Join(times, ", "),
			flag(timetable.HasConflict(conflicts, c.RawID)),
			flag(dups[c.RawID]),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(WorkbookSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	total := []interface{}{"Total credits", "", "", timetable.TotalCredits(courses)}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(WorkbookSheet, cell, &total); err != nil {
		return fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellStyle(WorkbookSheet, cell, cell, bold); err != nil {
		return fmt.Errorf("style total: %w", err)
	}

	if err := f.SetColWidth(WorkbookSheet, "A", "C", 24); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	return f.Write(w)
}

func flag(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
