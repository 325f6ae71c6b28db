// Package export builds the spreadsheet reports handed out to department
// heads. Column headings keep the French wording of the legacy reports.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/medali150/university-platform-sub001/internal/db"
)

const absencesSheet = "Absences"

var absenceHeader = []string{"Étudiant", "Groupe", "Matière", "Date", "Statut", "Motif", "Justification"}

var statusLabels = map[db.AbsenceStatus]string{
	db.AbsenceStatusUnjustified:   "Non justifiée",
	db.AbsenceStatusPendingReview: "En attente",
	db.AbsenceStatusJustified:     "Justifiée",
}

// AbsencesWorkbook renders the absence list into a single-sheet workbook
// with a bold filtered header and heuristic column widths.
func AbsencesWorkbook(absences []db.AbsenceDetail, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", absencesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, heading := range absenceHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(absencesSheet, cell, heading); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	end := colName(len(absenceHeader)) + "1"
	_ = f.SetCellStyle(absencesSheet, "A1", end, bold)
	_ = f.AutoFilter(absencesSheet, "A1:"+end, nil)

	widths := make([]int, len(absenceHeader))
	for i, heading := range absenceHeader {
		widths[i] = len(heading)
	}
	for r, absence := range absences {
		row := absenceRow(absence, loc)
		for c, value := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(absencesSheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
			if len(value) > widths[c] {
				widths[c] = len(value)
			}
		}
	}
	for c, width := range widths {
		w := float64(width) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		col := colName(c + 1)
		_ = f.SetColWidth(absencesSheet, col, col, w)
	}
	return f, nil
}

func absenceRow(a db.AbsenceDetail, loc *time.Location) []string {
	justification := ""
	if a.JustificationText != nil {
		justification = *a.JustificationText
	}
	return []string{
		a.StudentName,
		a.GroupName,
		a.SubjectName,
		a.SessionStartAt.In(loc).Format("02/01/2006 15:04"),
		statusLabels[a.Status],
		a.Reason,
		justification,
	}
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
