package export

import (
	"testing"
	"time"

	"github.com/medali150/university-platform-sub001/internal/db"
)

func TestAbsencesWorkbook(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	justification := "certificat médical"
	absences := []db.AbsenceDetail{
		{
			Absence: db.Absence{
				Reason:            "maladie",
				Status:            db.AbsenceStatusJustified,
				JustificationText: &justification,
			},
			SessionStartAt: time.Date(2025, 10, 6, 8, 30, 0, 0, time.UTC),
			SubjectName:    "Algorithmique",
			StudentName:    "Marie Dupont",
			GroupName:      "L3-A",
		},
		{
			Absence: db.Absence{
				Reason: "",
				Status: db.AbsenceStatusUnjustified,
			},
			SessionStartAt: time.Date(2025, 10, 7, 14, 0, 0, 0, time.UTC),
			SubjectName:    "Réseaux",
			StudentName:    "Jean Martin",
			GroupName:      "L3-B",
		},
	}

	f, err := AbsencesWorkbook(absences, loc)
	if err != nil {
		t.Fatalf("workbook error: %v", err)
	}
	rows, err := f.GetRows(absencesSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Étudiant" || rows[0][2] != "Matière" || rows[0][5] != "Motif" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "Marie Dupont" {
		t.Fatalf("expected student name, got %q", rows[1][0])
	}
	if rows[1][4] != "Justifiée" {
		t.Fatalf("expected French status label, got %q", rows[1][4])
	}
	// 08:30 UTC in October is 10:30 in Paris.
	if rows[1][3] != "06/10/2025 10:30" {
		t.Fatalf("unexpected date cell: %q", rows[1][3])
	}
	if rows[2][4] != "Non justifiée" {
		t.Fatalf("expected Non justifiée, got %q", rows[2][4])
	}
}
