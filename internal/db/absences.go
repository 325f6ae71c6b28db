package db

import (
	"context"
	"time"
)

func (q *Queries) CreateAbsence(ctx context.Context, a Absence) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO absences (id, student_id, session_id, reason, status,
			justification_text, reviewer_id, review_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, a.ID, a.StudentID, a.SessionID, a.Reason, a.Status,
		a.JustificationText, a.ReviewerID, a.ReviewNotes, a.CreatedAt, a.UpdatedAt)
	return err
}

const absenceDetailColumns = `
	a.id, a.student_id, a.session_id, a.reason, a.status, a.justification_text,
	a.reviewer_id, a.review_notes, a.created_at, a.updated_at,
	sess.date, sess.starts_at, sess.ends_at,
	sub.name, sess.teacher_id, tu.id, tu.first_name || ' ' || tu.last_name,
	su.id, su.first_name || ' ' || su.last_name,
	g.id, g.name, sp.department_id`

const absenceDetailJoins = `
	JOIN sessions sess ON sess.id = a.session_id
	JOIN subjects sub ON sub.id = sess.subject_id
	JOIN teacher_profiles tp ON tp.id = sess.teacher_id
	JOIN users tu ON tu.id = tp.user_id
	JOIN student_profiles stp ON stp.id = a.student_id
	JOIN users su ON su.id = stp.user_id
	JOIN groups g ON g.id = sess.group_id
	JOIN levels l ON l.id = sub.level_id
	JOIN specialties sp ON sp.id = l.specialty_id`

func scanAbsenceDetail(row interface{ Scan(...any) error }) (AbsenceDetail, error) {
	var d AbsenceDetail
	err := row.Scan(
		&d.ID, &d.StudentID, &d.SessionID, &d.Reason, &d.Status, &d.JustificationText,
		&d.ReviewerID, &d.ReviewNotes, &d.CreatedAt, &d.UpdatedAt,
		&d.SessionDate, &d.SessionStartAt, &d.SessionEndAt,
		&d.SubjectName, &d.TeacherID, &d.TeacherUserID, &d.TeacherName,
		&d.StudentUserID, &d.StudentName,
		&d.GroupID, &d.GroupName, &d.DepartmentID,
	)
	return d, err
}

func (q *Queries) GetAbsenceDetail(ctx context.Context, id string) (AbsenceDetail, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+absenceDetailColumns+`
		FROM absences a
		`+absenceDetailJoins+`
		WHERE a.id = $1
	`, id)
	return scanAbsenceDetail(row)
}

// listAbsences runs the detail query with one optional scope filter.
func (q *Queries) listAbsences(ctx context.Context, where string, args ...any) ([]AbsenceDetail, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+absenceDetailColumns+`
		FROM absences a
		`+absenceDetailJoins+`
		`+where+`
		ORDER BY a.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AbsenceDetail
	for rows.Next() {
		d, err := scanAbsenceDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (q *Queries) ListAbsencesByStudent(ctx context.Context, studentID string) ([]AbsenceDetail, error) {
	return q.listAbsences(ctx, `WHERE a.student_id = $1`, studentID)
}

func (q *Queries) ListAbsencesByTeacher(ctx context.Context, teacherID string) ([]AbsenceDetail, error) {
	return q.listAbsences(ctx, `WHERE sess.teacher_id = $1`, teacherID)
}

func (q *Queries) ListAbsencesByDepartment(ctx context.Context, departmentID string) ([]AbsenceDetail, error) {
	return q.listAbsences(ctx, `WHERE sp.department_id = $1`, departmentID)
}

func (q *Queries) ListAllAbsences(ctx context.Context) ([]AbsenceDetail, error) {
	return q.listAbsences(ctx, ``)
}

// UpdateAbsenceStatus performs the optimistic (id, status) transition write.
// Returns ErrNotFound when the row moved away from fromStatus, which the
// boundary maps to CONFLICT.
func (q *Queries) UpdateAbsenceStatus(ctx context.Context, id string, fromStatus, toStatus AbsenceStatus, justificationText, reviewNotes, reviewerID *string, updatedAt time.Time) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE absences
		SET status = $1,
			justification_text = COALESCE($2, justification_text),
			review_notes = $3,
			reviewer_id = $4,
			updated_at = $5
		WHERE id = $6 AND status = $7
	`, toStatus, justificationText, reviewNotes, reviewerID, updatedAt, id, fromStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CorrectAbsenceStatus is the admin override: no expected-from check.
func (q *Queries) CorrectAbsenceStatus(ctx context.Context, id string, toStatus AbsenceStatus, reviewNotes, reviewerID *string, updatedAt time.Time) error {
	return q.execExpectingRow(ctx, `
		UPDATE absences
		SET status = $1, review_notes = $2, reviewer_id = $3, updated_at = $4
		WHERE id = $5
	`, toStatus, reviewNotes, reviewerID, updatedAt, id)
}

// ClearAbsenceReview wipes the decision fields on reopen.
func (q *Queries) ClearAbsenceReview(ctx context.Context, id string, fromStatus AbsenceStatus, updatedAt time.Time) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE absences
		SET status = 'pending_review', reviewer_id = NULL, review_notes = NULL, updated_at = $1
		WHERE id = $2 AND status = $3
	`, updatedAt, id, fromStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteAbsence(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM absences WHERE id = $1`, id)
}

// CountRecentUnjustified counts a student's unjustified absences created
// since the given instant, the rolling-window input of the alert rule.
func (q *Queries) CountRecentUnjustified(ctx context.Context, studentID string, since time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM absences
		WHERE student_id = $1 AND status = 'unjustified' AND created_at >= $2
	`, studentID, since).Scan(&count)
	return count, err
}

// ListStudentsOverThreshold returns, per student, the unjustified absence
// count inside the window when it reaches the threshold. Scoped to one
// department when departmentID is set.
func (q *Queries) ListStudentsOverThreshold(ctx context.Context, since time.Time, threshold int64, departmentID string) ([]StudentAbsenceCount, error) {
	rows, err := q.db.Query(ctx, `
		SELECT stp.id, su.id, su.first_name || ' ' || su.last_name, g.name, COUNT(*)
		FROM absences a
		JOIN student_profiles stp ON stp.id = a.student_id
		JOIN users su ON su.id = stp.user_id
		JOIN groups g ON g.id = stp.group_id
		JOIN levels l ON l.id = g.level_id
		JOIN specialties sp ON sp.id = l.specialty_id
		WHERE a.status = 'unjustified' AND a.created_at >= $1
			AND ($3 = '' OR sp.department_id::text = $3)
		GROUP BY stp.id, su.id, su.first_name, su.last_name, g.name
		HAVING COUNT(*) >= $2
		ORDER BY COUNT(*) DESC
	`, since, threshold, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StudentAbsenceCount
	for rows.Next() {
		var row StudentAbsenceCount
		if err := rows.Scan(&row.StudentID, &row.StudentUserID, &row.StudentName, &row.GroupName, &row.Unjustified); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DepartmentAbsenceSummary lists per-student unjustified counts for the
// department head dashboard, highest first.
func (q *Queries) DepartmentAbsenceSummary(ctx context.Context, departmentID string, since time.Time) ([]StudentAbsenceCount, error) {
	return q.ListStudentsOverThreshold(ctx, since, 1, departmentID)
}
