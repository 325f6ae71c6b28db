package db

import (
	"context"
	"time"
)

const sessionColumns = `
	id, date, starts_at, ends_at, room_id, subject_id, group_id, teacher_id,
	status, semester, week_day, is_recurring, created_at, updated_at`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.Date, &s.StartsAt, &s.EndsAt, &s.RoomID, &s.SubjectID,
		&s.GroupID, &s.TeacherID, &s.Status, &s.Semester, &s.WeekDay,
		&s.IsRecurring, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (q *Queries) CreateSession(ctx context.Context, s Session) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO sessions (id, date, starts_at, ends_at, room_id, subject_id,
			group_id, teacher_id, status, semester, week_day, is_recurring, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, s.ID, s.Date, s.StartsAt, s.EndsAt, s.RoomID, s.SubjectID,
		s.GroupID, s.TeacherID, s.Status, s.Semester, s.WeekDay, s.IsRecurring, s.CreatedAt, s.UpdatedAt)
	return err
}

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	row := q.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

// GetSessionDepartment resolves the session's owning department via its
// subject's level and specialty.
func (q *Queries) GetSessionDepartment(ctx context.Context, sessionID string) (string, error) {
	var departmentID string
	err := q.db.QueryRow(ctx, `
		SELECT sp.department_id
		FROM sessions sess
		JOIN subjects sub ON sub.id = sess.subject_id
		JOIN levels l ON l.id = sub.level_id
		JOIN specialties sp ON sp.id = l.specialty_id
		WHERE sess.id = $1
	`, sessionID).Scan(&departmentID)
	return departmentID, err
}

func (q *Queries) UpdateSession(ctx context.Context, s Session) error {
	return q.execExpectingRow(ctx, `
		UPDATE sessions
		SET date = $1, starts_at = $2, ends_at = $3, room_id = $4, subject_id = $5,
			group_id = $6, teacher_id = $7, status = $8, week_day = $9, updated_at = $10
		WHERE id = $11
	`, s.Date, s.StartsAt, s.EndsAt, s.RoomID, s.SubjectID,
		s.GroupID, s.TeacherID, s.Status, s.WeekDay, s.UpdatedAt, s.ID)
}

// DeleteSemesterSessions removes every session in the given semester tag
// owned by the given department, along with the absences recorded against
// them: the tag is the unit of replacement. Returns the ids of the deleted
// sessions' teachers so fan-out can notify them.
func (q *Queries) DeleteSemesterSessions(ctx context.Context, semester, departmentID string) (int64, []string, error) {
	teachers, err := q.listSemesterTeachers(ctx, semester, departmentID)
	if err != nil {
		return 0, nil, err
	}
	// absences.session_id is ON DELETE RESTRICT; clear them first or the
	// session delete trips the FK.
	_, err = q.db.Exec(ctx, `
		DELETE FROM absences
		WHERE session_id IN (
			SELECT sess.id FROM sessions sess
			JOIN subjects sub ON sub.id = sess.subject_id
			JOIN levels l ON l.id = sub.level_id
			JOIN specialties sp ON sp.id = l.specialty_id
			WHERE sess.semester = $1 AND sp.department_id = $2
		)
	`, semester, departmentID)
	if err != nil {
		return 0, nil, err
	}
	tag, err := q.db.Exec(ctx, `
		DELETE FROM sessions
		WHERE semester = $1 AND subject_id IN (
			SELECT sub.id FROM subjects sub
			JOIN levels l ON l.id = sub.level_id
			JOIN specialties sp ON sp.id = l.specialty_id
			WHERE sp.department_id = $2
		)
	`, semester, departmentID)
	if err != nil {
		return 0, nil, err
	}
	return tag.RowsAffected(), teachers, nil
}

func (q *Queries) listSemesterTeachers(ctx context.Context, semester, departmentID string) ([]string, error) {
	rows, err := q.db.Query(ctx, `
		SELECT DISTINCT sess.teacher_id
		FROM sessions sess
		JOIN subjects sub ON sub.id = sess.subject_id
		JOIN levels l ON l.id = sub.level_id
		JOIN specialties sp ON sp.id = l.specialty_id
		WHERE sess.semester = $1 AND sp.department_id = $2
	`, semester, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// ListActiveSessionsBetween returns every non-cancelled session whose
// interval falls inside [from, to), the working set of the conflict checker.
func (q *Queries) ListActiveSessionsBetween(ctx context.Context, from, to time.Time) ([]Session, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE status <> 'cancelled' AND starts_at < $2 AND ends_at > $1
		ORDER BY starts_at
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (q *Queries) ListSemesterSessions(ctx context.Context, semester, groupID string) ([]SessionDetail, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+sessionDetailColumns+`
		FROM sessions sess
		`+sessionDetailJoins+`
		WHERE sess.semester = $1 AND ($2 = '' OR sess.group_id::text = $2)
		ORDER BY sess.date, sess.starts_at
	`, semester, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessionDetails(rows)
}

// ListSessionsInRange is the weekly / daily schedule read model. Filters are
// optional: empty string matches all.
func (q *Queries) ListSessionsInRange(ctx context.Context, from, to time.Time, groupID, teacherID, departmentID string) ([]SessionDetail, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+sessionDetailColumns+`
		FROM sessions sess
		`+sessionDetailJoins+`
		WHERE sess.date >= $1 AND sess.date < $2
			AND ($3 = '' OR sess.group_id::text = $3)
			AND ($4 = '' OR sess.teacher_id::text = $4)
			AND ($5 = '' OR sp.department_id::text = $5)
		ORDER BY sess.date, sess.starts_at
	`, from, to, groupID, teacherID, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSessionDetails(rows)
}

const sessionDetailColumns = `
	sess.id, sess.date, sess.starts_at, sess.ends_at, sess.room_id, sess.subject_id,
	sess.group_id, sess.teacher_id, sess.status, sess.semester, sess.week_day,
	sess.is_recurring, sess.created_at, sess.updated_at,
	sub.name, g.name, r.code, tu.first_name || ' ' || tu.last_name, sp.department_id`

const sessionDetailJoins = `
	JOIN subjects sub ON sub.id = sess.subject_id
	JOIN groups g ON g.id = sess.group_id
	JOIN rooms r ON r.id = sess.room_id
	JOIN teacher_profiles tp ON tp.id = sess.teacher_id
	JOIN users tu ON tu.id = tp.user_id
	JOIN levels l ON l.id = sub.level_id
	JOIN specialties sp ON sp.id = l.specialty_id`

func collectSessions(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]Session, error) {
	var out []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func collectSessionDetails(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]SessionDetail, error) {
	var out []SessionDetail
	for rows.Next() {
		var d SessionDetail
		if err := rows.Scan(
			&d.ID, &d.Date, &d.StartsAt, &d.EndsAt, &d.RoomID, &d.SubjectID,
			&d.GroupID, &d.TeacherID, &d.Status, &d.Semester, &d.WeekDay,
			&d.IsRecurring, &d.CreatedAt, &d.UpdatedAt,
			&d.SubjectName, &d.GroupName, &d.RoomCode, &d.TeacherName, &d.DepartmentID,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetTeacherUserID maps a teacher profile to its user for notification
// fan-out, which always addresses users.
func (q *Queries) GetTeacherUserID(ctx context.Context, teacherID string) (string, error) {
	var userID string
	err := q.db.QueryRow(ctx, `
		SELECT user_id FROM teacher_profiles WHERE id = $1
	`, teacherID).Scan(&userID)
	return userID, err
}
