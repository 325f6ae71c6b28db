package db

import (
	"context"
)

// Departments

func (q *Queries) CreateDepartment(ctx context.Context, dept Department) error {
	_, err := q.db.Exec(ctx, `INSERT INTO departments (id, name) VALUES ($1, $2)`, dept.ID, dept.Name)
	return err
}

func (q *Queries) GetDepartment(ctx context.Context, id string) (Department, error) {
	var dept Department
	err := q.db.QueryRow(ctx, `SELECT id, name FROM departments WHERE id = $1`, id).Scan(&dept.ID, &dept.Name)
	return dept, err
}

func (q *Queries) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := q.db.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		out = append(out, dept)
	}
	return out, rows.Err()
}

func (q *Queries) RenameDepartment(ctx context.Context, id, name string) error {
	return q.execExpectingRow(ctx, `UPDATE departments SET name = $1 WHERE id = $2`, name, id)
}

func (q *Queries) DeleteDepartment(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM departments WHERE id = $1`, id)
}

func (q *Queries) DepartmentDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"specialties", `SELECT COUNT(*) FROM specialties WHERE department_id = $1`},
		dependentQuery{"teachers", `SELECT COUNT(*) FROM teacher_profiles WHERE department_id = $1`},
		dependentQuery{"department heads", `SELECT COUNT(*) FROM department_head_profiles WHERE department_id = $1`})
}

// Specialties

func (q *Queries) CreateSpecialty(ctx context.Context, specialty Specialty) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO specialties (id, name, department_id) VALUES ($1, $2, $3)
	`, specialty.ID, specialty.Name, specialty.DepartmentID)
	return err
}

func (q *Queries) GetSpecialty(ctx context.Context, id string) (Specialty, error) {
	var specialty Specialty
	err := q.db.QueryRow(ctx, `
		SELECT id, name, department_id FROM specialties WHERE id = $1
	`, id).Scan(&specialty.ID, &specialty.Name, &specialty.DepartmentID)
	return specialty, err
}

func (q *Queries) ListSpecialties(ctx context.Context, departmentID string) ([]Specialty, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, department_id FROM specialties
		WHERE $1 = '' OR department_id::text = $1
		ORDER BY name
	`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Specialty
	for rows.Next() {
		var specialty Specialty
		if err := rows.Scan(&specialty.ID, &specialty.Name, &specialty.DepartmentID); err != nil {
			return nil, err
		}
		out = append(out, specialty)
	}
	return out, rows.Err()
}

func (q *Queries) RenameSpecialty(ctx context.Context, id, name string) error {
	return q.execExpectingRow(ctx, `UPDATE specialties SET name = $1 WHERE id = $2`, name, id)
}

func (q *Queries) DeleteSpecialty(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM specialties WHERE id = $1`, id)
}

func (q *Queries) SpecialtyDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"levels", `SELECT COUNT(*) FROM levels WHERE specialty_id = $1`},
		dependentQuery{"students", `SELECT COUNT(*) FROM student_profiles WHERE specialty_id = $1`})
}

// Levels

func (q *Queries) CreateLevel(ctx context.Context, level Level) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO levels (id, name, specialty_id) VALUES ($1, $2, $3)
	`, level.ID, level.Name, level.SpecialtyID)
	return err
}

func (q *Queries) GetLevel(ctx context.Context, id string) (Level, error) {
	var level Level
	err := q.db.QueryRow(ctx, `
		SELECT id, name, specialty_id FROM levels WHERE id = $1
	`, id).Scan(&level.ID, &level.Name, &level.SpecialtyID)
	return level, err
}

func (q *Queries) ListLevels(ctx context.Context, specialtyID string) ([]Level, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, specialty_id FROM levels
		WHERE $1 = '' OR specialty_id::text = $1
		ORDER BY name
	`, specialtyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Level
	for rows.Next() {
		var level Level
		if err := rows.Scan(&level.ID, &level.Name, &level.SpecialtyID); err != nil {
			return nil, err
		}
		out = append(out, level)
	}
	return out, rows.Err()
}

func (q *Queries) RenameLevel(ctx context.Context, id, name string) error {
	return q.execExpectingRow(ctx, `UPDATE levels SET name = $1 WHERE id = $2`, name, id)
}

func (q *Queries) DeleteLevel(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM levels WHERE id = $1`, id)
}

func (q *Queries) LevelDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"groups", `SELECT COUNT(*) FROM groups WHERE level_id = $1`},
		dependentQuery{"subjects", `SELECT COUNT(*) FROM subjects WHERE level_id = $1`})
}

// ListLevelsByDepartment backs the "levels available for subject creation"
// helper view.
func (q *Queries) ListLevelsByDepartment(ctx context.Context, departmentID string) ([]Level, error) {
	rows, err := q.db.Query(ctx, `
		SELECT l.id, l.name, l.specialty_id
		FROM levels l
		JOIN specialties s ON s.id = l.specialty_id
		WHERE s.department_id = $1
		ORDER BY l.name
	`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Level
	for rows.Next() {
		var level Level
		if err := rows.Scan(&level.ID, &level.Name, &level.SpecialtyID); err != nil {
			return nil, err
		}
		out = append(out, level)
	}
	return out, rows.Err()
}

// Groups

func (q *Queries) CreateGroup(ctx context.Context, group Group) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO groups (id, name, level_id) VALUES ($1, $2, $3)
	`, group.ID, group.Name, group.LevelID)
	return err
}

func (q *Queries) GetGroup(ctx context.Context, id string) (Group, error) {
	var group Group
	err := q.db.QueryRow(ctx, `
		SELECT id, name, level_id FROM groups WHERE id = $1
	`, id).Scan(&group.ID, &group.Name, &group.LevelID)
	return group, err
}

func (q *Queries) ListGroups(ctx context.Context, levelID string) ([]Group, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, level_id FROM groups
		WHERE $1 = '' OR level_id::text = $1
		ORDER BY name
	`, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Group
	for rows.Next() {
		var group Group
		if err := rows.Scan(&group.ID, &group.Name, &group.LevelID); err != nil {
			return nil, err
		}
		out = append(out, group)
	}
	return out, rows.Err()
}

func (q *Queries) RenameGroup(ctx context.Context, id, name string) error {
	return q.execExpectingRow(ctx, `UPDATE groups SET name = $1 WHERE id = $2`, name, id)
}

func (q *Queries) DeleteGroup(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM groups WHERE id = $1`, id)
}

func (q *Queries) GroupDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"students", `SELECT COUNT(*) FROM student_profiles WHERE group_id = $1`},
		dependentQuery{"sessions", `SELECT COUNT(*) FROM sessions WHERE group_id = $1`})
}

// Subjects

func (q *Queries) CreateSubject(ctx context.Context, subject Subject) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO subjects (id, name, level_id, teacher_id, coefficient)
		VALUES ($1, $2, $3, $4, $5)
	`, subject.ID, subject.Name, subject.LevelID, subject.TeacherID, subject.Coefficient)
	return err
}

func (q *Queries) GetSubject(ctx context.Context, id string) (Subject, error) {
	var subject Subject
	err := q.db.QueryRow(ctx, `
		SELECT id, name, level_id, teacher_id, coefficient FROM subjects WHERE id = $1
	`, id).Scan(&subject.ID, &subject.Name, &subject.LevelID, &subject.TeacherID, &subject.Coefficient)
	return subject, err
}

func (q *Queries) ListSubjects(ctx context.Context, levelID string) ([]Subject, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, name, level_id, teacher_id, coefficient FROM subjects
		WHERE $1 = '' OR level_id::text = $1
		ORDER BY name
	`, levelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Subject
	for rows.Next() {
		var subject Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.LevelID, &subject.TeacherID, &subject.Coefficient); err != nil {
			return nil, err
		}
		out = append(out, subject)
	}
	return out, rows.Err()
}

func (q *Queries) UpdateSubject(ctx context.Context, subject Subject) error {
	return q.execExpectingRow(ctx, `
		UPDATE subjects SET name = $1, teacher_id = $2, coefficient = $3 WHERE id = $4
	`, subject.Name, subject.TeacherID, subject.Coefficient, subject.ID)
}

func (q *Queries) DeleteSubject(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM subjects WHERE id = $1`, id)
}

func (q *Queries) SubjectDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"sessions", `SELECT COUNT(*) FROM sessions WHERE subject_id = $1`})
}

// ListTeachersByDepartment backs the "teachers available for subject
// creation" helper view.
func (q *Queries) ListTeachersByDepartment(ctx context.Context, departmentID string) ([]TeacherOption, error) {
	rows, err := q.db.Query(ctx, `
		SELECT tp.id, tp.user_id, u.first_name || ' ' || u.last_name
		FROM teacher_profiles tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.department_id = $1
		ORDER BY u.last_name, u.first_name
	`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TeacherOption
	for rows.Next() {
		var option TeacherOption
		if err := rows.Scan(&option.ID, &option.UserID, &option.Name); err != nil {
			return nil, err
		}
		out = append(out, option)
	}
	return out, rows.Err()
}

// Rooms

func (q *Queries) CreateRoom(ctx context.Context, room Room) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO rooms (id, code, type, capacity) VALUES ($1, $2, $3, $4)
	`, room.ID, room.Code, room.Type, room.Capacity)
	return err
}

func (q *Queries) GetRoom(ctx context.Context, id string) (Room, error) {
	var room Room
	err := q.db.QueryRow(ctx, `
		SELECT id, code, type, capacity FROM rooms WHERE id = $1
	`, id).Scan(&room.ID, &room.Code, &room.Type, &room.Capacity)
	return room, err
}

func (q *Queries) ListRooms(ctx context.Context) ([]Room, error) {
	rows, err := q.db.Query(ctx, `SELECT id, code, type, capacity FROM rooms ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.ID, &room.Code, &room.Type, &room.Capacity); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (q *Queries) UpdateRoom(ctx context.Context, room Room) error {
	return q.execExpectingRow(ctx, `
		UPDATE rooms SET code = $1, type = $2, capacity = $3 WHERE id = $4
	`, room.Code, room.Type, room.Capacity, room.ID)
}

func (q *Queries) DeleteRoom(ctx context.Context, id string) error {
	return q.execExpectingRow(ctx, `DELETE FROM rooms WHERE id = $1`, id)
}

func (q *Queries) RoomDependents(ctx context.Context, id string) ([]DependentCount, error) {
	return q.dependentCounts(ctx, id,
		dependentQuery{"sessions", `SELECT COUNT(*) FROM sessions WHERE room_id = $1`})
}

// Department resolution

// GetSubjectDepartment follows Subject -> Level -> Specialty -> Department.
func (q *Queries) GetSubjectDepartment(ctx context.Context, subjectID string) (string, error) {
	var departmentID string
	err := q.db.QueryRow(ctx, `
		SELECT s.department_id
		FROM subjects sub
		JOIN levels l ON l.id = sub.level_id
		JOIN specialties s ON s.id = l.specialty_id
		WHERE sub.id = $1
	`, subjectID).Scan(&departmentID)
	return departmentID, err
}

// GetGroupDepartment follows Group -> Level -> Specialty -> Department.
func (q *Queries) GetGroupDepartment(ctx context.Context, groupID string) (string, error) {
	var departmentID string
	err := q.db.QueryRow(ctx, `
		SELECT s.department_id
		FROM groups g
		JOIN levels l ON l.id = g.level_id
		JOIN specialties s ON s.id = l.specialty_id
		WHERE g.id = $1
	`, groupID).Scan(&departmentID)
	return departmentID, err
}

func (q *Queries) GetTeacherDepartment(ctx context.Context, teacherID string) (string, error) {
	var departmentID string
	err := q.db.QueryRow(ctx, `
		SELECT department_id FROM teacher_profiles WHERE id = $1
	`, teacherID).Scan(&departmentID)
	return departmentID, err
}

// Helpers

type dependentQuery struct {
	kind  string
	query string
}

func (q *Queries) dependentCounts(ctx context.Context, id string, queries ...dependentQuery) ([]DependentCount, error) {
	var out []DependentCount
	for _, dq := range queries {
		var count int64
		if err := q.db.QueryRow(ctx, dq.query, id).Scan(&count); err != nil {
			return nil, err
		}
		if count > 0 {
			out = append(out, DependentCount{Kind: dq.kind, Count: count})
		}
	}
	return out, nil
}

func (q *Queries) execExpectingRow(ctx context.Context, sql string, args ...any) error {
	tag, err := q.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
