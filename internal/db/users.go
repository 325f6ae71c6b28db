package db

import (
	"context"
)

func (q *Queries) CreateUser(ctx context.Context, user User) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Role, user.CreatedAt)
	return err
}

func (q *Queries) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	row := q.db.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at
		FROM users
		WHERE id = $1
	`, userID)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Role, &user.CreatedAt)
	return user, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	row := q.db.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, role, created_at
		FROM users
		WHERE email = $1
	`, email)
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Role, &user.CreatedAt)
	return user, err
}

// GetPrincipal resolves a user into a principal carrying the profile ids
// ownership checks rely on. Profile columns are left empty for admins.
func (q *Queries) GetPrincipal(ctx context.Context, userID string) (Principal, error) {
	var p Principal
	row := q.db.QueryRow(ctx, `
		SELECT u.id, u.role,
		       COALESCE(sp.id::text, ''), COALESCE(sp.group_id::text, ''),
		       COALESCE(tp.id::text, ''),
		       COALESCE(tp.department_id::text, dh.department_id::text, '')
		FROM users u
		LEFT JOIN student_profiles sp ON sp.user_id = u.id
		LEFT JOIN teacher_profiles tp ON tp.user_id = u.id
		LEFT JOIN department_head_profiles dh ON dh.user_id = u.id
		WHERE u.id = $1
	`, userID)
	err := row.Scan(&p.UserID, &p.Role, &p.StudentID, &p.GroupID, &p.TeacherID, &p.DepartmentID)
	return p, err
}

func (q *Queries) CreateTeacherProfile(ctx context.Context, profile TeacherProfile) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO teacher_profiles (id, user_id, department_id, image_url)
		VALUES ($1, $2, $3, $4)
	`, profile.ID, profile.UserID, profile.DepartmentID, profile.ImageURL)
	return err
}

func (q *Queries) CreateStudentProfile(ctx context.Context, profile StudentProfile) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO student_profiles (id, user_id, group_id, specialty_id)
		VALUES ($1, $2, $3, $4)
	`, profile.ID, profile.UserID, profile.GroupID, profile.SpecialtyID)
	return err
}

func (q *Queries) CreateDepartmentHeadProfile(ctx context.Context, profile DepartmentHeadProfile) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO department_head_profiles (id, user_id, department_id)
		VALUES ($1, $2, $3)
	`, profile.ID, profile.UserID, profile.DepartmentID)
	return err
}

func (q *Queries) GetStudentProfile(ctx context.Context, studentID string) (StudentProfile, error) {
	var profile StudentProfile
	row := q.db.QueryRow(ctx, `
		SELECT id, user_id, group_id, specialty_id
		FROM student_profiles
		WHERE id = $1
	`, studentID)
	err := row.Scan(&profile.ID, &profile.UserID, &profile.GroupID, &profile.SpecialtyID)
	return profile, err
}

func (q *Queries) GetTeacherProfile(ctx context.Context, teacherID string) (TeacherProfile, error) {
	var profile TeacherProfile
	row := q.db.QueryRow(ctx, `
		SELECT id, user_id, department_id, image_url
		FROM teacher_profiles
		WHERE id = $1
	`, teacherID)
	err := row.Scan(&profile.ID, &profile.UserID, &profile.DepartmentID, &profile.ImageURL)
	return profile, err
}

// GetGroupSpecialty returns the specialty reached via the group's level,
// used to enforce consistency between a student's group and specialty.
func (q *Queries) GetGroupSpecialty(ctx context.Context, groupID string) (string, error) {
	var specialtyID string
	row := q.db.QueryRow(ctx, `
		SELECT l.specialty_id
		FROM groups g
		JOIN levels l ON l.id = g.level_id
		WHERE g.id = $1
	`, groupID)
	err := row.Scan(&specialtyID)
	return specialtyID, err
}
