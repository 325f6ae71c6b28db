package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medali150/university-platform-sub001/internal/auth"
	"github.com/medali150/university-platform-sub001/internal/db"
)

type createUserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         string `json:"role"`
	DepartmentID string `json:"departmentId"`
	GroupID      string `json:"groupId"`
	SpecialtyID  string `json:"specialtyId"`
}

// handleCreateUser provisions a user plus its role profile in one
// transaction. Tokens are issued elsewhere; we only store credentials.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid_email")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password_too_short")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	role := db.Role(strings.ToLower(strings.TrimSpace(req.Role)))
	switch role {
	case db.RoleAdmin, db.RoleDepartmentHead, db.RoleTeacher, db.RoleStudent:
	default:
		writeError(w, http.StatusBadRequest, "invalid_role")
		return
	}
	switch role {
	case db.RoleDepartmentHead, db.RoleTeacher:
		if !validUUID(req.DepartmentID) {
			writeError(w, http.StatusBadRequest, "department_required")
			return
		}
	case db.RoleStudent:
		if !validUUID(req.GroupID) {
			writeError(w, http.StatusBadRequest, "group_required")
			return
		}
	}

	ctx := r.Context()
	if role == db.RoleStudent {
		// The group decides the specialty; a mismatching explicit
		// specialty is rejected rather than silently overridden.
		groupSpecialty, err := s.store.GetGroupSpecialty(ctx, req.GroupID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, "group_not_found")
				return
			}
			s.serverError(w, err)
			return
		}
		if req.SpecialtyID != "" && req.SpecialtyID != groupSpecialty {
			writeError(w, http.StatusBadRequest, "specialty_group_mismatch")
			return
		}
		req.SpecialtyID = groupSpecialty
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.serverError(w, err)
		return
	}
	user := db.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	profileID := uuid.New().String()

	err = s.store.WithTx(ctx, func(q *db.Queries) error {
		if err := q.CreateUser(ctx, user); err != nil {
			return err
		}
		switch role {
		case db.RoleTeacher:
			return q.CreateTeacherProfile(ctx, db.TeacherProfile{
				ID:           profileID,
				UserID:       user.ID,
				DepartmentID: req.DepartmentID,
			})
		case db.RoleStudent:
			return q.CreateStudentProfile(ctx, db.StudentProfile{
				ID:          profileID,
				UserID:      user.ID,
				GroupID:     req.GroupID,
				SpecialtyID: req.SpecialtyID,
			})
		case db.RoleDepartmentHead:
			return q.CreateDepartmentHeadProfile(ctx, db.DepartmentHeadProfile{
				ID:           profileID,
				UserID:       user.ID,
				DepartmentID: req.DepartmentID,
			})
		}
		return nil
	})
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "user_exists")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusBadRequest, "invalid_reference")
		default:
			s.serverError(w, err)
		}
		return
	}

	resp := map[string]string{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"role":      string(role),
	}
	if role != db.RoleAdmin {
		resp["profileId"] = profileID
	}
	writeJSON(w, http.StatusCreated, resp)
}
