package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medali150/university-platform-sub001/internal/db"
)

// Departments

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal.Role == db.RoleDepartmentHead {
		dept, err := s.store.GetDepartment(r.Context(), principal.DepartmentID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeJSON(w, http.StatusOK, []db.Department{})
				return
			}
			s.serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []db.Department{dept})
		return
	}
	departments, err := s.store.ListDepartments(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	dept := db.Department{ID: uuid.New().String(), Name: req.Name}
	if err := s.store.CreateDepartment(r.Context(), dept); err != nil {
		if db.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "department_exists")
			return
		}
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dept)
}

func (s *Server) handleRenameDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if err := s.store.RenameDepartment(r.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "department_not_found")
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "department_exists")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "name": req.Name})
}

func (s *Server) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.DepartmentDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteDepartment(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "department_not_found")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusConflict, "has_dependents")
		default:
			s.serverError(w, err)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Specialties

func (s *Server) handleListSpecialties(w http.ResponseWriter, r *http.Request) {
	departmentID := r.URL.Query().Get("departmentId")
	principal := principalFromContext(r.Context())
	if principal.Role == db.RoleDepartmentHead {
		departmentID = principal.DepartmentID
	}
	specialties, err := s.store.ListSpecialties(r.Context(), departmentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, specialties)
}

func (s *Server) handleCreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		DepartmentID string `json:"departmentId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || !validUUID(req.DepartmentID) {
		writeError(w, http.StatusBadRequest, "invalid_fields")
		return
	}
	specialty := db.Specialty{
		ID:           uuid.New().String(),
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
	}
	if err := s.store.CreateSpecialty(r.Context(), specialty); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "specialty_exists")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusNotFound, "department_not_found")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, specialty)
}

func (s *Server) handleRenameSpecialty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if err := s.store.RenameSpecialty(r.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "specialty_not_found")
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "specialty_exists")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "name": req.Name})
}

func (s *Server) handleDeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.SpecialtyDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteSpecialty(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "specialty_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Levels

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	specialtyID := r.URL.Query().Get("specialtyId")
	principal := principalFromContext(r.Context())
	if principal.Role == db.RoleDepartmentHead && specialtyID == "" {
		levels, err := s.store.ListLevelsByDepartment(r.Context(), principal.DepartmentID)
		if err != nil {
			s.serverError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, levels)
		return
	}
	levels, err := s.store.ListLevels(r.Context(), specialtyID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, levels)
}

func (s *Server) handleCreateLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		SpecialtyID string `json:"specialtyId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || !validUUID(req.SpecialtyID) {
		writeError(w, http.StatusBadRequest, "invalid_fields")
		return
	}
	level := db.Level{
		ID:          uuid.New().String(),
		SpecialtyID: req.SpecialtyID,
		Name:        req.Name,
	}
	if err := s.store.CreateLevel(r.Context(), level); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "level_exists")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusNotFound, "specialty_not_found")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, level)
}

func (s *Server) handleRenameLevel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if err := s.store.RenameLevel(r.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "level_not_found")
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "level_exists")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "name": req.Name})
}

func (s *Server) handleDeleteLevel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.LevelDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteLevel(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "level_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Groups

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	levelID := r.URL.Query().Get("levelId")
	groups, err := s.store.ListGroups(r.Context(), levelID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		LevelID string `json:"levelId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || !validUUID(req.LevelID) {
		writeError(w, http.StatusBadRequest, "invalid_fields")
		return
	}
	group := db.Group{
		ID:      uuid.New().String(),
		LevelID: req.LevelID,
		Name:    req.Name,
	}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "group_exists")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusNotFound, "level_not_found")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleRenameGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if err := s.store.RenameGroup(r.Context(), id, req.Name); err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			writeError(w, http.StatusNotFound, "group_not_found")
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "group_exists")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "name": req.Name})
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.GroupDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteGroup(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "group_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Subjects

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	levelID := r.URL.Query().Get("levelId")
	subjects, err := s.store.ListSubjects(r.Context(), levelID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string  `json:"name"`
		LevelID     string  `json:"levelId"`
		TeacherID   string  `json:"teacherId"`
		Coefficient float64 `json:"coefficient"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || !validUUID(req.LevelID) || !validUUID(req.TeacherID) {
		writeError(w, http.StatusBadRequest, "invalid_fields")
		return
	}
	if req.Coefficient <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_coefficient")
		return
	}
	subject := db.Subject{
		ID:          uuid.New().String(),
		LevelID:     req.LevelID,
		TeacherID:   req.TeacherID,
		Name:        req.Name,
		Coefficient: req.Coefficient,
	}
	if err := s.store.CreateSubject(r.Context(), subject); err != nil {
		switch {
		case db.IsUniqueViolation(err):
			writeError(w, http.StatusConflict, "subject_exists")
		case db.IsForeignKeyViolation(err):
			writeError(w, http.StatusNotFound, "level_not_found")
		default:
			s.serverError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Name        *string  `json:"name"`
		TeacherID   *string  `json:"teacherId"`
		Coefficient *float64 `json:"coefficient"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	subject, err := s.store.GetSubject(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "subject_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name_required")
			return
		}
		subject.Name = name
	}
	if req.TeacherID != nil {
		if !validUUID(*req.TeacherID) {
			writeError(w, http.StatusBadRequest, "invalid_fields")
			return
		}
		subject.TeacherID = *req.TeacherID
	}
	if req.Coefficient != nil {
		if *req.Coefficient <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_coefficient")
			return
		}
		subject.Coefficient = *req.Coefficient
	}
	if err := s.store.UpdateSubject(r.Context(), subject); err != nil {
		if db.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "subject_exists")
			return
		}
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.SubjectDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteSubject(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "subject_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Rooms

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.ListRooms(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code     string `json:"code"`
		Capacity int    `json:"capacity"`
		Type     string `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code_required")
		return
	}
	if req.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_capacity")
		return
	}
	roomType, ok := normalizeRoomType(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_room_type")
		return
	}
	room := db.Room{
		ID:       uuid.New().String(),
		Code:     req.Code,
		Capacity: req.Capacity,
		Type:     roomType,
	}
	if err := s.store.CreateRoom(r.Context(), room); err != nil {
		if db.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "room_exists")
			return
		}
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Code     *string `json:"code"`
		Capacity *int    `json:"capacity"`
		Type     *string `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	room, err := s.store.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "room_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code == "" {
			writeError(w, http.StatusBadRequest, "code_required")
			return
		}
		room.Code = code
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_capacity")
			return
		}
		room.Capacity = *req.Capacity
	}
	if req.Type != nil {
		roomType, ok := normalizeRoomType(*req.Type)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_room_type")
			return
		}
		room.Type = roomType
	}
	if err := s.store.UpdateRoom(r.Context(), room); err != nil {
		if db.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "room_exists")
			return
		}
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dependents, err := s.store.RoomDependents(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if len(dependents) > 0 {
		writeDependencyDelete(w, dependents)
		return
	}
	if err := s.store.DeleteRoom(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "room_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func normalizeRoomType(value string) (db.RoomType, bool) {
	switch db.RoomType(strings.ToLower(strings.TrimSpace(value))) {
	case db.RoomTypeLecture:
		return db.RoomTypeLecture, true
	case db.RoomTypeLab:
		return db.RoomTypeLab, true
	case db.RoomTypeAmphi:
		return db.RoomTypeAmphi, true
	case db.RoomTypeOther, "":
		return db.RoomTypeOther, true
	}
	return "", false
}

// handleSubjectOptions bundles everything a head needs to build a
// timetable form in one call.
func (s *Server) handleSubjectOptions(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	ctx := r.Context()

	levels, err := s.store.ListLevelsByDepartment(ctx, principal.DepartmentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	subjects := make([]db.Subject, 0)
	groups := make([]db.Group, 0)
	for _, level := range levels {
		levelSubjects, err := s.store.ListSubjects(ctx, level.ID)
		if err != nil {
			s.serverError(w, err)
			return
		}
		subjects = append(subjects, levelSubjects...)
		levelGroups, err := s.store.ListGroups(ctx, level.ID)
		if err != nil {
			s.serverError(w, err)
			return
		}
		groups = append(groups, levelGroups...)
	}
	teachers, err := s.store.ListTeachersByDepartment(ctx, principal.DepartmentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"levels":   levels,
		"subjects": subjects,
		"groups":   groups,
		"teachers": teachers,
		"rooms":    rooms,
	})
}
