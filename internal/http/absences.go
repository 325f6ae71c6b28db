package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medali150/university-platform-sub001/internal/attendance"
	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/export"
	"github.com/medali150/university-platform-sub001/internal/metrics"
)

// markAbsentRequest keeps the legacy field names alive: motif for reason,
// scheduleId / schedule_id for the session.
type markAbsentRequest struct {
	StudentID       string `json:"studentId"`
	ScheduleID      string `json:"scheduleId"`
	ScheduleIDSnake string `json:"schedule_id"`
	SessionID       string `json:"sessionId"`
	Reason          string `json:"reason"`
	Motif           string `json:"motif"`
}

func (r markAbsentRequest) sessionID() string {
	for _, id := range []string{r.ScheduleID, r.ScheduleIDSnake, r.SessionID} {
		if id != "" {
			return id
		}
	}
	return ""
}

func (r markAbsentRequest) reason() string {
	if r.Reason != "" {
		return r.Reason
	}
	return r.Motif
}

func (s *Server) handleMarkAbsent(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	var req markAbsentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	sessionID := req.sessionID()
	reason := strings.TrimSpace(req.reason())
	if !validUUID(req.StudentID) || !validUUID(sessionID) || reason == "" {
		writeError(w, http.StatusBadRequest, "invalid_fields")
		return
	}

	ctx := r.Context()
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	switch principal.Role {
	case db.RoleTeacher:
		if session.TeacherID != principal.TeacherID {
			writeError(w, http.StatusForbidden, "not_session_teacher")
			return
		}
	case db.RoleDepartmentHead:
		department, err := s.store.GetSessionDepartment(ctx, sessionID)
		if err != nil {
			s.serverError(w, err)
			return
		}
		if department != principal.DepartmentID {
			writeError(w, http.StatusForbidden, "session_outside_department")
			return
		}
	}
	student, err := s.store.GetStudentProfile(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "student_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	if student.GroupID != session.GroupID {
		writeError(w, http.StatusBadRequest, "student_not_in_group")
		return
	}

	now := time.Now().UTC()
	absence := db.Absence{
		ID:        uuid.New().String(),
		StudentID: req.StudentID,
		SessionID: sessionID,
		Reason:    reason,
		Status:    db.AbsenceStatusUnjustified,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateAbsence(ctx, absence); err != nil {
		if db.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "absence_exists")
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.AbsencesMarked.Inc()

	detail, err := s.store.GetAbsenceDetail(ctx, absence.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.notifier.AbsenceMarked(ctx, detail)
	writeJSON(w, http.StatusCreated, s.absenceResponse(detail))
}

func (s *Server) handleListAbsences(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	ctx := r.Context()
	var absences []db.AbsenceDetail
	var err error
	switch principal.Role {
	case db.RoleStudent:
		absences, err = s.store.ListAbsencesByStudent(ctx, principal.StudentID)
	case db.RoleTeacher:
		absences, err = s.store.ListAbsencesByTeacher(ctx, principal.TeacherID)
	case db.RoleDepartmentHead:
		absences, err = s.store.ListAbsencesByDepartment(ctx, principal.DepartmentID)
	default:
		absences, err = s.store.ListAllAbsences(ctx)
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.absenceResponses(absences))
}

func (s *Server) handleListMyAbsences(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	absences, err := s.store.ListAbsencesByStudent(r.Context(), principal.StudentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.absenceResponses(absences))
}

func (s *Server) handleGetAbsence(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	detail, ok := s.loadVisibleAbsence(w, r, principal)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.absenceResponse(detail))
}

// loadVisibleAbsence fetches the absence and enforces who may see it.
func (s *Server) loadVisibleAbsence(w http.ResponseWriter, r *http.Request, principal *db.Principal) (db.AbsenceDetail, bool) {
	id := chi.URLParam(r, "id")
	detail, err := s.store.GetAbsenceDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "absence_not_found")
			return db.AbsenceDetail{}, false
		}
		s.serverError(w, err)
		return db.AbsenceDetail{}, false
	}
	switch principal.Role {
	case db.RoleStudent:
		if detail.StudentID != principal.StudentID {
			writeError(w, http.StatusForbidden, "forbidden")
			return db.AbsenceDetail{}, false
		}
	case db.RoleTeacher:
		if detail.TeacherID != principal.TeacherID {
			writeError(w, http.StatusForbidden, "forbidden")
			return db.AbsenceDetail{}, false
		}
	case db.RoleDepartmentHead:
		if detail.DepartmentID != principal.DepartmentID {
			writeError(w, http.StatusForbidden, "forbidden")
			return db.AbsenceDetail{}, false
		}
	}
	return detail, true
}

func (s *Server) handleJustifyAbsence(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	var req struct {
		JustificationText string `json:"justificationText"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	req.JustificationText = strings.TrimSpace(req.JustificationText)
	if req.JustificationText == "" {
		writeError(w, http.StatusBadRequest, "justification_required")
		return
	}
	detail, ok := s.loadVisibleAbsence(w, r, principal)
	if !ok {
		return
	}
	if detail.StudentID != principal.StudentID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	next, err := attendance.Next(detail.Status, attendance.EventSubmitJustification)
	if err != nil {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}
	err = s.store.UpdateAbsenceStatus(r.Context(), detail.ID, detail.Status, next,
		&req.JustificationText, nil, nil, time.Now().UTC())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			// The row moved under us; the state check already passed, so
			// this is a concurrent transition, not a missing absence.
			writeError(w, http.StatusConflict, "invalid_transition")
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.AbsenceTransitions.WithLabelValues(string(attendance.EventSubmitJustification)).Inc()

	detail, err = s.store.GetAbsenceDetail(r.Context(), detail.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.notifier.JustificationSubmitted(r.Context(), detail)
	writeJSON(w, http.StatusOK, s.absenceResponse(detail))
}

func (s *Server) handleReviewAbsence(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal.Role == db.RoleStudent {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	var req struct {
		ReviewStatus string `json:"reviewStatus"`
		ReviewNotes  string `json:"reviewNotes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	var event attendance.Event
	switch strings.ToLower(strings.TrimSpace(req.ReviewStatus)) {
	case "approved":
		event = attendance.EventApprove
	case "rejected":
		event = attendance.EventReject
	default:
		writeError(w, http.StatusBadRequest, "invalid_review_status")
		return
	}
	detail, ok := s.loadVisibleAbsence(w, r, principal)
	if !ok {
		return
	}
	next, err := attendance.Next(detail.Status, event)
	if err != nil {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}
	var notes *string
	if trimmed := strings.TrimSpace(req.ReviewNotes); trimmed != "" {
		notes = &trimmed
	}
	reviewerID := principal.UserID
	err = s.store.UpdateAbsenceStatus(r.Context(), detail.ID, detail.Status, next,
		nil, notes, &reviewerID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusConflict, "invalid_transition")
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.AbsenceTransitions.WithLabelValues(string(event)).Inc()

	detail, err = s.store.GetAbsenceDetail(r.Context(), detail.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if event == attendance.EventApprove {
		s.notifier.JustificationApproved(r.Context(), detail)
	} else {
		s.notifier.JustificationRejected(r.Context(), detail)
	}
	writeJSON(w, http.StatusOK, s.absenceResponse(detail))
}

func (s *Server) handleReopenAbsence(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal.Role != db.RoleAdmin && principal.Role != db.RoleDepartmentHead {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	detail, ok := s.loadVisibleAbsence(w, r, principal)
	if !ok {
		return
	}
	if _, err := attendance.Next(detail.Status, attendance.EventReopen); err != nil {
		writeError(w, http.StatusConflict, "invalid_transition")
		return
	}
	err := s.store.ClearAbsenceReview(r.Context(), detail.ID, detail.Status, time.Now().UTC())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusConflict, "invalid_transition")
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.AbsenceTransitions.WithLabelValues(string(attendance.EventReopen)).Inc()

	detail, err = s.store.GetAbsenceDetail(r.Context(), detail.ID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.notifier.JustificationReopened(r.Context(), detail)
	writeJSON(w, http.StatusOK, s.absenceResponse(detail))
}

func (s *Server) handleCorrectAbsence(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	status := db.AbsenceStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	switch status {
	case db.AbsenceStatusUnjustified, db.AbsenceStatusPendingReview, db.AbsenceStatusJustified:
	default:
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	var notes *string
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = &trimmed
	}
	reviewerID := principal.UserID
	err := s.store.CorrectAbsenceStatus(r.Context(), id, status, notes, &reviewerID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "absence_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	detail, err := s.store.GetAbsenceDetail(r.Context(), id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.absenceResponse(detail))
}

func (s *Server) handleDeleteAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteAbsence(r.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "absence_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAbsenceSummary(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	since := time.Now().UTC().AddDate(0, 0, -s.cfg.HighAbsenceWindowDays)
	rows, err := s.store.DepartmentAbsenceSummary(r.Context(), principal.DepartmentID, since)
	if err != nil {
		s.serverError(w, err)
		return
	}
	threshold := int64(s.cfg.HighAbsenceThreshold)
	entries := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, map[string]interface{}{
			"studentId":     row.StudentID,
			"studentName":   row.StudentName,
			"groupName":     row.GroupName,
			"unjustified":   row.Unjustified,
			"overThreshold": row.Unjustified >= threshold,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"windowDays": s.cfg.HighAbsenceWindowDays,
		"threshold":  threshold,
		"students":   entries,
	})
}

func (s *Server) handleAbsenceExport(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	absences, err := s.store.ListAbsencesByDepartment(r.Context(), principal.DepartmentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	workbook, err := export.AbsencesWorkbook(absences, s.cfg.Location)
	if err != nil {
		s.serverError(w, err)
		return
	}
	filename := fmt.Sprintf("absences_%s.xlsx", time.Now().In(s.cfg.Location).Format(wireDate))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := workbook.Write(w); err != nil {
		s.log.Warn("export write failed", zap.Error(err))
	}
}

func (s *Server) absenceResponse(d db.AbsenceDetail) map[string]interface{} {
	loc := s.cfg.Location
	resp := map[string]interface{}{
		"id":          d.ID,
		"studentId":   d.StudentID,
		"studentName": d.StudentName,
		"sessionId":   d.SessionID,
		"sessionDate": d.SessionStartAt.In(loc).Format(wireDate),
		"startsAt":    formatInstant(d.SessionStartAt, loc),
		"endsAt":      formatInstant(d.SessionEndAt, loc),
		"subjectName": d.SubjectName,
		"teacherId":   d.TeacherID,
		"teacherName": d.TeacherName,
		"groupId":     d.GroupID,
		"groupName":   d.GroupName,
		"reason":      d.Reason,
		"motif":       d.Reason,
		"status":      string(d.Status),
		"createdAt":   d.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   d.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if d.JustificationText != nil {
		resp["justificationText"] = *d.JustificationText
	}
	if d.ReviewerID != nil {
		resp["reviewerId"] = *d.ReviewerID
	}
	if d.ReviewNotes != nil {
		resp["reviewNotes"] = *d.ReviewNotes
	}
	return resp
}

func (s *Server) absenceResponses(absences []db.AbsenceDetail) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(absences))
	for _, absence := range absences {
		out = append(out, s.absenceResponse(absence))
	}
	return out
}
