package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/metrics"
	"github.com/medali150/university-platform-sub001/internal/notify"
	"github.com/medali150/university-platform-sub001/internal/timetable"
)

type slotRequest struct {
	WeekDay   int    `json:"week_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	SubjectID string `json:"subject_id"`
	GroupID   string `json:"group_id"`
	TeacherID string `json:"teacher_id"`
	RoomID    string `json:"room_id"`
}

type createSemesterRequest struct {
	Semester     string        `json:"semester"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	ExcludeDates []string      `json:"exclude_dates"`
	Schedules    []slotRequest `json:"schedules"`
}

// errScheduleConflict aborts a timetable transaction carrying the
// conflicts found inside it.
type errScheduleConflict struct {
	conflicts []timetable.Conflict
}

func (e errScheduleConflict) Error() string { return "schedule conflict" }

func (s *Server) handleCreateSemester(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	var req createSemesterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if len(req.Schedules) == 0 {
		writeError(w, http.StatusBadRequest, "schedules_required")
		return
	}

	loc := s.cfg.Location
	info := timetable.CurrentSemester(time.Now(), loc)
	semester := req.Semester
	start, end := info.Start, info.End
	if semester == "" {
		semester = info.Tag
	}
	if req.StartDate != "" {
		parsed, err := time.ParseInLocation(wireDate, req.StartDate, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start_date")
			return
		}
		start = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.ParseInLocation(wireDate, req.EndDate, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end_date")
			return
		}
		end = parsed
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "invalid_date_range")
		return
	}
	exclude := make(map[string]bool, len(req.ExcludeDates))
	for _, date := range req.ExcludeDates {
		if _, err := time.ParseInLocation(wireDate, date, loc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_exclude_date")
			return
		}
		exclude[date] = true
	}

	slots := make([]timetable.Slot, len(req.Schedules))
	for i, schedule := range req.Schedules {
		if !validUUID(schedule.SubjectID) || !validUUID(schedule.GroupID) ||
			!validUUID(schedule.TeacherID) || !validUUID(schedule.RoomID) {
			writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
			return
		}
		slots[i] = timetable.Slot{
			WeekDay:   schedule.WeekDay,
			StartTime: schedule.StartTime,
			EndTime:   schedule.EndTime,
			SubjectID: schedule.SubjectID,
			GroupID:   schedule.GroupID,
			TeacherID: schedule.TeacherID,
			RoomID:    schedule.RoomID,
		}
	}
	if ok := s.checkSlotOwnership(w, r, principal.DepartmentID, slots); !ok {
		return
	}

	drafts, err := timetable.Expand(start, end, exclude, slots, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_pattern")
		return
	}
	if len(drafts) == 0 {
		writeError(w, http.StatusBadRequest, "empty_expansion")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	var priorTeachers []string
	err = s.store.WithSerializableTx(ctx, func(q *db.Queries) error {
		_, teachers, err := q.DeleteSemesterSessions(ctx, semester, principal.DepartmentID)
		if err != nil {
			return err
		}
		priorTeachers = teachers
		windowFrom, windowTo := draftWindow(drafts)
		existing, err := q.ListActiveSessionsBetween(ctx, windowFrom, windowTo)
		if err != nil {
			return err
		}
		if conflicts := timetable.FindConflicts(draftBookings(drafts), sessionBookings(existing)); len(conflicts) > 0 {
			return errScheduleConflict{conflicts: conflicts}
		}
		for _, draft := range drafts {
			session := db.Session{
				ID:          uuid.New().String(),
				Date:        draft.Date,
				StartsAt:    draft.StartsAt,
				EndsAt:      draft.EndsAt,
				RoomID:      draft.RoomID,
				SubjectID:   draft.SubjectID,
				GroupID:     draft.GroupID,
				TeacherID:   draft.TeacherID,
				Status:      db.SessionStatusPlanned,
				Semester:    semester,
				WeekDay:     draft.WeekDay,
				IsRecurring: true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := q.CreateSession(ctx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var conflictErr errScheduleConflict
		if errors.As(err, &conflictErr) {
			s.writeScheduleConflicts(w, conflictErr.conflicts)
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.SessionsCreated.Add(float64(len(drafts)))

	teachers := priorTeachers
	for _, slot := range slots {
		teachers = append(teachers, slot.TeacherID)
	}
	s.notifier.ScheduleChanged(ctx, notify.TypeScheduleCreated, semester, teachers)

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"semester":          semester,
		"schedules_created": len(drafts),
	})
}

// checkSlotOwnership verifies every referenced subject, group and teacher
// belongs to the caller's department. Writes the error response itself.
func (s *Server) checkSlotOwnership(w http.ResponseWriter, r *http.Request, departmentID string, slots []timetable.Slot) bool {
	ctx := r.Context()
	seen := map[string]bool{}
	check := func(kind, id string, lookup func() (string, error)) bool {
		key := kind + ":" + id
		if seen[key] {
			return true
		}
		dept, err := lookup()
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusNotFound, kind+"_not_found")
				return false
			}
			s.serverError(w, err)
			return false
		}
		if dept != departmentID {
			writeError(w, http.StatusForbidden, kind+"_outside_department")
			return false
		}
		seen[key] = true
		return true
	}
	for _, slot := range slots {
		slot := slot
		if !check("subject", slot.SubjectID, func() (string, error) { return s.store.GetSubjectDepartment(ctx, slot.SubjectID) }) {
			return false
		}
		if !check("group", slot.GroupID, func() (string, error) { return s.store.GetGroupDepartment(ctx, slot.GroupID) }) {
			return false
		}
		if !check("teacher", slot.TeacherID, func() (string, error) { return s.store.GetTeacherDepartment(ctx, slot.TeacherID) }) {
			return false
		}
	}
	return true
}

func (s *Server) writeScheduleConflicts(w http.ResponseWriter, conflicts []timetable.Conflict) {
	loc := s.cfg.Location
	entries := make([]map[string]interface{}, 0, len(conflicts))
	for _, conflict := range conflicts {
		entries = append(entries, map[string]interface{}{
			"type": conflict.Resource,
			"date": conflict.Date.In(loc).Format(wireDate),
			"interval": []string{
				conflict.OverlapStart.In(loc).Format(wireClock),
				conflict.OverlapEnd.In(loc).Format(wireClock),
			},
			"with_session_id": conflict.WithSessionID,
		})
	}
	writeJSON(w, http.StatusConflict, map[string]interface{}{
		"error":     "schedule_conflict",
		"conflicts": entries,
	})
}

// draftWindow returns the envelope of every staged interval. Drafts are
// ordered by day, not by instant: slots within one day keep slot-list
// order, so the first and last drafts do not bound the window.
func draftWindow(drafts []timetable.Draft) (time.Time, time.Time) {
	from, to := drafts[0].StartsAt, drafts[0].EndsAt
	for _, draft := range drafts[1:] {
		if draft.StartsAt.Before(from) {
			from = draft.StartsAt
		}
		if draft.EndsAt.After(to) {
			to = draft.EndsAt
		}
	}
	return from, to
}

func draftBookings(drafts []timetable.Draft) []timetable.Booking {
	bookings := make([]timetable.Booking, len(drafts))
	for i, draft := range drafts {
		bookings[i] = timetable.Booking{
			RoomID:    draft.RoomID,
			TeacherID: draft.TeacherID,
			GroupID:   draft.GroupID,
			StartsAt:  draft.StartsAt,
			EndsAt:    draft.EndsAt,
		}
	}
	return bookings
}

func sessionBookings(sessions []db.Session) []timetable.Booking {
	bookings := make([]timetable.Booking, len(sessions))
	for i, session := range sessions {
		bookings[i] = timetable.Booking{
			ID:        session.ID,
			RoomID:    session.RoomID,
			TeacherID: session.TeacherID,
			GroupID:   session.GroupID,
			StartsAt:  session.StartsAt,
			EndsAt:    session.EndsAt,
		}
	}
	return bookings
}

func (s *Server) handleDeleteSemester(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	semester := chi.URLParam(r, "semester")
	ctx := r.Context()

	var deleted int64
	var teachers []string
	err := s.store.WithSerializableTx(ctx, func(q *db.Queries) error {
		var err error
		deleted, teachers, err = q.DeleteSemesterSessions(ctx, semester, principal.DepartmentID)
		return err
	})
	if err != nil {
		s.serverError(w, err)
		return
	}
	if deleted > 0 {
		s.notifier.ScheduleChanged(ctx, notify.TypeScheduleDeleted, semester, teachers)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"semester": semester,
		"deleted":  deleted,
	})
}

func (s *Server) handleListSemesterSchedules(w http.ResponseWriter, r *http.Request) {
	semester := chi.URLParam(r, "semester")
	groupID := r.URL.Query().Get("groupId")
	sessions, err := s.store.ListSemesterSessions(r.Context(), semester, groupID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	principal := principalFromContext(r.Context())
	scoped := sessions[:0:0]
	for _, session := range sessions {
		if session.DepartmentID == principal.DepartmentID {
			scoped = append(scoped, session)
		}
	}
	writeJSON(w, http.StatusOK, s.sessionResponses(scoped))
}

type createScheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	SubjectID string `json:"subjectId"`
	GroupID   string `json:"groupId"`
	TeacherID string `json:"teacherId"`
	RoomID    string `json:"roomId"`
	Status    string `json:"status"`
	Semester  string `json:"semester"`
}

// handleCreateSchedule stages a single one-off session, typically a
// makeup slot outside the weekly pattern.
func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !validUUID(req.SubjectID) || !validUUID(req.GroupID) || !validUUID(req.TeacherID) || !validUUID(req.RoomID) {
		writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
		return
	}
	loc := s.cfg.Location
	day, err := time.ParseInLocation(wireDate, req.Date, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_date")
		return
	}
	startH, startM, err := timetable.ParseClock(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_time")
		return
	}
	endH, endM, err := timetable.ParseClock(req.EndTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_time")
		return
	}
	if endH*60+endM <= startH*60+startM {
		writeError(w, http.StatusBadRequest, "invalid_interval")
		return
	}
	status := db.SessionStatusMakeup
	if req.Status != "" {
		var ok bool
		status, ok = normalizeSessionStatus(req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
	}
	semester := req.Semester
	if semester == "" {
		semester = timetable.CurrentSemester(day, loc).Tag
	}
	slots := []timetable.Slot{{
		WeekDay:   timetable.ISOWeekday(day),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		SubjectID: req.SubjectID,
		GroupID:   req.GroupID,
		TeacherID: req.TeacherID,
		RoomID:    req.RoomID,
	}}
	if ok := s.checkSlotOwnership(w, r, principal.DepartmentID, slots); !ok {
		return
	}

	now := time.Now().UTC()
	session := db.Session{
		ID:          uuid.New().String(),
		Date:        day,
		StartsAt:    time.Date(day.Year(), day.Month(), day.Day(), startH, startM, 0, 0, loc).UTC(),
		EndsAt:      time.Date(day.Year(), day.Month(), day.Day(), endH, endM, 0, 0, loc).UTC(),
		RoomID:      req.RoomID,
		SubjectID:   req.SubjectID,
		GroupID:     req.GroupID,
		TeacherID:   req.TeacherID,
		Status:      status,
		Semester:    semester,
		WeekDay:     timetable.ISOWeekday(day),
		IsRecurring: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx := r.Context()
	err = s.store.WithSerializableTx(ctx, func(q *db.Queries) error {
		return s.insertWithConflictCheck(ctx, q, session)
	})
	if err != nil {
		var conflictErr errScheduleConflict
		if errors.As(err, &conflictErr) {
			s.writeScheduleConflicts(w, conflictErr.conflicts)
			return
		}
		s.serverError(w, err)
		return
	}
	metrics.SessionsCreated.Inc()
	s.notifier.ScheduleChanged(ctx, notify.TypeScheduleCreated, semester, []string{session.TeacherID})
	writeJSON(w, http.StatusCreated, sessionResponse(db.SessionDetail{Session: session}, loc))
}

func (s *Server) insertWithConflictCheck(ctx context.Context, q *db.Queries, session db.Session) error {
	existing, err := q.ListActiveSessionsBetween(ctx, session.StartsAt, session.EndsAt)
	if err != nil {
		return err
	}
	booking := timetable.Booking{
		RoomID:    session.RoomID,
		TeacherID: session.TeacherID,
		GroupID:   session.GroupID,
		StartsAt:  session.StartsAt,
		EndsAt:    session.EndsAt,
	}
	if conflicts := timetable.FindConflicts([]timetable.Booking{booking}, sessionBookings(existing)); len(conflicts) > 0 {
		return errScheduleConflict{conflicts: conflicts}
	}
	return q.CreateSession(ctx, session)
}

type updateScheduleRequest struct {
	Date         *string `json:"date"`
	StartInstant *string `json:"startInstant"`
	EndInstant   *string `json:"endInstant"`
	RoomID       *string `json:"roomId"`
	SubjectID    *string `json:"subjectId"`
	GroupID      *string `json:"groupId"`
	TeacherID    *string `json:"teacherId"`
	Status       *string `json:"status"`
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id := chi.URLParam(r, "id")
	var req updateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	ctx := r.Context()
	loc := s.cfg.Location

	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	department, err := s.store.GetSessionDepartment(ctx, id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if department != principal.DepartmentID {
		writeError(w, http.StatusForbidden, "session_outside_department")
		return
	}

	if req.Date != nil {
		day, err := time.ParseInLocation(wireDate, *req.Date, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
		// Shift the interval to the new day, keeping the local clocks.
		oldStart := session.StartsAt.In(loc)
		oldEnd := session.EndsAt.In(loc)
		session.Date = day
		session.StartsAt = time.Date(day.Year(), day.Month(), day.Day(), oldStart.Hour(), oldStart.Minute(), 0, 0, loc).UTC()
		session.EndsAt = time.Date(day.Year(), day.Month(), day.Day(), oldEnd.Hour(), oldEnd.Minute(), 0, 0, loc).UTC()
		session.WeekDay = timetable.ISOWeekday(day)
	}
	if req.StartInstant != nil {
		instant, err := time.Parse(time.RFC3339, *req.StartInstant)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start")
			return
		}
		session.StartsAt = instant.UTC()
	}
	if req.EndInstant != nil {
		instant, err := time.Parse(time.RFC3339, *req.EndInstant)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end")
			return
		}
		session.EndsAt = instant.UTC()
	}
	if !session.StartsAt.Before(session.EndsAt) {
		writeError(w, http.StatusBadRequest, "invalid_interval")
		return
	}
	if req.StartInstant != nil || req.EndInstant != nil {
		local := session.StartsAt.In(loc)
		session.Date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		session.WeekDay = timetable.ISOWeekday(local)
	}
	if req.RoomID != nil {
		if !validUUID(*req.RoomID) {
			writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
			return
		}
		session.RoomID = *req.RoomID
	}
	if req.SubjectID != nil {
		if !validUUID(*req.SubjectID) {
			writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
			return
		}
		session.SubjectID = *req.SubjectID
	}
	if req.GroupID != nil {
		if !validUUID(*req.GroupID) {
			writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
			return
		}
		session.GroupID = *req.GroupID
	}
	if req.TeacherID != nil {
		if !validUUID(*req.TeacherID) {
			writeError(w, http.StatusBadRequest, "invalid_schedule_refs")
			return
		}
		session.TeacherID = *req.TeacherID
	}
	if req.Status != nil {
		status, ok := normalizeSessionStatus(*req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		session.Status = status
	}
	if req.SubjectID != nil || req.GroupID != nil || req.TeacherID != nil {
		slots := []timetable.Slot{{
			WeekDay:   session.WeekDay,
			StartTime: session.StartsAt.In(loc).Format(wireClock),
			EndTime:   session.EndsAt.In(loc).Format(wireClock),
			SubjectID: session.SubjectID,
			GroupID:   session.GroupID,
			TeacherID: session.TeacherID,
			RoomID:    session.RoomID,
		}}
		if ok := s.checkSlotOwnership(w, r, principal.DepartmentID, slots); !ok {
			return
		}
	}
	session.UpdatedAt = time.Now().UTC()

	err = s.store.WithSerializableTx(ctx, func(q *db.Queries) error {
		if session.Status != db.SessionStatusCancelled {
			existing, err := q.ListActiveSessionsBetween(ctx, session.StartsAt, session.EndsAt)
			if err != nil {
				return err
			}
			booking := timetable.Booking{
				ID:        session.ID,
				RoomID:    session.RoomID,
				TeacherID: session.TeacherID,
				GroupID:   session.GroupID,
				StartsAt:  session.StartsAt,
				EndsAt:    session.EndsAt,
			}
			if conflicts := timetable.FindConflicts([]timetable.Booking{booking}, sessionBookings(existing)); len(conflicts) > 0 {
				return errScheduleConflict{conflicts: conflicts}
			}
		}
		return q.UpdateSession(ctx, session)
	})
	if err != nil {
		var conflictErr errScheduleConflict
		if errors.As(err, &conflictErr) {
			s.writeScheduleConflicts(w, conflictErr.conflicts)
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	s.notifier.ScheduleChanged(ctx, notify.TypeScheduleUpdated, session.Semester, []string{session.TeacherID})
	writeJSON(w, http.StatusOK, sessionResponse(db.SessionDetail{Session: session}, loc))
}

func (s *Server) handleSemesterInfo(w http.ResponseWriter, r *http.Request) {
	info := timetable.CurrentSemester(time.Now(), s.cfg.Location)
	writeJSON(w, http.StatusOK, map[string]string{
		"semester":  info.Tag,
		"startDate": info.Start.Format(wireDate),
		"endDate":   info.End.Format(wireDate),
	})
}

func (s *Server) handleTodaySchedules(w http.ResponseWriter, r *http.Request) {
	loc := s.cfg.Location
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	s.writeScopedSchedules(w, r, dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC())
}

func (s *Server) handleWeekSchedules(w http.ResponseWriter, r *http.Request) {
	loc := s.cfg.Location
	anchor := time.Now().In(loc)
	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := time.ParseInLocation(wireDate, date, loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date")
			return
		}
		anchor = parsed
	}
	// Back up to Monday of the anchor's week.
	offset := timetable.ISOWeekday(anchor) - 1
	monday := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
	s.writeScopedSchedules(w, r, monday.UTC(), monday.AddDate(0, 0, 7).UTC())
}

func (s *Server) writeScopedSchedules(w http.ResponseWriter, r *http.Request, from, to time.Time) {
	principal := principalFromContext(r.Context())
	var groupID, teacherID, departmentID string
	switch principal.Role {
	case db.RoleStudent:
		groupID = principal.GroupID
	case db.RoleTeacher:
		teacherID = principal.TeacherID
	case db.RoleDepartmentHead:
		departmentID = principal.DepartmentID
	}
	sessions, err := s.store.ListSessionsInRange(r.Context(), from, to, groupID, teacherID, departmentID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponses(sessions))
}

func normalizeSessionStatus(value string) (db.SessionStatus, bool) {
	switch db.SessionStatus(value) {
	case db.SessionStatusPlanned, db.SessionStatusHeld, db.SessionStatusCancelled, db.SessionStatusMakeup:
		return db.SessionStatus(value), true
	}
	return "", false
}

func sessionResponse(session db.SessionDetail, loc *time.Location) map[string]interface{} {
	resp := map[string]interface{}{
		"id":          session.ID,
		"date":        session.StartsAt.In(loc).Format(wireDate),
		"startsAt":    formatInstant(session.StartsAt, loc),
		"endsAt":      formatInstant(session.EndsAt, loc),
		"startTime":   session.StartsAt.In(loc).Format(wireClock),
		"endTime":     session.EndsAt.In(loc).Format(wireClock),
		"weekDay":     session.WeekDay,
		"status":      string(session.Status),
		"semester":    session.Semester,
		"isRecurring": session.IsRecurring,
		"roomId":      session.RoomID,
		"subjectId":   session.SubjectID,
		"groupId":     session.GroupID,
		"teacherId":   session.TeacherID,
	}
	if session.SubjectName != "" {
		resp["subjectName"] = session.SubjectName
		resp["groupName"] = session.GroupName
		resp["roomCode"] = session.RoomCode
		resp["teacherName"] = session.TeacherName
	}
	return resp
}

func (s *Server) sessionResponses(sessions []db.SessionDetail) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionResponse(session, s.cfg.Location))
	}
	return out
}
