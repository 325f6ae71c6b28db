package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medali150/university-platform-sub001/internal/auth"
	"github.com/medali150/university-platform-sub001/internal/config"
	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/metrics"
	"github.com/medali150/university-platform-sub001/internal/notify"
)

type Server struct {
	cfg      config.Config
	store    *db.Store
	notifier *notify.Notifier
	log      *zap.Logger
}

func NewServer(cfg config.Config, store *db.Store, notifier *notify.Notifier, log *zap.Logger) *Server {
	return &Server{cfg: cfg, store: store, notifier: notifier, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/me", s.handleMe)
		r.With(s.requireAdmin).Post("/admin/users", s.handleCreateUser)

		// Academic structure
		r.With(s.requireAdminOrHead).Get("/departments", s.handleListDepartments)
		r.With(s.requireAdmin).Post("/departments", s.handleCreateDepartment)
		r.With(s.requireAdmin).Patch("/departments/{id}", s.handleRenameDepartment)
		r.With(s.requireAdmin).Delete("/departments/{id}", s.handleDeleteDepartment)

		r.With(s.requireAdminOrHead).Get("/specialties", s.handleListSpecialties)
		r.With(s.requireAdmin).Post("/specialties", s.handleCreateSpecialty)
		r.With(s.requireAdmin).Patch("/specialties/{id}", s.handleRenameSpecialty)
		r.With(s.requireAdmin).Delete("/specialties/{id}", s.handleDeleteSpecialty)

		r.With(s.requireAdminOrHead).Get("/levels", s.handleListLevels)
		r.With(s.requireAdmin).Post("/levels", s.handleCreateLevel)
		r.With(s.requireAdmin).Patch("/levels/{id}", s.handleRenameLevel)
		r.With(s.requireAdmin).Delete("/levels/{id}", s.handleDeleteLevel)

		r.With(s.requireAdminOrHead).Get("/groups", s.handleListGroups)
		r.With(s.requireAdmin).Post("/groups", s.handleCreateGroup)
		r.With(s.requireAdmin).Patch("/groups/{id}", s.handleRenameGroup)
		r.With(s.requireAdmin).Delete("/groups/{id}", s.handleDeleteGroup)

		r.With(s.requireAdminOrHead).Get("/subjects", s.handleListSubjects)
		r.With(s.requireAdmin).Post("/subjects", s.handleCreateSubject)
		r.With(s.requireAdmin).Patch("/subjects/{id}", s.handleUpdateSubject)
		r.With(s.requireAdmin).Delete("/subjects/{id}", s.handleDeleteSubject)

		r.With(s.requireAdminOrHead).Get("/rooms", s.handleListRooms)
		r.With(s.requireAdmin).Post("/rooms", s.handleCreateRoom)
		r.With(s.requireAdmin).Patch("/rooms/{id}", s.handleUpdateRoom)
		r.With(s.requireAdmin).Delete("/rooms/{id}", s.handleDeleteRoom)

		r.With(s.requireDepartmentHead).Get("/department-head/subject-options", s.handleSubjectOptions)

		// Timetable
		r.With(s.requireDepartmentHead).Post("/department-head/semester-timetable/create-semester", s.handleCreateSemester)
		r.With(s.requireDepartmentHead).Delete("/department-head/semester-timetable/{semester}", s.handleDeleteSemester)
		r.With(s.requireDepartmentHead).Get("/department-head/semester-timetable/{semester}", s.handleListSemesterSchedules)
		r.With(s.requireDepartmentHead).Post("/department-head/semester-timetable/schedule", s.handleCreateSchedule)
		r.With(s.requireDepartmentHead).Put("/department-head/semester-timetable/schedule/{id}", s.handleUpdateSchedule)

		r.Get("/semester-info", s.handleSemesterInfo)
		r.Get("/schedules/today", s.handleTodaySchedules)
		r.Get("/schedules/week", s.handleWeekSchedules)

		// Absences
		r.With(s.requireMarker).Post("/absences", s.handleMarkAbsent)
		r.Get("/absences", s.handleListAbsences)
		r.With(s.requireStudent).Get("/absences/me", s.handleListMyAbsences)
		r.Get("/absences/{id}", s.handleGetAbsence)
		r.With(s.requireStudent).Put("/absences/{id}/justify", s.handleJustifyAbsence)
		r.Put("/absences/{id}/review", s.handleReviewAbsence)
		r.Put("/absences/{id}/reopen", s.handleReopenAbsence)
		r.With(s.requireAdmin).Put("/absences/{id}/correct", s.handleCorrectAbsence)
		r.With(s.requireAdmin).Delete("/absences/{id}", s.handleDeleteAbsence)

		r.With(s.requireDepartmentHead).Get("/department-head/absences/summary", s.handleAbsenceSummary)
		r.With(s.requireDepartmentHead).Get("/department-head/absences/export", s.handleAbsenceExport)

		// Notifications
		r.Get("/notifications", s.handleListNotifications)
		r.Get("/notifications/stats", s.handleNotificationStats)
		r.Patch("/notifications/mark-all-read", s.handleMarkAllNotificationsRead)
		r.Patch("/notifications/{id}/read", s.handleMarkNotificationRead)
		r.Delete("/notifications/{id}", s.handleDeleteNotification)
		r.Delete("/notifications", s.handleDeleteAllNotifications)
	})

	return r
}

// Auth

type principalKey struct{}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		principal, err := s.store.GetPrincipal(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid_token")
				return
			}
			s.serverError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), principalKey{}, &principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFromContext(ctx context.Context) *db.Principal {
	value := ctx.Value(principalKey{})
	principal, _ := value.(*db.Principal)
	return principal
}

func (s *Server) requireRole(roles ...db.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := principalFromContext(r.Context())
			if principal == nil {
				writeError(w, http.StatusUnauthorized, "missing_token")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "forbidden")
		})
	}
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return s.requireRole(db.RoleAdmin)(next)
}

func (s *Server) requireDepartmentHead(next http.Handler) http.Handler {
	return s.requireRole(db.RoleDepartmentHead)(next)
}

func (s *Server) requireStudent(next http.Handler) http.Handler {
	return s.requireRole(db.RoleStudent)(next)
}

func (s *Server) requireAdminOrHead(next http.Handler) http.Handler {
	return s.requireRole(db.RoleAdmin, db.RoleDepartmentHead)(next)
}

// requireMarker admits everyone allowed to create absence records; the
// handler still checks session ownership.
func (s *Server) requireMarker(next http.Handler) http.Handler {
	return s.requireRole(db.RoleAdmin, db.RoleDepartmentHead, db.RoleTeacher)(next)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}
	resp := map[string]string{
		"userId": principal.UserID,
		"role":   string(principal.Role),
	}
	if principal.StudentID != "" {
		resp["studentId"] = principal.StudentID
		resp["groupId"] = principal.GroupID
	}
	if principal.TeacherID != "" {
		resp["teacherId"] = principal.TeacherID
	}
	if principal.DepartmentID != "" {
		resp["departmentId"] = principal.DepartmentID
	}
	writeJSON(w, http.StatusOK, resp)
}

// Helpers

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	metrics.HandlerErrors.Inc()
	s.log.Error("handler error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "server_error")
}

func validUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

// writeDependencyDelete emits the 409 body listing what blocks a delete.
func writeDependencyDelete(w http.ResponseWriter, dependents []db.DependentCount) {
	entries := make([]map[string]interface{}, 0, len(dependents))
	for _, dep := range dependents {
		entries = append(entries, map[string]interface{}{"kind": dep.Kind, "count": dep.Count})
	}
	writeJSON(w, http.StatusConflict, map[string]interface{}{
		"error":      "has_dependents",
		"dependents": entries,
	})
}

const wireDate = "2006-01-02"
const wireClock = "15:04"

func formatInstant(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC3339)
}
