package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medali150/university-platform-sub001/internal/db"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	notifications, err := s.store.ListNotifications(r.Context(), principal.UserID, unreadOnly)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if notifications == nil {
		notifications = []db.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleNotificationStats(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	stats, err := s.store.NotificationStats(r.Context(), principal.UserID)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id := chi.URLParam(r, "id")
	err := s.store.MarkNotificationRead(r.Context(), id, principal.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if err := s.store.MarkAllNotificationsRead(r.Context(), principal.UserID); err != nil {
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	id := chi.URLParam(r, "id")
	err := s.store.DeleteNotification(r.Context(), id, principal.UserID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification_not_found")
			return
		}
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllNotifications(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if err := s.store.DeleteAllNotifications(r.Context(), principal.UserID); err != nil {
		s.serverError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
