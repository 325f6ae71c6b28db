// Package notify writes notification rows and owns the event-to-recipient
// rules. Emission is best-effort: failures are logged and captured, never
// surfaced to the operation that triggered them.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/metrics"
	"github.com/medali150/university-platform-sub001/internal/observability"
)

const (
	TypeStudentAbsenceMarked          = "STUDENT_ABSENCE_MARKED"
	TypeTeacherJustificationSubmitted = "TEACHER_JUSTIFICATION_SUBMITTED"
	TypeJustificationApproved         = "JUSTIFICATION_APPROVED"
	TypeJustificationRejected         = "JUSTIFICATION_REJECTED"
	TypeJustificationReopened         = "JUSTIFICATION_REOPENED"
	TypeScheduleCreated               = "SCHEDULE_CREATED"
	TypeScheduleUpdated               = "SCHEDULE_UPDATED"
	TypeScheduleDeleted               = "SCHEDULE_DELETED"
	TypeHighAbsenceAlert              = "HIGH_ABSENCE_ALERT"
)

type Notifier struct {
	store *db.Store
	log   *zap.Logger
	loc   *time.Location
}

func New(store *db.Store, log *zap.Logger, loc *time.Location) *Notifier {
	return &Notifier{store: store, log: log, loc: loc}
}

// emit writes one notification row. Recipients are always user ids, never
// profile ids.
func (n *Notifier) emit(ctx context.Context, userID, notificationType, title, message string, relatedID *string) {
	err := n.store.CreateNotification(ctx, db.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Message:   message,
		RelatedID: relatedID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.NotificationFailures.Inc()
		observability.CaptureErr(err)
		n.log.Warn("notification emit failed",
			zap.String("type", notificationType),
			zap.String("user_id", userID),
			zap.Error(err))
		return
	}
	metrics.NotificationsEmitted.Inc()
}

func (n *Notifier) AbsenceMarked(ctx context.Context, a db.AbsenceDetail) {
	date := a.SessionDate.In(n.loc).Format("02/01/2006")
	n.emit(ctx, a.StudentUserID, TypeStudentAbsenceMarked,
		"Absence enregistrée",
		fmt.Sprintf("Vous avez été marqué absent en %s le %s.", a.SubjectName, date),
		&a.Absence.ID)
}

func (n *Notifier) JustificationSubmitted(ctx context.Context, a db.AbsenceDetail) {
	date := a.SessionDate.In(n.loc).Format("02/01/2006")
	n.emit(ctx, a.TeacherUserID, TypeTeacherJustificationSubmitted,
		"Justificatif soumis",
		fmt.Sprintf("%s a soumis un justificatif pour son absence en %s du %s.", a.StudentName, a.SubjectName, date),
		&a.Absence.ID)
}

func (n *Notifier) JustificationApproved(ctx context.Context, a db.AbsenceDetail) {
	n.emit(ctx, a.StudentUserID, TypeJustificationApproved,
		"Justificatif accepté",
		fmt.Sprintf("Votre justificatif pour l'absence en %s a été accepté.", a.SubjectName),
		&a.Absence.ID)
}

func (n *Notifier) JustificationRejected(ctx context.Context, a db.AbsenceDetail) {
	n.emit(ctx, a.StudentUserID, TypeJustificationRejected,
		"Justificatif refusé",
		fmt.Sprintf("Votre justificatif pour l'absence en %s a été refusé.", a.SubjectName),
		&a.Absence.ID)
}

func (n *Notifier) JustificationReopened(ctx context.Context, a db.AbsenceDetail) {
	n.emit(ctx, a.StudentUserID, TypeJustificationReopened,
		"Justificatif en réexamen",
		fmt.Sprintf("Votre absence en %s est de nouveau en cours d'examen.", a.SubjectName),
		&a.Absence.ID)
}

// ScheduleChanged fans a schedule event out to the affected teachers,
// resolved from profile ids to user ids, one notification each.
func (n *Notifier) ScheduleChanged(ctx context.Context, notificationType, semester string, teacherIDs []string) {
	var title, message string
	switch notificationType {
	case TypeScheduleCreated:
		title = "Emploi du temps publié"
		message = fmt.Sprintf("L'emploi du temps du semestre %s a été publié.", semester)
	case TypeScheduleUpdated:
		title = "Emploi du temps modifié"
		message = fmt.Sprintf("Une séance du semestre %s a été modifiée.", semester)
	case TypeScheduleDeleted:
		title = "Emploi du temps supprimé"
		message = fmt.Sprintf("L'emploi du temps du semestre %s a été supprimé.", semester)
	default:
		return
	}
	seen := make(map[string]bool, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		if seen[teacherID] {
			continue
		}
		seen[teacherID] = true
		userID, err := n.store.GetTeacherUserID(ctx, teacherID)
		if err != nil {
			metrics.NotificationFailures.Inc()
			n.log.Warn("teacher user lookup failed", zap.String("teacher_id", teacherID), zap.Error(err))
			continue
		}
		n.emit(ctx, userID, notificationType, title, message, nil)
	}
}

func (n *Notifier) HighAbsenceAlert(ctx context.Context, studentUserID string, count int64, windowDays int) {
	n.emit(ctx, studentUserID, TypeHighAbsenceAlert,
		"Alerte absences",
		fmt.Sprintf("Vous cumulez %d absences non justifiées sur les %d derniers jours.", count, windowDays),
		nil)
}
