// Package jobs holds the background tickers started from main.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/medali150/university-platform-sub001/internal/config"
	"github.com/medali150/university-platform-sub001/internal/db"
	"github.com/medali150/university-platform-sub001/internal/notify"
)

// StartAbsenceAlertJob periodically scans rolling-window unjustified
// absence counts and alerts students crossing the threshold. Redis
// deduplicates alerts per student and window; without Redis we fall back
// to checking for a recent alert row.
func StartAbsenceAlertJob(ctx context.Context, cfg config.Config, store *db.Store, rdb *redis.Client, notifier *notify.Notifier, log *zap.Logger) {
	if !cfg.AbsenceAlertJobEnabled {
		return
	}
	interval := cfg.AbsenceAlertJobInterval
	if interval <= 0 {
		interval = time.Hour
	}
	timeout := cfg.AbsenceAlertJobTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, timeout)
				RunAbsenceAlertScan(tickCtx, cfg, store, rdb, notifier, log)
				cancel()
			}
		}
	}()
}

// RunAbsenceAlertScan performs one scan pass. The ticker calls it on its
// schedule; it can also be driven directly.
func RunAbsenceAlertScan(ctx context.Context, cfg config.Config, store *db.Store, rdb *redis.Client, notifier *notify.Notifier, log *zap.Logger) {
	windowDays := cfg.HighAbsenceWindowDays
	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	students, err := store.ListStudentsOverThreshold(ctx, since, int64(cfg.HighAbsenceThreshold), "")
	if err != nil {
		log.Warn("absence alert scan failed", zap.Error(err))
		return
	}
	for _, student := range students {
		fresh, err := shouldAlert(ctx, cfg, store, rdb, student.StudentID, student.StudentUserID, since)
		if err != nil {
			log.Warn("absence alert dedup check failed",
				zap.String("student_id", student.StudentID), zap.Error(err))
			continue
		}
		if !fresh {
			continue
		}
		notifier.HighAbsenceAlert(ctx, student.StudentUserID, student.Unjustified, windowDays)
		log.Info("high absence alert emitted",
			zap.String("student_id", student.StudentID),
			zap.Int64("unjustified", student.Unjustified))
	}
}

// shouldAlert reports whether no alert was already sent for this window.
// The Redis key TTL matches the window so one crossing alerts once.
func shouldAlert(ctx context.Context, cfg config.Config, store *db.Store, rdb *redis.Client, studentID, studentUserID string, since time.Time) (bool, error) {
	ttl := time.Duration(cfg.HighAbsenceWindowDays) * 24 * time.Hour
	if rdb != nil {
		key := fmt.Sprintf("absence_alert:%s", studentID)
		ok, err := rdb.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
		if err == nil {
			return ok, nil
		}
		// Redis being down should not silence alerts entirely.
	}
	recent, err := store.HasRecentNotification(ctx, studentUserID, notify.TypeHighAbsenceAlert, since)
	if err != nil {
		return false, err
	}
	return !recent, nil
}
