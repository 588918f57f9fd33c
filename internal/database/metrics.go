package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"lawfirm/internal/metrics"
)

const startedAtKey = "metrics:started_at"

// registerMetricsCallbacks times every statement GORM executes and reports it
// to the db_queries_total / db_query_duration_seconds collectors.
func registerMetricsCallbacks(conn *gorm.DB) error {
	cb := conn.Callback()

	hooks := []struct {
		op     string
		before func(string, func(*gorm.DB)) error
		after  func(string, func(*gorm.DB)) error
	}{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.before("metrics:before_"+h.op, startTimer); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+h.op, observe(h.op)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(tx *gorm.DB) {
	tx.InstanceSet(startedAtKey, time.Now())
}

func observe(op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		startedAt, ok := v.(time.Time)
		if !ok {
			return
		}

		err := tx.Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = nil
		}
		metrics.RecordDBQuery(op, time.Since(startedAt), err)
	}
}

// WatchPoolStats publishes connection pool gauges every interval until ctx
// is cancelled.
func WatchPoolStats(ctx context.Context, conn *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		publishPoolStats(conn)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func publishPoolStats(conn *gorm.DB) {
	stats, err := GetStats(conn)
	if err != nil {
		return
	}
	metrics.UpdateDBConnections(stats.InUse, stats.Idle)
}
