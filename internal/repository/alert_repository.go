//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"citypulse/backend/internal/model"
	"citypulse/backend/pkg/snowflake"
)

// ServiceAlertRepository defines the interface for service alert storage.
type ServiceAlertRepository interface {
	Create(ctx context.Context, alert model.ServiceAlert) (bool, error)
	List(ctx context.Context, limit int) ([]model.ServiceAlert, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

type serviceAlertRepository struct {
	db *sql.DB
}

// NewServiceAlertRepository creates a new service alert repository.
func NewServiceAlertRepository(db *sql.DB) ServiceAlertRepository {
	return &serviceAlertRepository{db: db}
}

// Create inserts an alert unless one with the same hash already exists.
// The bool reports whether a row was actually inserted.
func (r *serviceAlertRepository) Create(ctx context.Context, alert model.ServiceAlert) (bool, error) {
	if alert.ID == 0 {
		alert.ID = snowflake.NextID()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO service_alerts (id, hash, title, summary, url, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, alert.ID, alert.Hash, alert.Title, alert.Summary, nullableString(alert.URL), nullableTime(alert.PublishedAt), now)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// List retrieves the newest alerts, ordered by publication time with the
// ingestion time as fallback.
func (r *serviceAlertRepository) List(ctx context.Context, limit int) ([]model.ServiceAlert, error) {
	query := `
		SELECT id, hash, title, summary, url, published_at, created_at FROM service_alerts
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []model.ServiceAlert
	for rows.Next() {
		var a model.ServiceAlert
		var publishedAt *string
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Hash, &a.Title, &a.Summary, &a.URL, &publishedAt, &createdAt); err != nil {
			return nil, err
		}
		if publishedAt != nil {
			if ts, err := parseTime(*publishedAt); err == nil {
				a.PublishedAt = &ts
			}
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// Prune deletes all but the newest keep alerts and returns the number of
// rows removed.
func (r *serviceAlertRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM service_alerts WHERE id NOT IN (
			SELECT id FROM service_alerts ORDER BY COALESCE(published_at, created_at) DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
