package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// ScheduleRepository implements port.ScheduleRepository using pgxpool. A
// partial unique index on (campaign_id) WHERE NOT sent backs the coordinator
// check: even a racing second insert cannot leave two pending schedules.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository returns a new repository instance.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const scheduleColumns = `id, campaign_id, scheduled_at, sent, created_at`

func scanSchedule(row pgx.Row) (domain.ScheduledDelivery, error) {
	var s domain.ScheduledDelivery
	err := row.Scan(&s.ID, &s.CampaignID, &s.ScheduledAt, &s.Sent, &s.CreatedAt)
	return s, err
}

// Create inserts a pending schedule.
func (r *ScheduleRepository) Create(ctx context.Context, s *domain.ScheduledDelivery) error {
	query := `
        INSERT INTO scheduled_deliveries (campaign_id, scheduled_at)
        VALUES ($1, $2)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query, s.CampaignID, s.ScheduledAt).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// GetByID returns the schedule or nil when absent.
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduledDelivery, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_deliveries WHERE id = $1`
	s, err := scanSchedule(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every schedule, pending first.
func (r *ScheduleRepository) ListAll(ctx context.Context) ([]domain.ScheduledDelivery, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_deliveries ORDER BY sent, scheduled_at`
	return r.collect(ctx, query)
}

// ListByCampaign returns the schedules referencing one campaign.
func (r *ScheduleRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]domain.ScheduledDelivery, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_deliveries WHERE campaign_id = $1 ORDER BY scheduled_at`
	return r.collect(ctx, query, campaignID)
}

// ListDue returns unsent schedules whose instant has passed, oldest first.
func (r *ScheduleRepository) ListDue(ctx context.Context, now time.Time) ([]domain.ScheduledDelivery, error) {
	query := `SELECT ` + scheduleColumns + ` FROM scheduled_deliveries WHERE NOT sent AND scheduled_at <= $1 ORDER BY scheduled_at`
	return r.collect(ctx, query, now)
}

// DeleteUnsent removes a pending schedule. False means the record is gone or
// has already fired.
func (r *ScheduleRepository) DeleteUnsent(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scheduled_deliveries WHERE id = $1 AND NOT sent`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkSent flips the schedule to fired.
func (r *ScheduleRepository) MarkSent(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE scheduled_deliveries SET sent = TRUE WHERE id = $1`, id)
	return err
}

func (r *ScheduleRepository) collect(ctx context.Context, query string, args ...any) ([]domain.ScheduledDelivery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduledDelivery, error) {
		return scanSchedule(row)
	})
}

var _ port.ScheduleRepository = (*ScheduleRepository)(nil)
