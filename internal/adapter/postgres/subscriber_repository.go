package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// SubscriberRepository implements port.SubscriberRepository using pgxpool.
type SubscriberRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriberRepository returns a new repository instance.
func NewSubscriberRepository(pool *pgxpool.Pool) *SubscriberRepository {
	return &SubscriberRepository{pool: pool}
}

const subscriberColumns = `id, email, subscribed, created_at, unsubscribed_at`

func scanSubscriber(row pgx.Row) (domain.Subscriber, error) {
	var s domain.Subscriber
	err := row.Scan(&s.ID, &s.Email, &s.Subscribed, &s.CreatedAt, &s.UnsubscribedAt)
	return s, err
}

// Subscribe inserts the email or re-activates an existing record. The upsert
// keeps subscribe idempotent for addresses already on the list.
func (r *SubscriberRepository) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
        INSERT INTO subscribers (email)
        VALUES ($1)
        ON CONFLICT (email)
        DO UPDATE SET subscribed = TRUE, unsubscribed_at = NULL
        RETURNING ` + subscriberColumns
	s, err := scanSubscriber(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Unsubscribe flips the record inactive; false when the email is unknown.
func (r *SubscriberRepository) Unsubscribe(ctx context.Context, email string) (bool, error) {
	query := `
        UPDATE subscribers
        SET subscribed = FALSE, unsubscribed_at = now()
        WHERE email = $1 AND subscribed`
	tag, err := r.pool.Exec(ctx, query, email)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// List returns every subscriber record, newest first.
func (r *SubscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY created_at DESC, id DESC`
	return r.collect(ctx, query)
}

// ListActive returns the current recipients of a send.
func (r *SubscriberRepository) ListActive(ctx context.Context) ([]domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE subscribed ORDER BY id`
	return r.collect(ctx, query)
}

// Counts returns the dashboard counts in one round trip.
func (r *SubscriberRepository) Counts(ctx context.Context) (domain.SubscriberCounts, error) {
	query := `
        SELECT
            COUNT(*) FILTER (WHERE subscribed),
            COUNT(*) FILTER (WHERE NOT subscribed)
        FROM subscribers`
	var counts domain.SubscriberCounts
	err := r.pool.QueryRow(ctx, query).Scan(&counts.TotalSubscribed, &counts.TotalUnsubscribed)
	return counts, err
}

// Delete removes a subscriber record entirely.
func (r *SubscriberRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SubscriberRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Subscriber, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Subscriber, error) {
		return scanSubscriber(row)
	})
}

var _ port.SubscriberRepository = (*SubscriberRepository)(nil)
