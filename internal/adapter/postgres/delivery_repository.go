package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// DeliveryRepository implements port.DeliveryRepository using pgxpool.
type DeliveryRepository struct {
	pool *pgxpool.Pool
}

// NewDeliveryRepository returns a new repository instance.
func NewDeliveryRepository(pool *pgxpool.Pool) *DeliveryRepository {
	return &DeliveryRepository{pool: pool}
}

// CreateBatch inserts the per-recipient delivery rows of one send in a
// single batch round trip. A row that already exists for the pair is left
// alone so a replayed send job cannot double-count a recipient.
func (r *DeliveryRepository) CreateBatch(ctx context.Context, deliveries []domain.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
        INSERT INTO deliveries (campaign_id, subscriber_id, token, sent_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (campaign_id, subscriber_id) DO NOTHING`
	for _, d := range deliveries {
		batch.Queue(query, d.CampaignID, d.SubscriberID, d.Token, d.SentAt)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// MarkOpened stamps opened_at for the delivery carrying the token. The
// opened_at IS NULL guard makes only the first pixel hit count.
func (r *DeliveryRepository) MarkOpened(ctx context.Context, token string, at time.Time) (bool, error) {
	query := `UPDATE deliveries SET opened_at = $2 WHERE token = $1 AND opened_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, token, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CampaignCounts returns (sent, opened) for one campaign.
func (r *DeliveryRepository) CampaignCounts(ctx context.Context, campaignID int64) (int64, int64, error) {
	query := `
        SELECT COUNT(*), COUNT(opened_at)
        FROM deliveries
        WHERE campaign_id = $1`
	var sent, opened int64
	err := r.pool.QueryRow(ctx, query, campaignID).Scan(&sent, &opened)
	return sent, opened, err
}

// TotalCounts returns (sent, opened) across all campaigns.
func (r *DeliveryRepository) TotalCounts(ctx context.Context) (int64, int64, error) {
	var sent, opened int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COUNT(opened_at) FROM deliveries`).Scan(&sent, &opened)
	return sent, opened, err
}

var _ port.DeliveryRepository = (*DeliveryRepository)(nil)
