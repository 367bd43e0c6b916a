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

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `id, title, subtitle, content, media_kind, media_url, total_recipients, created_at, sent_at`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var c domain.Campaign
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Subtitle,
		&c.Content,
		&c.MediaKind,
		&c.MediaURL,
		&c.TotalRecipients,
		&c.CreatedAt,
		&c.SentAt,
	)
	return c, err
}

// Create inserts a new draft campaign and fills in the assigned id and
// creation time.
func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) error {
	query := `
        INSERT INTO campaigns (title, subtitle, content, media_kind, media_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, c.Title, c.Subtitle, c.Content, c.MediaKind, c.MediaURL).
		Scan(&c.ID, &c.CreatedAt)
}

// GetByID returns the campaign or nil when absent.
func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// List returns all campaigns, newest first.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// Update rewrites the editable fields of a campaign.
func (r *CampaignRepository) Update(ctx context.Context, c *domain.Campaign) error {
	query := `
        UPDATE campaigns
        SET title = $2, subtitle = $3, content = $4, media_kind = $5, media_url = $6
        WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, c.ID, c.Title, c.Subtitle, c.Content, c.MediaKind, c.MediaURL)
	return err
}

// MarkSent stamps sent_at and the recipient snapshot. The sent_at IS NULL
// guard makes the flip one-way regardless of how often it is called.
func (r *CampaignRepository) MarkSent(ctx context.Context, id int64, sentAt time.Time, totalRecipients int) (bool, error) {
	query := `
        UPDATE campaigns
        SET sent_at = $2, total_recipients = $3
        WHERE id = $1 AND sent_at IS NULL`
	tag, err := r.pool.Exec(ctx, query, id, sentAt, totalRecipients)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a campaign. Schedules and deliveries referencing it go
// through the foreign-key cascade.
func (r *CampaignRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)
