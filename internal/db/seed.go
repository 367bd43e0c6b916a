package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo data: a handful of subscribers, two sent campaigns with
// delivery and open records, one scheduled campaign and one plain draft.
// Inserts are idempotent so repeated boots with SEED_DEMO on stay clean.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 1; i <= 8; i++ {
		email := fmt.Sprintf("reader%d@example.com", i)
		_, err := pool.Exec(ctx, `INSERT INTO subscribers (email) VALUES ($1) ON CONFLICT DO NOTHING`, email)
		if err != nil {
			return err
		}
	}

	sent := []struct {
		id       int64
		title    string
		daysAgo  int
		openRate int // percent of the 8 readers
	}{
		{1, "Welcome issue", 14, 50},
		{2, "Product update", 7, 25},
	}
	for _, c := range sent {
		sentAt := time.Now().AddDate(0, 0, -c.daysAgo)
		_, err := pool.Exec(ctx, `INSERT INTO campaigns (id, title, subtitle, content, total_recipients, created_at, sent_at)
VALUES ($1, $2, 'A note from the team', '<p>Hello readers!</p>', 8, $3, $4) ON CONFLICT DO NOTHING`,
			c.id, c.title, sentAt.AddDate(0, 0, -1), sentAt)
		if err != nil {
			return err
		}
		for sub := 1; sub <= 8; sub++ {
			var openedAt *time.Time
			if sub*100 <= c.openRate*8 {
				at := sentAt.Add(time.Duration(sub) * time.Hour)
				openedAt = &at
			}
			_, err = pool.Exec(ctx, `INSERT INTO deliveries (campaign_id, subscriber_id, token, sent_at, opened_at)
VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
				c.id, sub, uuid.NewString(), sentAt, openedAt)
			if err != nil {
				return err
			}
		}
	}

	_, err := pool.Exec(ctx, `INSERT INTO campaigns (id, title, subtitle, content)
VALUES (3, 'Quarterly roundup', 'Everything that shipped', '<p>Draft in progress.</p>') ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `INSERT INTO scheduled_deliveries (campaign_id, scheduled_at)
VALUES (3, $1) ON CONFLICT DO NOTHING`, time.Now().AddDate(0, 0, 7))
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `INSERT INTO campaigns (id, title, subtitle)
VALUES (4, 'Untitled draft', 'To be written') ON CONFLICT DO NOTHING`)
	if err != nil {
		return err
	}

	// keep the id sequence ahead of the fixed demo ids
	_, err = pool.Exec(ctx, `SELECT setval('campaigns_id_seq', GREATEST((SELECT MAX(id) FROM campaigns), 1))`)
	return err
}
