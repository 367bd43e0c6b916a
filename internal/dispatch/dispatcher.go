package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// ErrQueueFull is returned by Enqueue when the job buffer has no room. The
// caller reports it; nothing is retried automatically.
var ErrQueueFull = errors.New("dispatch queue is full")

// Dispatcher is the in-process delivery engine. Direct sends arrive through
// Enqueue; a cron poller picks up due schedules and enqueues them too, so
// both paths share one worker. For every job it snapshots the active
// subscribers, records per-recipient deliveries with tracking tokens, hands
// the messages to the mailer and finally stamps the campaign's sent_at —
// the write that callers observe on their next fetch.
type Dispatcher struct {
	campaigns   port.CampaignRepository
	schedules   port.ScheduleRepository
	subscribers port.SubscriberRepository
	deliveries  port.DeliveryRepository
	mailer      port.Mailer
	logger      *slog.Logger

	trackBaseURL string
	jobs         chan port.SendJob
	cron         *cron.Cron
	wg           sync.WaitGroup

	now func() time.Time
}

// New creates a dispatcher. trackBaseURL is the externally reachable base
// URL embedded into tracking pixels; queueSize bounds the number of pending
// send jobs.
func New(
	campaigns port.CampaignRepository,
	schedules port.ScheduleRepository,
	subscribers port.SubscriberRepository,
	deliveries port.DeliveryRepository,
	mailer port.Mailer,
	logger *slog.Logger,
	trackBaseURL string,
	queueSize int,
) *Dispatcher {
	if queueSize < 1 {
		queueSize = 16
	}
	return &Dispatcher{
		campaigns:    campaigns,
		schedules:    schedules,
		subscribers:  subscribers,
		deliveries:   deliveries,
		mailer:       mailer,
		logger:       logger,
		trackBaseURL: trackBaseURL,
		jobs:         make(chan port.SendJob, queueSize),
		now:          time.Now,
	}
}

// Enqueue accepts a send job without blocking. ErrQueueFull when the buffer
// is exhausted.
func (d *Dispatcher) Enqueue(job port.SendJob) error {
	select {
	case d.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the worker and the due-schedule poller. pollSpec is a cron
// expression such as "@every 1m". Stop with the returned context's cancel
// plus Wait.
func (d *Dispatcher) Start(ctx context.Context, pollSpec string) error {
	d.cron = cron.New()
	_, err := d.cron.AddFunc(pollSpec, func() { d.pollDue(ctx) })
	if err != nil {
		return fmt.Errorf("register schedule poller: %w", err)
	}
	d.cron.Start()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-d.jobs:
				d.process(ctx, job)
			}
		}
	}()
	return nil
}

// Wait blocks until the worker has exited and the poller has stopped.
func (d *Dispatcher) Wait() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
	d.wg.Wait()
}

// pollDue enqueues every fired schedule. A full queue is logged and retried
// on the next tick; schedules stay unsent until actually processed.
func (d *Dispatcher) pollDue(ctx context.Context) {
	due, err := d.schedules.ListDue(ctx, d.now())
	if err != nil {
		d.logger.Error("list due schedules", slog.Any("error", err))
		return
	}
	for _, s := range due {
		if err := d.Enqueue(port.SendJob{CampaignID: s.CampaignID, ScheduleID: s.ID}); err != nil {
			d.logger.Warn("enqueue due schedule",
				slog.Int64("schedule_id", s.ID), slog.Any("error", err))
		}
	}
}

// process delivers one campaign. The order matters: delivery rows first so
// analytics never misses a sent mail, the campaign's sent_at last so the
// campaign only reads as sent once its records exist. The schedule flip
// happens before that, which is exactly the transient state ResolveStatus
// is built to mask.
func (d *Dispatcher) process(ctx context.Context, job port.SendJob) {
	log := d.logger.With(slog.Int64("campaign_id", job.CampaignID))

	c, err := d.campaigns.GetByID(ctx, job.CampaignID)
	if err != nil {
		log.Error("load campaign", slog.Any("error", err))
		return
	}
	if c == nil {
		// Deleted after being queued; its schedules went with it.
		log.Warn("campaign gone, dropping job")
		return
	}
	if c.SentAt != nil {
		// Already terminal. Reconcile a stale schedule record and stop:
		// a campaign is never sent twice.
		if job.ScheduleID != 0 {
			if err := d.schedules.MarkSent(ctx, job.ScheduleID); err != nil {
				log.Error("reconcile schedule", slog.Any("error", err))
			}
		}
		return
	}

	recipients, err := d.subscribers.ListActive(ctx)
	if err != nil {
		log.Error("snapshot subscribers", slog.Any("error", err))
		return
	}

	sentAt := d.now()
	deliveries := make([]domain.Delivery, 0, len(recipients))
	for _, sub := range recipients {
		token := uuid.NewString()
		msg := buildMessage(*c, sub.Email, d.trackBaseURL, token)
		if err := d.mailer.Send(ctx, msg); err != nil {
			log.Warn("send failed", slog.String("email", sub.Email), slog.Any("error", err))
			continue
		}
		deliveries = append(deliveries, domain.Delivery{
			CampaignID:   c.ID,
			SubscriberID: sub.ID,
			Token:        token,
			SentAt:       sentAt,
		})
	}

	if err := d.deliveries.CreateBatch(ctx, deliveries); err != nil {
		log.Error("record deliveries", slog.Any("error", err))
	}
	if job.ScheduleID != 0 {
		if err := d.schedules.MarkSent(ctx, job.ScheduleID); err != nil {
			log.Error("mark schedule sent", slog.Any("error", err))
		}
	}
	ok, err := d.campaigns.MarkSent(ctx, c.ID, sentAt, len(deliveries))
	if err != nil {
		log.Error("mark campaign sent", slog.Any("error", err))
		return
	}
	if !ok {
		log.Warn("campaign was already marked sent")
	}
	log.Info("campaign delivered", slog.Int("recipients", len(deliveries)))
}
