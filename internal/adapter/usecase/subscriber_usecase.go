package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"simplymail/internal/core/domain"
	"simplymail/internal/core/port"
)

// SubscriberUseCase implements port.SubscriberUseCase.
type SubscriberUseCase struct {
	subscribers port.SubscriberRepository
	validate    *validator.Validate
}

// NewSubscriberUseCase wires the subscriber usecase.
func NewSubscriberUseCase(subscribers port.SubscriberRepository) *SubscriberUseCase {
	return &SubscriberUseCase{subscribers: subscribers, validate: validator.New()}
}

// Subscribe adds the email to the list, re-activating it when it was
// unsubscribed before.
func (u *SubscriberUseCase) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email, err := u.normalize(email)
	if err != nil {
		return nil, err
	}
	s, err := u.subscribers.Subscribe(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return s, nil
}

// Unsubscribe flips the email inactive.
func (u *SubscriberUseCase) Unsubscribe(ctx context.Context, email string) error {
	email, err := u.normalize(email)
	if err != nil {
		return err
	}
	ok, err := u.subscribers.Unsubscribe(ctx, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if !ok {
		return fmt.Errorf("subscriber %q: %w", email, domain.ErrNotFound)
	}
	return nil
}

// List returns every subscriber record, unsubscribed ones included.
func (u *SubscriberUseCase) List(ctx context.Context) ([]domain.Subscriber, error) {
	return u.subscribers.List(ctx)
}

// Counts returns the dashboard counts.
func (u *SubscriberUseCase) Counts(ctx context.Context) (domain.SubscriberCounts, error) {
	return u.subscribers.Counts(ctx)
}

// Delete removes a subscriber record entirely.
func (u *SubscriberUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := u.subscribers.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	if !ok {
		return fmt.Errorf("subscriber %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (u *SubscriberUseCase) normalize(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := u.validate.Var(email, "required,email"); err != nil {
		return "", fmt.Errorf("invalid email %q: %w", email, domain.ErrValidation)
	}
	return email, nil
}

var _ port.SubscriberUseCase = (*SubscriberUseCase)(nil)
