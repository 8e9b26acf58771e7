package service

import (
	"context"
	"errors"
	"time"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// ErrUnknownPeriod is returned for a billing period outside month/year.
var ErrUnknownPeriod = errors.New("unknown billing period")

// Billing periods.
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// SubscriptionService manages recurring-donation subscriptions.
type SubscriptionService interface {
	// Checkout starts an active subscription and schedules its first charge.
	Checkout(ctx context.Context, userID, plan, period, providerToken string) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error)
	// Pause suspends charging; only an active subscription can pause.
	Pause(ctx context.Context, id, userID string) error
	// Resume reactivates a paused subscription and reschedules the next charge.
	Resume(ctx context.Context, id, userID string) error
	// Cancel is allowed from any non-terminal state.
	Cancel(ctx context.Context, id, userID string) error
	// RecordFailedCharge counts a failed charge attempt and expires the
	// subscription once maxChargeAttempts is reached.
	RecordFailedCharge(ctx context.Context, id string) (*model.Subscription, error)
}

type subscriptionService struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(subs repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subs: subs, now: time.Now}
}

func nextPayment(from time.Time, period string) (time.Time, error) {
	switch period {
	case PeriodMonth:
		return from.AddDate(0, 1, 0), nil
	case PeriodYear:
		return from.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, ErrUnknownPeriod
	}
}

func (s *subscriptionService) Checkout(ctx context.Context, userID, plan, period, providerToken string) (*model.Subscription, error) {
	next, err := nextPayment(s.now().UTC(), period)
	if err != nil {
		return nil, err
	}
	sub := &model.Subscription{
		UserID:        userID,
		Plan:          plan,
		Period:        period,
		Status:        model.SubscriptionStatusActive,
		ProviderToken: providerToken,
		NextPayment:   &next,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error) {
	return s.subs.ListByUser(ctx, userID, limit, offset)
}

// owned loads the subscription and checks ownership.
func (s *subscriptionService) owned(ctx context.Context, id, userID string) (*model.Subscription, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrForbidden
	}
	return sub, nil
}

func (s *subscriptionService) Pause(ctx context.Context, id, userID string) error {
	sub, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if sub.Status != model.SubscriptionStatusActive {
		return ErrInvalidTransition
	}
	return s.subs.SetStatus(ctx, id, model.SubscriptionStatusPaused)
}

func (s *subscriptionService) Resume(ctx context.Context, id, userID string) error {
	sub, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if sub.Status != model.SubscriptionStatusPaused {
		return ErrInvalidTransition
	}
	if err := s.subs.SetStatus(ctx, id, model.SubscriptionStatusActive); err != nil {
		return err
	}
	next, err := nextPayment(s.now().UTC(), sub.Period)
	if err != nil {
		return err
	}
	return s.subs.ScheduleNextPayment(ctx, id, next)
}

func (s *subscriptionService) Cancel(ctx context.Context, id, userID string) error {
	sub, err := s.owned(ctx, id, userID)
	if err != nil {
		return err
	}
	if model.SubscriptionTerminal(sub.Status) {
		return ErrInvalidTransition
	}
	return s.subs.SetStatus(ctx, id, model.SubscriptionStatusCancelled)
}

func (s *subscriptionService) RecordFailedCharge(ctx context.Context, id string) (*model.Subscription, error) {
	attempts, err := s.subs.RecordChargeAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if attempts >= sub.MaxChargeAttempts && !model.SubscriptionTerminal(sub.Status) {
		if err := s.subs.SetStatus(ctx, id, model.SubscriptionStatusExpired); err != nil {
			return nil, err
		}
		sub.Status = model.SubscriptionStatusExpired
	}
	return sub, nil
}
