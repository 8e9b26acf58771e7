package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sadaqa/backend/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func newTestSubscriptionService(repo *mockSubscriptionRepo) *subscriptionService {
	return &subscriptionService{subs: repo, now: fixedNow}
}

func TestSubscriptionService_Checkout_SchedulesFirstCharge(t *testing.T) {
	var stored *model.Subscription
	repo := &mockSubscriptionRepo{
		createFunc: func(ctx context.Context, sub *model.Subscription) error {
			sub.ID = "s1"
			stored = sub
			return nil
		},
	}
	svc := newTestSubscriptionService(repo)

	sub, err := svc.Checkout(context.Background(), "user-1", "supporter", PeriodMonth, "tok-1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if sub.Status != model.SubscriptionStatusActive {
		t.Errorf("expected active, got %q", sub.Status)
	}
	want := fixedNow().AddDate(0, 1, 0)
	if stored.NextPayment == nil || !stored.NextPayment.Equal(want) {
		t.Errorf("expected next payment %v, got %v", want, stored.NextPayment)
	}
}

func TestSubscriptionService_Checkout_YearPeriod(t *testing.T) {
	repo := &mockSubscriptionRepo{}
	svc := newTestSubscriptionService(repo)

	sub, err := svc.Checkout(context.Background(), "user-1", "supporter", PeriodYear, "tok-1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	want := fixedNow().AddDate(1, 0, 0)
	if !sub.NextPayment.Equal(want) {
		t.Errorf("expected next payment %v, got %v", want, sub.NextPayment)
	}
}

func TestSubscriptionService_Checkout_UnknownPeriod(t *testing.T) {
	svc := newTestSubscriptionService(&mockSubscriptionRepo{})
	_, err := svc.Checkout(context.Background(), "user-1", "supporter", "week", "tok-1")
	if !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}

func TestSubscriptionService_Pause(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		userID  string
		wantErr error
	}{
		{"active pauses", model.SubscriptionStatusActive, "user-1", nil},
		{"paused rejected", model.SubscriptionStatusPaused, "user-1", ErrInvalidTransition},
		{"cancelled rejected", model.SubscriptionStatusCancelled, "user-1", ErrInvalidTransition},
		{"wrong owner", model.SubscriptionStatusActive, "intruder", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockSubscriptionRepo{
				findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
					return &model.Subscription{ID: id, UserID: "user-1", Status: tt.status, Period: PeriodMonth}, nil
				},
			}
			svc := newTestSubscriptionService(repo)
			err := svc.Pause(context.Background(), "s1", tt.userID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSubscriptionService_Resume_Reschedules(t *testing.T) {
	var scheduled time.Time
	repo := &mockSubscriptionRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
			return &model.Subscription{ID: id, UserID: "user-1", Status: model.SubscriptionStatusPaused, Period: PeriodMonth}, nil
		},
		scheduleFunc: func(ctx context.Context, id string, next time.Time) error {
			scheduled = next
			return nil
		},
	}
	svc := newTestSubscriptionService(repo)

	if err := svc.Resume(context.Background(), "s1", "user-1"); err != nil {
		t.Fatalf("resume: %v", err)
	}
	want := fixedNow().AddDate(0, 1, 0)
	if !scheduled.Equal(want) {
		t.Errorf("expected reschedule to %v, got %v", want, scheduled)
	}
}

func TestSubscriptionService_Resume_OnlyFromPaused(t *testing.T) {
	repo := &mockSubscriptionRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
			return &model.Subscription{ID: id, UserID: "user-1", Status: model.SubscriptionStatusActive, Period: PeriodMonth}, nil
		},
	}
	svc := newTestSubscriptionService(repo)

	if err := svc.Resume(context.Background(), "s1", "user-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubscriptionService_Cancel_TerminalRejected(t *testing.T) {
	repo := &mockSubscriptionRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
			return &model.Subscription{ID: id, UserID: "user-1", Status: model.SubscriptionStatusExpired}, nil
		},
	}
	svc := newTestSubscriptionService(repo)

	if err := svc.Cancel(context.Background(), "s1", "user-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSubscriptionService_RecordFailedCharge_ExpiresAtMax(t *testing.T) {
	var setStatus string
	repo := &mockSubscriptionRepo{
		recordAttemptFunc: func(ctx context.Context, id string) (int, error) { return 3, nil },
		findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
			return &model.Subscription{ID: id, UserID: "user-1", Status: model.SubscriptionStatusActive, MaxChargeAttempts: 3}, nil
		},
		setStatusFunc: func(ctx context.Context, id, status string) error {
			setStatus = status
			return nil
		},
	}
	svc := newTestSubscriptionService(repo)

	sub, err := svc.RecordFailedCharge(context.Background(), "s1")
	if err != nil {
		t.Fatalf("record failed charge: %v", err)
	}
	if setStatus != model.SubscriptionStatusExpired || sub.Status != model.SubscriptionStatusExpired {
		t.Errorf("expected expiry at max attempts, set=%q sub=%q", setStatus, sub.Status)
	}
}

func TestSubscriptionService_RecordFailedCharge_BelowMax(t *testing.T) {
	repo := &mockSubscriptionRepo{
		recordAttemptFunc: func(ctx context.Context, id string) (int, error) { return 1, nil },
		findByIDFunc: func(ctx context.Context, id string) (*model.Subscription, error) {
			return &model.Subscription{ID: id, Status: model.SubscriptionStatusActive, MaxChargeAttempts: 3}, nil
		},
		setStatusFunc: func(ctx context.Context, id, status string) error {
			t.Errorf("status change not expected below max attempts, got %q", status)
			return nil
		},
	}
	svc := newTestSubscriptionService(repo)

	sub, err := svc.RecordFailedCharge(context.Background(), "s1")
	if err != nil {
		t.Fatalf("record failed charge: %v", err)
	}
	if sub.Status != model.SubscriptionStatusActive {
		t.Errorf("expected still active, got %q", sub.Status)
	}
}
