package service

import (
	"context"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// Zakat parameters. Nisab is valued at 85 grams of gold; the rate is 2.5%
// of net zakatable assets.
const (
	NisabGoldGrams = 85.0
	ZakatRate      = 0.025
)

// ZakatService calculates zakat and keeps an append-only history per user.
type ZakatService interface {
	// Calculate computes the amount due from the declared assets, persists
	// the result and returns it.
	Calculate(ctx context.Context, userID string, in model.ZakatInput) (*model.ZakatCalculation, error)
	History(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error)
	// Pay turns a zakat amount into a regular donation to the given target.
	Pay(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error)
}

type zakatService struct {
	zakat     repository.ZakatRepository
	donations DonationService
}

// NewZakatService creates a ZakatService.
func NewZakatService(zakat repository.ZakatRepository, donations DonationService) ZakatService {
	return &zakatService{zakat: zakat, donations: donations}
}

// ComputeZakat applies the nisab threshold and rate to the declared assets.
// Exported so the calculation can be exercised without a store.
func ComputeZakat(in model.ZakatInput) (due float64, aboveNisab bool) {
	assets := in.Cash + in.GoldValue + in.SilverValue + in.Investments + in.TradeGoods
	net := assets - in.Debts
	if net <= 0 {
		return 0, false
	}
	nisab := in.GoldPricePerGram * NisabGoldGrams
	if net < nisab {
		return 0, false
	}
	return net * ZakatRate, true
}

func (s *zakatService) Calculate(ctx context.Context, userID string, in model.ZakatInput) (*model.ZakatCalculation, error) {
	due, above := ComputeZakat(in)
	calc := &model.ZakatCalculation{
		UserID:     userID,
		Input:      in,
		ZakatDue:   due,
		AboveNisab: above,
	}
	if err := s.zakat.Create(ctx, calc); err != nil {
		return nil, err
	}
	return calc, nil
}

func (s *zakatService) History(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error) {
	return s.zakat.ListByUser(ctx, userID, limit, offset)
}

func (s *zakatService) Pay(ctx context.Context, userID string, amount int64, currency, campaignID, partnerID string) (*model.Donation, error) {
	return s.donations.Create(ctx, userID, CreateDonationInput{
		CampaignID: campaignID,
		PartnerID:  partnerID,
		Amount:     amount,
		Currency:   currency,
		Message:    "Zakat",
	})
}
