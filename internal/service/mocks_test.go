package service

import (
	"context"
	"time"

	"github.com/sadaqa/backend/internal/model"
	"github.com/sadaqa/backend/internal/repository"
)

// Repository mocks shared by the service tests. Unset funcs return the
// zero value so each test only wires what it asserts on.

type mockUserRepo struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	createFunc         func(ctx context.Context, user *model.User) error
	updateFunc         func(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	deleteFunc         func(ctx context.Context, id string) (bool, error)
	listFunc           func(ctx context.Context, limit, offset int) ([]*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "user-new"
	return nil
}
func (m *mockUserRepo) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, repository.ErrNotFound
}
func (m *mockUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}
func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

type mockCampaignRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Campaign, error)
	findBySlugFunc    func(ctx context.Context, slug string) (*model.Campaign, error)
	listFunc          func(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error)
	countFunc         func(ctx context.Context, filter model.CampaignFilter) (int64, error)
	createFunc        func(ctx context.Context, campaign *model.Campaign) error
	updateFunc        func(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error)
	deleteFunc        func(ctx context.Context, id string) (bool, error)
	applyDonationFunc func(ctx context.Context, id string, amount int64) error
}

func (m *mockCampaignRepo) FindByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCampaignRepo) FindBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCampaignRepo) List(ctx context.Context, filter model.CampaignFilter, limit, offset int) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, limit, offset)
	}
	return nil, nil
}
func (m *mockCampaignRepo) Count(ctx context.Context, filter model.CampaignFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}
func (m *mockCampaignRepo) Create(ctx context.Context, campaign *model.Campaign) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, campaign)
	}
	campaign.ID = "campaign-new"
	return nil
}
func (m *mockCampaignRepo) Update(ctx context.Context, id string, patch model.CampaignPatch) (*model.Campaign, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCampaignRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}
func (m *mockCampaignRepo) ApplyDonation(ctx context.Context, id string, amount int64) error {
	if m.applyDonationFunc != nil {
		return m.applyDonationFunc(ctx, id, amount)
	}
	return nil
}

type mockPartnerRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Partner, error)
	findBySlugFunc    func(ctx context.Context, slug string) (*model.Partner, error)
	listFunc          func(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error)
	createFunc        func(ctx context.Context, partner *model.Partner) error
	updateFunc        func(ctx context.Context, id string, patch model.PartnerPatch) (*model.Partner, error)
	applyDonationFunc func(ctx context.Context, id string, amount int64) error
	incrProjectsFunc  func(ctx context.Context, id string) error
}

func (m *mockPartnerRepo) FindByID(ctx context.Context, id string) (*model.Partner, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPartnerRepo) FindBySlug(ctx context.Context, slug string) (*model.Partner, error) {
	if m.findBySlugFunc != nil {
		return m.findBySlugFunc(ctx, slug)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPartnerRepo) List(ctx context.Context, filter model.PartnerFilter, limit, offset int) ([]*model.Partner, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, limit, offset)
	}
	return nil, nil
}
func (m *mockPartnerRepo) Create(ctx context.Context, partner *model.Partner) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, partner)
	}
	partner.ID = "partner-new"
	return nil
}
func (m *mockPartnerRepo) Update(ctx context.Context, id string, patch model.PartnerPatch) (*model.Partner, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, patch)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPartnerRepo) ApplyDonation(ctx context.Context, id string, amount int64) error {
	if m.applyDonationFunc != nil {
		return m.applyDonationFunc(ctx, id, amount)
	}
	return nil
}
func (m *mockPartnerRepo) IncrementProjectCount(ctx context.Context, id string) error {
	if m.incrProjectsFunc != nil {
		return m.incrProjectsFunc(ctx, id)
	}
	return nil
}

type mockDonationRepo struct {
	findByIDFunc     func(ctx context.Context, id string) (*model.Donation, error)
	listFunc         func(ctx context.Context, filter model.DonationFilter, limit, offset int) ([]*model.Donation, error)
	countFunc        func(ctx context.Context, filter model.DonationFilter) (int64, error)
	createFunc       func(ctx context.Context, donation *model.Donation) error
	updateStatusFunc func(ctx context.Context, id, status string) error
	sumFunc          func(ctx context.Context, filter model.DonationFilter) (int64, error)
}

func (m *mockDonationRepo) FindByID(ctx context.Context, id string) (*model.Donation, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockDonationRepo) List(ctx context.Context, filter model.DonationFilter, limit, offset int) ([]*model.Donation, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter, limit, offset)
	}
	return nil, nil
}
func (m *mockDonationRepo) Count(ctx context.Context, filter model.DonationFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, filter)
	}
	return 0, nil
}
func (m *mockDonationRepo) Create(ctx context.Context, donation *model.Donation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, donation)
	}
	donation.ID = "donation-new"
	return nil
}
func (m *mockDonationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}
func (m *mockDonationRepo) SumCompleted(ctx context.Context, filter model.DonationFilter) (int64, error) {
	if m.sumFunc != nil {
		return m.sumFunc(ctx, filter)
	}
	return 0, nil
}

type mockSubscriptionRepo struct {
	findByIDFunc      func(ctx context.Context, id string) (*model.Subscription, error)
	listByUserFunc    func(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error)
	createFunc        func(ctx context.Context, sub *model.Subscription) error
	setStatusFunc     func(ctx context.Context, id, status string) error
	scheduleFunc      func(ctx context.Context, id string, next time.Time) error
	recordAttemptFunc func(ctx context.Context, id string) (int, error)
}

func (m *mockSubscriptionRepo) FindByID(ctx context.Context, id string) (*model.Subscription, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockSubscriptionRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Subscription, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, sub)
	}
	sub.ID = "sub-new"
	return nil
}
func (m *mockSubscriptionRepo) SetStatus(ctx context.Context, id, status string) error {
	if m.setStatusFunc != nil {
		return m.setStatusFunc(ctx, id, status)
	}
	return nil
}
func (m *mockSubscriptionRepo) ScheduleNextPayment(ctx context.Context, id string, next time.Time) error {
	if m.scheduleFunc != nil {
		return m.scheduleFunc(ctx, id, next)
	}
	return nil
}
func (m *mockSubscriptionRepo) RecordChargeAttempt(ctx context.Context, id string) (int, error) {
	if m.recordAttemptFunc != nil {
		return m.recordAttemptFunc(ctx, id)
	}
	return 0, nil
}

type mockZakatRepo struct {
	createFunc     func(ctx context.Context, calc *model.ZakatCalculation) error
	listByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error)
}

func (m *mockZakatRepo) Create(ctx context.Context, calc *model.ZakatCalculation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, calc)
	}
	calc.ID = "zakat-new"
	return nil
}
func (m *mockZakatRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.ZakatCalculation, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

type mockFavoriteRepo struct {
	findPairFunc   func(ctx context.Context, userID, campaignID string) (*model.Favorite, error)
	listByUserFunc func(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error)
	createFunc     func(ctx context.Context, fav *model.Favorite) error
	deleteFunc     func(ctx context.Context, userID, campaignID string) (bool, error)
}

func (m *mockFavoriteRepo) FindByUserAndCampaign(ctx context.Context, userID, campaignID string) (*model.Favorite, error) {
	if m.findPairFunc != nil {
		return m.findPairFunc(ctx, userID, campaignID)
	}
	return nil, repository.ErrNotFound
}
func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Favorite, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *mockFavoriteRepo) Create(ctx context.Context, fav *model.Favorite) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, fav)
	}
	fav.ID = "fav-new"
	return nil
}
func (m *mockFavoriteRepo) Delete(ctx context.Context, userID, campaignID string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, campaignID)
	}
	return false, nil
}

type mockPaymentRepo struct {
	findByIDFunc         func(ctx context.Context, id string) (*model.Payment, error)
	findByDonationIDFunc func(ctx context.Context, donationID string) (*model.Payment, error)
	findByProviderIDFunc func(ctx context.Context, providerID string) (*model.Payment, error)
	createFunc           func(ctx context.Context, payment *model.Payment) error
	setProviderRefFunc   func(ctx context.Context, id, providerID, paymentURL string) error
	updateStatusFunc     func(ctx context.Context, id, status string) error
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPaymentRepo) FindByDonationID(ctx context.Context, donationID string) (*model.Payment, error) {
	if m.findByDonationIDFunc != nil {
		return m.findByDonationIDFunc(ctx, donationID)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPaymentRepo) FindByProviderID(ctx context.Context, providerID string) (*model.Payment, error) {
	if m.findByProviderIDFunc != nil {
		return m.findByProviderIDFunc(ctx, providerID)
	}
	return nil, repository.ErrNotFound
}
func (m *mockPaymentRepo) Create(ctx context.Context, payment *model.Payment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, payment)
	}
	payment.ID = "payment-new"
	return nil
}
func (m *mockPaymentRepo) SetProviderRef(ctx context.Context, id, providerID, paymentURL string) error {
	if m.setProviderRefFunc != nil {
		return m.setProviderRefFunc(ctx, id, providerID, paymentURL)
	}
	return nil
}
func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockCommentRepo struct {
	findByIDFunc       func(ctx context.Context, id string) (*model.Comment, error)
	listByCampaignFunc func(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error)
	createFunc         func(ctx context.Context, comment *model.Comment) error
	deleteFunc         func(ctx context.Context, id, userID string) (bool, error)
}

func (m *mockCommentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCommentRepo) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Comment, error) {
	if m.listByCampaignFunc != nil {
		return m.listByCampaignFunc(ctx, campaignID, limit, offset)
	}
	return nil, nil
}
func (m *mockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, comment)
	}
	comment.ID = "comment-new"
	return nil
}
func (m *mockCommentRepo) Delete(ctx context.Context, id, userID string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return false, nil
}
