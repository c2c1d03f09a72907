package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rights-engine/internal/core/domain"
)

// PolicyRepository mocks port.PolicyRepository.
type PolicyRepository struct {
	mock.Mock
}

func (m *PolicyRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *PolicyRepository) GetPackage(ctx context.Context, holder string) (*domain.Package, error) {
	args := m.Called(ctx, holder)
	var pkg *domain.Package
	if args.Get(0) != nil {
		pkg = args.Get(0).(*domain.Package)
	}
	return pkg, args.Error(1)
}

func (m *PolicyRepository) GetLicense(ctx context.Context, account, holder string) (int64, error) {
	args := m.Called(ctx, account, holder)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PolicyRepository) SaveEnforcement(ctx context.Context, agr domain.Agreement, licenses []domain.License, event domain.Event) error {
	return m.Called(ctx, agr, licenses, event).Error(0)
}

// CampaignRepository mocks port.CampaignRepository.
type CampaignRepository struct {
	mock.Mock
}

func (m *CampaignRepository) Create(ctx context.Context, c domain.Campaign, scope domain.Scope, event domain.Event) error {
	return m.Called(ctx, c, scope, event).Error(0)
}

func (m *CampaignRepository) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	var c *domain.Campaign
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Campaign)
	}
	return c, args.Error(1)
}

func (m *CampaignRepository) GetAllocation(ctx context.Context, campaignID, operator string) (int64, error) {
	args := m.Called(ctx, campaignID, operator)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CampaignRepository) GetUsage(ctx context.Context, campaignID, account string) (int64, error) {
	args := m.Called(ctx, campaignID, account)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CampaignRepository) AdjustBalance(ctx context.Context, campaignID string, delta int64, event domain.Event, settle func(ctx context.Context) error) error {
	return m.Called(ctx, campaignID, delta, event, settle).Error(0)
}

func (m *CampaignRepository) SetQuotaLimit(ctx context.Context, campaignID string, limit int64, event domain.Event) error {
	return m.Called(ctx, campaignID, limit, event).Error(0)
}

func (m *CampaignRepository) SetAllocation(ctx context.Context, campaignID, operator string, amount int64) error {
	return m.Called(ctx, campaignID, operator, amount).Error(0)
}

func (m *CampaignRepository) SetPaused(ctx context.Context, campaignID string, paused bool) error {
	return m.Called(ctx, campaignID, paused).Error(0)
}

func (m *CampaignRepository) Run(ctx context.Context, campaignID, operator, account string, now time.Time, reserve func(ctx context.Context, amount int64) error) error {
	return m.Called(ctx, campaignID, operator, account, now, reserve).Error(0)
}

// RegistryRepository mocks port.RegistryRepository.
type RegistryRepository struct {
	mock.Mock
}

func (m *RegistryRepository) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	args := m.Called(ctx, id)
	var tpl *domain.Template
	if args.Get(0) != nil {
		tpl = args.Get(0).(*domain.Template)
	}
	return tpl, args.Error(1)
}

func (m *RegistryRepository) GetScopeCampaign(ctx context.Context, sponsor, policy string) (string, error) {
	args := m.Called(ctx, sponsor, policy)
	return args.String(0), args.Error(1)
}
