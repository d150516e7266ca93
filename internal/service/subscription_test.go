package service

import (
	"testing"
	"time"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/account"
	"github.com/raulodev/bill-flow/internal/domain/product"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/testutil"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     SubscriptionService
	testAccount *account.Account
	testProduct *product.Product
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.service = NewSubscriptionService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		AccountRepo: s.GetStores().AccountRepo,
		ProductRepo: s.GetStores().ProductRepo,
		SubRepo:     s.GetStores().SubscriptionRepo,
		InvoiceRepo: s.GetStores().InvoiceRepo,
		CreditRepo:  s.GetStores().CreditRepo,
	})

	s.testAccount = &account.Account{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		Name:      "Test Account",
		Email:     "test@example.com",
		Credit:    decimal.Zero,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().AccountRepo.Create(s.GetContext(), s.testAccount))

	s.testProduct = &product.Product{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:        "Test Product",
		Price:       decimal.NewFromInt(30),
		IsAvailable: true,
		BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), s.testProduct))
}

func (s *SubscriptionServiceSuite) createRequest() *dto.CreateSubscriptionRequest {
	return &dto.CreateSubscriptionRequest{
		AccountID:     s.testAccount.ID,
		BillingPeriod: types.BILLING_PERIOD_MONTHLY,
		StartDate:     time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		Products: []dto.SubscribedProductRequest{
			{ProductID: s.testProduct.ID, Quantity: 1},
		},
	}
}

func (s *SubscriptionServiceSuite) TestCreateSubscription() {
	resp, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)
	s.NotNil(resp)

	s.Equal(types.SubscriptionStateActive, resp.State)
	s.Len(resp.Phases, 1)
	s.Equal(types.PhaseTypeEvergreen, resp.Phases[0].PhaseType)
	s.Require().NotNil(resp.BillingDay)
	s.Equal(15, *resp.BillingDay)
	s.Nil(resp.ChargedThroughDate)
	s.Nil(resp.NextBillingDate)

	// Persisted with phases and products attached
	stored, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), resp.ID)
	s.NoError(err)
	s.Len(stored.Phases, 1)
	s.Len(stored.Products, 1)
	s.Equal(resp.ID, stored.Phases[0].SubscriptionID)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionWithTrial() {
	req := s.createRequest()
	req.TrialPeriodUnit = lo.ToPtr(types.TRIAL_PERIOD_UNIT_DAYS)
	req.TrialPeriod = lo.ToPtr(10)

	resp, err := s.service.CreateSubscription(s.GetContext(), req)
	s.NoError(err)

	s.Require().Len(resp.Phases, 2)
	s.Equal(types.PhaseTypeTrial, resp.Phases[0].PhaseType)
	s.Equal(types.PhaseTypeEvergreen, resp.Phases[1].PhaseType)

	// Billing day anchors on the evergreen start, the day after the trial
	s.Require().NotNil(resp.BillingDay)
	s.Equal(26, *resp.BillingDay)
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionDuplicateProduct() {
	req := s.createRequest()
	req.Products = append(req.Products, dto.SubscribedProductRequest{
		ProductID: s.testProduct.ID,
		Quantity:  2,
	})

	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionTrialWithoutDuration() {
	req := s.createRequest()
	req.TrialPeriodUnit = lo.ToPtr(types.TRIAL_PERIOD_UNIT_DAYS)

	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionUnknownAccount() {
	req := s.createRequest()
	req.AccountID = "acc_missing"

	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestCreateSubscriptionUnknownProduct() {
	req := s.createRequest()
	req.Products = []dto.SubscribedProductRequest{
		{ProductID: "prod_missing", Quantity: 1},
	}

	_, err := s.service.CreateSubscription(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *SubscriptionServiceSuite) TestCancelSubscriptionImmediately() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	refDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	resp, err := s.service.CancelSubscription(s.GetContext(), created.ID, &dto.CancelSubscriptionRequest{
		ReferenceDate: refDate,
	})
	s.NoError(err)
	s.Equal(types.SubscriptionStateCancelled, resp.State)
}

func (s *SubscriptionServiceSuite) TestCancelSubscriptionWithFutureEndDate() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	refDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	resp, err := s.service.CancelSubscription(s.GetContext(), created.ID, &dto.CancelSubscriptionRequest{
		EndDate:       lo.ToPtr(endDate),
		ReferenceDate: refDate,
	})
	s.NoError(err)

	// Still active until the end date passes
	s.Equal(types.SubscriptionStateActive, resp.State)
	s.Require().NotNil(resp.EndDate)
	s.Equal(endDate, *resp.EndDate)
}

func (s *SubscriptionServiceSuite) TestCancelSubscriptionAlreadyCancelled() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	refDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	_, err = s.service.CancelSubscription(s.GetContext(), created.ID, &dto.CancelSubscriptionRequest{
		ReferenceDate: refDate,
	})
	s.NoError(err)

	_, err = s.service.CancelSubscription(s.GetContext(), created.ID, &dto.CancelSubscriptionRequest{
		ReferenceDate: refDate,
	})
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *SubscriptionServiceSuite) TestPauseSubscription() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	refDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	resp, err := s.service.PauseSubscription(s.GetContext(), created.ID, &dto.PauseSubscriptionRequest{
		ReferenceDate: refDate,
	})
	s.NoError(err)
	s.Equal(types.SubscriptionStatePaused, resp.State)
}

func (s *SubscriptionServiceSuite) TestPauseSubscriptionWithFutureResumeDate() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	refDate := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	resumeDate := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	resp, err := s.service.PauseSubscription(s.GetContext(), created.ID, &dto.PauseSubscriptionRequest{
		ResumeDate:    lo.ToPtr(resumeDate),
		ReferenceDate: refDate,
	})
	s.NoError(err)
	s.Equal(types.SubscriptionStatePaused, resp.State)
	s.Require().NotNil(resp.ResumeDate)
	s.Equal(resumeDate, *resp.ResumeDate)
}

func (s *SubscriptionServiceSuite) TestUpdateBillingDay() {
	created, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	resp, err := s.service.UpdateBillingDay(s.GetContext(), created.ID, &dto.UpdateBillingDayRequest{
		BillingDay: 28,
	})
	s.NoError(err)
	s.Require().NotNil(resp.BillingDay)
	s.Equal(28, *resp.BillingDay)

	_, err = s.service.UpdateBillingDay(s.GetContext(), created.ID, &dto.UpdateBillingDayRequest{
		BillingDay: 32,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *SubscriptionServiceSuite) TestListSubscriptions() {
	_, err := s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)
	_, err = s.service.CreateSubscription(s.GetContext(), s.createRequest())
	s.NoError(err)

	resps, err := s.service.ListSubscriptions(s.GetContext(), nil)
	s.NoError(err)
	s.Len(resps, 2)

	state := types.SubscriptionStateCancelled
	resps, err = s.service.ListSubscriptions(s.GetContext(), &types.SubscriptionFilter{State: &state})
	s.NoError(err)
	s.Len(resps, 0)
}
