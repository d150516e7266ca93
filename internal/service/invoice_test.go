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

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service    InvoiceService
	subService SubscriptionService

	testAccount *account.Account
	products    []*product.Product
	refDate     time.Time
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		DB:          s.GetDB(),
		AccountRepo: s.GetStores().AccountRepo,
		ProductRepo: s.GetStores().ProductRepo,
		SubRepo:     s.GetStores().SubscriptionRepo,
		InvoiceRepo: s.GetStores().InvoiceRepo,
		CreditRepo:  s.GetStores().CreditRepo,
	}
	s.service = NewInvoiceService(params)
	s.subService = NewSubscriptionService(params)

	s.refDate = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	s.testAccount = &account.Account{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		Name:      "Test Account",
		Credit:    decimal.Zero,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().AccountRepo.Create(s.GetContext(), s.testAccount))

	s.products = nil
	for _, p := range []struct {
		name      string
		price     int64
		available bool
	}{
		{"Basic", 30, true},
		{"Addon", 10, true},
		{"Retired", 50, false},
	} {
		prod := &product.Product{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
			Name:        p.name,
			Price:       decimal.NewFromInt(p.price),
			IsAvailable: p.available,
			BaseModel:   types.GetDefaultBaseModel(s.GetContext()),
		}
		s.NoError(s.GetStores().ProductRepo.Create(s.GetContext(), prod))
		s.products = append(s.products, prod)
	}
}

// createSubscription creates a MONTHLY subscription that entered its
// evergreen phase a month before the reference date.
func (s *InvoiceServiceSuite) createSubscription(accountID string, products []dto.SubscribedProductRequest) string {
	resp, err := s.subService.CreateSubscription(s.GetContext(), &dto.CreateSubscriptionRequest{
		AccountID:     accountID,
		BillingPeriod: types.BILLING_PERIOD_MONTHLY,
		StartDate:     s.refDate.AddDate(0, -1, 0),
		Products:      products,
	})
	s.Require().NoError(err)
	return resp.ID
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	subID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
		{ProductID: s.products[1].ID, Quantity: 2},
		{ProductID: s.products[2].ID, Quantity: 1},
	})

	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		AccountID:       s.testAccount.ID,
		SubscriptionIDs: []string{subID},
		ReferenceDate:   s.refDate,
	})
	s.NoError(err)
	s.Require().NotNil(resp)

	s.Equal(types.InvoicePaymentStatusPending, resp.PaymentStatus)
	s.NotEmpty(resp.InvoiceNumber)
	s.Require().Len(resp.Items, 3)

	amounts := map[string]decimal.Decimal{}
	for _, item := range resp.Items {
		amounts[item.ProductID] = item.Amount
	}
	s.True(amounts[s.products[0].ID].Equal(decimal.NewFromInt(30)))
	s.True(amounts[s.products[1].ID].Equal(decimal.NewFromInt(20)))
	// Unavailable products are itemized at zero
	s.True(amounts[s.products[2].ID].Equal(decimal.Zero))

	s.True(resp.Total.Equal(decimal.NewFromInt(50)))

	// The total is booked against the account's credit balance
	acc, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testAccount.ID)
	s.NoError(err)
	s.True(acc.Credit.Equal(decimal.NewFromInt(-50)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAdvancesBillingCursor() {
	subID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		AccountID:       s.testAccount.ID,
		SubscriptionIDs: []string{subID},
		ReferenceDate:   s.refDate,
	})
	s.NoError(err)

	sub, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), subID)
	s.NoError(err)
	s.Require().NotNil(sub.ChargedThroughDate)
	s.Equal(s.refDate, *sub.ChargedThroughDate)
	s.Require().NotNil(sub.NextBillingDate)
	s.Equal(s.refDate.AddDate(0, 1, 0), *sub.NextBillingDate)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceIsIdempotentPerReferenceDate() {
	subID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	req := &dto.CreateInvoiceRequest{
		AccountID:       s.testAccount.ID,
		SubscriptionIDs: []string{subID},
		ReferenceDate:   s.refDate,
	}

	first, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Len(first.Items, 1)

	// The advanced billing cursor makes the subscription ineligible, so a
	// second run on the same date produces no new charges.
	second, err := s.service.CreateInvoice(s.GetContext(), req)
	s.NoError(err)
	s.Len(second.Items, 0)
	s.True(second.Total.IsZero())

	acc, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testAccount.ID)
	s.NoError(err)
	s.True(acc.Credit.Equal(decimal.NewFromInt(-30)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownAccount() {
	_, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		AccountID:       "acc_missing",
		SubscriptionIDs: []string{"sub_any"},
		ReferenceDate:   s.refDate,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDropsForeignSubscriptions() {
	other := &account.Account{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACCOUNT),
		Name:      "Other Account",
		Credit:    decimal.Zero,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().AccountRepo.Create(s.GetContext(), other))

	foreignSubID := s.createSubscription(other.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	resp, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		AccountID:       s.testAccount.ID,
		SubscriptionIDs: []string{foreignSubID},
		ReferenceDate:   s.refDate,
	})
	s.NoError(err)

	// The foreign subscription is silently dropped, never charged
	s.Len(resp.Items, 0)

	foreign, err := s.GetStores().SubscriptionRepo.Get(s.GetContext(), foreignSubID)
	s.NoError(err)
	s.Nil(foreign.ChargedThroughDate)
}

func (s *InvoiceServiceSuite) TestEligibleSubscriptions() {
	dueID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	// Not yet in evergreen on the reference date
	future, err := s.subService.CreateSubscription(s.GetContext(), &dto.CreateSubscriptionRequest{
		AccountID:     s.testAccount.ID,
		BillingPeriod: types.BILLING_PERIOD_MONTHLY,
		StartDate:     s.refDate.AddDate(0, 1, 0),
		Products: []dto.SubscribedProductRequest{
			{ProductID: s.products[0].ID, Quantity: 1},
		},
	})
	s.Require().NoError(err)

	subs, err := s.service.EligibleSubscriptions(s.GetContext(), s.refDate, nil)
	s.NoError(err)
	s.Require().Len(subs, 1)
	s.Equal(dueID, subs[0].ID)

	eligible, err := s.service.IsEligible(s.GetContext(), s.refDate, future.ID)
	s.NoError(err)
	s.False(eligible)

	// Unknown ids are simply not eligible
	eligible, err = s.service.IsEligible(s.GetContext(), s.refDate, "sub_missing")
	s.NoError(err)
	s.False(eligible)
}

func (s *InvoiceServiceSuite) TestEligibleSubscriptionsExcludesPaused() {
	subID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	_, err := s.subService.PauseSubscription(s.GetContext(), subID, &dto.PauseSubscriptionRequest{
		ReferenceDate: s.refDate,
	})
	s.NoError(err)

	subs, err := s.service.EligibleSubscriptions(s.GetContext(), s.refDate, lo.ToPtr(s.testAccount.ID))
	s.NoError(err)
	s.Len(subs, 0)
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	subID := s.createSubscription(s.testAccount.ID, []dto.SubscribedProductRequest{
		{ProductID: s.products[0].ID, Quantity: 1},
	})

	created, err := s.service.CreateInvoice(s.GetContext(), &dto.CreateInvoiceRequest{
		AccountID:       s.testAccount.ID,
		SubscriptionIDs: []string{subID},
		ReferenceDate:   s.refDate,
	})
	s.NoError(err)

	got, err := s.service.GetInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)
	s.Len(got.Items, 1)
	s.True(got.Total.Equal(decimal.NewFromInt(30)))

	_, err = s.service.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
