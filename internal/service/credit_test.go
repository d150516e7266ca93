package service

import (
	"testing"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/account"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/testutil"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CreditServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     CreditService
	testAccount *account.Account
}

func TestCreditService(t *testing.T) {
	suite.Run(t, new(CreditServiceSuite))
}

func (s *CreditServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.service = NewCreditService(ServiceParams{
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
		Credit:    decimal.Zero,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().AccountRepo.Create(s.GetContext(), s.testAccount))
}

func (s *CreditServiceSuite) TestAddCredit() {
	resp, err := s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(100),
		Reason:    types.CreditReasonCourtesy,
		Comment:   "welcome credit",
	})
	s.NoError(err)

	s.Equal(types.CreditEntryTypeAdd, resp.EntryType)
	s.True(resp.Balance.Equal(decimal.NewFromInt(100)))

	acc, err := s.GetStores().AccountRepo.Get(s.GetContext(), s.testAccount.ID)
	s.NoError(err)
	s.True(acc.Credit.Equal(decimal.NewFromInt(100)))
}

func (s *CreditServiceSuite) TestRemoveCredit() {
	_, err := s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(100),
		Reason:    types.CreditReasonCourtesy,
	})
	s.NoError(err)

	resp, err := s.service.RemoveCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(30),
		Reason:    types.CreditReasonBillingError,
	})
	s.NoError(err)

	s.Equal(types.CreditEntryTypeDelete, resp.EntryType)
	s.True(resp.Balance.Equal(decimal.NewFromInt(70)))
}

func (s *CreditServiceSuite) TestRemoveCreditAllowsNegativeBalance() {
	resp, err := s.service.RemoveCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(25),
		Reason:    types.CreditReasonOther,
	})
	s.NoError(err)
	s.True(resp.Balance.Equal(decimal.NewFromInt(-25)))
}

func (s *CreditServiceSuite) TestListCreditHistory() {
	_, err := s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(100),
		Reason:    types.CreditReasonCourtesy,
	})
	s.NoError(err)

	_, err = s.service.RemoveCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(30),
		Reason:    types.CreditReasonBillingError,
	})
	s.NoError(err)

	entries, err := s.service.ListCreditHistory(s.GetContext(), s.testAccount.ID)
	s.NoError(err)
	s.Require().Len(entries, 2)

	// Entries come back in insertion order
	s.Equal(types.CreditEntryTypeAdd, entries[0].EntryType)
	s.Equal(types.CreditEntryTypeDelete, entries[1].EntryType)
}

func (s *CreditServiceSuite) TestCreditUnknownAccount() {
	_, err := s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: "acc_missing",
		Amount:    decimal.NewFromInt(10),
		Reason:    types.CreditReasonCourtesy,
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.ListCreditHistory(s.GetContext(), "acc_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CreditServiceSuite) TestCreditValidation() {
	_, err := s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.Zero,
		Reason:    types.CreditReasonCourtesy,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.AddCredit(s.GetContext(), &dto.CreditRequest{
		AccountID: s.testAccount.ID,
		Amount:    decimal.NewFromInt(10),
		Reason:    types.CreditReason("GOODWILL"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
