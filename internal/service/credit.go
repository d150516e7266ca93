package service

import (
	"context"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/credit"
	"github.com/raulodev/bill-flow/internal/types"
)

// CreditService maintains the account credit ledger: an append only history
// of manual adjustments plus the running balance on the account. Amounts are
// never bounds checked against the existing balance; a negative balance
// represents an amount owed.
type CreditService interface {
	// AddCredit appends an ADD entry and increases the account balance
	AddCredit(ctx context.Context, req *dto.CreditRequest) (*dto.CreditEntryResponse, error)

	// RemoveCredit appends a DELETE entry and decreases the account balance
	RemoveCredit(ctx context.Context, req *dto.CreditRequest) (*dto.CreditEntryResponse, error)

	// ListCreditHistory returns the account's credit history entries
	ListCreditHistory(ctx context.Context, accountID string) ([]*credit.Entry, error)
}

type creditService struct {
	ServiceParams
}

// NewCreditService creates a new instance of CreditService
func NewCreditService(params ServiceParams) CreditService {
	return &creditService{ServiceParams: params}
}

func (s *creditService) AddCredit(ctx context.Context, req *dto.CreditRequest) (*dto.CreditEntryResponse, error) {
	return s.apply(ctx, req, types.CreditEntryTypeAdd)
}

func (s *creditService) RemoveCredit(ctx context.Context, req *dto.CreditRequest) (*dto.CreditEntryResponse, error) {
	return s.apply(ctx, req, types.CreditEntryTypeDelete)
}

func (s *creditService) apply(ctx context.Context, req *dto.CreditRequest, entryType types.CreditEntryType) (*dto.CreditEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.AccountRepo.Get(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	entry := &credit.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_ENTRY),
		AccountID: account.ID,
		Amount:    req.Amount,
		EntryType: entryType,
		Reason:    req.Reason,
		Comment:   req.Comment,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}

	delta := req.Amount
	if entryType == types.CreditEntryTypeDelete {
		delta = delta.Neg()
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.CreditRepo.Create(ctx, entry); err != nil {
			return err
		}
		return s.AccountRepo.AdjustCredit(ctx, account.ID, delta)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("applied credit entry",
		"account_id", account.ID,
		"entry_id", entry.ID,
		"entry_type", entryType,
		"amount", req.Amount,
		"reason", req.Reason,
	)

	return &dto.CreditEntryResponse{
		Entry:   entry,
		Balance: account.Credit.Add(delta),
	}, nil
}

func (s *creditService) ListCreditHistory(ctx context.Context, accountID string) ([]*credit.Entry, error) {
	if _, err := s.AccountRepo.Get(ctx, accountID); err != nil {
		return nil, err
	}

	return s.CreditRepo.ListByAccount(ctx, accountID)
}
