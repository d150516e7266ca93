package testutil

import (
	"context"
	"sync"

	"github.com/raulodev/bill-flow/internal/domain/invoice"
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository for testing
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, i *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[i.ID]; exists {
		return ierr.NewError("invoice already exists").
			WithHint("Invoice already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.invoices[i.ID] = i
	return nil
}

func (s *InMemoryInvoiceStore) AddItems(ctx context.Context, invoiceID string, items []*invoice.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, exists := s.invoices[invoiceID]
	if !exists {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}

	i.Items = append(i.Items, items...)
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, exists := s.invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *i
	return &copied, nil
}

func (s *InMemoryInvoiceStore) ListByAccount(ctx context.Context, accountID string) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*invoice.Invoice
	for _, i := range s.invoices {
		if i.AccountID == accountID {
			result = append(result, i)
		}
	}
	return result, nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[string]*invoice.Invoice)
}
