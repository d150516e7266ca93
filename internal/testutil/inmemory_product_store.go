package testutil

import (
	"context"
	"sync"

	"github.com/raulodev/bill-flow/internal/domain/product"
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// InMemoryProductStore implements product.Repository for testing
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		products: make(map[string]*product.Product),
	}
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; exists {
		return ierr.NewError("product already exists").
			WithHint("Product already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.products[p.ID] = p
	return nil
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.products[id]
	if !exists {
		return nil, ierr.NewError("product not found").
			WithHint("Product not found").
			WithReportableDetails(map[string]any{
				"product_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *p
	return &copied, nil
}

func (s *InMemoryProductStore) List(ctx context.Context) ([]*product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*product.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	return result, nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.ID]; !exists {
		return ierr.NewError("product not found").
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}

	s.products[p.ID] = p
	return nil
}

func (s *InMemoryProductStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]*product.Product)
}
