package inventory

import (
	"context"
	"fmt"
)

// RepositoryPort abstracts product persistence for the service.
type RepositoryPort interface {
	Create(ctx context.Context, in ProductInput) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// Service coordinates product operations.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p, err := s.repo.Create(ctx, in.normalized())
	if err != nil {
		return Product{}, fmt.Errorf("inventory: create product: %w", err)
	}
	return p, nil
}

// List returns every product ordered by id.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: list products: %w", err)
	}
	return products, nil
}

// Get loads a single product.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("inventory: get product %d: %w", id, err)
	}
	return p, nil
}

// Update overwrites name, price and quantity of an existing product.
func (s *Service) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	if err := in.Validate(); err != nil {
		return Product{}, err
	}
	p, err := s.repo.Update(ctx, id, in.normalized())
	if err != nil {
		return Product{}, fmt.Errorf("inventory: update product %d: %w", id, err)
	}
	return p, nil
}

// Delete removes a product together with its sales.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("inventory: delete product %d: %w", id, err)
	}
	return nil
}
