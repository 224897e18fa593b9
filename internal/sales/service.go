package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

const idempotencyModule = "sales"

// TxRepository exposes the operations that must run in one transaction.
type TxRepository interface {
	// GetProductForUpdate loads the product and holds it until the
	// transaction ends.
	GetProductForUpdate(ctx context.Context, productID int64) (inventory.Product, error)
	InsertSale(ctx context.Context, sale Sale) (Sale, error)
	// DecrementStock fails with shared.ErrInsufficientStock instead of going
	// below zero.
	DecrementStock(ctx context.Context, productID, qty int64) error
}

// RepositoryPort abstracts repository usage for service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListSales(ctx context.Context, filter Filter) ([]Record, error)
}

// IdempotencyPort guards against replayed sale requests.
type IdempotencyPort interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key, module string) error
}

// MetricsPort receives sale outcomes.
type MetricsPort interface {
	SaleRecorded(qty int64)
	SaleRejected(reason string)
}

// Service records sales and lists them.
type Service struct {
	repo        RepositoryPort
	idempotency IdempotencyPort
	metrics     MetricsPort
	logger      *slog.Logger
	clock       func() time.Time
}

// NewService builds Service. idem and metrics may be nil.
func NewService(repo RepositoryPort, idem IdempotencyPort, metrics MetricsPort) *Service {
	return &Service{repo: repo, idempotency: idem, metrics: metrics, logger: slog.Default(), clock: time.Now}
}

// WithClock sets the source of sale timestamps.
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// WithLogger replaces the logger used for idempotency release failures.
func (s *Service) WithLogger(logger *slog.Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// RecordSale checks stock, stores the sale and decrements stock atomically.
func (s *Service) RecordSale(ctx context.Context, in RecordInput) (Sale, error) {
	if err := in.Validate(); err != nil {
		return Sale{}, err
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key != "" {
		if _, err := uuid.Parse(key); err != nil {
			return Sale{}, shared.NewValidationError("Idempotency-Key", "must be a UUID")
		}
	}
	insertedKey := false
	if key != "" && s.idempotency != nil {
		if err := s.idempotency.CheckAndInsert(ctx, key, idempotencyModule); err != nil {
			return Sale{}, fmt.Errorf("sales: idempotency key %s: %w", key, err)
		}
		insertedKey = true
	}

	var sale Sale
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product.Quantity < in.Quantity {
			return shared.ErrInsufficientStock
		}
		sale, err = tx.InsertSale(ctx, Sale{
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			SalesPrice: in.SalesPrice,
			TotalPrice: shared.LineTotal(in.SalesPrice, in.Quantity),
			SaleDate:   s.clock().UTC(),
		})
		if err != nil {
			return err
		}
		return tx.DecrementStock(ctx, product.ID, in.Quantity)
	})
	if err != nil {
		if insertedKey {
			// release the key even when the request itself was cancelled
			if delErr := s.idempotency.Delete(context.WithoutCancel(ctx), key, idempotencyModule); delErr != nil {
				s.logger.Warn("release idempotency key", slog.String("key", key), slog.Any("error", delErr))
			}
		}
		if s.metrics != nil && errors.Is(err, shared.ErrInsufficientStock) {
			s.metrics.SaleRejected("insufficient_stock")
		}
		return Sale{}, fmt.Errorf("sales: record sale for product %d: %w", in.ProductID, err)
	}
	if s.metrics != nil {
		s.metrics.SaleRecorded(sale.Quantity)
	}
	return sale, nil
}

// ListSales returns every sale with its profit, oldest first.
func (s *Service) ListSales(ctx context.Context) ([]SaleView, error) {
	records, err := s.repo.ListSales(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("sales: list sales: %w", err)
	}
	views := make([]SaleView, 0, len(records))
	for _, rec := range records {
		views = append(views, NewSaleView(rec))
	}
	return views, nil
}
