// Package memstore keeps products and sales in process memory. It backs the
// "memory" store driver and the service tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/sales"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

// Store is a mutex guarded product and sale table.
type Store struct {
	mu         sync.Mutex
	products   map[int64]inventory.Product
	sales      []sales.Sale
	nextProdID int64
	nextSaleID int64
	clock      func() time.Time
}

// New constructs an empty Store.
func New() *Store {
	return &Store{products: make(map[int64]inventory.Product), clock: time.Now}
}

// compile-time assertions that Store satisfies the repository ports
var (
	_ inventory.RepositoryPort = (*Store)(nil)
	_ sales.RepositoryPort     = (*Store)(nil)
)

func (s *Store) Create(ctx context.Context, in inventory.ProductInput) (inventory.Product, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProdID++
	now := s.clock().UTC()
	p := inventory.Product{
		ID:        s.nextProdID,
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products[p.ID] = p
	return p, nil
}

func (s *Store) List(ctx context.Context) ([]inventory.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]inventory.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (inventory.Product, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return inventory.Product{}, shared.ErrNotFound
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id int64, in inventory.ProductInput) (inventory.Product, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Product{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return inventory.Product{}, shared.ErrNotFound
	}
	p.Name = in.Name
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.UpdatedAt = s.clock().UTC()
	s.products[id] = p
	return p, nil
}

// Delete removes the product and cascades to its sales.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.products, id)
	kept := s.sales[:0]
	for _, sale := range s.sales {
		if sale.ProductID != id {
			kept = append(kept, sale)
		}
	}
	s.sales = kept
	return nil
}

// WithTx holds the store lock for the whole of fn. Writes made through the
// TxRepository are staged and only applied when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, sales.TxRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{store: s, stock: make(map[int64]int64)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// ListSales returns sales within filter joined with their products, ordered by
// sale date then id.
func (s *Store) ListSales(ctx context.Context, filter sales.Filter) ([]sales.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []sales.Record{}
	for _, sale := range s.sales {
		if !filter.Contains(sale.SaleDate) {
			continue
		}
		p, ok := s.products[sale.ProductID]
		if !ok {
			continue
		}
		records = append(records, sales.Record{Sale: sale, Product: p})
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Sale, records[j].Sale
		if !a.SaleDate.Equal(b.SaleDate) {
			return a.SaleDate.Before(b.SaleDate)
		}
		return a.ID < b.ID
	})
	return records, nil
}

type storeTx struct {
	store   *Store
	pending []sales.Sale
	stock   map[int64]int64
	lastID  int64
}

func (tx *storeTx) GetProductForUpdate(ctx context.Context, productID int64) (inventory.Product, error) {
	p, ok := tx.store.products[productID]
	if !ok {
		return inventory.Product{}, shared.ErrNotFound
	}
	if qty, staged := tx.stock[productID]; staged {
		p.Quantity = qty
	}
	return p, nil
}

func (tx *storeTx) InsertSale(ctx context.Context, sale sales.Sale) (sales.Sale, error) {
	if _, ok := tx.store.products[sale.ProductID]; !ok {
		return sales.Sale{}, shared.ErrNotFound
	}
	if tx.lastID == 0 {
		tx.lastID = tx.store.nextSaleID
	}
	tx.lastID++
	sale.ID = tx.lastID
	sale.CreatedAt = tx.store.clock().UTC()
	tx.pending = append(tx.pending, sale)
	return sale, nil
}

func (tx *storeTx) DecrementStock(ctx context.Context, productID, qty int64) error {
	p, err := tx.GetProductForUpdate(ctx, productID)
	if err != nil {
		return err
	}
	if p.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	tx.stock[productID] = p.Quantity - qty
	return nil
}

func (tx *storeTx) apply() {
	now := tx.store.clock().UTC()
	for id, qty := range tx.stock {
		p := tx.store.products[id]
		p.Quantity = qty
		p.UpdatedAt = now
		tx.store.products[id] = p
	}
	tx.store.sales = append(tx.store.sales, tx.pending...)
	if tx.lastID > tx.store.nextSaleID {
		tx.store.nextSaleID = tx.lastID
	}
}
