package sales

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/platform/db"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

const pgForeignKeyViolation = "23503"

// Repository persists sales in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ RepositoryPort = (*Repository)(nil)

type txRepository struct {
	tx pgx.Tx
}

// WithTx runs fn in a read-committed transaction. The product row lock taken by
// GetProductForUpdate serialises competing sales; read committed lets a waiting
// sale see the stock committed by the one before it.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil || r.pool == nil {
		return errors.New("sales repository not initialised")
	}
	return db.WithTx(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// ListSales returns sales joined with their products ordered by sale date.
func (r *Repository) ListSales(ctx context.Context, filter Filter) ([]Record, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("sales repository not initialised")
	}
	rows, err := r.pool.Query(ctx, `SELECT s.id, s.product_id, s.quantity, s.sales_price, s.total_price, s.sale_date, s.created_at,
       p.id, p.name, p.price, p.quantity, p.created_at, p.updated_at
FROM sales s
JOIN products p ON p.id = s.product_id
WHERE s.sale_date BETWEEN COALESCE($1::timestamptz, '-infinity'::timestamptz) AND COALESCE($2::timestamptz, 'infinity'::timestamptz)
ORDER BY s.sale_date ASC, s.id ASC`, nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.Sale.ID, &rec.Sale.ProductID, &rec.Sale.Quantity, &rec.Sale.SalesPrice, &rec.Sale.TotalPrice, &rec.Sale.SaleDate, &rec.Sale.CreatedAt,
			&rec.Product.ID, &rec.Product.Name, &rec.Product.Price, &rec.Product.Quantity, &rec.Product.CreatedAt, &rec.Product.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *txRepository) GetProductForUpdate(ctx context.Context, productID int64) (inventory.Product, error) {
	var p inventory.Product
	err := r.tx.QueryRow(ctx, `SELECT id, name, price, quantity, created_at, updated_at FROM products WHERE id = $1 FOR UPDATE`, productID).
		Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inventory.Product{}, shared.ErrNotFound
		}
		return inventory.Product{}, err
	}
	return p, nil
}

func (r *txRepository) InsertSale(ctx context.Context, sale Sale) (Sale, error) {
	var out Sale
	err := r.tx.QueryRow(ctx, `INSERT INTO sales (product_id, quantity, sales_price, total_price, sale_date, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id, product_id, quantity, sales_price, total_price, sale_date, created_at`,
		sale.ProductID, sale.Quantity, sale.SalesPrice, sale.TotalPrice, sale.SaleDate).
		Scan(&out.ID, &out.ProductID, &out.Quantity, &out.SalesPrice, &out.TotalPrice, &out.SaleDate, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Sale{}, shared.ErrNotFound
		}
		return Sale{}, err
	}
	return out, nil
}

func (r *txRepository) DecrementStock(ctx context.Context, productID, qty int64) error {
	tag, err := r.tx.Exec(ctx, `UPDATE products SET quantity = quantity - $2, updated_at = NOW()
WHERE id = $1 AND quantity >= $2`, productID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
