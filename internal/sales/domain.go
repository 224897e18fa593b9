package sales

import (
	"math"
	"time"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

// Sale is an immutable record of units sold from a product's stock.
type Sale struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"productId"`
	Quantity   int64     `json:"quantity"`
	SalesPrice float64   `json:"salesPrice"`
	TotalPrice float64   `json:"totalPrice"`
	SaleDate   time.Time `json:"saleDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RecordInput describes a sale request.
type RecordInput struct {
	ProductID      int64
	Quantity       int64
	SalesPrice     float64
	IdempotencyKey string
}

// Validate checks the request before any storage access.
func (in RecordInput) Validate() error {
	if in.ProductID <= 0 {
		return shared.NewValidationError("productId", "must be a positive integer")
	}
	if in.Quantity < 1 {
		return shared.NewValidationError("quantity", "must be at least 1")
	}
	if math.IsNaN(in.SalesPrice) || math.IsInf(in.SalesPrice, 0) || in.SalesPrice < 0 {
		return shared.NewValidationError("salesPrice", "must be a non-negative number")
	}
	if !shared.WholeCents(in.SalesPrice) {
		return shared.NewValidationError("salesPrice", "must not have more than 2 decimal places")
	}
	return nil
}

// Record pairs a sale with the product it was sold from.
type Record struct {
	Sale    Sale
	Product inventory.Product
}

// Filter restricts listed sales to an inclusive sale date range. Zero bounds
// are open.
type Filter struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the filter.
func (f Filter) Contains(t time.Time) bool {
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.After(f.To) {
		return false
	}
	return true
}

// SaleView is a sale enriched with its product name and profit.
type SaleView struct {
	Sale
	ProductName string  `json:"productName"`
	BuyingPrice float64 `json:"buyingPrice"`
	Profit      float64 `json:"profit"`
}

// NewSaleView derives the profit of rec from the product's buying price.
func NewSaleView(rec Record) SaleView {
	return SaleView{
		Sale:        rec.Sale,
		ProductName: rec.Product.Name,
		BuyingPrice: rec.Product.Price,
		Profit:      shared.LineProfit(rec.Sale.SalesPrice, rec.Product.Price, rec.Sale.Quantity),
	}
}
