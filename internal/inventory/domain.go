package inventory

import (
	"math"
	"strings"
	"time"

	"github.com/odyssey-erp/stockledger/internal/shared"
)

// Product is a stock record. Price is the buying (unit) cost.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput carries the fields written on create and update.
type ProductInput struct {
	Name     string
	Price    float64
	Quantity int64
}

// Validate checks the product invariants.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return shared.NewValidationError("name", "is required")
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return shared.NewValidationError("price", "must be a non-negative number")
	}
	if !shared.WholeCents(in.Price) {
		return shared.NewValidationError("price", "must not have more than 2 decimal places")
	}
	if in.Quantity < 0 {
		return shared.NewValidationError("quantity", "must be a non-negative integer")
	}
	return nil
}

func (in ProductInput) normalized() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}
