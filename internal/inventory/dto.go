package inventory

// ProductRequest is the body of POST /products and PUT /products/{id}.
// Every field is required; updates overwrite all three.
type ProductRequest struct {
	Name     *string  `json:"name" validate:"required,min=1,max=255"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int64   `json:"quantity" validate:"required,gte=0"`
}

func (r ProductRequest) input() ProductInput {
	return ProductInput{Name: *r.Name, Price: *r.Price, Quantity: *r.Quantity}
}
