package sales

// RecordSaleRequest is the body of POST /sales.
type RecordSaleRequest struct {
	ProductID  *int64   `json:"productId" validate:"required,gt=0"`
	Quantity   *int64   `json:"quantity" validate:"required,gt=0"`
	SalesPrice *float64 `json:"salesPrice" validate:"required,gte=0"`
}

// RecordSaleResponse is returned with 201 after a sale is stored.
type RecordSaleResponse struct {
	Message string `json:"message"`
	Sale    Sale   `json:"sale"`
}
