package sales

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/stockledger/internal/platform/httpx"
)

// IdempotencyHeader carries an optional client generated UUID for POST /sales.
const IdempotencyHeader = "Idempotency-Key"

// SaleService is the contract the handler needs from Service.
type SaleService interface {
	RecordSale(ctx context.Context, in RecordInput) (Sale, error)
	ListSales(ctx context.Context) ([]SaleView, error)
}

// Handler wires HTTP endpoints for sales.
type Handler struct {
	logger    *slog.Logger
	service   SaleService
	validator *httpx.Validator
}

// NewHandler constructs the sales handler.
func NewHandler(logger *slog.Logger, service SaleService) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator()}
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req RecordSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, httpx.BadRequestBody(err), "Error recording sale")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error recording sale")
		return
	}
	sale, err := h.service.RecordSale(r.Context(), RecordInput{
		ProductID:      *req.ProductID,
		Quantity:       *req.Quantity,
		SalesPrice:     *req.SalesPrice,
		IdempotencyKey: r.Header.Get(IdempotencyHeader),
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error recording sale")
		return
	}
	if h.logger != nil {
		h.logger.Info("sale recorded",
			slog.Int64("sale_id", sale.ID),
			slog.Int64("product_id", sale.ProductID),
			slog.Int64("quantity", sale.Quantity),
		)
	}
	httpx.JSON(w, http.StatusCreated, RecordSaleResponse{Message: "Sale recorded successfully", Sale: sale})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListSales(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error fetching sales")
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}
