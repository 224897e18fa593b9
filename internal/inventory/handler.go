package inventory

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/stockledger/internal/platform/httpx"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

// ProductService is the contract the handler needs from Service.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (Product, error)
	Delete(ctx context.Context, id int64) error
}

// Handler wires HTTP endpoints for products.
type Handler struct {
	logger    *slog.Logger
	service   ProductService
	validator *httpx.Validator
}

// NewHandler constructs the product handler.
func NewHandler(logger *slog.Logger, service ProductService) *Handler {
	return &Handler{logger: logger, service: service, validator: httpx.NewValidator()}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error creating product")
		return
	}
	product, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error creating product")
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error fetching products")
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error fetching product")
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error fetching product")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error updating product")
		return
	}
	in, err := h.decode(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error updating product")
		return
	}
	product, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error updating product")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error deleting product")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error deleting product")
		return
	}
	httpx.JSON(w, http.StatusOK, httpx.MessageBody{Message: "Product deleted successfully"})
}

func (h *Handler) decode(r *http.Request) (ProductInput, error) {
	var req ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return ProductInput{}, httpx.BadRequestBody(err)
	}
	if err := h.validator.Struct(req); err != nil {
		return ProductInput{}, err
	}
	return req.input(), nil
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}
