package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/stockledger/internal/shared"
)

// Messages returned for the known error kinds.
const (
	MsgProductNotFound   = "Product not found"
	MsgInsufficientStock = "Insufficient stock"
	MsgDuplicateRequest  = "Duplicate request"
)

// RespondError maps domain errors to HTTP responses. Unknown errors are logged
// and answered with 500 and the caller supplied fallback message.
func RespondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, shared.ErrValidation):
		Error(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, MsgProductNotFound)
	case errors.Is(err, shared.ErrInsufficientStock):
		Error(w, http.StatusBadRequest, MsgInsufficientStock)
	case errors.Is(err, shared.ErrConflict), errors.Is(err, shared.ErrIdempotencyConflict):
		Error(w, http.StatusConflict, MsgDuplicateRequest)
	default:
		if logger != nil {
			logger.Error(fallback,
				slog.Any("error", err),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
		Error(w, http.StatusInternalServerError, fallback)
	}
}

func validationMessage(err error) string {
	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return shared.ErrValidation.Error()
}
