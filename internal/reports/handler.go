package reports

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/odyssey-erp/stockledger/internal/platform/httpx"
)

// ReportService is the behaviour the handler needs.
type ReportService interface {
	BuildReport(ctx context.Context, startRaw, endRaw string) (Report, error)
	RenderPDF(ctx context.Context, startRaw, endRaw string) (Report, []byte, error)
}

// Handler serves the report endpoints.
type Handler struct {
	logger  *slog.Logger
	service ReportService
}

// NewHandler builds the report handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, err := h.service.BuildReport(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error generating report")
		return
	}
	httpx.JSON(w, http.StatusOK, rep)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rep, doc, err := h.service.RenderPDF(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err, "Error generating PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		h.logger.Warn("write pdf response", slog.Any("error", err))
	}
}
