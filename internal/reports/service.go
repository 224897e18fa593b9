package reports

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/stockledger/internal/sales"
)

// SalesSource lists sales joined with their products.
type SalesSource interface {
	ListSales(ctx context.Context, filter sales.Filter) ([]sales.Record, error)
}

// Renderer turns a report into a PDF document.
type Renderer interface {
	Render(ctx context.Context, rep Report) ([]byte, error)
}

// Service builds and renders sales reports.
type Service struct {
	source   SalesSource
	renderer Renderer
}

// NewService wires the report service.
func NewService(source SalesSource, renderer Renderer) *Service {
	return &Service{source: source, renderer: renderer}
}

// BuildReport aggregates the sales between the two raw dates.
func (s *Service) BuildReport(ctx context.Context, startRaw, endRaw string) (Report, error) {
	rng, err := ParseRange(startRaw, endRaw)
	if err != nil {
		return Report{}, err
	}
	return s.build(ctx, rng)
}

func (s *Service) build(ctx context.Context, rng DateRange) (Report, error) {
	records, err := s.source.ListSales(ctx, sales.Filter{From: rng.Start, To: rng.End})
	if err != nil {
		return Report{}, fmt.Errorf("reports: list sales: %w", err)
	}
	list := make([]sales.Sale, 0, len(records))
	for _, rec := range records {
		list = append(list, rec.Sale)
	}
	return Build(rng, list, LookupFromRecords(records)), nil
}

// RenderPDF builds the report for the range and renders it.
func (s *Service) RenderPDF(ctx context.Context, startRaw, endRaw string) (Report, []byte, error) {
	rep, err := s.BuildReport(ctx, startRaw, endRaw)
	if err != nil {
		return Report{}, nil, err
	}
	if s.renderer == nil {
		return Report{}, nil, fmt.Errorf("reports: no pdf renderer configured")
	}
	doc, err := s.renderer.Render(ctx, rep)
	if err != nil {
		return Report{}, nil, fmt.Errorf("reports: render pdf: %w", err)
	}
	return rep, doc, nil
}
