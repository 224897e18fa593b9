package reports

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/sales"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

type stubSource struct {
	records []sales.Record
	filter  sales.Filter
	err     error
	calls   int
}

func (s *stubSource) ListSales(_ context.Context, filter sales.Filter) ([]sales.Record, error) {
	s.calls++
	s.filter = filter
	return s.records, s.err
}

type stubRenderer struct {
	got Report
	err error
}

func (r *stubRenderer) Render(_ context.Context, rep Report) ([]byte, error) {
	r.got = rep
	return []byte("%PDF-stub"), r.err
}

func widgetRecords() []sales.Record {
	widget := inventory.Product{ID: 1, Name: "Widget", Price: 5, Quantity: 5}
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return []sales.Record{
		{Sale: sales.Sale{ID: 1, ProductID: 1, Quantity: 3, SalesPrice: 8, TotalPrice: 24, SaleDate: at}, Product: widget},
		{Sale: sales.Sale{ID: 2, ProductID: 1, Quantity: 2, SalesPrice: 12, TotalPrice: 24, SaleDate: at.Add(time.Hour)}, Product: widget},
	}
}

func TestServiceBuildReport(t *testing.T) {
	src := &stubSource{records: widgetRecords()}
	svc := NewService(src, nil)

	rep, err := svc.BuildReport(context.Background(), "2024-03-10", "2024-03-10")
	require.NoError(t, err)
	require.Equal(t, 48.0, rep.TotalRevenue)
	require.Equal(t, int64(5), rep.TotalItemsSold)
	require.Equal(t, 23.0, rep.TotalProfit)
	require.Equal(t, 2, rep.TotalSales)
	require.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), src.filter.From)
	require.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), src.filter.To)
}

func TestServiceBuildReportValidatesBeforeQuery(t *testing.T) {
	src := &stubSource{}
	svc := NewService(src, nil)

	_, err := svc.BuildReport(context.Background(), "", "2024-03-10")
	require.ErrorIs(t, err, shared.ErrValidation)
	require.Zero(t, src.calls)
}

func TestServiceBuildReportWrapsSourceError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&stubSource{err: boom}, nil)

	_, err := svc.BuildReport(context.Background(), "2024-03-01", "2024-03-31")
	require.ErrorIs(t, err, boom)
}

func TestServiceRenderPDF(t *testing.T) {
	renderer := &stubRenderer{}
	svc := NewService(&stubSource{records: widgetRecords()}, renderer)

	rep, doc, err := svc.RenderPDF(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Equal(t, "%PDF-stub", string(doc))
	require.Equal(t, rep, renderer.got)
	require.Equal(t, "sales-report-2024-03-01-to-2024-03-31.pdf", rep.Filename())
}

func TestServiceRenderPDFFailure(t *testing.T) {
	svc := NewService(&stubSource{}, &stubRenderer{err: errors.New("gotenberg unavailable")})

	_, _, err := svc.RenderPDF(context.Background(), "2024-03-01", "2024-03-31")
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrValidation)
}

type blockingSource struct {
	release chan struct{}
	started chan struct{}
	calls   atomic.Int32

	mu      sync.Mutex
	records []sales.Record
}

func newBlockingSource() *blockingSource {
	return &blockingSource{release: make(chan struct{}), started: make(chan struct{})}
}

func (s *blockingSource) add(recs ...sales.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recs...)
}

// ListSales snapshots the records, then parks the first caller until release.
func (s *blockingSource) ListSales(ctx context.Context, _ sales.Filter) ([]sales.Record, error) {
	s.mu.Lock()
	snapshot := append([]sales.Record(nil), s.records...)
	s.mu.Unlock()
	if s.calls.Add(1) == 1 {
		close(s.started)
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return snapshot, nil
}

func TestServiceBuildReportSeesSalesCommittedDuringEarlierBuild(t *testing.T) {
	src := newBlockingSource()
	svc := NewService(src, nil)

	type result struct {
		rep Report
		err error
	}
	first := make(chan result, 1)
	go func() {
		rep, err := svc.BuildReport(context.Background(), "2024-03-01", "2024-03-31")
		first <- result{rep, err}
	}()
	<-src.started

	src.add(widgetRecords()...)
	rep, err := svc.BuildReport(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Equal(t, 2, rep.TotalSales)
	require.Equal(t, 48.0, rep.TotalRevenue)

	close(src.release)
	early := <-first
	require.NoError(t, early.err)
	require.Zero(t, early.rep.TotalSales)
	require.Equal(t, int32(2), src.calls.Load())
}

func TestServiceBuildReportHonoursCancellation(t *testing.T) {
	src := newBlockingSource()
	svc := NewService(src, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := svc.BuildReport(ctx, "2024-03-01", "2024-03-31")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
