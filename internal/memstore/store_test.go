package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/reports"
	"github.com/odyssey-erp/stockledger/internal/sales"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

func TestStoreProductCRUD(t *testing.T) {
	store := New()
	ctx := context.Background()

	a, err := store.Create(ctx, inventory.ProductInput{Name: "A", Price: 1, Quantity: 2})
	require.NoError(t, err)
	b, err := store.Create(ctx, inventory.ProductInput{Name: "B", Price: 3, Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
	require.False(t, a.CreatedAt.IsZero())

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, []int64{list[0].ID, list[1].ID})

	updated, err := store.Update(ctx, a.ID, inventory.ProductInput{Name: "A2", Price: 9, Quantity: 0})
	require.NoError(t, err)
	require.Equal(t, "A2", updated.Name)
	require.Equal(t, a.CreatedAt, updated.CreatedAt)

	require.NoError(t, store.Delete(ctx, a.ID))
	_, err = store.Get(ctx, a.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.ErrorIs(t, store.Delete(ctx, a.ID), shared.ErrNotFound)
	_, err = store.Update(ctx, a.ID, inventory.ProductInput{Name: "x"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStoreWithTxDiscardsOnError(t *testing.T) {
	store := New()
	ctx := context.Background()
	p, err := store.Create(ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 10})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(ctx context.Context, tx sales.TxRepository) error {
		if _, err := tx.InsertSale(ctx, sales.Sale{ProductID: p.ID, Quantity: 4}); err != nil {
			return err
		}
		if err := tx.DecrementStock(ctx, p.ID, 4); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10), got.Quantity)
	records, err := store.ListSales(ctx, sales.Filter{})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStoreDecrementNeverGoesNegative(t *testing.T) {
	store := New()
	ctx := context.Background()
	p, err := store.Create(ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 3})
	require.NoError(t, err)

	err = store.WithTx(ctx, func(ctx context.Context, tx sales.TxRepository) error {
		if err := tx.DecrementStock(ctx, p.ID, 2); err != nil {
			return err
		}
		return tx.DecrementStock(ctx, p.ID, 2)
	})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestStoreListSalesFilterAndOrder(t *testing.T) {
	store := New()
	ctx := context.Background()
	p, err := store.Create(ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 10})
	require.NoError(t, err)

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	dates := []time.Time{base.Add(time.Hour), base, base.AddDate(0, 0, 3)}
	for _, d := range dates {
		err := store.WithTx(ctx, func(ctx context.Context, tx sales.TxRepository) error {
			_, err := tx.InsertSale(ctx, sales.Sale{ProductID: p.ID, Quantity: 1, SaleDate: d})
			return err
		})
		require.NoError(t, err)
	}

	records, err := store.ListSales(ctx, sales.Filter{From: base, To: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, int64(2), records[0].Sale.ID)
	require.Equal(t, int64(1), records[1].Sale.ID)
	require.Equal(t, "Widget", records[0].Product.Name)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

// WorkflowSuite drives products, sales and reports against one Store.
type WorkflowSuite struct {
	suite.Suite
	ctx       context.Context
	store     *Store
	inventory *inventory.Service
	sales     *sales.Service
	reports   *reports.Service
}

var workflowNow = time.Date(2024, 3, 10, 23, 59, 30, 0, time.UTC)

func (s *WorkflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = New()
	s.store.clock = func() time.Time { return workflowNow }
	s.inventory = inventory.NewService(s.store)
	s.sales = sales.NewService(s.store, nil, nil).WithClock(func() time.Time { return workflowNow })
	s.reports = reports.NewService(s.store, reports.NewFPDFRenderer("Sales Report"))
}

func (s *WorkflowSuite) today() string {
	return workflowNow.Format("2006-01-02")
}

func (s *WorkflowSuite) TestSellAndReport() {
	widget, err := s.inventory.Create(s.ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 10})
	s.Require().NoError(err)

	sale, err := s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: widget.ID, Quantity: 3, SalesPrice: 8})
	s.Require().NoError(err)
	s.Require().Equal(24.0, sale.TotalPrice)

	stocked, err := s.inventory.Get(s.ctx, widget.ID)
	s.Require().NoError(err)
	s.Require().Equal(int64(7), stocked.Quantity)

	_, err = s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: widget.ID, Quantity: 8, SalesPrice: 8})
	s.Require().ErrorIs(err, shared.ErrInsufficientStock)

	_, err = s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: widget.ID, Quantity: 2, SalesPrice: 12})
	s.Require().NoError(err)

	rep, err := s.reports.BuildReport(s.ctx, s.today(), s.today())
	s.Require().NoError(err)
	s.Require().Equal(48.0, rep.TotalRevenue)
	s.Require().Equal(int64(5), rep.TotalItemsSold)
	s.Require().Equal(23.0, rep.TotalProfit)
	s.Require().Equal(2, rep.TotalSales)

	_, doc, err := s.reports.RenderPDF(s.ctx, s.today(), s.today())
	s.Require().NoError(err)
	s.Require().Equal("%PDF-", string(doc[:5]))
}

func (s *WorkflowSuite) TestDeletingProductDropsItsSales() {
	widget, err := s.inventory.Create(s.ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 10})
	s.Require().NoError(err)
	gadget, err := s.inventory.Create(s.ctx, inventory.ProductInput{Name: "Gadget", Price: 2, Quantity: 10})
	s.Require().NoError(err)

	_, err = s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: widget.ID, Quantity: 1, SalesPrice: 8})
	s.Require().NoError(err)
	_, err = s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: gadget.ID, Quantity: 1, SalesPrice: 3})
	s.Require().NoError(err)

	s.Require().NoError(s.inventory.Delete(s.ctx, widget.ID))

	views, err := s.sales.ListSales(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Require().Equal("Gadget", views[0].ProductName)

	rep, err := s.reports.BuildReport(s.ctx, s.today(), s.today())
	s.Require().NoError(err)
	s.Require().Equal(1, rep.TotalSales)
	s.Require().Equal(1.0, rep.TotalProfit)
}

func (s *WorkflowSuite) TestReportOutsideRangeIsEmpty() {
	widget, err := s.inventory.Create(s.ctx, inventory.ProductInput{Name: "Widget", Price: 5, Quantity: 10})
	s.Require().NoError(err)
	_, err = s.sales.RecordSale(s.ctx, sales.RecordInput{ProductID: widget.ID, Quantity: 1, SalesPrice: 8})
	s.Require().NoError(err)

	rep, err := s.reports.BuildReport(s.ctx, "2001-01-01", "2001-12-31")
	s.Require().NoError(err)
	s.Require().Zero(rep.TotalSales)
	s.Require().Empty(rep.SalesDetails)
}

func TestWorkflowSuite(t *testing.T) {
	suite.Run(t, new(WorkflowSuite))
}
