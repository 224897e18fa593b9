package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/sales"
)

func widgetLookup(id int64) (inventory.Product, bool) {
	if id != 1 {
		return inventory.Product{}, false
	}
	return inventory.Product{ID: 1, Name: "Widget", Price: 5, Quantity: 5}, true
}

func TestBuildAggregatesTotals(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rng := DateRange{Start: day, End: day.AddDate(0, 0, 1).Add(-time.Nanosecond)}
	list := []sales.Sale{
		{ID: 2, ProductID: 1, Quantity: 2, SalesPrice: 12, TotalPrice: 24, SaleDate: day.Add(15 * time.Hour)},
		{ID: 1, ProductID: 1, Quantity: 3, SalesPrice: 8, TotalPrice: 24, SaleDate: day.Add(9 * time.Hour)},
	}

	rep := Build(rng, list, widgetLookup)

	require.Equal(t, 48.0, rep.TotalRevenue)
	require.Equal(t, int64(5), rep.TotalItemsSold)
	require.Equal(t, 23.0, rep.TotalProfit)
	require.Equal(t, 2, rep.TotalSales)
	require.Len(t, rep.SalesDetails, 2)
	require.Equal(t, int64(1), rep.SalesDetails[0].SaleID)
	require.Equal(t, 9.0, rep.SalesDetails[0].Profit)
	require.Equal(t, "Widget", rep.SalesDetails[0].ProductName)
	require.Equal(t, 5.0, rep.SalesDetails[0].BuyingPrice)
	require.Equal(t, 14.0, rep.SalesDetails[1].Profit)
}

func TestBuildEmptyRange(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rep := Build(DateRange{Start: day, End: day}, nil, widgetLookup)

	require.Zero(t, rep.TotalRevenue)
	require.Zero(t, rep.TotalItemsSold)
	require.Zero(t, rep.TotalProfit)
	require.Zero(t, rep.TotalSales)
	require.NotNil(t, rep.SalesDetails)
	require.Empty(t, rep.SalesDetails)
}

func TestBuildSkipsOutOfRangeAndOrphanedSales(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	rng := DateRange{Start: day, End: day.Add(12 * time.Hour)}
	list := []sales.Sale{
		{ID: 1, ProductID: 1, Quantity: 1, SalesPrice: 8, TotalPrice: 8, SaleDate: day.Add(-time.Second)},
		{ID: 2, ProductID: 1, Quantity: 1, SalesPrice: 8, TotalPrice: 8, SaleDate: day},
		{ID: 3, ProductID: 99, Quantity: 1, SalesPrice: 8, TotalPrice: 8, SaleDate: day.Add(time.Hour)},
		{ID: 4, ProductID: 1, Quantity: 1, SalesPrice: 8, TotalPrice: 8, SaleDate: day.Add(12 * time.Hour)},
	}

	rep := Build(rng, list, widgetLookup)

	require.Equal(t, 2, rep.TotalSales)
	require.Equal(t, int64(2), rep.SalesDetails[0].SaleID)
	require.Equal(t, int64(4), rep.SalesDetails[1].SaleID)
}

func TestBuildNegativeProfitAndCents(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	lookup := func(int64) (inventory.Product, bool) {
		return inventory.Product{ID: 7, Name: "Cable", Price: 0.3}, true
	}
	list := []sales.Sale{
		{ID: 1, ProductID: 7, Quantity: 3, SalesPrice: 0.1, TotalPrice: 0.3, SaleDate: day},
		{ID: 2, ProductID: 7, Quantity: 1, SalesPrice: 0.2, TotalPrice: 0.2, SaleDate: day},
	}

	rep := Build(DateRange{Start: day, End: day}, list, lookup)

	require.Equal(t, 0.5, rep.TotalRevenue)
	require.Equal(t, -0.7, rep.TotalProfit)
	require.Equal(t, -0.6, rep.SalesDetails[0].Profit)
}
