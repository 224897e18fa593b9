package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/stockledger/internal/inventory"
	"github.com/odyssey-erp/stockledger/internal/sales"
	"github.com/odyssey-erp/stockledger/internal/shared"
)

// ProductLookup resolves the product a sale was made from.
type ProductLookup func(productID int64) (inventory.Product, bool)

// LookupFromRecords indexes the products carried by listed sale records.
func LookupFromRecords(records []sales.Record) ProductLookup {
	products := make(map[int64]inventory.Product, len(records))
	for _, rec := range records {
		products[rec.Product.ID] = rec.Product
	}
	return func(id int64) (inventory.Product, bool) {
		p, ok := products[id]
		return p, ok
	}
}

// Build aggregates the sales that fall inside rng. Sales whose product can no
// longer be resolved are left out. Details are ordered by sale date, then id.
func Build(rng DateRange, list []sales.Sale, lookup ProductLookup) Report {
	rep := Report{
		StartDate:    rng.Start,
		EndDate:      rng.End,
		SalesDetails: make([]SaleDetail, 0, len(list)),
	}
	revenue := decimal.Zero
	profit := decimal.Zero
	for _, sale := range list {
		if !rng.Contains(sale.SaleDate) {
			continue
		}
		product, ok := lookup(sale.ProductID)
		if !ok {
			continue
		}
		lineProfit := shared.LineProfit(sale.SalesPrice, product.Price, sale.Quantity)
		revenue = revenue.Add(shared.Money(sale.TotalPrice))
		profit = profit.Add(shared.Money(lineProfit))
		rep.TotalItemsSold += sale.Quantity
		rep.SalesDetails = append(rep.SalesDetails, SaleDetail{
			SaleID:      sale.ID,
			ProductName: product.Name,
			Quantity:    sale.Quantity,
			BuyingPrice: product.Price,
			SalesPrice:  sale.SalesPrice,
			TotalPrice:  sale.TotalPrice,
			Profit:      lineProfit,
			SaleDate:    sale.SaleDate,
		})
	}
	sort.SliceStable(rep.SalesDetails, func(i, j int) bool {
		a, b := rep.SalesDetails[i], rep.SalesDetails[j]
		if !a.SaleDate.Equal(b.SaleDate) {
			return a.SaleDate.Before(b.SaleDate)
		}
		return a.SaleID < b.SaleID
	})
	rep.TotalSales = len(rep.SalesDetails)
	rep.TotalRevenue = revenue.Round(shared.CurrencyPlaces).InexactFloat64()
	rep.TotalProfit = profit.Round(shared.CurrencyPlaces).InexactFloat64()
	return rep
}
