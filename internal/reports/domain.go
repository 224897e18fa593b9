package reports

import (
	"fmt"
	"time"
)

// Report aggregates the sales of a date range.
type Report struct {
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	TotalRevenue   float64      `json:"totalRevenue"`
	TotalItemsSold int64        `json:"totalItemsSold"`
	TotalProfit    float64      `json:"totalProfit"`
	TotalSales     int          `json:"totalSales"`
	SalesDetails   []SaleDetail `json:"salesDetails"`
}

// SaleDetail is one sale line of a report.
type SaleDetail struct {
	SaleID      int64     `json:"saleId"`
	ProductName string    `json:"productName"`
	Quantity    int64     `json:"quantity"`
	BuyingPrice float64   `json:"buyingPrice"`
	SalesPrice  float64   `json:"salesPrice"`
	TotalPrice  float64   `json:"totalPrice"`
	Profit      float64   `json:"profit"`
	SaleDate    time.Time `json:"saleDate"`
}

// Filename suggests a download name for the rendered report.
func (r Report) Filename() string {
	return fmt.Sprintf("sales-report-%s-to-%s.pdf", r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout))
}

const dateLayout = "2006-01-02"
