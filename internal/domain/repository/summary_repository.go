package repository

import (
	"context"
	"time"
)

// SalesTotals aggregates the account's committed invoice history.
// Money values are in currency units, not paise.
type SalesTotals struct {
	TotalInvoices  int64
	TotalRevenue   float64
	TotalTax       float64
	MonthlyRevenue float64
}

// TopProductResult is a line-item name's sales performance.
type TopProductResult struct {
	Name         string
	QuantitySold float64
	Revenue      float64
}

// TopCustomerResult is a billed customer's spending, grouped by the
// customer name snapshot on the invoice.
type TopCustomerResult struct {
	Name         string
	InvoiceCount int
	TotalBilled  float64
}

// DailySalesResult is one day of revenue.
type DailySalesResult struct {
	Date    time.Time
	Revenue float64
	Tax     float64
}

// SummaryRepository runs aggregation queries over the invoice history.
// All queries are scoped to the account carried in ctx.
type SummaryRepository interface {
	GetTotals(ctx context.Context) (*SalesTotals, error)
	GetTopProducts(ctx context.Context, limit int) ([]TopProductResult, error)
	GetTopCustomers(ctx context.Context, limit int) ([]TopCustomerResult, error)
	GetDailySales(ctx context.Context, days int) ([]DailySalesResult, error)
}
