package service

import (
	"context"

	"github.com/quickbill/billing-api/internal/domain/repository"
)

const (
	summaryTopLimit    = 5
	summaryDailyWindow = 7
)

// SummaryService aggregates the invoice history into dashboard figures.
type SummaryService struct {
	summaryRepo repository.SummaryRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(summaryRepo repository.SummaryRepository) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo}
}

// DailySalesPoint is one day of billed revenue
type DailySalesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Tax     float64 `json:"tax"`
}

// TopProductPoint is a line-item name ranked by revenue
type TopProductPoint struct {
	Name         string  `json:"name"`
	QuantitySold float64 `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// TopCustomerPoint is a billed customer ranked by total spend
type TopCustomerPoint struct {
	Name         string  `json:"name"`
	InvoiceCount int     `json:"invoice_count"`
	TotalBilled  float64 `json:"total_billed"`
}

// SalesSummary is the full summary payload
type SalesSummary struct {
	TotalInvoices  int64              `json:"total_invoices"`
	TotalRevenue   float64            `json:"total_revenue"`
	TotalTax       float64            `json:"total_tax"`
	MonthlyRevenue float64            `json:"monthly_revenue"`
	DailySales     []DailySalesPoint  `json:"daily_sales"`
	TopProducts    []TopProductPoint  `json:"top_products"`
	TopCustomers   []TopCustomerPoint `json:"top_customers"`
}

// GetSummary returns billing totals, a 7-day revenue series and the top
// products and customers by billed amount.
func (s *SummaryService) GetSummary(ctx context.Context) (*SalesSummary, error) {
	totals, err := s.summaryRepo.GetTotals(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		TotalInvoices:  totals.TotalInvoices,
		TotalRevenue:   totals.TotalRevenue,
		TotalTax:       totals.TotalTax,
		MonthlyRevenue: totals.MonthlyRevenue,
	}

	daily, err := s.summaryRepo.GetDailySales(ctx, summaryDailyWindow)
	if err != nil {
		return nil, err
	}
	summary.DailySales = make([]DailySalesPoint, 0, len(daily))
	for _, d := range daily {
		summary.DailySales = append(summary.DailySales, DailySalesPoint{
			Date:    d.Date.Format("Jan 02"),
			Revenue: d.Revenue,
			Tax:     d.Tax,
		})
	}

	products, err := s.summaryRepo.GetTopProducts(ctx, summaryTopLimit)
	if err != nil {
		return nil, err
	}
	summary.TopProducts = make([]TopProductPoint, 0, len(products))
	for _, p := range products {
		summary.TopProducts = append(summary.TopProducts, TopProductPoint{
			Name:         p.Name,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		})
	}

	customers, err := s.summaryRepo.GetTopCustomers(ctx, summaryTopLimit)
	if err != nil {
		return nil, err
	}
	summary.TopCustomers = make([]TopCustomerPoint, 0, len(customers))
	for _, c := range customers {
		summary.TopCustomers = append(summary.TopCustomers, TopCustomerPoint{
			Name:         c.Name,
			InvoiceCount: c.InvoiceCount,
			TotalBilled:  c.TotalBilled,
		})
	}

	return summary, nil
}
