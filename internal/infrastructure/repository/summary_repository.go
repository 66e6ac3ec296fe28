package repository

import (
	"context"
	"database/sql"
	"time"

	domainRepo "github.com/quickbill/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) domainRepo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) GetTotals(ctx context.Context) (*domainRepo.SalesTotals, error) {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return nil, ErrNoAccountContext
	}

	totals := &domainRepo.SalesTotals{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(id) as total_invoices,
			COALESCE(SUM(grand_total), 0) / 100.0 as total_revenue,
			COALESCE(SUM(total_tax), 0) / 100.0 as total_tax
		FROM invoices
		WHERE account_id = ?
	`, accountID).Scan(totals).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	err = r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(grand_total), 0) / 100.0
		FROM invoices
		WHERE account_id = ? AND issue_date >= ?
	`, accountID, startOfMonth).Scan(&totals.MonthlyRevenue).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}

func (r *summaryRepository) GetTopProducts(ctx context.Context, limit int) ([]domainRepo.TopProductResult, error) {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return nil, ErrNoAccountContext
	}

	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			ii.name as name,
			COALESCE(SUM(ii.quantity), 0) as quantity_sold,
			COALESCE(SUM(ii.total), 0) / 100.0 as revenue
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.account_id = ?
		GROUP BY ii.name
		ORDER BY revenue DESC
		LIMIT ?
	`, accountID, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *summaryRepository) GetTopCustomers(ctx context.Context, limit int) ([]domainRepo.TopCustomerResult, error) {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return nil, ErrNoAccountContext
	}

	var results []domainRepo.TopCustomerResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			customer_name as name,
			COUNT(id) as invoice_count,
			COALESCE(SUM(grand_total), 0) / 100.0 as total_billed
		FROM invoices
		WHERE account_id = ?
		GROUP BY customer_name
		ORDER BY total_billed DESC
		LIMIT ?
	`, accountID, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *summaryRepository) GetDailySales(ctx context.Context, days int) ([]domainRepo.DailySalesResult, error) {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return nil, ErrNoAccountContext
	}

	results := make([]domainRepo.DailySalesResult, 0, days)
	now := time.Now()

	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)

		var row struct {
			Revenue sql.NullFloat64
			Tax     sql.NullFloat64
		}
		err := r.db.WithContext(ctx).Raw(`
			SELECT
				COALESCE(SUM(grand_total), 0) / 100.0 as revenue,
				COALESCE(SUM(total_tax), 0) / 100.0 as tax
			FROM invoices
			WHERE account_id = ? AND issue_date >= ? AND issue_date < ?
		`, accountID, startOfDay, endOfDay).Scan(&row).Error
		if err != nil {
			return nil, err
		}

		results = append(results, domainRepo.DailySalesResult{
			Date:    startOfDay,
			Revenue: row.Revenue.Float64,
			Tax:     row.Tax.Float64,
		})
	}

	return results, nil
}
