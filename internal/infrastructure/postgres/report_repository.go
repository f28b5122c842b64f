package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes. Agrega sobre las
// órdenes completadas y el ledger de movimientos; nunca muta estado.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesTotals totales de ventas completadas del rango.
func (r *ReportRepo) SalesTotals(ctx context.Context, from, to time.Time) (*repository.OrderTotals, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(total_amount), 0),
	    COALESCE(SUM(tax_amount), 0),
	    COALESCE(SUM(discount_amount), 0),
	    COALESCE(SUM(net_amount), 0)
	FROM sales
	WHERE status = $1 AND sale_date BETWEEN $2 AND $3`

	var t repository.OrderTotals
	err := r.pool.QueryRow(ctx, query, entity.OrderStatusCompleted, from, to).Scan(
		&t.Count, &t.TotalAmount, &t.TaxAmount, &t.DiscountAmount, &t.NetAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return &t, nil
}

// SalesByCustomer desglose de ventas completadas por cliente.
func (r *ReportRepo) SalesByCustomer(ctx context.Context, from, to time.Time) ([]repository.PartyBreakdownRow, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COUNT(s.id),
	    COALESCE(SUM(s.total_amount), 0),
	    COALESCE(SUM(s.net_amount), 0)
	FROM sales s
	JOIN customers c ON c.id = s.customer_id
	WHERE s.status = $1 AND s.sale_date BETWEEN $2 AND $3
	GROUP BY c.id, c.name
	ORDER BY SUM(s.net_amount) DESC`

	rows, err := r.pool.Query(ctx, query, entity.OrderStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByCustomer: %w", err)
	}
	defer rows.Close()
	var results []repository.PartyBreakdownRow
	for rows.Next() {
		var row repository.PartyBreakdownRow
		if err := rows.Scan(&row.PartyID, &row.PartyName, &row.Count, &row.TotalAmount, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("reports.SalesByCustomer scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// SalesByDay desglose diario de ventas completadas.
func (r *ReportRepo) SalesByDay(ctx context.Context, from, to time.Time) ([]repository.DailyBreakdownRow, error) {
	const query = `
	SELECT
	    date_trunc('day', sale_date) AS day,
	    COUNT(*),
	    COALESCE(SUM(total_amount), 0),
	    COALESCE(SUM(net_amount), 0)
	FROM sales
	WHERE status = $1 AND sale_date BETWEEN $2 AND $3
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, entity.OrderStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByDay: %w", err)
	}
	defer rows.Close()
	var results []repository.DailyBreakdownRow
	for rows.Next() {
		var row repository.DailyBreakdownRow
		if err := rows.Scan(&row.Day, &row.Count, &row.TotalAmount, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("reports.SalesByDay scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// PurchasesTotals totales de compras completadas del rango.
func (r *ReportRepo) PurchasesTotals(ctx context.Context, from, to time.Time) (*repository.OrderTotals, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(total_amount), 0),
	    COALESCE(SUM(tax_amount), 0),
	    COALESCE(SUM(discount_amount), 0),
	    COALESCE(SUM(net_amount), 0)
	FROM purchases
	WHERE status = $1 AND purchase_date BETWEEN $2 AND $3`

	var t repository.OrderTotals
	err := r.pool.QueryRow(ctx, query, entity.OrderStatusCompleted, from, to).Scan(
		&t.Count, &t.TotalAmount, &t.TaxAmount, &t.DiscountAmount, &t.NetAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.PurchasesTotals: %w", err)
	}
	return &t, nil
}

// PurchasesBySupplier desglose de compras completadas por proveedor.
func (r *ReportRepo) PurchasesBySupplier(ctx context.Context, from, to time.Time) ([]repository.PartyBreakdownRow, error) {
	const query = `
	SELECT
	    sp.id,
	    sp.name,
	    COUNT(p.id),
	    COALESCE(SUM(p.total_amount), 0),
	    COALESCE(SUM(p.net_amount), 0)
	FROM purchases p
	JOIN suppliers sp ON sp.id = p.supplier_id
	WHERE p.status = $1 AND p.purchase_date BETWEEN $2 AND $3
	GROUP BY sp.id, sp.name
	ORDER BY SUM(p.net_amount) DESC`

	rows, err := r.pool.Query(ctx, query, entity.OrderStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("reports.PurchasesBySupplier: %w", err)
	}
	defer rows.Close()
	var results []repository.PartyBreakdownRow
	for rows.Next() {
		var row repository.PartyBreakdownRow
		if err := rows.Scan(&row.PartyID, &row.PartyName, &row.Count, &row.TotalAmount, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("reports.PurchasesBySupplier scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RevenueAndCOGS ingreso por líneas de ventas completadas y costo de la
// mercancía vendida. El COGS sale del unit_cost estampado en los movimientos
// `out` que referencian esas ventas, no del costo vigente del artículo.
func (r *ReportRepo) RevenueAndCOGS(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	const revenueQuery = `
	SELECT COALESCE(SUM(si.total_price), 0)
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	WHERE s.status = $1 AND s.sale_date BETWEEN $2 AND $3`

	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, revenueQuery, entity.OrderStatusCompleted, from, to).Scan(&revenue); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.RevenueAndCOGS revenue: %w", err)
	}

	const cogsQuery = `
	SELECT COALESCE(SUM(-m.quantity * m.unit_cost), 0)
	FROM stock_movements m
	JOIN sales s ON s.id = m.reference_id
	WHERE m.movement_type = $1
	  AND m.reference_type = $2
	  AND s.status = $3
	  AND s.sale_date BETWEEN $4 AND $5`

	var cogs decimal.Decimal
	err := r.pool.QueryRow(ctx, cogsQuery,
		entity.MovementTypeOut, entity.ReferenceSale, entity.OrderStatusCompleted, from, to,
	).Scan(&cogs)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("reports.RevenueAndCOGS cogs: %w", err)
	}
	return revenue, cogs, nil
}

// TopItems ranking de artículos por unidades vendidas en ventas completadas.
func (r *ReportRepo) TopItems(ctx context.Context, from, to time.Time, limit int) ([]repository.TopItemRow, error) {
	const query = `
	SELECT
	    i.id,
	    i.code,
	    i.name,
	    COALESCE(SUM(si.quantity), 0)    AS quantity_sold,
	    COALESCE(SUM(si.total_price), 0) AS revenue
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	JOIN items i ON i.id = si.item_id
	WHERE s.status = $1 AND s.sale_date BETWEEN $2 AND $3
	GROUP BY i.id, i.code, i.name
	ORDER BY quantity_sold DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, entity.OrderStatusCompleted, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopItems: %w", err)
	}
	defer rows.Close()
	var results []repository.TopItemRow
	for rows.Next() {
		var row repository.TopItemRow
		if err := rows.Scan(&row.ItemID, &row.ItemCode, &row.ItemName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.TopItems scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
