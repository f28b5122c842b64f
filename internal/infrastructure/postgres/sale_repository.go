package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus líneas.
func (r *SaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	query := `
		INSERT INTO sales (id, invoice_number, customer_id, sale_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.InvoiceNumber, sale.CustomerID, sale.Date, sale.TotalAmount,
		sale.DiscountAmount, sale.TaxAmount, sale.NetAmount, sale.Status, sale.Notes,
		nullIfEmpty(sale.CreatedBy), sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sale_items (id, sale_id, item_id, quantity, unit_price, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.SaleID, item.ItemID, item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, []*entity.SaleItem, error) {
	query := `
		SELECT id, invoice_number, customer_id, sale_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.Date, &s.TotalAmount,
		&s.DiscountAmount, &s.TaxAmount, &s.NetAmount, &s.Status, &s.Notes,
		&createdBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get sale: %w", err)
	}
	if createdBy != nil {
		s.CreatedBy = *createdBy
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, item_id, quantity, unit_price, total_price
		 FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return &s, items, rows.Err()
}

// List lista ventas por rango de fechas con paginación, más recientes primero.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT id, invoice_number, customer_id, sale_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at
		FROM sales WHERE 1=1`
	args := make([]any, 0, 4)
	if from != nil {
		args = append(args, *from)
		query += ` AND sale_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND sale_date <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY sale_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(
			&s.ID, &s.InvoiceNumber, &s.CustomerID, &s.Date, &s.TotalAmount,
			&s.DiscountAmount, &s.TaxAmount, &s.NetAmount, &s.Status, &s.Notes,
			&createdBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if createdBy != nil {
			s.CreatedBy = *createdBy
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus transiciona el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// NextInvoiceNumber reserva el siguiente consecutivo de la secuencia de
// facturas de venta (INV-000001).
func (r *SaleRepo) NextInvoiceNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('sales_invoice_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next sale invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", n), nil
}
