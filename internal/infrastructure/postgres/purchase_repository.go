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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la compra con sus líneas.
func (r *PurchaseRepo) Create(purchase *entity.Purchase, items []*entity.PurchaseItem) error {
	query := `
		INSERT INTO purchases (id, invoice_number, supplier_id, purchase_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.InvoiceNumber, purchase.SupplierID, purchase.Date, purchase.TotalAmount,
		purchase.DiscountAmount, purchase.TaxAmount, purchase.NetAmount, purchase.Status, purchase.Notes,
		nullIfEmpty(purchase.CreatedBy), purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, item := range items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO purchase_items (id, purchase_id, item_id, quantity, unit_price, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.PurchaseID, item.ItemID, item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la compra con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error) {
	query := `
		SELECT id, invoice_number, supplier_id, purchase_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.InvoiceNumber, &p.SupplierID, &p.Date, &p.TotalAmount,
		&p.DiscountAmount, &p.TaxAmount, &p.NetAmount, &p.Status, &p.Notes,
		&createdBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get purchase: %w", err)
	}
	if createdBy != nil {
		p.CreatedBy = *createdBy
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, purchase_id, item_id, quantity, unit_price, total_price
		 FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get purchase items: %w", err)
	}
	defer rows.Close()
	var items []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, nil, fmt.Errorf("scan purchase item: %w", err)
		}
		items = append(items, &it)
	}
	return &p, items, rows.Err()
}

// List lista compras por rango de fechas con paginación, más recientes primero.
func (r *PurchaseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT id, invoice_number, supplier_id, purchase_date, total_amount, discount_amount, tax_amount, net_amount, status, notes, created_by, created_at, updated_at
		FROM purchases WHERE 1=1`
	args := make([]any, 0, 4)
	if from != nil {
		args = append(args, *from)
		query += ` AND purchase_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND purchase_date <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY purchase_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		var createdBy *string
		if err := rows.Scan(
			&p.ID, &p.InvoiceNumber, &p.SupplierID, &p.Date, &p.TotalAmount,
			&p.DiscountAmount, &p.TaxAmount, &p.NetAmount, &p.Status, &p.Notes,
			&createdBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if createdBy != nil {
			p.CreatedBy = *createdBy
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus transiciona el estado de la compra.
func (r *PurchaseRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}

// NextInvoiceNumber reserva el siguiente consecutivo de la secuencia de
// facturas de compra (PUR-000001).
func (r *PurchaseRepo) NextInvoiceNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('purchases_invoice_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("next purchase invoice number: %w", err)
	}
	return fmt.Sprintf("PUR-%06d", n), nil
}
