package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, code, name, description, unit, category_id, purchase_price, selling_price, cost, min_stock, max_stock, current_stock, active, created_at, updated_at`

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un nuevo artículo. current_stock inicia en 0.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (id, code, name, description, unit, category_id, purchase_price, selling_price, cost, min_stock, max_stock, current_stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, item.Unit, nullIfEmpty(item.CategoryID),
		item.PurchasePrice, item.SellingPrice, item.Cost, item.MinStock, item.MaxStock,
		item.Active, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetByCode obtiene un artículo por código.
func (r *ItemRepo) GetByCode(code string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE code = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, code), "get item by code")
}

// GetForUpdate obtiene un artículo bloqueando su fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *ItemRepo) GetForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "lock item")
}

// Update actualiza los datos de catálogo. No toca current_stock ni cost
// (se manejan vía movimientos y compras).
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET code = $2, name = $3, description = $4, unit = $5, category_id = $6,
			purchase_price = $7, selling_price = $8, min_stock = $9, max_stock = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Code, item.Name, item.Description, item.Unit, nullIfEmpty(item.CategoryID),
		item.PurchasePrice, item.SellingPrice, item.MinStock, item.MaxStock, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo el stock cacheado (usado por el motor de órdenes y ajustes).
func (r *ItemRepo) UpdateStock(id string, currentStock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, currentStock,
	)
	if err != nil {
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// UpdateCosting actualiza el costo promedio y el último precio de compra (usado por compras).
func (r *ItemRepo) UpdateCosting(id string, cost, purchasePrice decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET cost = $2, purchase_price = $3, updated_at = now() WHERE id = $1`,
		id, cost, purchasePrice,
	)
	if err != nil {
		return fmt.Errorf("update item costing: %w", err)
	}
	return nil
}

// ListActive lista todos los artículos activos ordenados por código.
func (r *ItemRepo) ListActive() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE active ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// List lista artículos con paginación.
func (r *ItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Deactivate baja lógica del artículo.
func (r *ItemRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	return nil
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var i entity.Item
	var categoryID *string
	err := row.Scan(
		&i.ID, &i.Code, &i.Name, &i.Description, &i.Unit, &categoryID,
		&i.PurchasePrice, &i.SellingPrice, &i.Cost, &i.MinStock, &i.MaxStock,
		&i.CurrentStock, &i.Active, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if categoryID != nil {
		i.CategoryID = *categoryID
	}
	return &i, nil
}

func (r *ItemRepo) scanMany(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var i entity.Item
		var categoryID *string
		if err := rows.Scan(
			&i.ID, &i.Code, &i.Name, &i.Description, &i.Unit, &categoryID,
			&i.PurchasePrice, &i.SellingPrice, &i.Cost, &i.MinStock, &i.MaxStock,
			&i.CurrentStock, &i.Active, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if categoryID != nil {
			i.CategoryID = *categoryID
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
