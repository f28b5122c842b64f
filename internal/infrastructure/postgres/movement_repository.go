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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, seq, item_id, movement_type, quantity, unit_cost, reference_type, reference_id, notes, movement_date, created_by`

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL.
// La tabla es append-only: no existen UPDATE ni DELETE sobre ella; seq es un
// BIGSERIAL que desempata movimientos con la misma fecha.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create asienta el movimiento y deja el seq asignado por la DB en movement.Seq.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, movement_type, quantity, unit_cost, reference_type, reference_id, notes, movement_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.ItemID, movement.Type, movement.Quantity, movement.UnitCost,
		movement.ReferenceType, nullIfEmpty(movement.ReferenceID), movement.Notes,
		movement.MovementDate, nullIfEmpty(movement.CreatedBy),
	).Scan(&movement.Seq)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	var referenceID, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Seq, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.ReferenceType, &referenceID, &m.Notes, &m.MovementDate, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if referenceID != nil {
		m.ReferenceID = *referenceID
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// List lista movimientos según el filtro, siempre en orden canónico
// (movement_date, seq) ascendente.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := make([]any, 0, 6)
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		query += ` AND item_id = $` + strconv.Itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND movement_type = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND movement_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND movement_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY movement_date, seq`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByReference lista los movimientos de una orden en orden canónico.
func (r *MovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE reference_type = $1 AND reference_id = $2
		ORDER BY movement_date, seq`
	rows, err := r.q.Query(context.Background(), query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SumByItem suma las cantidades firmadas de todos los movimientos del artículo
// (replay completo del ledger).
func (r *MovementRepo) SumByItem(itemID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE item_id = $1`,
		itemID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

// SummaryByType totales por tipo de movimiento en un rango.
func (r *MovementRepo) SummaryByType(from, to *time.Time) ([]repository.MovementTypeSummary, error) {
	query := `
		SELECT movement_type, COALESCE(SUM(quantity), 0), COUNT(*)
		FROM stock_movements WHERE 1=1`
	args := make([]any, 0, 2)
	if from != nil {
		args = append(args, *from)
		query += ` AND movement_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND movement_date <= $` + strconv.Itoa(len(args))
	}
	query += ` GROUP BY movement_type ORDER BY movement_type`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("movement summary: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementTypeSummary
	for rows.Next() {
		var s repository.MovementTypeSummary
		if err := rows.Scan(&s.Type, &s.TotalQuantity, &s.MovementCount); err != nil {
			return nil, fmt.Errorf("scan movement summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var referenceID, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.Seq, &m.ItemID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.ReferenceType, &referenceID, &m.Notes, &m.MovementDate, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if referenceID != nil {
			m.ReferenceID = *referenceID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
