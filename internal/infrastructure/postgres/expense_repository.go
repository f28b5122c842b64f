package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador de persistencia para gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste un nuevo gasto.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, description, amount, expense_date, category, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Description, expense.Amount, expense.ExpenseDate,
		expense.Category, expense.Notes, nullIfEmpty(expense.CreatedBy),
		expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `
		SELECT id, description, amount, expense_date, category, notes, created_by, created_at, updated_at
		FROM expenses WHERE id = $1`
	var e entity.Expense
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Description, &e.Amount, &e.ExpenseDate, &e.Category,
		&e.Notes, &createdBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	return &e, nil
}

// List lista gastos por rango de fechas con paginación, más recientes primero.
func (r *ExpenseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, description, amount, expense_date, category, notes, created_by, created_at, updated_at
		FROM expenses WHERE 1=1`
	args := make([]any, 0, 4)
	if from != nil {
		args = append(args, *from)
		query += ` AND expense_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND expense_date <= $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += ` ORDER BY expense_date DESC LIMIT $` + strconv.Itoa(len(args))
	args = append(args, offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		var createdBy *string
		if err := rows.Scan(
			&e.ID, &e.Description, &e.Amount, &e.ExpenseDate, &e.Category,
			&e.Notes, &createdBy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// TotalInRange suma los gastos del rango (alimenta la utilidad neta del P&L).
func (r *ExpenseRepo) TotalInRange(from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE expense_date >= $1 AND expense_date <= $2`,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total expenses: %w", err)
	}
	return total, nil
}
