package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para gastos.
// TotalInRange alimenta la utilidad neta del reporte de pérdidas y ganancias.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
	TotalInRange(from, to time.Time) (decimal.Decimal, error)
}
