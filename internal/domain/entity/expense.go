package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto del período. Los gastos alimentan el cálculo de
// utilidad neta en el reporte de pérdidas y ganancias.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	ExpenseDate time.Time
	Category    string
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
