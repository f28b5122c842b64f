package repository

import (
	"time"

	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar el ledger.
type MovementFilter struct {
	ItemID string
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// MovementTypeSummary totales por tipo de movimiento en un rango.
type MovementTypeSummary struct {
	Type          string
	TotalQuantity int64 // suma de cantidades firmadas
	MovementCount int64
}

// MovementRepository define el puerto del ledger de movimientos.
// Append-only: no hay Update ni Delete; las correcciones son movimientos
// compensatorios. Create asigna Seq (clave de orden) al insertar.
// El orden de lectura es siempre (movement_date, seq) ascendente.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	ListByReference(referenceType, referenceID string) ([]*entity.StockMovement, error)
	// SumByItem devuelve la suma de cantidades firmadas de todos los
	// movimientos del artículo (replay completo del ledger).
	SumByItem(itemID string) (int64, error)
	SummaryByType(from, to *time.Time) ([]MovementTypeSummary, error)
}
