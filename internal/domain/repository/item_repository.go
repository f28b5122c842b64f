package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro
// de una transacción.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	GetForUpdate(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateStock(id string, currentStock int64) error
	UpdateCosting(id string, cost, purchasePrice decimal.Decimal) error
	ListActive() ([]*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Deactivate(id string) error
}
