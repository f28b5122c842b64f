package repository

import (
	"time"

	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para órdenes de compra.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase, items []*entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Purchase, error)
	UpdateStatus(id, status string) error
	// NextInvoiceNumber reserva el siguiente consecutivo de factura de compra (PUR-000001).
	NextInvoiceNumber() (string, error)
}
