package repository

import (
	"time"

	"github.com/tu-usuario/ventaspro/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para órdenes de venta.
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, []*entity.SaleItem, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(id, status string) error
	// NextInvoiceNumber reserva el siguiente consecutivo de factura de venta (INV-000001).
	NextInvoiceNumber() (string, error)
}
