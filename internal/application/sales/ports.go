package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción de BD con los
// repositorios del motor de órdenes atados a esa tx. La persistencia de la
// orden, el asiento en el ledger y la proyección de stock son una sola unidad
// atómica; un timeout de bloqueo se traduce a domain.ErrLockTimeout.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error) error

	RunPurchases(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// InvoiceLineForPDF línea lista para renderizar.
type InvoiceLineForPDF struct {
	ItemName   string
	Quantity   int64
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// InvoiceDocument documento imprimible de una orden (venta o compra).
type InvoiceDocument struct {
	Title         string // "Factura de Venta" / "Factura de Compra"
	InvoiceNumber string
	Date          time.Time
	PartyLabel    string // "Cliente" / "Proveedor"
	PartyName     string
	PartyTaxID    string
	Lines         []InvoiceLineForPDF
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Notes         string
}

// InvoicePDFGenerator renderiza el documento a PDF.
type InvoicePDFGenerator interface {
	Render(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
