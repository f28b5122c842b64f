package sales

import (
	"context"

	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// InvoicePDFUseCase arma el documento imprimible de una orden y delega el
// renderizado al generador PDF de infraestructura.
type InvoicePDFUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	generator    InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		generator:    generator,
	}
}

// SalePDF genera el PDF de la factura de venta.
func (uc *InvoicePDFUseCase) SalePDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, lines, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil {
		return nil, err
	}

	doc := &InvoiceDocument{
		Title:         "Factura de Venta",
		InvoiceNumber: sale.InvoiceNumber,
		Date:          sale.Date,
		PartyLabel:    "Cliente",
		Subtotal:      sale.TotalAmount,
		Discount:      sale.DiscountAmount,
		Tax:           sale.TaxAmount,
		Total:         sale.NetAmount,
		Notes:         sale.Notes,
	}
	if customer != nil {
		doc.PartyName = customer.Name
		doc.PartyTaxID = customer.TaxID
	}
	for _, l := range lines {
		name, err := uc.itemName(l.ItemID)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, InvoiceLineForPDF{
			ItemName:   name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return uc.generator.Render(ctx, doc)
}

// PurchasePDF genera el PDF de la factura de compra.
func (uc *InvoicePDFUseCase) PurchasePDF(ctx context.Context, purchaseID string) ([]byte, error) {
	purchase, lines, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(purchase.SupplierID)
	if err != nil {
		return nil, err
	}

	doc := &InvoiceDocument{
		Title:         "Factura de Compra",
		InvoiceNumber: purchase.InvoiceNumber,
		Date:          purchase.Date,
		PartyLabel:    "Proveedor",
		Subtotal:      purchase.TotalAmount,
		Discount:      purchase.DiscountAmount,
		Tax:           purchase.TaxAmount,
		Total:         purchase.NetAmount,
		Notes:         purchase.Notes,
	}
	if supplier != nil {
		doc.PartyName = supplier.Name
		doc.PartyTaxID = supplier.TaxID
	}
	for _, l := range lines {
		name, err := uc.itemName(l.ItemID)
		if err != nil {
			return nil, err
		}
		doc.Lines = append(doc.Lines, InvoiceLineForPDF{
			ItemName:   name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return uc.generator.Render(ctx, doc)
}

func (uc *InvoicePDFUseCase) itemName(itemID string) (string, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return itemID, nil
	}
	return item.Name, nil
}
