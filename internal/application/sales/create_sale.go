package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// CreateSaleUseCase crea órdenes de venta de forma transaccional: valida el
// catálogo fuera de la transacción, bloquea las filas de los artículos en
// orden ascendente de id (evita deadlocks entre ventas concurrentes),
// verifica disponibilidad, asienta un movimiento `out` por línea y actualiza
// el stock proyectado. O todo o nada: un faltante en cualquier línea aborta
// la orden completa sin asentar nada.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	itemRepo     repository.ItemRepository
	policy       *authz.Policy
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	policy *authz.Policy,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		policy:       policy,
	}
}

// Execute crea la venta y retorna la factura persistida (status=completed).
// Si algún artículo no tiene stock suficiente retorna *domain.StockShortage
// (envuelve domain.ErrInsufficientStock) identificando el artículo faltante.
func (uc *CreateSaleUseCase) Execute(ctx context.Context, actor authz.Actor, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpCreateSale) {
		return nil, domain.ErrForbidden
	}
	if req.CustomerID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.DiscountAmount.IsNegative() || req.TaxAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	saleDate, err := parseOrderDate(req.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Validación de catálogo fuera de la transacción: cliente y artículos
	// existen y están activos. El precio en cero toma el precio de venta.
	customer, err := uc.customerRepo.GetByID(req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.Active {
		return nil, domain.ErrNotFound
	}

	lines := make([]*entity.SaleItem, 0, len(req.Items))
	names := make(map[string]string, len(req.Items))
	for _, line := range req.Items {
		if line.ItemID == "" || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		price := line.UnitPrice
		if price.IsZero() {
			price = item.SellingPrice
		}
		qty := decimal.NewFromInt(line.Quantity)
		lines = append(lines, &entity.SaleItem{
			ID:         uuid.New().String(),
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  price,
			TotalPrice: price.Mul(qty),
		})
		names[item.ID] = item.Name
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.TotalPrice)
	}
	net := total.Sub(req.DiscountAmount).Add(req.TaxAmount)

	now := time.Now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		CustomerID:     req.CustomerID,
		Date:           saleDate,
		TotalAmount:    total,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		NetAmount:      net,
		Status:         entity.OrderStatusCompleted,
		Notes:          req.Notes,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
	}
	for _, l := range lines {
		l.SaleID = sale.ID
	}

	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Cantidad total requerida por artículo (una orden puede repetir el
		// mismo artículo en varias líneas).
		needed := make(map[string]int64)
		for _, l := range lines {
			needed[l.ItemID] += l.Quantity
		}

		locked, err := lockItems(itemRepo, needed)
		if err != nil {
			return err
		}
		for _, id := range sortedItemIDs(needed) {
			item := locked[id]
			if item.CurrentStock < needed[id] {
				return &domain.StockShortage{
					ItemID:    item.ID,
					ItemCode:  item.Code,
					Requested: needed[id],
					Available: item.CurrentStock,
				}
			}
		}

		// Un movimiento `out` por línea, costeado al costo promedio vigente:
		// ese costo congelado es la base del COGS en reportes.
		for _, l := range lines {
			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				ItemID:        l.ItemID,
				Type:          entity.MovementTypeOut,
				Quantity:      -l.Quantity,
				UnitCost:      locked[l.ItemID].Cost,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   sale.ID,
				MovementDate:  now,
				CreatedBy:     actor.ID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		for id, qty := range needed {
			if err := itemRepo.UpdateStock(id, locked[id].CurrentStock-qty); err != nil {
				return err
			}
		}

		invoiceNumber, err := saleRepo.NextInvoiceNumber()
		if err != nil {
			return err
		}
		sale.InvoiceNumber = invoiceNumber
		return saleRepo.Create(sale, lines)
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, lines, names), nil
}

// lockItems bloquea las filas de los artículos en orden ascendente de id.
// El orden total de adquisición de locks evita deadlocks cuando dos órdenes
// concurrentes comparten artículos.
func lockItems(itemRepo repository.ItemRepository, needed map[string]int64) (map[string]*entity.Item, error) {
	locked := make(map[string]*entity.Item, len(needed))
	for _, id := range sortedItemIDs(needed) {
		item, err := itemRepo.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		locked[id] = item
	}
	return locked, nil
}

func sortedItemIDs(needed map[string]int64) []string {
	ids := make([]string, 0, len(needed))
	for id := range needed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// parseOrderDate interpreta YYYY-MM-DD; vacío es la fecha actual.
func parseOrderDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleItem, names map[string]string) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             sale.ID,
		InvoiceNumber:  sale.InvoiceNumber,
		CustomerID:     sale.CustomerID,
		Date:           sale.Date,
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		TaxAmount:      sale.TaxAmount,
		NetAmount:      sale.NetAmount,
		Status:         sale.Status,
		Notes:          sale.Notes,
		CreatedAt:      sale.CreatedAt,
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.OrderLineResponse{
			ID:         l.ID,
			ItemID:     l.ItemID,
			ItemName:   names[l.ItemID],
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: l.TotalPrice,
		})
	}
	return resp
}
