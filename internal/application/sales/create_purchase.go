package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
	"github.com/tu-usuario/ventaspro/internal/domain/stock"
)

// CreatePurchaseUseCase crea órdenes de compra de forma transaccional:
// asienta un movimiento `in` por línea al costo de compra y recalcula el
// costo promedio ponderado del artículo en la misma transacción.
type CreatePurchaseUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	policy       *authz.Policy
}

// NewCreatePurchaseUseCase construye el caso de uso.
func NewCreatePurchaseUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	policy *authz.Policy,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		policy:       policy,
	}
}

// Execute crea la compra y retorna la factura persistida (status=completed).
// El precio unitario de cada línea es obligatorio: fija la nueva base del
// costo promedio y el precio de compra del artículo.
func (uc *CreatePurchaseUseCase) Execute(ctx context.Context, actor authz.Actor, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpCreatePurchase) {
		return nil, domain.ErrForbidden
	}
	if req.SupplierID == "" || len(req.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if req.DiscountAmount.IsNegative() || req.TaxAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	purchaseDate, err := parseOrderDate(req.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	supplier, err := uc.supplierRepo.GetByID(req.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.Active {
		return nil, domain.ErrNotFound
	}

	lines := make([]*entity.PurchaseItem, 0, len(req.Items))
	names := make(map[string]string, len(req.Items))
	for _, line := range req.Items {
		if line.ItemID == "" || line.Quantity <= 0 || !line.UnitPrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || !item.Active {
			return nil, domain.ErrNotFound
		}
		qty := decimal.NewFromInt(line.Quantity)
		lines = append(lines, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.UnitPrice.Mul(qty),
		})
		names[item.ID] = item.Name
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.TotalPrice)
	}
	net := total.Sub(req.DiscountAmount).Add(req.TaxAmount)

	now := time.Now()
	purchase := &entity.Purchase{
		ID:             uuid.New().String(),
		SupplierID:     req.SupplierID,
		Date:           purchaseDate,
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
		l.PurchaseID = purchase.ID
	}

	err = uc.txRunner.RunPurchases(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		needed := make(map[string]int64)
		for _, l := range lines {
			needed[l.ItemID] += l.Quantity
		}
		locked, err := lockItems(itemRepo, needed)
		if err != nil {
			return err
		}

		// Costo promedio ponderado calculado línea a línea sobre el estado
		// bloqueado: cada entrada mueve la base antes de la siguiente.
		runningStock := make(map[string]int64, len(locked))
		runningCost := make(map[string]decimal.Decimal, len(locked))
		lastPrice := make(map[string]decimal.Decimal, len(locked))
		for id, item := range locked {
			runningStock[id] = item.CurrentStock
			runningCost[id] = item.Cost
		}

		for _, l := range lines {
			mov := &entity.StockMovement{
				ID:            uuid.New().String(),
				ItemID:        l.ItemID,
				Type:          entity.MovementTypeIn,
				Quantity:      l.Quantity,
				UnitCost:      l.UnitPrice,
				ReferenceType: entity.ReferencePurchase,
				ReferenceID:   purchase.ID,
				MovementDate:  now,
				CreatedBy:     actor.ID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
			runningCost[l.ItemID] = stock.AverageCost(
				runningStock[l.ItemID], runningCost[l.ItemID],
				l.Quantity, l.UnitPrice,
			)
			runningStock[l.ItemID] += l.Quantity
			lastPrice[l.ItemID] = l.UnitPrice
		}

		for id := range needed {
			if err := itemRepo.UpdateStock(id, runningStock[id]); err != nil {
				return err
			}
			if err := itemRepo.UpdateCosting(id, runningCost[id], lastPrice[id]); err != nil {
				return err
			}
		}

		invoiceNumber, err := purchaseRepo.NextInvoiceNumber()
		if err != nil {
			return err
		}
		purchase.InvoiceNumber = invoiceNumber
		return purchaseRepo.Create(purchase, lines)
	})
	if err != nil {
		return nil, err
	}

	return toPurchaseResponse(purchase, lines, names), nil
}

func toPurchaseResponse(purchase *entity.Purchase, lines []*entity.PurchaseItem, names map[string]string) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:             purchase.ID,
		InvoiceNumber:  purchase.InvoiceNumber,
		SupplierID:     purchase.SupplierID,
		Date:           purchase.Date,
		TotalAmount:    purchase.TotalAmount,
		DiscountAmount: purchase.DiscountAmount,
		TaxAmount:      purchase.TaxAmount,
		NetAmount:      purchase.NetAmount,
		Status:         purchase.Status,
		Notes:          purchase.Notes,
		CreatedAt:      purchase.CreatedAt,
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
