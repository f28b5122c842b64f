package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// CancelOrderUseCase anula órdenes de venta y compra. El ledger es
// append-only: la anulación no borra movimientos, asienta uno compensatorio
// con signo invertido por cada movimiento original de la orden, de modo que
// el efecto neto de la orden sobre el ledger queda en cero.
//
// Anular una compra puede dejar el stock cacheado en negativo si las
// unidades recibidas ya se vendieron; se permite, el faltante queda visible
// en el reporte de stock. El costo promedio no se recalcula al anular.
type CancelOrderUseCase struct {
	txRunner TxRunner
	policy   *authz.Policy
}

// NewCancelOrderUseCase construye el caso de uso.
func NewCancelOrderUseCase(txRunner TxRunner, policy *authz.Policy) *CancelOrderUseCase {
	return &CancelOrderUseCase{txRunner: txRunner, policy: policy}
}

// CancelSale anula la venta: asienta movimientos `in` compensatorios,
// devuelve el stock y transiciona la orden a cancelled.
// Retorna domain.ErrConflict si la orden ya está cancelada.
func (uc *CancelOrderUseCase) CancelSale(ctx context.Context, actor authz.Actor, saleID string) error {
	if !uc.policy.Allows(actor.Role, authz.OpCancelOrder) {
		return domain.ErrForbidden
	}
	if saleID == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.RunSales(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, _, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}

		if err := uc.compensate(movRepo, itemRepo, entity.ReferenceSale, sale.ID, sale.InvoiceNumber, actor.ID); err != nil {
			return err
		}
		return saleRepo.UpdateStatus(sale.ID, entity.OrderStatusCancelled)
	})
}

// CancelPurchase anula la compra: asienta movimientos `out` compensatorios
// y transiciona la orden a cancelled.
func (uc *CancelOrderUseCase) CancelPurchase(ctx context.Context, actor authz.Actor, purchaseID string) error {
	if !uc.policy.Allows(actor.Role, authz.OpCancelOrder) {
		return domain.ErrForbidden
	}
	if purchaseID == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.RunPurchases(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		purchase, _, err := purchaseRepo.GetByID(purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return domain.ErrNotFound
		}
		if purchase.Status == entity.OrderStatusCancelled {
			return domain.ErrConflict
		}

		if err := uc.compensate(movRepo, itemRepo, entity.ReferencePurchase, purchase.ID, purchase.InvoiceNumber, actor.ID); err != nil {
			return err
		}
		return purchaseRepo.UpdateStatus(purchase.ID, entity.OrderStatusCancelled)
	})
}

// compensate asienta el espejo de cada movimiento original de la orden y
// actualiza el stock cacheado de los artículos afectados.
func (uc *CancelOrderUseCase) compensate(
	movRepo repository.MovementRepository,
	itemRepo repository.ItemRepository,
	referenceType, referenceID, invoiceNumber, actorID string,
) error {
	originals, err := movRepo.ListByReference(referenceType, referenceID)
	if err != nil {
		return err
	}

	// Delta neto por artículo: los compensatorios invierten el signo de los
	// originales. Una orden pending sin movimientos compensa en vacío.
	deltas := make(map[string]int64)
	for _, m := range originals {
		deltas[m.ItemID] -= m.Quantity
	}
	locked, err := lockItems(itemRepo, deltas)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, m := range originals {
		comp := &entity.StockMovement{
			ID:            uuid.New().String(),
			ItemID:        m.ItemID,
			Type:          flipMovementType(m.Type),
			Quantity:      -m.Quantity,
			UnitCost:      m.UnitCost,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Notes:         fmt.Sprintf("anulación de %s (compensa seq %d)", invoiceNumber, m.Seq),
			MovementDate:  now,
			CreatedBy:     actorID,
		}
		if err := movRepo.Create(comp); err != nil {
			return err
		}
	}
	for id, delta := range deltas {
		if err := itemRepo.UpdateStock(id, locked[id].CurrentStock+delta); err != nil {
			return err
		}
	}
	return nil
}

func flipMovementType(movementType string) string {
	switch movementType {
	case entity.MovementTypeIn:
		return entity.MovementTypeOut
	case entity.MovementTypeOut:
		return entity.MovementTypeIn
	default:
		return entity.MovementTypeAdjustment
	}
}
