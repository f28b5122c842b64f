package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// AdjustStockUseCase registra ajustes manuales de inventario de forma
// transaccional: bloquea la fila del artículo (SELECT FOR UPDATE), calcula el
// delta contra el stock proyectado, asienta un movimiento `adjustment` con ese
// delta firmado y actualiza el cache en la misma transacción.
type AdjustStockUseCase struct {
	txRunner TxRunner
	policy   *authz.Policy
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, policy *authz.Policy) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, policy: policy}
}

// AdjustStock fija el stock del artículo en in.NewStock.
// Retorna domain.ErrNoChange si el delta es cero; el movimiento resultante
// lleva reference_type=manual y las notas son obligatorias (auditoría).
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, actor authz.Actor, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpAdjustStock) {
		return nil, domain.ErrForbidden
	}
	if in.ItemID == "" || in.NewStock < 0 || in.Notes == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.AdjustStockResponse

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		// Bloquea la fila del artículo para que el delta se calcule contra un
		// stock que nadie más puede mover hasta el commit.
		item, err := itemRepo.GetForUpdate(in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		delta := in.NewStock - item.CurrentStock
		if delta == 0 {
			return domain.ErrNoChange
		}

		mov := &entity.StockMovement{
			ID:            uuid.New().String(),
			ItemID:        item.ID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      delta,
			UnitCost:      item.Cost,
			ReferenceType: entity.ReferenceManual,
			Notes:         in.Notes,
			MovementDate:  now,
			CreatedBy:     actor.ID,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(item.ID, in.NewStock); err != nil {
			return err
		}

		resp = &dto.AdjustStockResponse{
			OldStock: item.CurrentStock,
			NewStock: in.NewStock,
			Delta:    delta,
			Movement: toMovementResponse(mov),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		Seq:           m.Seq,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		MovementDate:  m.MovementDate,
		CreatedBy:     m.CreatedBy,
	}
}
