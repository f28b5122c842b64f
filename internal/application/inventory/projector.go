package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
	"github.com/tu-usuario/ventaspro/internal/domain/stock"
)

// StockProjector expone el estado proyectado por artículo (stock actual,
// valoración y estado) y el camino de verificación por replay.
//
// El cache items.current_stock se mantiene incrementalmente en cada commit
// del motor transaccional; Rebuild recomputa la suma completa del ledger y
// reescribe el cache si divergió.
type StockProjector struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	txRunner TxRunner
	policy   *authz.Policy
}

// NewStockProjector construye el proyector.
func NewStockProjector(itemRepo repository.ItemRepository, movRepo repository.MovementRepository, txRunner TxRunner, policy *authz.Policy) *StockProjector {
	return &StockProjector{itemRepo: itemRepo, movRepo: movRepo, txRunner: txRunner, policy: policy}
}

// CurrentStock devuelve el stock proyectado del artículo.
func (p *StockProjector) CurrentStock(itemID string) (int64, error) {
	item, err := p.itemRepo.GetByID(itemID)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, domain.ErrNotFound
	}
	return item.CurrentStock, nil
}

// StockValue devuelve la valoración del stock al costo promedio ponderado.
func (p *StockProjector) StockValue(itemID string) (decimal.Decimal, error) {
	item, err := p.itemRepo.GetByID(itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return item.StockValue(), nil
}

// Status devuelve el estado según la política de umbrales.
func (p *StockProjector) Status(itemID string) (string, error) {
	item, err := p.itemRepo.GetByID(itemID)
	if err != nil {
		return "", err
	}
	if item == nil {
		return "", domain.ErrNotFound
	}
	return stock.StatusFor(item.CurrentStock, item.MinStock, item.MaxStock), nil
}

// Rebuild reproyecta el stock del artículo por replay completo del ledger,
// dentro de una transacción con la fila bloqueada para que ningún movimiento
// concurrente se cuele entre la suma y la reescritura del cache.
func (p *StockProjector) Rebuild(ctx context.Context, actor authz.Actor, itemID string) (*dto.RebuildStockResponse, error) {
	if !p.policy.Allows(actor.Role, authz.OpRebuildStock) {
		return nil, domain.ErrForbidden
	}
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.RebuildStockResponse
	err := p.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		total, err := movRepo.SumByItem(itemID)
		if err != nil {
			return err
		}
		resp = &dto.RebuildStockResponse{
			ItemID:        itemID,
			CachedStock:   item.CurrentStock,
			RebuiltStock:  total,
			WasConsistent: item.CurrentStock == total,
		}
		if item.CurrentStock != total {
			return itemRepo.UpdateStock(itemID, total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListMovements lista el ledger con filtros opcionales, en orden
// (movement_date, seq) ascendente y paginado.
func (p *StockProjector) ListMovements(filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	movements, err := p.movRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}
