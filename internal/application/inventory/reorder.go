package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
	"github.com/tu-usuario/ventaspro/internal/domain/stock"
)

// ReorderUseCase genera sugerencias de reposición: artículos activos en o por
// debajo del mínimo, con cantidad sugerida para volver al tope
// (max_stock − actual, o 2×min − actual si no hay tope).
type ReorderUseCase struct {
	itemRepo repository.ItemRepository
}

// NewReorderUseCase construye el caso de uso.
func NewReorderUseCase(itemRepo repository.ItemRepository) *ReorderUseCase {
	return &ReorderUseCase{itemRepo: itemRepo}
}

// Suggestions devuelve la lista de reposición.
func (uc *ReorderUseCase) Suggestions() ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return nil, err
	}
	var out []dto.ReorderSuggestionDTO
	for _, item := range items {
		status := stock.StatusFor(item.CurrentStock, item.MinStock, item.MaxStock)
		if !stock.IsAlert(status) {
			continue
		}
		target := item.MinStock * 2
		if item.MaxStock != nil {
			target = *item.MaxStock
		}
		suggested := target - item.CurrentStock
		if suggested <= 0 {
			continue
		}
		out = append(out, dto.ReorderSuggestionDTO{
			ItemID:            item.ID,
			Code:              item.Code,
			Name:              item.Name,
			CurrentStock:      item.CurrentStock,
			MinStock:          item.MinStock,
			MaxStock:          item.MaxStock,
			SuggestedQuantity: suggested,
			EstimatedCost:     item.PurchasePrice.Mul(decimal.NewFromInt(suggested)),
		})
	}
	return out, nil
}
