package sales

import (
	"time"

	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 200
)

// OrderQueryUseCase consultas de solo lectura sobre órdenes persistidas.
type OrderQueryUseCase struct {
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	itemRepo     repository.ItemRepository
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	itemRepo repository.ItemRepository,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
	}
}

// GetSale retorna la venta con sus líneas y nombres de artículos.
func (uc *OrderQueryUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, lines, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	itemIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		itemIDs = append(itemIDs, l.ItemID)
	}
	names, err := uc.itemNames(itemIDs)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines, names), nil
}

// ListSales lista ventas por rango de fechas, paginadas.
func (uc *OrderQueryUseCase) ListSales(from, to *time.Time, limit, offset int) ([]dto.SaleResponse, error) {
	limit, offset = clampPage(limit, offset)
	orders, err := uc.saleRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(orders))
	for _, s := range orders {
		out = append(out, *toSaleResponse(s, nil, nil))
	}
	return out, nil
}

// GetPurchase retorna la compra con sus líneas y nombres de artículos.
func (uc *OrderQueryUseCase) GetPurchase(id string) (*dto.PurchaseResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	purchase, lines, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	itemIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		itemIDs = append(itemIDs, l.ItemID)
	}
	names, err := uc.itemNames(itemIDs)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines, names), nil
}

// ListPurchases lista compras por rango de fechas, paginadas.
func (uc *OrderQueryUseCase) ListPurchases(from, to *time.Time, limit, offset int) ([]dto.PurchaseResponse, error) {
	limit, offset = clampPage(limit, offset)
	orders, err := uc.purchaseRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(orders))
	for _, p := range orders {
		out = append(out, *toPurchaseResponse(p, nil, nil))
	}
	return out, nil
}

func (uc *OrderQueryUseCase) itemNames(itemIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(itemIDs))
	for _, id := range itemIDs {
		if _, ok := names[id]; ok {
			continue
		}
		item, err := uc.itemRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if item != nil {
			names[id] = item.Name
		}
	}
	return names, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultOrderLimit
	}
	if limit > maxOrderLimit {
		limit = maxOrderLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
