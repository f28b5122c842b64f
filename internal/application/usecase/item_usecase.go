package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/entity"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
	"github.com/tu-usuario/ventaspro/internal/domain/stock"
)

// ItemUseCase CRUD del catálogo de artículos. El stock y el costo promedio
// nunca se editan por aquí: el stock solo lo mueven el motor de órdenes y los
// ajustes; el costo solo lo mueven las compras.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	policy   *authz.Policy
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, policy *authz.Policy) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, policy: policy}
}

// Create da de alta un artículo. El código es único; retorna
// domain.ErrDuplicate si ya existe.
func (uc *ItemUseCase) Create(actor authz.Actor, req dto.ItemRequest) (*dto.ItemResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	existing, err := uc.itemRepo.GetByCode(req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Unit:          req.Unit,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Cost:          req.PurchasePrice, // base de costeo hasta la primera compra
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID retorna el artículo.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update edita los datos de catálogo del artículo (no stock, no costo).
func (uc *ItemUseCase) Update(actor authz.Actor, id string, req dto.ItemRequest) (*dto.ItemResponse, error) {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return nil, domain.ErrForbidden
	}
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateItemRequest(req); err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if req.Code != item.Code {
		other, err := uc.itemRepo.GetByCode(req.Code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, domain.ErrDuplicate
		}
	}

	item.Code = strings.TrimSpace(req.Code)
	item.Name = strings.TrimSpace(req.Name)
	item.Description = req.Description
	item.Unit = req.Unit
	item.CategoryID = req.CategoryID
	item.PurchasePrice = req.PurchasePrice
	item.SellingPrice = req.SellingPrice
	item.MinStock = req.MinStock
	item.MaxStock = req.MaxStock
	item.UpdatedAt = time.Now()

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista artículos paginados.
func (uc *ItemUseCase) List(limit, offset int) ([]dto.ItemResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

// Deactivate baja lógica: el artículo deja de ser vendible/comprable pero su
// historial en el ledger queda intacto.
func (uc *ItemUseCase) Deactivate(actor authz.Actor, id string) error {
	if !uc.policy.Allows(actor.Role, authz.OpManageCatalog) {
		return domain.ErrForbidden
	}
	if id == "" {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(id)
}

func validateItemRequest(req dto.ItemRequest) error {
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Name) == "" {
		return domain.ErrInvalidInput
	}
	if req.PurchasePrice.IsNegative() || req.SellingPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if req.MinStock < 0 {
		return domain.ErrInvalidInput
	}
	if req.MaxStock != nil && *req.MaxStock < req.MinStock {
		return domain.ErrInvalidInput
	}
	return nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            item.ID,
		Code:          item.Code,
		Name:          item.Name,
		Description:   item.Description,
		Unit:          item.Unit,
		CategoryID:    item.CategoryID,
		PurchasePrice: item.PurchasePrice,
		SellingPrice:  item.SellingPrice,
		Cost:          item.Cost,
		MinStock:      item.MinStock,
		MaxStock:      item.MaxStock,
		CurrentStock:  item.CurrentStock,
		StockStatus:   stock.StatusFor(item.CurrentStock, item.MinStock, item.MaxStock),
		Active:        item.Active,
		CreatedAt:     item.CreatedAt,
	}
}
