package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/application/inventory"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP del ledger y el stock proyectado (protegido).
type InventoryHandler struct {
	adjust    *inventory.AdjustStockUseCase
	projector *inventory.StockProjector
	reorder   *inventory.ReorderUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjust *inventory.AdjustStockUseCase,
	projector *inventory.StockProjector,
	reorder *inventory.ReorderUseCase,
) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, projector: projector, reorder: reorder}
}

// AdjustStock godoc
// @Summary      Ajuste manual de inventario
// @Description  Fija el stock del artículo en new_stock; el motor calcula el
//
//	delta y asienta un movimiento de ajuste. Las notas son
//	obligatorias para auditoría.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "item_id, new_stock >= 0, notes"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse  "datos inválidos o sin cambio"
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.adjust.AdjustStock(c.Context(), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Rebuild godoc
// @Summary      Reconstruir stock por replay del ledger
// @Description  Suma todas las cantidades firmadas del artículo y reescribe el
//
//	cache si divergió. Reporta si el cache era consistente.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.RebuildStockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/rebuild [post]
func (h *InventoryHandler) Rebuild(c *fiber.Ctx) error {
	resp, err := h.projector.Rebuild(c.Context(), actorFromCtx(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// ListMovements godoc
// @Summary      Listar movimientos del ledger
// @Description  Orden canónico (movement_date, seq) ascendente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "filtrar por artículo"
// @Param        type     query  string  false  "in | out | adjustment"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        limit    query  int     false  "máx resultados (default 50, tope 200)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	movements, err := h.projector.ListMovements(repository.MovementFilter{
		ItemID: c.Query("item_id"),
		Type:   c.Query("type"),
		From:   from,
		To:     to,
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(movements), "movements": movements})
}

// Reorder godoc
// @Summary      Sugerencias de reposición
// @Description  Artículos en alerta (agotados o bajo el mínimo) con cantidad
//
//	sugerida y costo estimado al último precio de compra.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReorderSuggestionDTO
// @Router       /api/inventory/reorder-suggestions [get]
func (h *InventoryHandler) Reorder(c *fiber.Ctx) error {
	suggestions, err := h.reorder.Suggestions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(suggestions), "suggestions": suggestions})
}
