package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/application/sales"
)

// PurchaseHandler maneja las peticiones HTTP de órdenes de compra (protegido).
type PurchaseHandler struct {
	create  *sales.CreatePurchaseUseCase
	cancel  *sales.CancelOrderUseCase
	queries *sales.OrderQueryUseCase
	pdf     *sales.InvoicePDFUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(
	create *sales.CreatePurchaseUseCase,
	cancel *sales.CancelOrderUseCase,
	queries *sales.OrderQueryUseCase,
	pdf *sales.InvoicePDFUseCase,
) *PurchaseHandler {
	return &PurchaseHandler{create: create, cancel: cancel, queries: queries, pdf: pdf}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  Asienta los movimientos de entrada, suma stock y recalcula el
//
//	costo promedio ponderado de cada artículo, todo en una transacción.
//
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier_id, items; unit_price obligatorio (fija la base de costeo)"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse  "inventario ocupado, reintente"
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.create.Execute(c.Context(), actorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetByID godoc
// @Summary      Obtener compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	purchase, err := h.queries.GetPurchase(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(purchase)
}

// List godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        limit   query  int     false  "máx resultados (default 50)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	purchases, err := h.queries.ListPurchases(from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(purchases), "purchases": purchases})
}

// Cancel godoc
// @Summary      Anular compra
// @Description  Asienta movimientos compensatorios que retiran las unidades
//
//	recibidas; si ya se vendieron, el stock puede quedar negativo y
//	visible como faltante en el reporte de stock.
//
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya cancelada"
// @Router       /api/purchases/{id}/cancel [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	if err := h.cancel.CancelPurchase(c.Context(), actorFromCtx(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "compra anulada"})
}

// PDF godoc
// @Summary      Descargar factura de compra en PDF
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
func (h *PurchaseHandler) PDF(c *fiber.Ctx) error {
	data, err := h.pdf.PurchasePDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="factura.pdf"`)
	return c.Send(data)
}
