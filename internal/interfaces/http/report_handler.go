package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// reportRange interpreta from/to; sin parámetros reporta los últimos 30 días.
func reportRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return from, to, err
		}
		to = t.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

// Sales godoc
// @Summary      Reporte de ventas del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.SalesSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	report, err := h.uc.SalesSummary(c.Context(), actorFromCtx(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Purchases godoc
// @Summary      Reporte de compras del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.PurchasesSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) Purchases(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	report, err := h.uc.PurchasesSummary(c.Context(), actorFromCtx(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ProfitLoss godoc
// @Summary      Pérdidas y ganancias del período
// @Description  COGS costeado al unit_cost estampado en los movimientos de
//
//	salida; utilidad neta descuenta los gastos del período.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.ProfitLossDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/profit-loss [get]
func (h *ReportHandler) ProfitLoss(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	report, err := h.uc.ProfitLoss(c.Context(), actorFromCtx(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// TopItems godoc
// @Summary      Artículos más vendidos del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        to     query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        limit  query  int     false  "tamaño del ranking (default 10)"
// @Success      200  {array}  dto.TopItemDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/top-items [get]
func (h *ReportHandler) TopItems(c *fiber.Ctx) error {
	from, to, err := reportRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	items, err := h.uc.TopItems(c.Context(), actorFromCtx(c), from, to, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Stock godoc
// @Summary      Reporte de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	report, err := h.uc.StockReport(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// LowStock godoc
// @Summary      Artículos en alerta de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemStockDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// Valuation godoc
// @Summary      Valoración del inventario al costo promedio
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/valuation [get]
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	report, err := h.uc.Valuation(actorFromCtx(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Movements godoc
// @Summary      Totales del ledger por tipo de movimiento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.MovementTypeSummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	summary, err := h.uc.MovementSummary(actorFromCtx(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
