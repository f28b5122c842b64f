package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ventaspro/internal/application/dto"
	"github.com/tu-usuario/ventaspro/internal/domain"
	"github.com/tu-usuario/ventaspro/internal/domain/authz"
	"github.com/tu-usuario/ventaspro/internal/domain/repository"
	"github.com/tu-usuario/ventaspro/internal/domain/stock"
)

// UseCase reportes de solo lectura derivados de las órdenes, el ledger de
// movimientos y los gastos. Nunca muta estado.
type UseCase struct {
	reportRepo   repository.ReportRepository
	expenseRepo  repository.ExpenseRepository
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.MovementRepository
	policy       *authz.Policy
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	reportRepo repository.ReportRepository,
	expenseRepo repository.ExpenseRepository,
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.MovementRepository,
	policy *authz.Policy,
) *UseCase {
	return &UseCase{
		reportRepo:   reportRepo,
		expenseRepo:  expenseRepo,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
		policy:       policy,
	}
}

// SalesSummary reporte de ventas del período: totales, desglose por cliente
// y desglose diario.
func (uc *UseCase) SalesSummary(ctx context.Context, actor authz.Actor, from, to time.Time) (*dto.SalesSummaryDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	totals, err := uc.reportRepo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byCustomer, err := uc.reportRepo.SalesByCustomer(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byDay, err := uc.reportRepo.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesSummaryDTO{Summary: toOrderTotalsDTO(totals)}
	for _, row := range byCustomer {
		out.CustomerBreakdown = append(out.CustomerBreakdown, dto.PartyBreakdownDTO{
			PartyID:     row.PartyID,
			PartyName:   row.PartyName,
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
			NetAmount:   row.NetAmount,
		})
	}
	for _, row := range byDay {
		out.DailyBreakdown = append(out.DailyBreakdown, dto.DailyBreakdownDTO{
			Date:        row.Day.Format("2006-01-02"),
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
			NetAmount:   row.NetAmount,
		})
	}
	return out, nil
}

// PurchasesSummary reporte de compras del período.
func (uc *UseCase) PurchasesSummary(ctx context.Context, actor authz.Actor, from, to time.Time) (*dto.PurchasesSummaryDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	totals, err := uc.reportRepo.PurchasesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	bySupplier, err := uc.reportRepo.PurchasesBySupplier(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.PurchasesSummaryDTO{Summary: toOrderTotalsDTO(totals)}
	for _, row := range bySupplier {
		out.SupplierBreakdown = append(out.SupplierBreakdown, dto.PartyBreakdownDTO{
			PartyID:     row.PartyID,
			PartyName:   row.PartyName,
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
			NetAmount:   row.NetAmount,
		})
	}
	return out, nil
}

// ProfitLoss pérdidas y ganancias del período. El COGS sale del unit_cost
// estampado en los movimientos `out`, no del precio de compra vigente, así
// que el margen es consistente aunque los costos cambien después.
func (uc *UseCase) ProfitLoss(ctx context.Context, actor authz.Actor, from, to time.Time) (*dto.ProfitLossDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	salesTotals, err := uc.reportRepo.SalesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	purchaseTotals, err := uc.reportRepo.PurchasesTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	revenue, cogs, err := uc.reportRepo.RevenueAndCOGS(ctx, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenseRepo.TotalInRange(from, to)
	if err != nil {
		return nil, err
	}

	gross := revenue.Sub(cogs)
	net := gross.Sub(expenses)

	out := &dto.ProfitLossDTO{}
	out.Revenue.TotalSales = revenue
	out.Revenue.SalesCount = salesTotals.Count
	out.Costs.TotalPurchases = purchaseTotals.NetAmount
	out.Costs.CostOfGoodsSold = cogs
	out.Costs.PurchasesCount = purchaseTotals.Count
	out.Costs.Expenses = expenses
	out.Profit.GrossProfit = gross
	out.Profit.NetProfit = net
	if revenue.IsPositive() {
		out.Profit.ProfitMargin = net.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return out, nil
}

// TopItems ranking de artículos más vendidos del período.
func (uc *UseCase) TopItems(ctx context.Context, actor authz.Actor, from, to time.Time, limit int) ([]dto.TopItemDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.reportRepo.TopItems(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopItemDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopItemDTO{
			ItemID:       row.ItemID,
			Code:         row.ItemCode,
			Name:         row.ItemName,
			QuantitySold: row.QuantitySold,
			TotalRevenue: row.Revenue,
		})
	}
	return out, nil
}

// StockReport estado de stock de todos los artículos activos con el resumen
// de alertas. Se calcula en memoria sobre el stock proyectado.
func (uc *UseCase) StockReport(actor authz.Actor) (*dto.StockReportDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return nil, err
	}

	out := &dto.StockReportDTO{Items: make([]dto.ItemStockDTO, 0, len(items))}
	for _, item := range items {
		status := stock.StatusFor(item.CurrentStock, item.MinStock, item.MaxStock)
		value := item.StockValue()
		out.Items = append(out.Items, dto.ItemStockDTO{
			ItemID:       item.ID,
			Code:         item.Code,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			StockValue:   value,
			StockStatus:  status,
			MinStock:     item.MinStock,
			MaxStock:     item.MaxStock,
		})
		out.Summary.TotalItems++
		out.Summary.TotalValue = out.Summary.TotalValue.Add(value)
		switch status {
		case stock.StatusOutOfStock:
			out.Summary.OutOfStockCount++
		case stock.StatusLowStock:
			out.Summary.LowStockCount++
		case stock.StatusOverstock:
			out.Summary.OverstockCount++
		}
	}
	return out, nil
}

// LowStock artículos en alerta (agotados o bajo el mínimo).
func (uc *UseCase) LowStock(actor authz.Actor) ([]dto.ItemStockDTO, error) {
	report, err := uc.StockReport(actor)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemStockDTO, 0)
	for _, item := range report.Items {
		if stock.IsAlert(item.StockStatus) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Valuation valoración del inventario al costo promedio, total y por
// categoría.
func (uc *UseCase) Valuation(actor authz.Actor) (*dto.ValuationDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	items, err := uc.itemRepo.ListActive()
	if err != nil {
		return nil, err
	}
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	out := &dto.ValuationDTO{Items: make([]dto.ItemStockDTO, 0, len(items))}
	byCategory := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, item := range items {
		value := item.StockValue()
		out.TotalValue = out.TotalValue.Add(value)
		out.Items = append(out.Items, dto.ItemStockDTO{
			ItemID:       item.ID,
			Code:         item.Code,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			StockValue:   value,
			StockStatus:  stock.StatusFor(item.CurrentStock, item.MinStock, item.MaxStock),
			MinStock:     item.MinStock,
			MaxStock:     item.MaxStock,
		})
		if _, ok := byCategory[item.CategoryID]; !ok {
			order = append(order, item.CategoryID)
		}
		byCategory[item.CategoryID] = byCategory[item.CategoryID].Add(value)
	}
	for _, categoryID := range order {
		name := categoryNames[categoryID]
		if name == "" {
			name = "Sin categoría"
		}
		out.Categories = append(out.Categories, dto.CategoryValuationDTO{
			CategoryID:   categoryID,
			CategoryName: name,
			TotalValue:   byCategory[categoryID],
		})
	}
	return out, nil
}

// MovementSummary totales del ledger por tipo de movimiento en un rango.
func (uc *UseCase) MovementSummary(actor authz.Actor, from, to *time.Time) ([]dto.MovementTypeSummaryDTO, error) {
	if !uc.policy.Allows(actor.Role, authz.OpViewReports) {
		return nil, domain.ErrForbidden
	}
	rows, err := uc.movementRepo.SummaryByType(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementTypeSummaryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.MovementTypeSummaryDTO{
			Type:          row.Type,
			TotalQuantity: row.TotalQuantity,
			MovementCount: row.MovementCount,
		})
	}
	return out, nil
}

func toOrderTotalsDTO(t *repository.OrderTotals) dto.OrderTotalsDTO {
	if t == nil {
		return dto.OrderTotalsDTO{}
	}
	return dto.OrderTotalsDTO{
		Count:          t.Count,
		TotalAmount:    t.TotalAmount,
		TaxAmount:      t.TaxAmount,
		DiscountAmount: t.DiscountAmount,
		NetAmount:      t.NetAmount,
	}
}
