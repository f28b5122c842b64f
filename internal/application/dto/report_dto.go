package dto

import "github.com/shopspring/decimal"

// OrderTotalsDTO totales de órdenes completadas en el rango.
type OrderTotalsDTO struct {
	Count          int64           `json:"count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
}

// PartyBreakdownDTO desglose por cliente o proveedor.
type PartyBreakdownDTO struct {
	PartyID     string          `json:"party_id"`
	PartyName   string          `json:"party_name"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// DailyBreakdownDTO desglose por día.
type DailyBreakdownDTO struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

// SalesSummaryDTO reporte de ventas del período.
type SalesSummaryDTO struct {
	Summary           OrderTotalsDTO      `json:"summary"`
	CustomerBreakdown []PartyBreakdownDTO `json:"customer_breakdown"`
	DailyBreakdown    []DailyBreakdownDTO `json:"daily_breakdown"`
}

// PurchasesSummaryDTO reporte de compras del período.
type PurchasesSummaryDTO struct {
	Summary           OrderTotalsDTO      `json:"summary"`
	SupplierBreakdown []PartyBreakdownDTO `json:"supplier_breakdown"`
}

// ProfitLossDTO reporte de pérdidas y ganancias.
// GrossProfit = ingreso por líneas de venta − COGS (costeado al unit_cost de
// los movimientos `out`); NetProfit = GrossProfit − gastos del período.
type ProfitLossDTO struct {
	Revenue struct {
		TotalSales decimal.Decimal `json:"total_sales"`
		SalesCount int64           `json:"sales_count"`
	} `json:"revenue"`
	Costs struct {
		TotalPurchases  decimal.Decimal `json:"total_purchases"`
		CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
		PurchasesCount  int64           `json:"purchases_count"`
		Expenses        decimal.Decimal `json:"expenses"`
	} `json:"costs"`
	Profit struct {
		GrossProfit  decimal.Decimal `json:"gross_profit"`
		NetProfit    decimal.Decimal `json:"net_profit"`
		ProfitMargin decimal.Decimal `json:"profit_margin"` // % sobre el ingreso
	} `json:"profit"`
}

// TopItemDTO artículo del ranking de ventas.
type TopItemDTO struct {
	ItemID       string          `json:"item_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	QuantitySold int64           `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// StockSummaryDTO resumen del reporte de stock.
type StockSummaryDTO struct {
	TotalItems      int64           `json:"total_items"`
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
	OverstockCount  int64           `json:"overstock_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
}

// StockReportDTO reporte completo de stock: resumen + detalle por artículo.
type StockReportDTO struct {
	Summary StockSummaryDTO `json:"summary"`
	Items   []ItemStockDTO  `json:"items"`
}

// CategoryValuationDTO valoración agregada por categoría.
type CategoryValuationDTO struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// ValuationDTO valoración de inventario al costo promedio.
type ValuationDTO struct {
	TotalValue decimal.Decimal        `json:"total_value"`
	Categories []CategoryValuationDTO `json:"categories"`
	Items      []ItemStockDTO         `json:"items"`
}

// MovementTypeSummaryDTO totales del ledger por tipo de movimiento.
type MovementTypeSummaryDTO struct {
	Type          string `json:"type"`
	TotalQuantity int64  `json:"total_quantity"`
	MovementCount int64  `json:"movement_count"`
}
