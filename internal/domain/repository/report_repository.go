package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderTotals totales agregados de órdenes completadas en un rango.
type OrderTotals struct {
	Count          int64
	TotalAmount    decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
}

// PartyBreakdownRow desglose por cliente o proveedor.
type PartyBreakdownRow struct {
	PartyID     string
	PartyName   string
	Count       int64
	TotalAmount decimal.Decimal
	NetAmount   decimal.Decimal
}

// DailyBreakdownRow desglose por día.
type DailyBreakdownRow struct {
	Day         time.Time
	Count       int64
	TotalAmount decimal.Decimal
	NetAmount   decimal.Decimal
}

// TopItemRow artículo del ranking de ventas.
type TopItemRow struct {
	ItemID       string
	ItemCode     string
	ItemName     string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes. Nunca muta estado;
// todo debe ser derivable del ledger y de las órdenes, de modo que los
// reportes sean siempre recomputables.
type ReportRepository interface {
	SalesTotals(ctx context.Context, from, to time.Time) (*OrderTotals, error)
	SalesByCustomer(ctx context.Context, from, to time.Time) ([]PartyBreakdownRow, error)
	SalesByDay(ctx context.Context, from, to time.Time) ([]DailyBreakdownRow, error)
	PurchasesTotals(ctx context.Context, from, to time.Time) (*OrderTotals, error)
	PurchasesBySupplier(ctx context.Context, from, to time.Time) ([]PartyBreakdownRow, error)
	// RevenueAndCOGS devuelve el ingreso por líneas de venta completadas y el
	// costo de la mercancía vendida, costeado al unit_cost estampado en los
	// movimientos `out` que referencian esas ventas.
	RevenueAndCOGS(ctx context.Context, from, to time.Time) (revenue, cogs decimal.Decimal, err error)
	TopItems(ctx context.Context, from, to time.Time, limit int) ([]TopItemRow, error)
}
