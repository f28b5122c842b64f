package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo (SKU, stock único).
// CurrentStock es un cache derivado del ledger de movimientos: siempre debe
// coincidir con la suma de cantidades firmadas y puede reconstruirse por replay.
// Cost es el costo promedio ponderado; PurchasePrice es el último precio de compra.
type Item struct {
	ID            string
	Code          string // código único
	Name          string
	Description   string
	Unit          string // pieza, kilo, metro, etc.
	CategoryID    string
	PurchasePrice decimal.Decimal // último precio de compra registrado
	SellingPrice  decimal.Decimal
	Cost          decimal.Decimal // costo promedio ponderado (base de valoración y COGS)
	MinStock      int64
	MaxStock      *int64 // opcional; nil = sin tope
	CurrentStock  int64  // derivado, cacheado
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// StockValue devuelve la valoración del stock actual al costo promedio.
func (i *Item) StockValue() decimal.Decimal {
	return i.Cost.Mul(decimal.NewFromInt(i.CurrentStock))
}
