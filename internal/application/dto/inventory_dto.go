package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest request para un ajuste manual de inventario.
// NewStock es el valor absoluto deseado; el motor calcula el delta.
type AdjustStockRequest struct {
	ItemID   string `json:"item_id"`
	NewStock int64  `json:"new_stock"`
	Notes    string `json:"notes"`
}

// MovementResponse una entrada del ledger de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	Seq           int64           `json:"seq"`
	ItemID        string          `json:"item_id"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReferenceType string          `json:"reference_type"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	MovementDate  time.Time       `json:"movement_date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// AdjustStockResponse resultado de un ajuste manual.
type AdjustStockResponse struct {
	OldStock int64            `json:"old_stock"`
	NewStock int64            `json:"new_stock"`
	Delta    int64            `json:"delta"`
	Movement MovementResponse `json:"movement"`
}

// RebuildStockResponse resultado del replay completo del ledger de un artículo.
type RebuildStockResponse struct {
	ItemID        string `json:"item_id"`
	CachedStock   int64  `json:"cached_stock"`   // valor previo del cache
	RebuiltStock  int64  `json:"rebuilt_stock"`  // suma de cantidades del ledger
	WasConsistent bool   `json:"was_consistent"` // true si cache == replay
}

// ItemStockDTO estado proyectado de un artículo.
type ItemStockDTO struct {
	ItemID       string          `json:"item_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	CurrentStock int64           `json:"current_stock"`
	StockValue   decimal.Decimal `json:"stock_value"`
	StockStatus  string          `json:"stock_status"`
	MinStock     int64           `json:"min_stock"`
	MaxStock     *int64          `json:"max_stock,omitempty"`
}

// ReorderSuggestionDTO sugerencia de reposición para artículos bajo el mínimo.
type ReorderSuggestionDTO struct {
	ItemID            string          `json:"item_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CurrentStock      int64           `json:"current_stock"`
	MinStock          int64           `json:"min_stock"`
	MaxStock          *int64          `json:"max_stock,omitempty"`
	SuggestedQuantity int64           `json:"suggested_quantity"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
