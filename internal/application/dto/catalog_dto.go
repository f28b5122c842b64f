package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest alta o edición de un artículo del catálogo.
type ItemRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Unit          string          `json:"unit"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      *int64          `json:"max_stock,omitempty"`
}

// ItemResponse artículo persistido.
type ItemResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Cost          decimal.Decimal `json:"cost"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      *int64          `json:"max_stock,omitempty"`
	CurrentStock  int64           `json:"current_stock"`
	StockStatus   string          `json:"stock_status"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PartyRequest alta o edición de cliente o proveedor.
type PartyRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	TaxID         string `json:"tax_id"`
}

// PartyResponse cliente o proveedor persistido.
type PartyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Address       string    `json:"address,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	TaxID         string    `json:"tax_id,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// CategoryRequest alta de categoría.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse categoría persistida.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseRequest alta de gasto.
type ExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"` // YYYY-MM-DD; vacío = hoy
	Category    string          `json:"category"`
	Notes       string          `json:"notes"`
}

// ExpenseResponse gasto persistido.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
