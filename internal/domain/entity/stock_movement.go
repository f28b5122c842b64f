package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste manual
)

// Tipos de referencia: qué originó el movimiento.
const (
	ReferenceSale     = "sale"
	ReferencePurchase = "purchase"
	ReferenceManual   = "manual"
)

// StockMovement es una entrada del ledger de inventario: inmutable una vez
// escrita. Las correcciones se asientan como movimientos compensatorios, nunca
// como updates. Seq es la clave de orden explícita del ledger (BIGSERIAL);
// el orden canónico es (MovementDate, Seq) ascendente.
type StockMovement struct {
	ID            string // uuid
	Seq           int64  // asignado por la DB al insertar; monotónico
	ItemID        string
	Type          string          // in, out, adjustment
	Quantity      int64           // con signo: entradas positivas, salidas negativas
	UnitCost      decimal.Decimal // costo unitario al momento del movimiento (valoración)
	ReferenceType string          // sale, purchase, manual
	ReferenceID   string          // id de la venta/compra; vacío para manual
	Notes         string
	MovementDate  time.Time
	CreatedBy     string // UserID del actor, para auditoría
}
