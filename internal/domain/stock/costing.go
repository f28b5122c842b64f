// Package stock contiene la lógica de dominio de proyección de inventario:
// política de estado por umbrales y costeo promedio ponderado.
package stock

import "github.com/shopspring/decimal"

// AverageCost implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el stock resultante es <= 0, el nuevo costo es el costo de la entrada.
func AverageCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	if currentQty <= 0 {
		return inCost
	}
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := cur.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return currentCost
	}
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(sum)
}
