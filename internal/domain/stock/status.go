package stock

// Estados de stock derivados de los umbrales del artículo.
const (
	StatusNormal     = "normal"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
	StatusOverstock  = "overstock"
)

// StatusFor evalúa la política de estado:
// out_of_stock cuando current <= 0; low_stock cuando 0 < current <= min;
// overstock cuando max está definido y current >= max; normal en otro caso.
func StatusFor(current, min int64, max *int64) string {
	switch {
	case current <= 0:
		return StatusOutOfStock
	case current <= min:
		return StatusLowStock
	case max != nil && current >= *max:
		return StatusOverstock
	default:
		return StatusNormal
	}
}

// IsAlert indica si el estado debe aparecer en el reporte de stock bajo.
func IsAlert(status string) bool {
	return status == StatusLowStock || status == StatusOutOfStock
}
