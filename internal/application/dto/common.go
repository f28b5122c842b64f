package dto

// ErrorResponse respuesta de error estándar de la API.
// Details lleva información adicional para corregir y reintentar
// (ej. artículo, cantidad solicitada y disponible en rechazos por stock).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// StockShortageDetails detalle de un rechazo por stock insuficiente.
type StockShortageDetails struct {
	ItemID    string `json:"item_id"`
	ItemCode  string `json:"item_code"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}
