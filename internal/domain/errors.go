package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNoChange           = errors.New("la operación no produce ningún cambio")
	ErrLockTimeout        = errors.New("tiempo de espera de bloqueo agotado, reintentar la operación")
)

// StockShortage detalla un rechazo por stock insuficiente: qué artículo,
// cuánto se pidió y cuánto hay. Se desenvuelve a ErrInsufficientStock.
type StockShortage struct {
	ItemID    string
	ItemCode  string
	Requested int64
	Available int64
}

func (e *StockShortage) Error() string {
	return fmt.Sprintf("stock insuficiente para el artículo %s: solicitado %d, disponible %d",
		e.ItemCode, e.Requested, e.Available)
}

func (e *StockShortage) Unwrap() error { return ErrInsufficientStock }
