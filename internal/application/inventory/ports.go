package inventory

import (
	"context"

	"github.com/tu-usuario/ventaspro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: validar + asentar en el ledger + proyectar es todo o nada.
// Un timeout de bloqueo dentro de fn se traduce a domain.ErrLockTimeout.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
