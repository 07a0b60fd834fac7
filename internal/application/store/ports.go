// Package store define el puerto transaccional compartido por los casos de uso
// del motor de inventario.
package store

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando
// repositorios atados a esa transacción. Garantiza atomicidad: o se aplican
// todas las escrituras de fn o ninguna. fn debe ser libre de efectos fuera de
// los repositorios recibidos, porque puede re-ejecutarse ante un conflicto de
// escritura; agotados los reintentos se devuelve domain.ErrStoreContention.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		transferRepo repository.TransferRepository,
		adjustmentRepo repository.AdjustmentRepository,
		saleRepo repository.SaleOrderRepository,
	) error) error
}
