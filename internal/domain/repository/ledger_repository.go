package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// LedgerEntry agrupa los lotes de un producto para el snapshot de un depósito.
type LedgerEntry struct {
	ProductID   string
	ProductName string
	Lots        []entity.Lot
}

// LedgerRepository define el puerto de persistencia del libro de lotes.
// Las variantes ForUpdate bloquean las filas leídas hasta el commit de la
// transacción en curso; solo tienen sentido dentro de TxRunner.Run.
type LedgerRepository interface {
	Get(depotID, productID string) ([]entity.Lot, error)
	GetForUpdate(depotID, productID string) ([]entity.Lot, error)
	GetLotForUpdate(depotID, productID, lote string) (*entity.Lot, error)
	// Apply persiste el resultado de una mutación: upsert de cada lote y
	// eliminación física de los que quedaron en cero.
	Apply(depotID, productID string, lots []entity.Lot) error
	// AddQuantity suma qty al lote (upsert acumulativo), para las entradas de
	// distribución donde no hace falta leer el estado previo.
	AddQuantity(depotID, productID, lote string, qty int64) error
	// Snapshot devuelve el libro completo de un depósito agrupado por producto.
	Snapshot(depotID string) ([]LedgerEntry, error)
	// DepotAggregate devuelve las unidades totales que posee un depósito.
	DepotAggregate(depotID string) (int64, error)
}
