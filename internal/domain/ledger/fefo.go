// Package ledger contiene el álgebra pura del libro de lotes: consumo FEFO,
// fusión de lotes y validación de asignaciones de distribución. Ninguna función
// toca el almacén; los casos de uso las ejecutan dentro de una transacción.
package ledger

import (
	"sort"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// SortFEFO ordena los lotes ascendente por clave de vencimiento (in place).
// Las claves "YYYY-MM-DD" ordenan lexicográfica = cronológicamente; las claves
// sintéticas "AJUSTE-*" quedan después de toda fecha, por lo que FEFO las
// consume al final.
func SortFEFO(lots []entity.Lot) {
	sort.Slice(lots, func(i, j int) bool { return lots[i].Lote < lots[j].Lote })
}

// Aggregate devuelve la cantidad total de una lista de lotes.
func Aggregate(lots []entity.Lot) int64 {
	var total int64
	for _, l := range lots {
		total += l.Cantidad
	}
	return total
}

// Merge suma qty al lote con la clave dada, o lo agrega si no existe.
// Devuelve una lista nueva; la entrada no se modifica.
func Merge(lots []entity.Lot, depotID, productID, lote string, qty int64) []entity.Lot {
	out := make([]entity.Lot, len(lots))
	copy(out, lots)
	for i := range out {
		if out[i].Lote == lote {
			out[i].Cantidad += qty
			return out
		}
	}
	return append(out, entity.Lot{DepotID: depotID, ProductID: productID, Lote: lote, Cantidad: qty})
}

// ConsumeFEFO descuenta qty consumiendo los lotes de vencimiento más próximo
// primero. Devuelve los lotes resultantes (los agotados quedan en 0) y el
// detalle exacto de lo consumido por lote. Si el total disponible no alcanza,
// devuelve ErrInsufficientStock sin consumo parcial: la entrada no se modifica.
func ConsumeFEFO(lots []entity.Lot, qty int64) (remaining []entity.Lot, consumed []entity.TransferLot, err error) {
	if Aggregate(lots) < qty {
		return nil, nil, domain.ErrInsufficientStock
	}
	remaining = make([]entity.Lot, len(lots))
	copy(remaining, lots)
	SortFEFO(remaining)

	pending := qty
	for i := range remaining {
		if pending == 0 {
			break
		}
		take := remaining[i].Cantidad
		if take > pending {
			take = pending
		}
		if take == 0 {
			continue
		}
		remaining[i].Cantidad -= take
		pending -= take
		consumed = append(consumed, entity.TransferLot{Lote: remaining[i].Lote, Cantidad: take})
	}
	return remaining, consumed, nil
}

// ConsumeFromLot descuenta qty de un lote puntual. Devuelve ErrLotNotFound si
// la clave no existe y ErrInsufficientLotQuantity si el lote no alcanza.
func ConsumeFromLot(lots []entity.Lot, lote string, qty int64) ([]entity.Lot, error) {
	out := make([]entity.Lot, len(lots))
	copy(out, lots)
	for i := range out {
		if out[i].Lote != lote {
			continue
		}
		if out[i].Cantidad < qty {
			return nil, domain.ErrInsufficientLotQuantity
		}
		out[i].Cantidad -= qty
		return out, nil
	}
	return nil, domain.ErrLotNotFound
}

// EligibleLots devuelve los lotes que individualmente cubren qty completo,
// ordenados FEFO. Una venta se satisface desde exactamente un lote: los lotes
// que no alcanzan por sí solos no se ofrecen aunque su suma cubra la orden.
func EligibleLots(lots []entity.Lot, qty int64) []entity.Lot {
	var out []entity.Lot
	for _, l := range lots {
		if l.Cantidad >= qty {
			out = append(out, l)
		}
	}
	SortFEFO(out)
	return out
}
