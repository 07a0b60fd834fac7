package ledger

import (
	"sort"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// Allocation mapea lote → destino → cantidad para la distribución de un
// traslado. El destino puede ser el ID de un depósito o entity.DirectSaleKey.
type Allocation map[string]map[string]int64

// LotWrite es una escritura ya validada contra el libro de un depósito destino.
type LotWrite struct {
	DepotID  string
	Lote     string
	Cantidad int64
}

// ValidateAllocation verifica, antes de cualquier escritura, que la asignación
// cubra exactamente cada lote del traslado: para cada lote, la suma de sus
// destinos debe igualar la cantidad trasladada, sin lotes desconocidos ni
// cantidades negativas. Devuelve el write-set por depósito destino y el
// detalle de venta directa, en orden determinístico. Cualquier violación
// devuelve ErrAllocationMismatch y el caller no debe escribir nada.
func ValidateAllocation(lots []entity.TransferLot, alloc Allocation) (writes []LotWrite, direct []entity.TransferLot, err error) {
	byLote := make(map[string]int64, len(lots))
	for _, l := range lots {
		byLote[l.Lote] = l.Cantidad
	}
	for lote := range alloc {
		if _, ok := byLote[lote]; !ok {
			return nil, nil, domain.ErrAllocationMismatch
		}
	}
	for _, l := range lots {
		dests := alloc[l.Lote]
		var sum int64
		for dest, qty := range dests {
			if qty < 0 || dest == "" {
				return nil, nil, domain.ErrAllocationMismatch
			}
			sum += qty
			if qty == 0 {
				continue
			}
			if dest == entity.DirectSaleKey {
				direct = append(direct, entity.TransferLot{Lote: l.Lote, Cantidad: qty})
				continue
			}
			writes = append(writes, LotWrite{DepotID: dest, Lote: l.Lote, Cantidad: qty})
		}
		if sum != l.Cantidad {
			return nil, nil, domain.ErrAllocationMismatch
		}
	}
	sort.Slice(writes, func(i, j int) bool {
		if writes[i].Lote != writes[j].Lote {
			return writes[i].Lote < writes[j].Lote
		}
		return writes[i].DepotID < writes[j].DepotID
	})
	sort.Slice(direct, func(i, j int) bool { return direct[i].Lote < direct[j].Lote })
	return writes, direct, nil
}
