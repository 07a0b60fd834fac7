package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
)

func transferLots(pairs ...interface{}) []entity.TransferLot {
	var out []entity.TransferLot
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entity.TransferLot{
			Lote:     pairs[i].(string),
			Cantidad: int64(pairs[i+1].(int)),
		})
	}
	return out
}

// Asignación completa de cada lote entre depósitos y venta directa.
func TestValidateAllocation_ReparteExacto(t *testing.T) {
	tl := transferLots("2025-01-01", 100, "2025-02-01", 50)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 60, "depot-c": 30, entity.DirectSaleKey: 10},
		"2025-02-01": {"depot-b": 50},
	}

	writes, direct, err := ledger.ValidateAllocation(tl, alloc)
	require.NoError(t, err)

	require.Len(t, writes, 3)
	assert.Equal(t, ledger.LotWrite{DepotID: "depot-b", Lote: "2025-01-01", Cantidad: 60}, writes[0])
	assert.Equal(t, ledger.LotWrite{DepotID: "depot-c", Lote: "2025-01-01", Cantidad: 30}, writes[1])
	assert.Equal(t, ledger.LotWrite{DepotID: "depot-b", Lote: "2025-02-01", Cantidad: 50}, writes[2])

	require.Len(t, direct, 1)
	assert.Equal(t, entity.TransferLot{Lote: "2025-01-01", Cantidad: 10}, direct[0])
}

// La suma de los destinos de un lote debe igualar su cantidad: 90 ≠ 100.
func TestValidateAllocation_SumaMenorQueElLote(t *testing.T) {
	tl := transferLots("2025-01-01", 100)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 60, "depot-c": 30},
	}

	_, _, err := ledger.ValidateAllocation(tl, alloc)
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
}

func TestValidateAllocation_SumaMayorQueElLote(t *testing.T) {
	tl := transferLots("2025-01-01", 100)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 80, "depot-c": 30},
	}

	_, _, err := ledger.ValidateAllocation(tl, alloc)
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
}

// Un lote ausente de la asignación deja su suma en cero y falla.
func TestValidateAllocation_LoteSinAsignar(t *testing.T) {
	tl := transferLots("2025-01-01", 100, "2025-02-01", 50)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 100},
	}

	_, _, err := ledger.ValidateAllocation(tl, alloc)
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
}

// Lotes que no pertenecen al traslado se rechazan.
func TestValidateAllocation_LoteDesconocido(t *testing.T) {
	tl := transferLots("2025-01-01", 100)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 100},
		"2025-09-09": {"depot-b": 5},
	}

	_, _, err := ledger.ValidateAllocation(tl, alloc)
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
}

func TestValidateAllocation_CantidadNegativa(t *testing.T) {
	tl := transferLots("2025-01-01", 100)
	alloc := ledger.Allocation{
		"2025-01-01": {"depot-b": 110, "depot-c": -10},
	}

	_, _, err := ledger.ValidateAllocation(tl, alloc)
	assert.ErrorIs(t, err, domain.ErrAllocationMismatch)
}

// Todo a venta directa es una asignación válida sin escrituras al libro.
func TestValidateAllocation_TodoVentaDirecta(t *testing.T) {
	tl := transferLots("2025-01-01", 40)
	alloc := ledger.Allocation{
		"2025-01-01": {entity.DirectSaleKey: 40},
	}

	writes, direct, err := ledger.ValidateAllocation(tl, alloc)
	require.NoError(t, err)
	assert.Empty(t, writes)
	require.Len(t, direct, 1)
	assert.Equal(t, int64(40), direct[0].Cantidad)
}
