package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func lots(pairs ...interface{}) []entity.Lot {
	var out []entity.Lot
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entity.Lot{
			Lote:     pairs[i].(string),
			Cantidad: int64(pairs[i+1].(int)),
		})
	}
	return out
}

func byLote(ls []entity.Lot) map[string]int64 {
	m := make(map[string]int64, len(ls))
	for _, l := range ls {
		m[l.Lote] = l.Cantidad
	}
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeFEFO
// ──────────────────────────────────────────────────────────────────────────────

// El lote de vencimiento más próximo se consume primero y el sobrante sale del
// que sigue: {2025-01-01:5, 2025-03-01:10} menos 8 → {0, 7}.
func TestConsumeFEFO_VencimientoMasProximoPrimero(t *testing.T) {
	in := lots("2025-03-01", 10, "2025-01-01", 5)

	remaining, consumed, err := ledger.ConsumeFEFO(in, 8)
	require.NoError(t, err)

	got := byLote(remaining)
	assert.Equal(t, int64(0), got["2025-01-01"], "el lote más próximo debe agotarse primero")
	assert.Equal(t, int64(7), got["2025-03-01"], "el sobrante sale del siguiente lote")

	require.Len(t, consumed, 2)
	assert.Equal(t, entity.TransferLot{Lote: "2025-01-01", Cantidad: 5}, consumed[0])
	assert.Equal(t, entity.TransferLot{Lote: "2025-03-01", Cantidad: 3}, consumed[1])
}

// La cantidad total se conserva: lo consumido más lo restante es igual al total
// inicial, para cualquier consumo válido.
func TestConsumeFEFO_ConservaCantidadTotal(t *testing.T) {
	in := lots("2025-01-01", 5, "2025-02-15", 20, "2025-03-01", 10)
	totalBefore := ledger.Aggregate(in)

	remaining, consumed, err := ledger.ConsumeFEFO(in, 17)
	require.NoError(t, err)

	var consumedTotal int64
	for _, c := range consumed {
		consumedTotal += c.Cantidad
	}
	assert.Equal(t, int64(17), consumedTotal)
	assert.Equal(t, totalBefore, ledger.Aggregate(remaining)+consumedTotal,
		"consumido + restante debe igualar el total inicial")
}

// Stock insuficiente: error y cero efecto, la entrada no se modifica.
func TestConsumeFEFO_StockInsuficienteSinEfectoParcial(t *testing.T) {
	in := lots("2025-01-01", 5, "2025-03-01", 10)

	_, _, err := ledger.ConsumeFEFO(in, 16)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got := byLote(in)
	assert.Equal(t, int64(5), got["2025-01-01"], "la entrada no debe modificarse tras un fallo")
	assert.Equal(t, int64(10), got["2025-03-01"])
}

// Un consumo que cubre exactamente el total deja todos los lotes en cero.
func TestConsumeFEFO_ConsumoExacto(t *testing.T) {
	in := lots("2025-01-01", 5, "2025-03-01", 10)

	remaining, consumed, err := ledger.ConsumeFEFO(in, 15)
	require.NoError(t, err)

	for _, l := range remaining {
		assert.Equal(t, int64(0), l.Cantidad, "lote %s debe quedar en cero", l.Lote)
	}
	require.Len(t, consumed, 2)
}

// Las claves sintéticas AJUSTE-* ordenan después de cualquier fecha, por lo
// que FEFO las consume al final.
func TestConsumeFEFO_LotesSinteticosAlFinal(t *testing.T) {
	in := lots("AJUSTE-AB12CD34", 10, "2025-12-31", 4)

	remaining, consumed, err := ledger.ConsumeFEFO(in, 6)
	require.NoError(t, err)

	require.Len(t, consumed, 2)
	assert.Equal(t, "2025-12-31", consumed[0].Lote, "la fecha se consume antes que el lote sintético")
	assert.Equal(t, entity.TransferLot{Lote: "AJUSTE-AB12CD34", Cantidad: 2}, consumed[1])

	got := byLote(remaining)
	assert.Equal(t, int64(8), got["AJUSTE-AB12CD34"])
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeFromLot
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeFromLot_DescuentaDelLotePuntual(t *testing.T) {
	in := lots("2025-01-01", 5, "2025-03-01", 10)

	out, err := ledger.ConsumeFromLot(in, "2025-03-01", 4)
	require.NoError(t, err)

	got := byLote(out)
	assert.Equal(t, int64(5), got["2025-01-01"], "los demás lotes no se tocan")
	assert.Equal(t, int64(6), got["2025-03-01"])
}

func TestConsumeFromLot_LoteInexistente(t *testing.T) {
	in := lots("2025-01-01", 5)
	_, err := ledger.ConsumeFromLot(in, "2025-09-09", 1)
	assert.ErrorIs(t, err, domain.ErrLotNotFound)
}

func TestConsumeFromLot_CantidadInsuficiente(t *testing.T) {
	in := lots("2025-01-01", 5)
	_, err := ledger.ConsumeFromLot(in, "2025-01-01", 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientLotQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge
// ──────────────────────────────────────────────────────────────────────────────

func TestMerge_SumaSobreLoteExistente(t *testing.T) {
	in := lots("2025-01-01", 5)
	out := ledger.Merge(in, "d1", "p1", "2025-01-01", 3)

	require.Len(t, out, 1)
	assert.Equal(t, int64(8), out[0].Cantidad)
	assert.Equal(t, int64(5), in[0].Cantidad, "la entrada no se modifica")
}

func TestMerge_AgregaLoteNuevo(t *testing.T) {
	in := lots("2025-01-01", 5)
	out := ledger.Merge(in, "d1", "p1", "2025-06-01", 9)

	require.Len(t, out, 2)
	got := byLote(out)
	assert.Equal(t, int64(9), got["2025-06-01"])
}

// ──────────────────────────────────────────────────────────────────────────────
// EligibleLots
// ──────────────────────────────────────────────────────────────────────────────

// Una venta sale de un único lote: con {A:30, B:60} y una orden de 50 solo B
// es elegible, aunque la suma 90 cubra la orden.
func TestEligibleLots_SoloLotesQueCubrenLaOrdenCompleta(t *testing.T) {
	in := lots("2025-01-01", 30, "2025-03-01", 60)

	out := ledger.EligibleLots(in, 50)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-01", out[0].Lote)
}

func TestEligibleLots_OrdenFEFO(t *testing.T) {
	in := lots("2025-12-01", 80, "2025-02-01", 70)

	out := ledger.EligibleLots(in, 50)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-02-01", out[0].Lote, "los elegibles se ofrecen en orden FEFO")
}

func TestEligibleLots_NingunoAlcanza(t *testing.T) {
	in := lots("2025-01-01", 30, "2025-03-01", 40)
	out := ledger.EligibleLots(in, 50)
	assert.Empty(t, out)
}
