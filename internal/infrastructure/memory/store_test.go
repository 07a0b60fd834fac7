package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

// Una transacción que falla a mitad de camino no deja ningún efecto: las
// escrituras previas al error se descartan con el clon.
func TestRun_FallaDescartaTodo(t *testing.T) {
	st := memory.NewStore()
	boom := errors.New("boom")

	err := st.Run(context.Background(), func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		require.NoError(t, ledgerRepo.AddQuantity("d1", "p1", "2025-01-01", 10))
		require.NoError(t, movRepo.Create(&entity.Movement{ID: "m1", Type: entity.MovementTypeProduction}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	lots, err := st.Ledger().Get("d1", "p1")
	require.NoError(t, err)
	assert.Empty(t, lots, "la escritura al libro debe descartarse")

	movs, err := st.Movements().List("", "", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "el movimiento debe descartarse")
}

// Una transacción exitosa publica todas sus escrituras de una vez.
func TestRun_ExitoPublicaTodo(t *testing.T) {
	st := memory.NewStore()

	err := st.Run(context.Background(), func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.MovementRepository,
		_ repository.TransferRepository,
		_ repository.AdjustmentRepository,
		_ repository.SaleOrderRepository,
	) error {
		if err := ledgerRepo.AddQuantity("d1", "p1", "2025-01-01", 10); err != nil {
			return err
		}
		return movRepo.Create(&entity.Movement{ID: "m1", Type: entity.MovementTypeProduction, DepotID: "d1", ProductID: "p1"})
	})
	require.NoError(t, err)

	lots, err := st.Ledger().Get("d1", "p1")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(10), lots[0].Cantidad)

	movs, err := st.Movements().List("d1", "p1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

// Apply con cantidad cero elimina el lote del libro.
func TestLedger_ApplyEliminaLotesEnCero(t *testing.T) {
	st := memory.NewStore()
	require.NoError(t, st.Ledger().Apply("d1", "p1", []entity.Lot{
		{DepotID: "d1", ProductID: "p1", Lote: "2025-01-01", Cantidad: 5},
	}))
	require.NoError(t, st.Ledger().Apply("d1", "p1", []entity.Lot{
		{DepotID: "d1", ProductID: "p1", Lote: "2025-01-01", Cantidad: 0},
	}))

	lots, err := st.Ledger().Get("d1", "p1")
	require.NoError(t, err)
	assert.Empty(t, lots)

	total, err := st.Ledger().DepotAggregate("d1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
