package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/usecase"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

func TestDepot_CreateValidaTipo(t *testing.T) {
	st := memory.NewStore()
	uc := usecase.NewDepotUseCase(st.Depots(), st.Ledger())

	_, err := uc.Create(dto.CreateDepotRequest{Name: "Bodega X", Type: "terciario"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	out, err := uc.Create(dto.CreateDepotRequest{Name: "Punto Norte", Type: entity.DepotTypeSecondary, City: "Medellín"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.DepotTypeSecondary, out.Type)
}

// Un depósito con existencias no puede eliminarse.
func TestDepot_DeleteBloqueadoConStock(t *testing.T) {
	st := memory.NewStore()
	uc := usecase.NewDepotUseCase(st.Depots(), st.Ledger())

	require.NoError(t, st.Depots().Create(&entity.Depot{ID: "norte", Name: "Norte", Type: entity.DepotTypeSecondary}))
	require.NoError(t, st.Products().Create(&entity.Product{ID: "prod-1", Name: "Arepa x10"}))
	require.NoError(t, st.Ledger().Apply("norte", "prod-1", []entity.Lot{
		{DepotID: "norte", ProductID: "prod-1", Lote: "2025-01-01", Cantidad: 3, UpdatedAt: time.Now()},
	}))

	err := uc.Delete("norte")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Con el libro vacío la eliminación procede.
	require.NoError(t, st.Ledger().Apply("norte", "prod-1", []entity.Lot{
		{DepotID: "norte", ProductID: "prod-1", Lote: "2025-01-01", Cantidad: 0},
	}))
	require.NoError(t, uc.Delete("norte"))

	_, err = uc.GetByID("norte")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El snapshot agrupa por producto con los lotes en orden FEFO y omite lotes en cero.
func TestLedger_SnapshotOrdenFEFO(t *testing.T) {
	st := memory.NewStore()
	uc := usecase.NewLedgerUseCase(st.Depots(), st.Ledger(), st.Movements())

	require.NoError(t, st.Depots().Create(&entity.Depot{ID: "norte", Name: "Norte", Type: entity.DepotTypeSecondary}))
	require.NoError(t, st.Products().Create(&entity.Product{ID: "prod-1", Name: "Arepa x10"}))
	require.NoError(t, st.Ledger().Apply("norte", "prod-1", []entity.Lot{
		{DepotID: "norte", ProductID: "prod-1", Lote: "2025-06-01", Cantidad: 10},
		{DepotID: "norte", ProductID: "prod-1", Lote: "2025-01-15", Cantidad: 4},
		{DepotID: "norte", ProductID: "prod-1", Lote: "AJUSTE-AB12CD34", Cantidad: 7},
	}))

	out, err := uc.Snapshot("norte")
	require.NoError(t, err)
	require.Len(t, out.Entries, 1)
	entry := out.Entries[0]
	assert.Equal(t, "Arepa x10", entry.ProductName)
	require.Len(t, entry.Lotes, 3)
	assert.Equal(t, "2025-01-15", entry.Lotes[0].Lote)
	assert.Equal(t, "2025-06-01", entry.Lotes[1].Lote)
	assert.Equal(t, "AJUSTE-AB12CD34", entry.Lotes[2].Lote, "las claves sintéticas van al final")
}

func TestLedger_SnapshotDepositoInexistente(t *testing.T) {
	st := memory.NewStore()
	uc := usecase.NewLedgerUseCase(st.Depots(), st.Ledger(), st.Movements())

	_, err := uc.Snapshot("fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
