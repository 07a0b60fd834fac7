package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/production"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*memory.Store, *production.UseCase) {
	t.Helper()
	st := memory.NewStore()
	require.NoError(t, st.Depots().Create(&entity.Depot{ID: "planta", Name: "Planta", Type: entity.DepotTypePrimary}))
	require.NoError(t, st.Depots().Create(&entity.Depot{ID: "norte", Name: "Norte", Type: entity.DepotTypeSecondary}))
	require.NoError(t, st.Products().Create(&entity.Product{ID: "prod-1", Name: "Arepa x10"}))
	return st, production.NewUseCase(st, st.Depots(), st.Products())
}

// Dos producciones del mismo lote se fusionan bajo una sola clave.
func TestRegisterProduction_FusionaMismoLote(t *testing.T) {
	st, uc := setup(t)
	ctx := context.Background()

	require.NoError(t, uc.RegisterProduction(ctx, "u", dto.RegisterProductionRequest{
		DepotID: "planta", ProductID: "prod-1", Lote: "2025-05-01", Cantidad: 100,
	}))
	require.NoError(t, uc.RegisterProduction(ctx, "u", dto.RegisterProductionRequest{
		DepotID: "planta", ProductID: "prod-1", Lote: "2025-05-01", Cantidad: 40,
	}))

	lots, err := st.Ledger().Get("planta", "prod-1")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(140), lots[0].Cantidad)
}

// Cada producción deja su movimiento de auditoría.
func TestRegisterProduction_RegistraMovimiento(t *testing.T) {
	st, uc := setup(t)

	require.NoError(t, uc.RegisterProduction(context.Background(), "user-7", dto.RegisterProductionRequest{
		DepotID: "planta", ProductID: "prod-1", Lote: "2025-05-01", Cantidad: 25,
	}))

	movs, err := st.Movements().List("planta", "prod-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeProduction, movs[0].Type)
	assert.Equal(t, int64(25), movs[0].Quantity)
	assert.Equal(t, "user-7", movs[0].CreatedBy)
}

// La producción solo entra por el depósito primario.
func TestRegisterProduction_RechazaDepositoSecundario(t *testing.T) {
	_, uc := setup(t)
	err := uc.RegisterProduction(context.Background(), "u", dto.RegisterProductionRequest{
		DepotID: "norte", ProductID: "prod-1", Lote: "2025-05-01", Cantidad: 10,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// La clave de lote debe ser una fecha YYYY-MM-DD válida.
func TestRegisterProduction_RechazaLoteInvalido(t *testing.T) {
	_, uc := setup(t)
	for _, lote := range []string{"", "2025-13-01", "01-05-2025", "hoy"} {
		err := uc.RegisterProduction(context.Background(), "u", dto.RegisterProductionRequest{
			DepotID: "planta", ProductID: "prod-1", Lote: lote, Cantidad: 10,
		})
		assert.ErrorIs(t, err, domain.ErrValidation, "lote %q debe rechazarse", lote)
	}
}

func TestRegisterProduction_RechazaCantidadNoPositiva(t *testing.T) {
	_, uc := setup(t)
	err := uc.RegisterProduction(context.Background(), "u", dto.RegisterProductionRequest{
		DepotID: "planta", ProductID: "prod-1", Lote: "2025-05-01", Cantidad: 0,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
