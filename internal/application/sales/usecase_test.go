package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/sales"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*memory.Store, *sales.UseCase) {
	t.Helper()
	st := memory.NewStore()
	require.NoError(t, st.Depots().Create(&entity.Depot{ID: "norte", Name: "Punto Norte", Type: entity.DepotTypeSecondary}))
	require.NoError(t, st.Products().Create(&entity.Product{ID: "prod-1", Name: "Arepa x10"}))
	return st, sales.NewUseCase(st, st.Depots(), st.Products(), st.Sales(), st.Ledger())
}

func seedLots(t *testing.T, st *memory.Store, pairs ...interface{}) {
	t.Helper()
	var lots []entity.Lot
	for i := 0; i < len(pairs); i += 2 {
		lots = append(lots, entity.Lot{
			DepotID: "norte", ProductID: "prod-1",
			Lote: pairs[i].(string), Cantidad: int64(pairs[i+1].(int)), UpdatedAt: time.Now(),
		})
	}
	require.NoError(t, st.Ledger().Apply("norte", "prod-1", lots))
}

func createOrder(t *testing.T, uc *sales.UseCase, qty int64) *dto.SaleOrderResponse {
	t.Helper()
	out, err := uc.CreateOrder(context.Background(), dto.CreateSaleOrderRequest{
		ProductID: "prod-1", Quantity: qty, CustomerName: "Tienda La Esquina", InvoiceNumber: "FV-1001",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes elegibles
// ──────────────────────────────────────────────────────────────────────────────

// Con {30, 60} y una orden de 50 solo el lote de 60 es elegible, aunque la
// suma 90 cubra la orden: una venta sale de exactamente un lote.
func TestListEligibleLots_SoloLotesQueCubrenCompleta(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-01-01", 30, "2025-03-01", 60)
	order := createOrder(t, uc, 50)

	resp, err := uc.ListEligibleLots(context.Background(), order.ID, "norte")
	require.NoError(t, err)
	require.Len(t, resp.Lotes, 1)
	assert.Equal(t, dto.LotDTO{Lote: "2025-03-01", Cantidad: 60}, resp.Lotes[0])
}

func TestListEligibleLots_OrdenFEFO(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-09-01", 80, "2025-02-01", 70)
	order := createOrder(t, uc, 50)

	resp, err := uc.ListEligibleLots(context.Background(), order.ID, "norte")
	require.NoError(t, err)
	require.Len(t, resp.Lotes, 2)
	assert.Equal(t, "2025-02-01", resp.Lotes[0].Lote)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfill_DescuentaDelLoteYMarcaDespachada(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-03-01", 60)
	order := createOrder(t, uc, 50)

	out, err := uc.Fulfill(context.Background(), "vendedor-1", order.ID, dto.FulfillSaleRequest{
		DepotID: "norte", Lote: "2025-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusFulfilled, out.Status)
	assert.Equal(t, "norte", out.DepotID)
	assert.Equal(t, "2025-03-01", out.Lote)
	require.NotNil(t, out.FulfilledAt)

	lots, err := st.Ledger().Get("norte", "prod-1")
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(10), lots[0].Cantidad)

	movs, err := st.Movements().List("norte", "prod-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeSale, movs[0].Type)
	assert.Equal(t, int64(-50), movs[0].Quantity)
	assert.Equal(t, order.ID, movs[0].Reference)
}

// Si el lote elegido ya no cubre la orden al confirmar, el despacho falla con
// el estado obsoleto y la orden sigue pendiente.
func TestFulfill_LoteObsoleto(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-03-01", 60)
	order := createOrder(t, uc, 50)

	// Entre el listado y la confirmación, otro despacho consumió el lote.
	seedLots(t, st, "2025-03-01", 40)

	_, err := uc.Fulfill(context.Background(), "v", order.ID, dto.FulfillSaleRequest{
		DepotID: "norte", Lote: "2025-03-01",
	})
	assert.ErrorIs(t, err, domain.ErrStaleLotState)

	got, err := uc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, got.Status, "la orden debe seguir pendiente")

	lots, err := st.Ledger().Get("norte", "prod-1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), lots[0].Cantidad, "el libro no debe cambiar")
}

// Un lote inexistente también es estado obsoleto, no un 404.
func TestFulfill_LoteInexistente(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-03-01", 60)
	order := createOrder(t, uc, 50)

	_, err := uc.Fulfill(context.Background(), "v", order.ID, dto.FulfillSaleRequest{
		DepotID: "norte", Lote: "2025-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrStaleLotState)
}

// Despachar dos veces la misma orden falla en la guarda de estado.
func TestFulfill_SegundaVezFalla(t *testing.T) {
	st, uc := setup(t)
	seedLots(t, st, "2025-03-01", 120)
	order := createOrder(t, uc, 50)
	ctx := context.Background()

	_, err := uc.Fulfill(ctx, "v", order.ID, dto.FulfillSaleRequest{DepotID: "norte", Lote: "2025-03-01"})
	require.NoError(t, err)
	_, err = uc.Fulfill(ctx, "v", order.ID, dto.FulfillSaleRequest{DepotID: "norte", Lote: "2025-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	lots, err := st.Ledger().Get("norte", "prod-1")
	require.NoError(t, err)
	assert.Equal(t, int64(70), lots[0].Cantidad, "solo debe descontarse una vez")
}

func TestCreateOrder_Validacion(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, dto.CreateSaleOrderRequest{ProductID: "prod-1", Quantity: 0, CustomerName: "X"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateOrder(ctx, dto.CreateSaleOrderRequest{ProductID: "prod-1", Quantity: 5, CustomerName: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateOrder(ctx, dto.CreateSaleOrderRequest{ProductID: "no-existe", Quantity: 5, CustomerName: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
