package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribucion-api/internal/application/adjustment"
	"github.com/jhoicas/distribucion-api/internal/application/production"
	"github.com/jhoicas/distribucion-api/internal/application/sales"
	"github.com/jhoicas/distribucion-api/internal/application/transfer"
	"github.com/jhoicas/distribucion-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DepotUC      *usecase.DepotUseCase
	ProductUC    *usecase.ProductUseCase
	LedgerUC     *usecase.LedgerUseCase
	ProductionUC *production.UseCase
	TransferUC   *transfer.UseCase
	GuideUC      *transfer.GuideUseCase
	AdjustmentUC *adjustment.UseCase
	SaleUC       *sales.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas requieren Bearer Token;
// la administración de depósitos y la resolución de ajustes requieren además
// rol master.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	master := RequireRole(RoleMaster)

	// Depots
	depots := api.Group("/depots")
	depotHandler := NewDepotHandler(deps.DepotUC)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	depots.Post("/", master, depotHandler.Create)
	depots.Get("/", depotHandler.List)
	depots.Get("/:id", depotHandler.GetByID)
	depots.Delete("/:id", master, depotHandler.Delete)
	depots.Get("/:id/ledger", ledgerHandler.Snapshot)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Production
	productionHandler := NewProductionHandler(deps.ProductionUC)
	api.Post("/production", productionHandler.Register)

	// Transfers
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC, deps.GuideUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/receive", transferHandler.Receive)
	transfers.Post("/:id/distribute", transferHandler.Distribute)
	transfers.Get("/:id/guide", transferHandler.Guide)

	// Adjustments
	adjustments := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/approve", master, adjustmentHandler.Approve)
	adjustments.Post("/:id/reject", master, adjustmentHandler.Reject)

	// Sales
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/eligible-lots", saleHandler.EligibleLots)
	salesGroup.Post("/:id/fulfill", saleHandler.Fulfill)

	// Movements (historial global)
	api.Get("/movements", ledgerHandler.Movements)
}
