package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/distribucion-api/internal/application/adjustment"
	"github.com/jhoicas/distribucion-api/internal/application/production"
	"github.com/jhoicas/distribucion-api/internal/application/sales"
	"github.com/jhoicas/distribucion-api/internal/application/transfer"
	"github.com/jhoicas/distribucion-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/distribucion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/distribucion-api/internal/interfaces/http"
	"github.com/jhoicas/distribucion-api/pkg/config"
	"github.com/jhoicas/distribucion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	depotRepo := postgres.NewDepotRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	saleRepo := postgres.NewSaleOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	depotUC := usecase.NewDepotUseCase(depotRepo, ledgerRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	ledgerUC := usecase.NewLedgerUseCase(depotRepo, ledgerRepo, movementRepo)
	productionUC := production.NewUseCase(txRunner, depotRepo, productRepo)
	transferUC := transfer.NewUseCase(txRunner, depotRepo, productRepo, transferRepo)
	guideGenerator := infrapdf.NewMarotoGuideGenerator()
	guideUC := transfer.NewGuideUseCase(transferRepo, depotRepo, productRepo, guideGenerator)
	adjustmentUC := adjustment.NewUseCase(txRunner, depotRepo, productRepo, adjustmentRepo)
	saleUC := sales.NewUseCase(txRunner, depotRepo, productRepo, saleRepo, ledgerRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribución API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DepotUC:      depotUC,
		ProductUC:    productUC,
		LedgerUC:     ledgerUC,
		ProductionUC: productionUC,
		TransferUC:   transferUC,
		GuideUC:      guideUC,
		AdjustmentUC: adjustmentUC,
		SaleUC:       saleUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
