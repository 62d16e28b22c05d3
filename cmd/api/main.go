package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	taxRepo := postgres.NewTaxDefinitionRepository(pool)
	overrideRepo := postgres.NewTaxOverrideRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := catalog.NewUseCase(taxRepo, overrideRepo, customerRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	issueUC := billing.NewIssueInvoiceUseCase(txRunner, customerRepo, taxRepo, overrideRepo, invoiceRepo)
	paymentUC := billing.NewPaymentUseCase(txRunner)
	reportingUC := billing.NewReportingUseCase(invoiceRepo, paymentRepo, customerRepo)
	submissionUC := billing.NewSubmissionUseCase(invoiceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		CustomerUC:   customerUC,
		IssueUC:      issueUC,
		PaymentUC:    paymentUC,
		ReportingUC:  reportingUC,
		SubmissionUC: submissionUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	httpLog := log.Component("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor finalizado")
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
