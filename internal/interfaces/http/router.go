package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/catalog"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	CustomerUC   *billing.CustomerUseCase
	IssueUC      *billing.IssueInvoiceUseCase
	PaymentUC    *billing.PaymentUseCase
	ReportingUC  *billing.ReportingUseCase
	SubmissionUC *billing.SubmissionUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas las rutas requieren Bearer Token;
// las de administración del catálogo exigen además el rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo de tributos (solo admin)
	taxes := api.Group("/taxes", RequireRole(jwt.RoleAdmin))
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	taxes.Post("/", catalogHandler.CreateTax)
	taxes.Get("/", catalogHandler.ListTaxes)
	taxes.Put("/:id", catalogHandler.UpdateTax)

	// Clientes y sus overrides de tarifa
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id/tax-overrides", RequireRole(jwt.RoleAdmin), catalogHandler.SetOverride)
	customers.Get("/:id/tax-overrides", catalogHandler.ListOverrides)

	// Facturas
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.IssueUC, deps.PaymentUC, deps.ReportingUC, deps.SubmissionUC)
	invoices.Post("/", RequireRole(jwt.RoleAdmin, jwt.RoleVendedor), invoiceHandler.Issue)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/annul", RequireRole(jwt.RoleAdmin), invoiceHandler.Annul)
	invoices.Post("/:id/refresh", invoiceHandler.Refresh)
	invoices.Put("/:id/submission", RequireRole(jwt.RoleAdmin), invoiceHandler.UpdateSubmission)

	// Libro de pagos
	payments := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", RequireRole(jwt.RoleAdmin, jwt.RoleCajero), paymentHandler.Record)
	payments.Post("/:id/void", RequireRole(jwt.RoleAdmin, jwt.RoleCajero), paymentHandler.Void)

	// Cartera
	reports := api.Group("/reports")
	reports.Get("/aging", invoiceHandler.Aging)
}
