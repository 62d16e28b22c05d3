package billing

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/domain/settlement"
)

// ReportingUseCase lecturas de factura y cartera. Los días de mora se derivan
// en cada consulta (nunca se persisten), así el informe siempre es consistente
// con el reloj.
type ReportingUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
) *ReportingUseCase {
	return &ReportingUseCase{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// GetInvoice obtiene la factura completa: cabecera, líneas congeladas, libro
// de pagos y días de mora al momento de la lectura.
func (uc *ReportingUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByInvoice(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, err := uc.customerRepo.GetByID(inv.CustomerID); err == nil && customer != nil {
		customerName = customer.Name
	}
	return invoiceToResponse(inv, customerName, lines, payments, time.Now()), nil
}

// ListAging lista las facturas con saldo de la empresa con sus días de mora.
func (uc *ReportingUseCase) ListAging(ctx context.Context, companyID string, limit, offset int) ([]dto.AgingRowResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	invoices, err := uc.invoiceRepo.ListUnsettledByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	rows := make([]dto.AgingRowResponse, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, dto.AgingRowResponse{
			InvoiceID:     inv.ID,
			Number:        inv.Number,
			CustomerID:    inv.CustomerID,
			DueDate:       inv.DueDate.Format("2006-01-02"),
			Total:         inv.Total,
			Outstanding:   inv.Outstanding,
			PaymentStatus: inv.PaymentStatus,
			DaysOverdue:   settlement.DaysOverdue(inv.PaymentStatus, inv.DueDate, today),
		})
	}
	return rows, nil
}
