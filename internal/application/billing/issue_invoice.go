package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/domain/settlement"
)

// IssueInvoiceUseCase emite una factura: corre el motor de impuestos una sola
// vez y persiste cabecera y líneas congeladas en una transacción.
type IssueInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	taxRepo      repository.TaxDefinitionRepository
	overrideRepo repository.TaxOverrideRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewIssueInvoiceUseCase construye el caso de uso.
func NewIssueInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	taxRepo repository.TaxDefinitionRepository,
	overrideRepo repository.TaxOverrideRepository,
	invoiceRepo repository.InvoiceRepository,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		taxRepo:      taxRepo,
		overrideRepo: overrideRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// IssueInvoice valida la solicitud, calcula tributos y totales, y guarda la
// factura con sus líneas. Las líneas nunca se recalculan después: ediciones
// posteriores del catálogo no afectan facturas ya emitidas.
func (uc *IssueInvoiceUseCase) IssueInvoice(ctx context.Context, companyID, userID string, in dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || in.Number == "" || in.DueDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Subtotal.LessThanOrEqual(decimal.Zero) || in.Discount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	taxableBase := in.Subtotal.Sub(in.Discount)
	if taxableBase.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != "" && !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	// Validar cliente y que sea de la empresa
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Verificación temprana del número; la restricción única de la BD cubre
	// la carrera entre el chequeo y el insert.
	existing, _ := uc.invoiceRepo.GetByCompanyAndNumber(companyID, in.Number)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	// Catálogo y overrides (solo lectura, fuera de la tx)
	defs, err := uc.taxRepo.ListByCompany(companyID, true)
	if err != nil {
		return nil, err
	}
	overrides, err := uc.overrideRepo.ListByCustomer(customer.ID)
	if err != nil {
		return nil, err
	}

	// Cálculo de tributos: exactamente una vez, al emitir
	entries := settlement.ActiveTaxes(defs, overrides, customer)
	result := settlement.Compute(taxableBase, entries)

	now := time.Now()
	inv := &entity.Invoice{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		CustomerID:        customer.ID,
		Number:            in.Number,
		IssueDate:         now,
		DueDate:           in.DueDate,
		Subtotal:          in.Subtotal,
		Discount:          in.Discount,
		TaxableBase:       taxableBase,
		ChargesTotal:      result.ChargesTotal,
		WithholdingsTotal: result.WithholdingsTotal,
		Total:             result.InvoiceTotal,
		AmountPaid:        decimal.Zero,
		Outstanding:       result.InvoiceTotal,
		PaymentStatus:     settlement.DeriveState(result.InvoiceTotal, decimal.Zero, in.DueDate, now, false),
		PaymentMethod:     in.PaymentMethod,
		SubmissionStatus:  entity.SubmissionStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	lines := make([]*entity.AppliedTaxLine, 0, len(result.Lines))
	for i := range result.Lines {
		line := result.Lines[i]
		line.ID = uuid.New().String()
		line.InvoiceID = inv.ID
		lines = append(lines, &line)
	}

	err = uc.txRunner.RunBilling(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.PaymentRepository,
	) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invoiceToResponse(inv, customer.Name, lines, nil, now), nil
}

// invoiceToResponse arma la respuesta completa de una factura; today se usa
// para derivar los días de mora en el momento de la lectura.
func invoiceToResponse(inv *entity.Invoice, customerName string, lines []*entity.AppliedTaxLine, payments []*entity.PaymentEntry, today time.Time) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                inv.ID,
		CompanyID:         inv.CompanyID,
		CustomerID:        inv.CustomerID,
		CustomerName:      customerName,
		Number:            inv.Number,
		IssueDate:         inv.IssueDate.Format("2006-01-02"),
		DueDate:           inv.DueDate.Format("2006-01-02"),
		Subtotal:          inv.Subtotal,
		Discount:          inv.Discount,
		TaxableBase:       inv.TaxableBase,
		ChargesTotal:      inv.ChargesTotal,
		WithholdingsTotal: inv.WithholdingsTotal,
		Total:             inv.Total,
		AmountPaid:        inv.AmountPaid,
		Outstanding:       inv.Outstanding,
		PaymentStatus:     inv.PaymentStatus,
		DaysOverdue:       settlement.DaysOverdue(inv.PaymentStatus, inv.DueDate, today),
		SubmissionStatus:  inv.SubmissionStatus,
		SubmissionRef:     inv.SubmissionRef,
		Lines:             make([]dto.AppliedTaxLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.AppliedTaxLineResponse{
			ID:       l.ID,
			TaxCode:  l.TaxCode,
			TaxName:  l.TaxName,
			Kind:     l.Kind,
			Rate:     l.Rate,
			Base:     l.Base,
			Amount:   l.Amount,
			Position: l.Position,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, paymentToResponse(p))
	}
	return resp
}

func paymentToResponse(p *entity.PaymentEntry) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		ReceiptNumber: p.ReceiptNumber,
		Amount:        p.Amount,
		Method:        p.Method,
		Reference:     p.Reference,
		Bank:          p.Bank,
		ReceivedBy:    p.ReceivedBy,
		AppliedAt:     p.AppliedAt.Format(time.RFC3339),
		Status:        p.Status,
		VoidedBy:      p.VoidedBy,
		VoidReason:    p.VoidReason,
	}
}
