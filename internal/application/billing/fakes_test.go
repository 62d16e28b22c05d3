package billing_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Repositorios en memoria para los tests de casos de uso. Implementan los
// mismos puertos que los adaptadores de PostgreSQL; el bloqueo de fila no
// aplica en memoria, así que GetByIDForUpdate delega en GetByID.

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.AppliedTaxLine
	createErr error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		lines:    make(map[string][]*entity.AppliedTaxLine),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.invoices {
		if existing.CompanyID == inv.CompanyID && existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateLine(line *entity.AppliedTaxLine) error {
	cp := *line
	r.lines[line.InvoiceID] = append(r.lines[line.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetByCompanyAndNumber(companyID, number string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.Number == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.AppliedTaxLine, error) {
	return r.lines[invoiceID], nil
}

func (r *fakeInvoiceRepo) UpdateSettlement(inv *entity.Invoice) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.AmountPaid = inv.AmountPaid
	stored.Outstanding = inv.Outstanding
	stored.PaymentStatus = inv.PaymentStatus
	stored.PaidAt = inv.PaidAt
	stored.AnnulledBy = inv.AnnulledBy
	stored.AnnulledAt = inv.AnnulledAt
	stored.AnnulReason = inv.AnnulReason
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) UpdateSubmission(inv *entity.Invoice) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.SubmissionStatus = inv.SubmissionStatus
	stored.SubmissionRef = inv.SubmissionRef
	stored.SubmissionResponse = inv.SubmissionResponse
	stored.UpdatedAt = inv.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) ListUnsettledByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		switch inv.PaymentStatus {
		case entity.PaymentStatusPending, entity.PaymentStatusPartial, entity.PaymentStatusOverdue:
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	entries map[string]*entity.PaymentEntry
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{entries: make(map[string]*entity.PaymentEntry)}
}

func (r *fakePaymentRepo) Create(p *entity.PaymentEntry) error {
	for _, existing := range r.entries {
		if existing.CompanyID == p.CompanyID && existing.ReceiptNumber == p.ReceiptNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.entries[p.ID] = &cp
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.PaymentEntry, error) {
	p, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) GetByIDForUpdate(id string) (*entity.PaymentEntry, error) {
	return r.GetByID(id)
}

func (r *fakePaymentRepo) ListByInvoice(invoiceID string) ([]*entity.PaymentEntry, error) {
	var out []*entity.PaymentEntry
	for _, p := range r.entries {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumAppliedByInvoice(invoiceID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.entries {
		if p.InvoiceID == invoiceID && p.Status == entity.PaymentEntryApplied {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

func (r *fakePaymentRepo) UpdateVoid(p *entity.PaymentEntry) error {
	stored, ok := r.entries[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = p.Status
	stored.VoidedBy = p.VoidedBy
	stored.VoidedAt = p.VoidedAt
	stored.VoidReason = p.VoidReason
	return nil
}

// fakeTxRunner ejecuta el callback directamente sobre los repos en memoria.
type fakeTxRunner struct {
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return fn(r.invoiceRepo, r.paymentRepo)
}

var _ billing.BillingTxRunner = (*fakeTxRunner)(nil)

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newFakeCustomerRepo(customers ...*entity.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[string]*entity.Customer)}
	for _, c := range customers {
		r.customers[c.ID] = c
	}
	return r
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

type fakeTaxRepo struct {
	defs []*entity.TaxDefinition
}

func (r *fakeTaxRepo) Create(def *entity.TaxDefinition) error {
	r.defs = append(r.defs, def)
	return nil
}

func (r *fakeTaxRepo) Update(def *entity.TaxDefinition) error {
	for i, d := range r.defs {
		if d.ID == def.ID {
			r.defs[i] = def
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTaxRepo) GetByID(id string) (*entity.TaxDefinition, error) {
	for _, d := range r.defs {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeTaxRepo) GetByCompanyAndCode(companyID, code string) (*entity.TaxDefinition, error) {
	for _, d := range r.defs {
		if d.CompanyID == companyID && d.Code == code {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeTaxRepo) ListByCompany(companyID string, onlyActive bool) ([]*entity.TaxDefinition, error) {
	var out []*entity.TaxDefinition
	for _, d := range r.defs {
		if d.CompanyID != companyID {
			continue
		}
		if onlyActive && !d.Active {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type fakeOverrideRepo struct {
	overrides []*entity.CustomerTaxOverride
}

func (r *fakeOverrideRepo) Create(ov *entity.CustomerTaxOverride) error {
	r.overrides = append(r.overrides, ov)
	return nil
}

func (r *fakeOverrideRepo) Update(ov *entity.CustomerTaxOverride) error {
	for i, o := range r.overrides {
		if o.ID == ov.ID {
			r.overrides[i] = ov
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOverrideRepo) GetByCustomerAndDefinition(customerID, taxDefinitionID string) (*entity.CustomerTaxOverride, error) {
	for _, o := range r.overrides {
		if o.CustomerID == customerID && o.TaxDefinitionID == taxDefinitionID {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOverrideRepo) ListByCustomer(customerID string) ([]*entity.CustomerTaxOverride, error) {
	var out []*entity.CustomerTaxOverride
	for _, o := range r.overrides {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}
