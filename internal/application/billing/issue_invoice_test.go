package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

type issueEnv struct {
	uc           *billing.IssueInvoiceUseCase
	invoiceRepo  *fakeInvoiceRepo
	taxRepo      *fakeTaxRepo
	overrideRepo *fakeOverrideRepo
}

func newIssueEnv(defs ...*entity.TaxDefinition) *issueEnv {
	invRepo := newFakeInvoiceRepo()
	payRepo := newFakePaymentRepo()
	custRepo := newFakeCustomerRepo(&entity.Customer{
		ID:        testCustomerID,
		CompanyID: testCompanyID,
		Name:      "Comercial Andina SAS",
		TaxID:     "900123456-7",
		Regime:    "COMUN",
	})
	taxRepo := &fakeTaxRepo{defs: defs}
	ovRepo := &fakeOverrideRepo{}
	uc := billing.NewIssueInvoiceUseCase(
		&fakeTxRunner{invoiceRepo: invRepo, paymentRepo: payRepo},
		custRepo, taxRepo, ovRepo, invRepo,
	)
	return &issueEnv{uc: uc, invoiceRepo: invRepo, taxRepo: taxRepo, overrideRepo: ovRepo}
}

func iva19() *entity.TaxDefinition {
	return &entity.TaxDefinition{
		ID:               uuid.New().String(),
		CompanyID:        testCompanyID,
		Code:             "IVA19",
		Name:             "IVA 19%",
		Kind:             entity.TaxKindCharge,
		Rate:             decimal.RequireFromString("19"),
		Basis:            entity.TaxBasisSubtotal,
		Scope:            entity.TaxScopeAll,
		ApplicationOrder: 10,
		Active:           true,
	}
}

func rfte25() *entity.TaxDefinition {
	return &entity.TaxDefinition{
		ID:               uuid.New().String(),
		CompanyID:        testCompanyID,
		Code:             "RFTE",
		Name:             "Retención en la fuente 2.5%",
		Kind:             entity.TaxKindWithholding,
		Rate:             decimal.RequireFromString("2.5"),
		Basis:            entity.TaxBasisSubtotal,
		Scope:            entity.TaxScopeAll,
		ApplicationOrder: 10,
		Active:           true,
	}
}

func issueRequest() dto.IssueInvoiceRequest {
	return dto.IssueInvoiceRequest{
		CustomerID: testCustomerID,
		Number:     "FE-2001",
		Subtotal:   decimal.RequireFromString("100.00"),
		Discount:   decimal.Zero,
		DueDate:    time.Now().AddDate(0, 0, 30),
	}
}

func TestIssueInvoice_CongelaLineasYTotales(t *testing.T) {
	env := newIssueEnv(iva19(), rfte25())

	resp, err := env.uc.IssueInvoice(context.Background(), testCompanyID, testUserID, issueRequest())
	require.NoError(t, err)

	assert.True(t, resp.ChargesTotal.Equal(decimal.RequireFromString("19.00")))
	assert.True(t, resp.WithholdingsTotal.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("116.50")))
	assert.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	assert.Equal(t, entity.SubmissionStatusPending, resp.SubmissionStatus)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "IVA19", resp.Lines[0].TaxCode, "los cargos van antes que las retenciones")
	assert.Equal(t, "RFTE", resp.Lines[1].TaxCode)
	assert.Equal(t, 1, resp.Lines[0].Position)
	assert.Equal(t, 2, resp.Lines[1].Position)

	// Las líneas quedan persistidas junto con la cabecera
	lines, err := env.invoiceRepo.GetLinesByInvoiceID(resp.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestIssueInvoice_EditarCatalogoNoTocaFacturasEmitidas(t *testing.T) {
	def := iva19()
	env := newIssueEnv(def)

	resp, err := env.uc.IssueInvoice(context.Background(), testCompanyID, testUserID, issueRequest())
	require.NoError(t, err)

	// Cambiar la tarifa del catálogo después de emitir
	def.Rate = decimal.RequireFromString("25")

	lines, err := env.invoiceRepo.GetLinesByInvoiceID(resp.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Rate.Equal(decimal.RequireFromString("19")), "la línea congelada conserva la tarifa del momento de emisión")
	assert.True(t, lines[0].Amount.Equal(decimal.RequireFromString("19.00")))
}

func TestIssueInvoice_CatalogoVacio(t *testing.T) {
	env := newIssueEnv()

	resp, err := env.uc.IssueInvoice(context.Background(), testCompanyID, testUserID, issueRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("100.00")))
}

func TestIssueInvoice_DescuentoReduceLaBase(t *testing.T) {
	env := newIssueEnv(iva19())

	in := issueRequest()
	in.Discount = decimal.RequireFromString("20.00")
	resp, err := env.uc.IssueInvoice(context.Background(), testCompanyID, testUserID, in)
	require.NoError(t, err)

	assert.True(t, resp.TaxableBase.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, resp.ChargesTotal.Equal(decimal.RequireFromString("15.20")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("95.20")))
}

func TestIssueInvoice_NumeroDuplicado(t *testing.T) {
	env := newIssueEnv(iva19())
	ctx := context.Background()

	_, err := env.uc.IssueInvoice(ctx, testCompanyID, testUserID, issueRequest())
	require.NoError(t, err)

	_, err = env.uc.IssueInvoice(ctx, testCompanyID, testUserID, issueRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, env.invoiceRepo.invoices, 1,
		"el número repetido se detecta antes de abrir la transacción: no queda nada a medias")
}

func TestIssueInvoice_ValidacionesDeEntrada(t *testing.T) {
	env := newIssueEnv(iva19())
	ctx := context.Background()

	casos := []struct {
		nombre string
		mutar  func(*dto.IssueInvoiceRequest)
	}{
		{"subtotal cero", func(in *dto.IssueInvoiceRequest) { in.Subtotal = decimal.Zero }},
		{"descuento negativo", func(in *dto.IssueInvoiceRequest) { in.Discount = decimal.RequireFromString("-1") }},
		{"descuento mayor que subtotal", func(in *dto.IssueInvoiceRequest) { in.Discount = decimal.RequireFromString("150.00") }},
		{"sin numero", func(in *dto.IssueInvoiceRequest) { in.Number = "" }},
		{"sin vencimiento", func(in *dto.IssueInvoiceRequest) { in.DueDate = time.Time{} }},
		{"metodo de pago invalido", func(in *dto.IssueInvoiceRequest) { in.PaymentMethod = "BITCOIN" }},
	}
	for _, c := range casos {
		in := issueRequest()
		c.mutar(&in)
		_, err := env.uc.IssueInvoice(ctx, testCompanyID, testUserID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso: %s", c.nombre)
	}
}

func TestIssueInvoice_ClienteInexistente(t *testing.T) {
	env := newIssueEnv(iva19())

	in := issueRequest()
	in.CustomerID = uuid.New().String()
	_, err := env.uc.IssueInvoice(context.Background(), testCompanyID, testUserID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueInvoice_ClienteDeOtraEmpresa(t *testing.T) {
	env := newIssueEnv(iva19())

	_, err := env.uc.IssueInvoice(context.Background(), "99999999-9999-9999-9999-999999999999", testUserID, issueRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
