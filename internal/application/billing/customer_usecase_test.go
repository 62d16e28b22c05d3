package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
)

func TestCustomerCreate_OK(t *testing.T) {
	uc := billing.NewCustomerUseCase(newFakeCustomerRepo())

	resp, err := uc.Create(testCompanyID, dto.CreateCustomerRequest{
		Name:   "Comercial Andina SAS",
		TaxID:  "800197268-4",
		Regime: "COMUN",
	})
	require.NoError(t, err)
	assert.Equal(t, "COMUN", resp.Regime)
	assert.NotEmpty(t, resp.ID)
}

func TestCustomerCreate_NITConDVInvalido(t *testing.T) {
	uc := billing.NewCustomerUseCase(newFakeCustomerRepo())

	_, err := uc.Create(testCompanyID, dto.CreateCustomerRequest{
		Name:   "Comercial Andina SAS",
		TaxID:  "800197268-9",
		Regime: "COMUN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerCreate_CedulaSinDVNoSeValida(t *testing.T) {
	uc := billing.NewCustomerUseCase(newFakeCustomerRepo())

	// Cédula (menos de 10 dígitos): no aplica dígito de verificación
	_, err := uc.Create(testCompanyID, dto.CreateCustomerRequest{
		Name:   "Juan Pérez",
		TaxID:  "79456123",
		Regime: "SIMPLIFICADO",
	})
	assert.NoError(t, err)
}

func TestCustomerCreate_RegimenInvalido(t *testing.T) {
	uc := billing.NewCustomerUseCase(newFakeCustomerRepo())

	_, err := uc.Create(testCompanyID, dto.CreateCustomerRequest{
		Name:   "Comercial Andina SAS",
		TaxID:  "800197268-4",
		Regime: "ESPECIAL",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomerCreate_NITDuplicado(t *testing.T) {
	uc := billing.NewCustomerUseCase(newFakeCustomerRepo())

	in := dto.CreateCustomerRequest{Name: "Comercial Andina SAS", TaxID: "800197268-4", Regime: "COMUN"}
	_, err := uc.Create(testCompanyID, in)
	require.NoError(t, err)

	_, err = uc.Create(testCompanyID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}
