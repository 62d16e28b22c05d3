package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/nit"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El régimen es obligatorio: determina qué
// tributos del catálogo le aplican al facturar.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Regime != entity.TaxScopeRegimenComun && in.Regime != entity.TaxScopeRegimenSimplificado {
		return nil, domain.ErrInvalidInput
	}
	// NIT con dígito de verificación: validarlo. Cédulas pasan sin validar.
	if nit.HasVerificationDigit(in.TaxID) {
		if err := nit.ValidateVerificationDigit(in.TaxID); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, _ := uc.repo.GetByCompanyAndTaxID(companyID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Regime:    in.Regime,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerToResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customerToResponse(c), nil
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Regime:    c.Regime,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}
