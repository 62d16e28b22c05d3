// Package catalog contiene los casos de uso de administración del catálogo de
// impuestos y retenciones. Nada de lo que pasa aquí altera las líneas
// históricas ya congeladas en facturas emitidas.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// UseCase administración de TaxDefinition y CustomerTaxOverride.
type UseCase struct {
	taxRepo      repository.TaxDefinitionRepository
	overrideRepo repository.TaxOverrideRepository
	customerRepo repository.CustomerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	taxRepo repository.TaxDefinitionRepository,
	overrideRepo repository.TaxOverrideRepository,
	customerRepo repository.CustomerRepository,
) *UseCase {
	return &UseCase{taxRepo: taxRepo, overrideRepo: overrideRepo, customerRepo: customerRepo}
}

// CreateTaxDefinition da de alta una definición en el catálogo de la empresa.
func (uc *UseCase) CreateTaxDefinition(companyID string, in dto.CreateTaxDefinitionRequest) (*dto.TaxDefinitionResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTaxKind(in.Kind) || !entity.ValidTaxBasis(in.Basis) {
		return nil, domain.ErrInvalidInput
	}
	if in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	scope := in.Scope
	if scope == "" {
		scope = entity.TaxScopeAll
	}
	if !entity.ValidTaxScope(scope) {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.taxRepo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	def := &entity.TaxDefinition{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Code:             in.Code,
		Name:             in.Name,
		Kind:             in.Kind,
		Rate:             in.Rate,
		Basis:            in.Basis,
		Scope:            scope,
		ApplicationOrder: in.ApplicationOrder,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.taxRepo.Create(def); err != nil {
		return nil, err
	}
	return taxDefinitionToResponse(def), nil
}

// UpdateTaxDefinition modifica una definición existente. El código no se toca
// y no hay borrado físico: desactivar es poner Active en false. Las facturas
// ya emitidas conservan sus líneas congeladas.
func (uc *UseCase) UpdateTaxDefinition(companyID, id string, in dto.UpdateTaxDefinitionRequest) (*dto.TaxDefinitionResponse, error) {
	def, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, domain.ErrNotFound
	}
	if def.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	if in.Name != "" {
		def.Name = in.Name
	}
	if in.Rate != nil {
		if in.Rate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		def.Rate = *in.Rate
	}
	if in.Basis != "" {
		if !entity.ValidTaxBasis(in.Basis) {
			return nil, domain.ErrInvalidInput
		}
		def.Basis = in.Basis
	}
	if in.Scope != "" {
		if !entity.ValidTaxScope(in.Scope) {
			return nil, domain.ErrInvalidInput
		}
		def.Scope = in.Scope
	}
	if in.ApplicationOrder != nil {
		def.ApplicationOrder = *in.ApplicationOrder
	}
	if in.Active != nil {
		def.Active = *in.Active
	}
	def.UpdatedAt = time.Now()

	if err := uc.taxRepo.Update(def); err != nil {
		return nil, err
	}
	return taxDefinitionToResponse(def), nil
}

// ListTaxDefinitions lista el catálogo de la empresa.
func (uc *UseCase) ListTaxDefinitions(companyID string, onlyActive bool) ([]*dto.TaxDefinitionResponse, error) {
	defs, err := uc.taxRepo.ListByCompany(companyID, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TaxDefinitionResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, taxDefinitionToResponse(def))
	}
	return out, nil
}

// SetCustomerOverride crea o actualiza el override del par (cliente,
// definición). Nunca hay dos overrides para el mismo par: si ya existe se
// actualiza en el sitio. No afecta facturas ya emitidas.
func (uc *UseCase) SetCustomerOverride(companyID, customerID string, in dto.SetTaxOverrideRequest) (*dto.TaxOverrideResponse, error) {
	if customerID == "" || in.TaxDefinitionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Rate != nil && in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	def, err := uc.taxRepo.GetByID(in.TaxDefinitionID)
	if err != nil {
		return nil, err
	}
	if def == nil || def.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	ov, err := uc.overrideRepo.GetByCustomerAndDefinition(customerID, in.TaxDefinitionID)
	if err != nil {
		return nil, err
	}
	if ov == nil {
		ov = &entity.CustomerTaxOverride{
			ID:              uuid.New().String(),
			CompanyID:       companyID,
			CustomerID:      customerID,
			TaxDefinitionID: in.TaxDefinitionID,
			Rate:            in.Rate,
			Active:          true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if in.Active != nil {
			ov.Active = *in.Active
		}
		if err := uc.overrideRepo.Create(ov); err != nil {
			return nil, err
		}
	} else {
		ov.Rate = in.Rate
		if in.Active != nil {
			ov.Active = *in.Active
		}
		ov.UpdatedAt = now
		if err := uc.overrideRepo.Update(ov); err != nil {
			return nil, err
		}
	}

	return &dto.TaxOverrideResponse{
		ID:              ov.ID,
		CustomerID:      ov.CustomerID,
		TaxDefinitionID: ov.TaxDefinitionID,
		TaxCode:         def.Code,
		Rate:            ov.Rate,
		Active:          ov.Active,
	}, nil
}

// ListCustomerOverrides lista los overrides de un cliente.
func (uc *UseCase) ListCustomerOverrides(companyID, customerID string) ([]*dto.TaxOverrideResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.overrideRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TaxOverrideResponse, 0, len(list))
	for _, ov := range list {
		out = append(out, &dto.TaxOverrideResponse{
			ID:              ov.ID,
			CustomerID:      ov.CustomerID,
			TaxDefinitionID: ov.TaxDefinitionID,
			Rate:            ov.Rate,
			Active:          ov.Active,
		})
	}
	return out, nil
}

func taxDefinitionToResponse(def *entity.TaxDefinition) *dto.TaxDefinitionResponse {
	return &dto.TaxDefinitionResponse{
		ID:               def.ID,
		CompanyID:        def.CompanyID,
		Code:             def.Code,
		Name:             def.Name,
		Kind:             def.Kind,
		Rate:             def.Rate,
		Basis:            def.Basis,
		Scope:            def.Scope,
		ApplicationOrder: def.ApplicationOrder,
		Active:           def.Active,
	}
}
