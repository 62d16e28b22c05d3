package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// TaxOverrideRepository define el puerto de persistencia para los overrides
// de tarifa por cliente. El constraint único (customer_id, tax_definition_id)
// vive en la base de datos.
type TaxOverrideRepository interface {
	Create(ov *entity.CustomerTaxOverride) error
	Update(ov *entity.CustomerTaxOverride) error
	GetByCustomerAndDefinition(customerID, taxDefinitionID string) (*entity.CustomerTaxOverride, error)
	ListByCustomer(customerID string) ([]*entity.CustomerTaxOverride, error)
}
