package repository

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// TaxDefinitionRepository define el puerto de persistencia para el catálogo
// de impuestos y retenciones. No hay Delete: las definiciones referenciadas
// por facturas históricas se desactivan, nunca se borran.
type TaxDefinitionRepository interface {
	Create(def *entity.TaxDefinition) error
	Update(def *entity.TaxDefinition) error
	GetByID(id string) (*entity.TaxDefinition, error)
	GetByCompanyAndCode(companyID, code string) (*entity.TaxDefinition, error)
	// ListByCompany devuelve el catálogo de la empresa; con onlyActive=true
	// solo las definiciones vigentes.
	ListByCompany(companyID string, onlyActive bool) ([]*entity.TaxDefinition, error)
}
