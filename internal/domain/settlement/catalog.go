// Package settlement contiene el motor puro de impuestos y cobro: resolución
// del catálogo por cliente, cálculo de tributos al emitir y derivación del
// estado de pago desde el libro. Ninguna función de este paquete tiene efectos
// secundarios ni toca persistencia.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// CatalogEntry es una definición del catálogo con la tarifa efectiva ya
// resuelta para el cliente (override activo o tarifa de catálogo).
type CatalogEntry struct {
	Definition *entity.TaxDefinition
	Rate       decimal.Decimal
}

// ResolveRate devuelve la tarifa efectiva para una definición: la del override
// activo del cliente si declara una propia, si no la del catálogo.
func ResolveRate(def *entity.TaxDefinition, override *entity.CustomerTaxOverride) decimal.Decimal {
	if override != nil && override.Active && override.Rate != nil {
		return *override.Rate
	}
	return def.Rate
}

// ActiveTaxes filtra el catálogo por flag de activo y por el régimen del
// cliente, resuelve tarifas con los overrides y ordena el resultado:
// primero todos los impuestos, luego todas las retenciones, cada grupo
// ascendente por orden de aplicación (código como desempate determinista).
// Las retenciones van al final porque se calculan sobre la base posterior a
// los impuestos, nunca al revés.
func ActiveTaxes(defs []*entity.TaxDefinition, overrides []*entity.CustomerTaxOverride, customer *entity.Customer) []CatalogEntry {
	byDefinition := make(map[string]*entity.CustomerTaxOverride, len(overrides))
	for _, ov := range overrides {
		if ov.Active && ov.CustomerID == customer.ID {
			byDefinition[ov.TaxDefinitionID] = ov
		}
	}

	entries := make([]CatalogEntry, 0, len(defs))
	for _, def := range defs {
		if !def.Active {
			continue
		}
		if def.Scope != entity.TaxScopeAll && def.Scope != customer.Regime {
			continue
		}
		entries = append(entries, CatalogEntry{
			Definition: def,
			Rate:       ResolveRate(def, byDefinition[def.ID]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Definition, entries[j].Definition
		if a.Kind != b.Kind {
			return a.Kind == entity.TaxKindCharge
		}
		if a.ApplicationOrder != b.ApplicationOrder {
			return a.ApplicationOrder < b.ApplicationOrder
		}
		return a.Code < b.Code
	})
	return entries
}
