// seed_taxes genera el script SQL para poblar el catálogo de tributos
// colombiano típico (IVA, INC y retenciones) para una empresa.
//
// Uso: go run ./cmd/seed_taxes <company_uuid>
// Escribe: internal/infrastructure/postgres/migrations/002_seed_taxes.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type seedTax struct {
	Code  string
	Name  string
	Kind  string
	Rate  string
	Basis string
	Scope string
	Order int
}

// Catálogo de arranque: cargos primero, retenciones después. Las tarifas son
// las vigentes a 2025; cada empresa puede ajustarlas desde la API.
var catalogo = []seedTax{
	{"IVA19", "IVA tarifa general 19%", "CHARGE", "19.00", "SUBTOTAL", "ALL", 10},
	{"IVA5", "IVA tarifa reducida 5%", "CHARGE", "5.00", "SUBTOTAL", "ALL", 20},
	{"INC8", "Impuesto nacional al consumo 8%", "CHARGE", "8.00", "SUBTOTAL", "ALL", 30},
	{"RFTE", "Retención en la fuente servicios 2.5%", "WITHHOLDING", "2.50", "SUBTOTAL", "COMUN", 10},
	{"RTEIVA", "Retención de IVA 15%", "WITHHOLDING", "15.00", "SUBTOTAL", "COMUN", 20},
	{"RTEICA", "Retención de ICA 0.966%", "WITHHOLDING", "0.966", "SUBTOTAL", "COMUN", 30},
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_taxes <company_uuid>")
		os.Exit(1)
	}
	companyID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "company_uuid inválido: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	b.WriteString("-- Catálogo de tributos de arranque (generado por cmd/seed_taxes)\n")
	fmt.Fprintf(&b, "-- Empresa: %s\n\n", companyID)
	for _, t := range catalogo {
		fmt.Fprintf(&b,
			"INSERT INTO tax_definitions (id, company_id, code, name, kind, rate, basis, scope, application_order, active, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, '%s', '%s', %d, TRUE, now(), now())\n"+
				"ON CONFLICT (company_id, code) DO NOTHING;\n\n",
			uuid.New(), companyID, t.Code, escape(t.Name), t.Kind, t.Rate, t.Basis, t.Scope, t.Order,
		)
	}

	outPath := filepath.Join("internal", "infrastructure", "postgres", "migrations", "002_seed_taxes.sql")
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s (%d tributos)\n", outPath, len(catalogo))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
