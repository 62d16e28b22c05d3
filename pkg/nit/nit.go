// Package nit valida el dígito de verificación del NIT colombiano
// (Orden Administrativa 4 de 1989, DIAN).
package nit

import (
	"fmt"
	"unicode"
)

// pesos para el cálculo del dígito de verificación, aplicados a los 9
// primeros dígitos del NIT de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// HasVerificationDigit reporta si taxID trae dígito de verificación
// (10 dígitos). Las cédulas y los NIT sin DV no se validan.
func HasVerificationDigit(taxID string) bool {
	return len(extractDigits(taxID)) == 10
}

// ValidateVerificationDigit valida que el NIT (con o sin puntos/guiones)
// tenga un dígito de verificación correcto según el algoritmo módulo 11.
// taxID puede ser "900123456-7", "900.123.456-7" o "9001234567".
func ValidateVerificationDigit(taxID string) error {
	digits := extractDigits(taxID)
	if len(digits) != 10 {
		return fmt.Errorf("nit: se esperan 10 dígitos (9 del NIT más DV), se encontraron %d", len(digits))
	}
	expected, err := ComputeVerificationDigit(taxID)
	if err != nil {
		return err
	}
	if digits[9] != expected {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", expected, digits[9])
	}
	return nil
}

// ComputeVerificationDigit calcula el dígito de verificación para los 9
// primeros dígitos del NIT.
func ComputeVerificationDigit(taxID string) (byte, error) {
	digits := extractDigits(taxID)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder == 0 || remainder == 1 {
		return byte('0' + remainder), nil
	}
	return byte('0' + (11 - remainder)), nil
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
