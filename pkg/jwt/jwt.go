package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles de la aplicación. El rol viaja en el token para que el middleware RBAC
// decida sin consultar la DB: admin administra el catálogo y anula facturas,
// cajero opera el libro de pagos, vendedor emite facturas.
const (
	RoleAdmin    = "admin"
	RoleCajero   = "cajero"
	RoleVendedor = "vendedor"
)

// ValidRole reporta si s es un rol conocido de la aplicación.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleCajero, RoleVendedor:
		return true
	}
	return false
}

// Claims incluye los claims estándar JWT más los campos propios: el usuario
// que firma las operaciones del libro, su empresa (todo el dominio es
// multi-empresa) y su rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// Generate firma un token HS256 con los claims de la aplicación.
func Generate(secret, issuer string, ttl time.Duration, userID, companyID, role string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia y devuelve los claims de la aplicación.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
