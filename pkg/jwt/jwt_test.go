package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

const (
	testSecret    = "test-secret-key-for-unit-tests"
	testIssuer    = "facturacion-api-test"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

func TestGenerateAndParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testIssuer, time.Hour, testUserID, testCompanyID, jwt.RoleCajero)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := jwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, jwt.RoleCajero, claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testIssuer, -time.Minute, testUserID, testCompanyID, jwt.RoleAdmin)
	require.NoError(t, err)

	_, err = jwt.Parse(testSecret, tok)
	assert.Error(t, err, "un token vencido no debe aceptarse")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := jwt.Generate(testSecret, testIssuer, time.Hour, testUserID, testCompanyID, jwt.RoleAdmin)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret-distinto", tok)
	assert.Error(t, err, "la firma debe verificarse contra el secret del servicio")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", testIssuer, time.Hour, testUserID, testCompanyID, jwt.RoleAdmin)
	assert.Error(t, err)
}

func TestValidRole(t *testing.T) {
	assert.True(t, jwt.ValidRole(jwt.RoleAdmin))
	assert.True(t, jwt.ValidRole(jwt.RoleCajero))
	assert.True(t, jwt.ValidRole(jwt.RoleVendedor))
	assert.False(t, jwt.ValidRole("bodeguero"))
	assert.False(t, jwt.ValidRole(""))
}
