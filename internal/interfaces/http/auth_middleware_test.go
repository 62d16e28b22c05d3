package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "facturacion-api-test"
)

// rbacTestApp monta rutas stub con la misma política que el router real:
// el catálogo de tributos es solo de admin, el libro de pagos lo operan
// admin y cajero, y la emisión de facturas admin y vendedor. Los handlers
// devuelven quién pasó, para verificar los locals.
func rbacTestApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api", apphttp.AuthMiddleware(testJWTSecret))

	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	}
	api.Post("/taxes", apphttp.RequireRole(jwt.RoleAdmin), ok)
	api.Post("/payments", apphttp.RequireRole(jwt.RoleAdmin, jwt.RoleCajero), ok)
	api.Post("/invoices", apphttp.RequireRole(jwt.RoleAdmin, jwt.RoleVendedor), ok)
	return app
}

// tokenFor emite un bearer token de prueba con el rol dado.
func tokenFor(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, testIssuer, time.Hour, testUserID, testCompanyID, role)
	require.NoError(t, err, "debe generarse un token de prueba")
	return "Bearer " + tok
}

func post(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Política RBAC del motor
// ──────────────────────────────────────────────────────────────────────────────

func TestRBAC_AdminAdministraElCatalogo(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/taxes", tokenFor(t, jwt.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, jwt.RoleAdmin, body["role"])
	assert.Equal(t, testCompanyID, body["company_id"],
		"el handler debe ver la empresa del token para filtrar sus datos")
}

func TestRBAC_CajeroOperaElLibroDePagos(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/payments", tokenFor(t, jwt.RoleCajero))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"cajero debe poder registrar y anular pagos")
}

func TestRBAC_CajeroNoTocaElCatalogo(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/taxes", tokenFor(t, jwt.RoleCajero))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"editar tarifas cambia facturas futuras: solo admin")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRBAC_VendedorEmitePeroNoCobra(t *testing.T) {
	app := rbacTestApp()

	resp := post(t, app, "/api/invoices", tokenFor(t, jwt.RoleVendedor))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "vendedor emite facturas")

	resp = post(t, app, "/api/payments", tokenFor(t, jwt.RoleVendedor))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el libro de pagos es de cajeros y admins")
}

// Un token firmado sin claim de rol no debe caer en 403: es un token
// defectuoso, no un rol sin permiso.
func TestRBAC_TokenSinRolRetorna401(t *testing.T) {
	app := rbacTestApp()
	tok, err := jwt.Generate(testJWTSecret, testIssuer, time.Hour, testUserID, testCompanyID, "")
	require.NoError(t, err)

	resp := post(t, app, "/api/taxes", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware — validación del bearer token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/invoices", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenMalformadoRetorna401(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/invoices", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_FirmaDeOtroSecretRetorna401(t *testing.T) {
	app := rbacTestApp()
	tok, err := jwt.Generate("otro-secret-distinto", testIssuer, time.Hour, testUserID, testCompanyID, jwt.RoleAdmin)
	require.NoError(t, err)

	resp := post(t, app, "/api/taxes", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaLosClaimsEnLocals(t *testing.T) {
	app := rbacTestApp()
	resp := post(t, app, "/api/invoices", tokenFor(t, jwt.RoleAdmin))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, jwt.RoleAdmin, body["role"])
}
