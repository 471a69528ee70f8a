package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/domain"
	httpapi "github.com/jhoicas/Activos-api/internal/interfaces/http"
	"github.com/jhoicas/Activos-api/pkg/jwt"
)

const testJWTSecret = "secreto-de-prueba-para-tests"

// stubChecker verificador de permisos con respuestas fijas por nivel/módulo.
type stubChecker struct {
	allowed map[string]bool // "<nivel>/<módulo>/<acción>" -> permitido
	err     error
}

func (s *stubChecker) Require(ctx context.Context, userLevelID, module, action string) error {
	if s.err != nil {
		return s.err
	}
	if userLevelID == "admin" {
		return nil
	}
	if s.allowed[fmt.Sprintf("%s/%s/%s", userLevelID, module, action)] {
		return nil
	}
	return domain.ErrForbidden
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T, checker *stubChecker) *fiber.App {
	t.Helper()
	app := fiber.New()
	protected := app.Group("/", httpapi.AuthMiddleware(testJWTSecret))
	protected.Get("/stock", httpapi.RequirePermission("stock", "view", checker), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": httpapi.GetUserID(c), "level": httpapi.GetUserLevelID(c)})
	})
	protected.Delete("/stock", httpapi.RequirePermission("stock", "delete", checker), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func tokenForLevel(t *testing.T, userLevelID string) string {
	t.Helper()
	token, err := jwt.Generate(testJWTSecret, "42", "jperez", userLevelID, "activos-api", 60)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_SinTokenRetorna401(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	resp := doRequest(t, app, http.MethodGet, "/stock", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_FormatoInvalidoRetorna401(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	req := httptest.NewRequest(http.MethodGet, "/stock", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_FirmaIncorrectaRetorna401(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	forged, err := jwt.Generate("otro-secreto", "42", "jperez", "admin", "activos-api", 60)
	require.NoError(t, err)
	resp := doRequest(t, app, http.MethodGet, "/stock", forged)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_TokenExpiradoRetorna401(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	expired, err := jwt.Generate(testJWTSecret, "42", "jperez", "admin", "activos-api", -5)
	require.NoError(t, err)
	resp := doRequest(t, app, http.MethodGet, "/stock", expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_TokenValidoPasaYExponeLosLocals(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	resp := doRequest(t, app, http.MethodGet, "/stock", tokenForLevel(t, "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePermission_AdminAccedeATodo(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})
	token := tokenForLevel(t, "admin")

	resp := doRequest(t, app, http.MethodGet, "/stock", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doRequest(t, app, http.MethodDelete, "/stock", token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRequirePermission_NivelSinPermisoRetorna403(t *testing.T) {
	app := buildTestApp(t, &stubChecker{allowed: map[string]bool{
		"bodeguero/stock/view": true,
	}})
	token := tokenForLevel(t, "bodeguero")

	resp := doRequest(t, app, http.MethodGet, "/stock", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "view sí está concedido")
	resp = doRequest(t, app, http.MethodDelete, "/stock", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "delete no está concedido")
}

func TestRequirePermission_NivelSinFilaRetorna403(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	resp := doRequest(t, app, http.MethodGet, "/stock", tokenForLevel(t, "consulta"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "default deny: sin fila nada está permitido")
}

func TestRequirePermission_FalloDeInfraRetorna503(t *testing.T) {
	app := buildTestApp(t, &stubChecker{err: fmt.Errorf("conexión rechazada")})

	resp := doRequest(t, app, http.MethodGet, "/stock", tokenForLevel(t, "bodeguero"))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequirePermission_TokenSinNivelRetorna401(t *testing.T) {
	app := buildTestApp(t, &stubChecker{})

	resp := doRequest(t, app, http.MethodGet, "/stock", tokenForLevel(t, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
