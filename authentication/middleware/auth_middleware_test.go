package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/1Garv23/share-smote/internal/util"
	"github.com/1Garv23/share-smote/models"
)

const testSecret = "test-secret"

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", JwtAuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("x-user-id").(string))
	})
	return app
}

func TestJwtAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	app := newProtectedApp(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtAuthMiddleware_BadFormat(t *testing.T) {
	t.Parallel()

	app := newProtectedApp(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtAuthMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	app := newProtectedApp(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtAuthMiddleware_ValidTokenExposesUserID(t *testing.T) {
	t.Parallel()

	user := &models.User{}
	user.ID = 42
	token, err := util.CreateAccessToken(user, testSecret)
	require.NoError(t, err)

	app := newProtectedApp(t)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "42", string(body))
}

func TestRequestID_SetsHeader(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
