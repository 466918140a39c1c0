package jwt_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todolist/api/pkg/auth"
	"github.com/todolist/api/pkg/security/jwt"
)

const (
	testSecret = "unit-test-secret"
	testIssuer = "todo-api"
)

func testUser() auth.User {
	return auth.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
}

func TestGenerateVerifyClaims(t *testing.T) {
	user := testUser()
	gen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)

	tokenStr, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	parsed, err := jwtlib.ParseWithClaims(tokenStr, &jwt.Claims{}, func(*jwtlib.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(*jwt.Claims)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

// guardedApp mounts the middleware in front of a handler that echoes the
// resolved identity.
func guardedApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwt.NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"email":  c.Locals("email"),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestMiddlewareMissingHeader(t *testing.T) {
	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestMiddlewareRequiresBearerPrefix(t *testing.T) {
	gen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	// A valid token without the Bearer prefix is still rejected
	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["message"])
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestMiddlewareRejectsExpiredToken(t *testing.T) {
	gen := jwt.NewGenerator(testSecret, testIssuer, -time.Minute)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	gen := jwt.NewGenerator("other-secret", testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	resp, _ := doRequest(t, guardedApp(testSecret, testIssuer), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsWrongIssuer(t *testing.T) {
	gen := jwt.NewGenerator(testSecret, "someone-else", time.Hour)
	token, err := gen.Generate(context.Background(), testUser())
	require.NoError(t, err)

	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", body["message"])
}

func TestMiddlewareAttachesIdentity(t *testing.T) {
	user := testUser()
	gen := jwt.NewGenerator(testSecret, testIssuer, time.Hour)
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	resp, body := doRequest(t, guardedApp(testSecret, testIssuer), "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user.ID.String(), body["userId"])
	assert.Equal(t, user.Email, body["email"])
}
