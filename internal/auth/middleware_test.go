package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/haroonchishty/sca-backend/pkg/util"
)

type fakeVerifier struct {
	identity *Identity
	err      error
}

func (f *fakeVerifier) Verify(string) (*Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type captureHandler struct {
	calls    int
	identity *Identity
}

func (h *captureHandler) handle(c *fiber.Ctx) error {
	h.calls++
	h.identity, _ = IdentityFromContext(c)
	return c.JSON(fiber.Map{"message": "ok"})
}

func newTestApp(verifier TokenVerifier) (*fiber.App, *Middleware) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"message": domainErr.Message,
				"error":   domainErr.Detail(),
			})
		},
	})
	return app, NewMiddleware(verifier, zap.NewNop())
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestRequireAuth_InjectsIdentity(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{SubjectID: "s", Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Get("/protected", mw.RequireAuth, handler.handle)

	res := doRequest(t, app, "GET", "/protected", "", map[string]string{
		"Authorization": "Bearer tok",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, handler.calls)
	require.NotNil(t, handler.identity)
	assert.Equal(t, "a@b.com", handler.identity.Username)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	app, mw := newTestApp(&fakeVerifier{identity: &Identity{}})
	handler := &captureHandler{}
	app.Get("/protected", mw.RequireAuth, handler.handle)

	res := doRequest(t, app, "GET", "/protected", "", nil)

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	app, mw := newTestApp(&fakeVerifier{identity: &Identity{}})
	handler := &captureHandler{}
	app.Get("/protected", mw.RequireAuth, handler.handle)

	for _, header := range []string{"Basic dXNlcjpwYXNz", "bearer tok", "Bearer"} {
		res := doRequest(t, app, "GET", "/protected", "", map[string]string{
			"Authorization": header,
		})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "header %q", header)
	}
	assert.Equal(t, 0, handler.calls)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	app, mw := newTestApp(&fakeVerifier{err: errors.New("bad signature")})
	handler := &captureHandler{}
	app.Get("/protected", mw.RequireAuth, handler.handle)

	res := doRequest(t, app, "GET", "/protected", "", map[string]string{
		"Authorization": "Bearer tok",
	})

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireAuth_VerifierUnavailableFailsClosed(t *testing.T) {
	app, mw := newTestApp(nil)
	handler := &captureHandler{}
	app.Get("/protected", mw.RequireAuth, handler.handle)

	res := doRequest(t, app, "GET", "/protected", "", map[string]string{
		"Authorization": "Bearer tok",
	})

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireUserMatch_MatchingPathParam(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Put("/users/:userId", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "PUT", "/users/a@b.com", `{"firstName":"A"}`, map[string]string{
		"Authorization":   "Bearer tok",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, handler.calls)
}

func TestRequireUserMatch_MismatchForbidden(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Put("/users/:userId", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "PUT", "/users/other@b.com", "", map[string]string{
		"Authorization":   "Bearer tok",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireUserMatch_QueryParamMismatch(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Get("/profile", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "GET", "/profile?userId=other@b.com", "", map[string]string{
		"Authorization":   "Bearer tok",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireUserMatch_BodyMismatch(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Post("/profile", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "POST", "/profile", `{"userId":"other@b.com"}`, map[string]string{
		"Authorization":   "Bearer tok",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}

func TestRequireUserMatch_NoTargetProceeds(t *testing.T) {
	verifier := &fakeVerifier{identity: &Identity{Username: "a@b.com"}}
	app, mw := newTestApp(verifier)
	handler := &captureHandler{}
	app.Get("/profile", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "GET", "/profile", "", map[string]string{
		"Authorization":   "Bearer tok",
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, handler.calls)
}

func TestRequireUserMatch_InternalBypass(t *testing.T) {
	// Neither an authorization header nor a gateway marker: trusted
	// internal invocation, even with a foreign userId in the body.
	app, mw := newTestApp(&fakeVerifier{err: errors.New("should not be called")})
	handler := &captureHandler{}
	app.Post("/profile", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "POST", "/profile", `{"userId":"other@b.com"}`, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 1, handler.calls)
}

func TestRequireUserMatch_GatewayMarkerRequiresAuth(t *testing.T) {
	app, mw := newTestApp(&fakeVerifier{identity: &Identity{Username: "a@b.com"}})
	handler := &captureHandler{}
	app.Post("/profile", mw.RequireUserMatch, handler.handle)

	res := doRequest(t, app, "POST", "/profile", "", map[string]string{
		"X-Forwarded-For": "203.0.113.9",
	})

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, 0, handler.calls)
}
