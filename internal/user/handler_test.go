package user

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func setupHandlerApp(t *testing.T) *fiber.App {
	t.Helper()
	svc := NewService(NewMemoryRepository(), nil)
	h := NewHandler(svc)

	app := fiber.New()
	users := app.Group("/users")
	users.Post("/register", h.Register)
	users.Get("/", h.List)
	users.Get("/:id", h.Get)
	users.Get("/:id/email", h.GetEmailInfo)
	users.Put("/:id/email", h.ChangeEmail)
	users.Put("/:id/password", h.ChangePassword)
	users.Put("/:id/phone", h.ChangePhone)
	users.Put("/:id/name", h.ChangeName)
	users.Delete("/:id", h.Delete)
	return app
}

type testResponse struct {
	Code   int
	Body   *bytes.Buffer
	header http.Header
}

func (r testResponse) Header() http.Header { return r.header }

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) testResponse {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	payload, _ := io.ReadAll(resp.Body)
	return testResponse{Code: resp.StatusCode, Body: bytes.NewBuffer(payload), header: resp.Header}
}

func registerPayload() map[string]string {
	return map[string]string{
		"first_name":   "John",
		"last_name":    "Doe",
		"email":        "john@example.com",
		"password":     "password123",
		"country_code": "UA",
		"phone_number": "123456789",
		"role":         "CUSTOMER",
	}
}

func TestHandlerRegister(t *testing.T) {
	app := setupHandlerApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/users/register", registerPayload())
	if resp.Code != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get(fiber.HeaderLocation); loc == "" {
		t.Fatal("expected Location header")
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] == nil || body["email"] != "john@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
	// projection must not leak secrets or verification state
	for _, forbidden := range []string{"password", "password_hash", "email_verified", "phone_verified"} {
		if _, ok := body[forbidden]; ok {
			t.Fatalf("projection leaks %s", forbidden)
		}
	}
}

func TestHandlerRegisterDuplicateEmail(t *testing.T) {
	app := setupHandlerApp(t)

	if resp := doJSON(t, app, fiber.MethodPost, "/users/register", registerPayload()); resp.Code != fiber.StatusCreated {
		t.Fatalf("first register: %d", resp.Code)
	}

	second := registerPayload()
	second["phone_number"] = "987654321"
	resp := doJSON(t, app, fiber.MethodPost, "/users/register", second)
	if resp.Code != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestHandlerRegisterValidationErrors(t *testing.T) {
	app := setupHandlerApp(t)

	payload := registerPayload()
	payload["email"] = "not-an-email"
	payload["password"] = "short"
	resp := doJSON(t, app, fiber.MethodPost, "/users/register", payload)
	if resp.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body.Errors["email"]; !ok {
		t.Fatalf("expected email error: %v", body.Errors)
	}
	if _, ok := body.Errors["password"]; !ok {
		t.Fatalf("expected password error: %v", body.Errors)
	}
}

func TestHandlerRegisterUnknownRole(t *testing.T) {
	app := setupHandlerApp(t)

	payload := registerPayload()
	payload["role"] = "SUPERUSER"
	resp := doJSON(t, app, fiber.MethodPost, "/users/register", payload)
	if resp.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "CUSTOMER, BUSINESS_OWNER, ADMIN") {
		t.Fatalf("error should list allowed roles: %s", resp.Body.String())
	}
}

func TestHandlerGetNotFound(t *testing.T) {
	app := setupHandlerApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/users/99", nil)
	if resp.Code != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestHandlerInvalidID(t *testing.T) {
	app := setupHandlerApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/users/abc", nil)
	if resp.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestHandlerChangeNameNoOp(t *testing.T) {
	app := setupHandlerApp(t)

	if resp := doJSON(t, app, fiber.MethodPost, "/users/register", registerPayload()); resp.Code != fiber.StatusCreated {
		t.Fatalf("register: %d", resp.Code)
	}

	resp := doJSON(t, app, fiber.MethodPut, "/users/1/name", map[string]string{
		"first_name": "John",
		"last_name":  "Doe",
	})
	if resp.Code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for no-op name change, got %d", resp.Code)
	}
}

func TestHandlerChangeEmailFlow(t *testing.T) {
	app := setupHandlerApp(t)

	if resp := doJSON(t, app, fiber.MethodPost, "/users/register", registerPayload()); resp.Code != fiber.StatusCreated {
		t.Fatalf("register: %d", resp.Code)
	}

	resp := doJSON(t, app, fiber.MethodPut, "/users/1/email", map[string]string{"new_email": "john.new@example.com"})
	if resp.Code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, fiber.MethodGet, "/users/1/email", nil)
	if resp.Code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var info EmailInfo
	if err := json.Unmarshal(resp.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode email info: %v", err)
	}
	if info.Email != "john.new@example.com" || info.EmailVerified {
		t.Fatalf("unexpected email info: %+v", info)
	}
}

func TestHandlerDelete(t *testing.T) {
	app := setupHandlerApp(t)

	if resp := doJSON(t, app, fiber.MethodPost, "/users/register", registerPayload()); resp.Code != fiber.StatusCreated {
		t.Fatalf("register: %d", resp.Code)
	}

	resp := doJSON(t, app, fiber.MethodDelete, "/users/1", nil)
	if resp.Code != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = doJSON(t, app, fiber.MethodDelete, "/users/1", nil)
	if resp.Code != fiber.StatusNotFound {
		t.Fatalf("expected 404 on repeated delete, got %d", resp.Code)
	}
}
