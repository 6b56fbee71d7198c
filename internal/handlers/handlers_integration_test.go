package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"sneakershop/internal/handlers"
	"sneakershop/internal/middleware"
	"sneakershop/internal/models"
	"sneakershop/internal/repositories"
	"sneakershop/internal/services"
	"sneakershop/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testJWTSecret resolves the signing secret for tests, overridable via env.
func testJWTSecret() string {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	return viper.GetString("JWT_SECRET")
}

type testEnv struct {
	app         *fiber.App
	authService *services.AuthService
	sneakerRepo repositories.SneakerRepository
}

// setupApp wires the full application against a fresh in-memory SQLite
// database, mirroring main.go without RabbitMQ.
func setupApp() (*testEnv, error) {
	// Unique DSN per call so parallel-running tests never share state.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}

	err = db.AutoMigrate(&models.User{}, &models.ShippingInfo{}, &models.Sneaker{}, &models.Cart{}, &models.Order{})
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	shippingRepo := repositories.NewGORMShippingInfoRepository(db)
	sneakerRepo := repositories.NewGORMSneakerRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	tokenIssuer := services.NewTokenIssuer(testJWTSecret(), time.Hour)
	authService := services.NewAuthService(userRepo, shippingRepo, tokenIssuer, nil)
	sneakerService := services.NewSneakerService(sneakerRepo)
	cartService := services.NewCartService(cartRepo, sneakerRepo)
	orderService := services.NewOrderService(orderRepo, sneakerRepo, nil)

	carrier := session.NewCarrier("jwt")
	authRequired := middleware.AuthRequired(authService, carrier)
	adminOnly := middleware.RestrictTo(models.RoleAdmin)
	staffOnly := middleware.RestrictTo(models.RoleAdmin, models.RoleCounseler)

	app := fiber.New()
	api := app.Group("/api")
	handlers.NewAuthHandler(authService, carrier).RegisterRoutes(api, authRequired)
	handlers.NewSneakerHandler(sneakerService).RegisterRoutes(api, authRequired, adminOnly)
	handlers.NewCartHandler(cartService).RegisterRoutes(api, authRequired)
	handlers.NewOrderHandler(orderService).RegisterRoutes(api, authRequired, staffOnly)

	return &testEnv{app: app, authService: authService, sneakerRepo: sneakerRepo}, nil
}

// signUpUser registers an account through the service, bypassing the
// handler so tests can assign roles other than customer.
func (e *testEnv) signUpUser(t *testing.T, name, email, password, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
		Role:            role,
	}
	if err := e.authService.SignUp(user); err != nil {
		t.Fatalf("failed to sign up %s: %v", email, err)
	}
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := e.authService.Tokens().Issue(user.ID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

// doJSON sends a JSON request through the fiber app, optionally with a
// bearer token, and decodes the response body.
func doJSON(t *testing.T, app *fiber.App, method, url string, payload interface{}, token string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		assert.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	body := make(map[string]interface{})
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp, body
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestSignUp(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	payload := map[string]string{
		"name":            "Test User",
		"email":           "test@example.com",
		"password":        "password123",
		"passwordConfirm": "password123",
		"phoneNum":        "0123456789",
		"address":         "1 Test Street",
	}

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/signup", payload, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])

	// The session cookie carries the token with the same expiry window.
	var jwtCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	assert.NotNil(t, jwtCookie)
	assert.Equal(t, body["token"], jwtCookie.Value)
	assert.True(t, jwtCookie.HttpOnly)

	// The password hash never appears in the response.
	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "Password")
	assert.Equal(t, "customer", user["role"])

	// Reusing the email is rejected and no second record is created.
	resp, body = doJSON(t, env.app, http.MethodPost, "/api/users/signup", payload, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "fail", body["status"])
}

func TestSignUp_Validation(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	// Mismatched confirmation
	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/signup", map[string]string{
		"name":            "Test User",
		"email":           "test@example.com",
		"password":        "password123",
		"passwordConfirm": "password456",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "fail", body["status"])

	// Password too short
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/signup", map[string]string{
		"name":            "Test User",
		"email":           "test@example.com",
		"password":        "short",
		"passwordConfirm": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Malformed email
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/signup", map[string]string{
		"name":            "Test User",
		"email":           "not-an-email",
		"password":        "password123",
		"passwordConfirm": "password123",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No account was persisted by any of the rejected payloads.
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	env.signUpUser(t, "Test User", "test@example.com", "password123", "")

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["token"])

	// Wrong password, unknown email, and missing fields all yield the
	// same message, so responses never confirm an email exists.
	cases := []map[string]string{
		{"email": "test@example.com", "password": "wrongpassword"},
		{"email": "nobody@example.com", "password": "password123"},
		{"email": "test@example.com"},
		{"password": "password123"},
	}
	for _, payload := range cases {
		resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/login", payload, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "incorrect email or password", body["message"])
	}
}

func TestAuthGate(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	user := env.signUpUser(t, "Test User", "test@example.com", "password123", "")

	// No token
	resp, body := doJSON(t, env.app, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "not logged in")

	// Malformed token
	resp, _ = doJSON(t, env.app, http.MethodGet, "/api/users/me", nil, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Expired token
	expiredIssuer := services.NewTokenIssuer(testJWTSecret(), -time.Minute)
	expiredToken, _, err := expiredIssuer.Issue(user.ID)
	assert.NoError(t, err)
	resp, body = doJSON(t, env.app, http.MethodGet, "/api/users/me", nil, expiredToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["message"], "expired")

	// Valid token for an account that no longer exists
	ghostToken, _, err := env.authService.Tokens().Issue(uuid.New().String())
	assert.NoError(t, err)
	resp, body = doJSON(t, env.app, http.MethodGet, "/api/users/me", nil, ghostToken)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["message"], "no longer exists")

	// Valid token resolves the current user
	resp, body = doJSON(t, env.app, http.MethodGet, "/api/users/me", nil, env.tokenFor(t, user))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	me := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, user.ID, me["id"])
}

func TestAuthGate_CookieFallback(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	user := env.signUpUser(t, "Test User", "test@example.com", "password123", "")

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: env.tokenFor(t, user)})

	resp, err := env.app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoleRestriction(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	customer := env.signUpUser(t, "Customer", "customer@example.com", "password123", "")
	admin := env.signUpUser(t, "Admin", "admin@example.com", "password123", models.RoleAdmin)

	sneaker := map[string]interface{}{
		"name":  "Air Max 90",
		"brand": "Nike",
		"price": 120.0,
		"size":  42.0,
		"stock": 10,
	}

	// A customer may browse but not mutate the catalog.
	resp, body := doJSON(t, env.app, http.MethodPost, "/api/sneakers", sneaker, env.tokenFor(t, customer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "fail", body["status"])

	resp, _ = doJSON(t, env.app, http.MethodGet, "/api/sneakers", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// An admin may.
	resp, body = doJSON(t, env.app, http.MethodPost, "/api/sneakers", sneaker, env.tokenFor(t, admin))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
}

func TestLogout(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)

	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/logout", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])

	// The cookie is overwritten with an empty, near-expired value.
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			assert.Empty(t, cookie.Value)
			assert.True(t, cookie.Expires.Before(time.Now().Add(time.Minute)))
		}
	}
}

func TestUpdatePassword(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	user := env.signUpUser(t, "Test User", "test@example.com", "password123", "")
	token := env.tokenFor(t, user)

	// Wrong current password
	resp, _ := doJSON(t, env.app, http.MethodPatch, "/api/users/update-password", map[string]string{
		"password":           "wrongpassword",
		"newPassword":        "newpassword1",
		"newPasswordConfirm": "newpassword1",
	}, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Confirmation mismatch
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/users/update-password", map[string]string{
		"password":           "password123",
		"newPassword":        "newpassword1",
		"newPasswordConfirm": "newpassword2",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Success clears the session cookie
	resp, body := doJSON(t, env.app, http.MethodPatch, "/api/users/update-password", map[string]string{
		"password":           "password123",
		"newPassword":        "newpassword1",
		"newPasswordConfirm": "newpassword1",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "jwt" {
			assert.Empty(t, cookie.Value)
		}
	}

	// Old password no longer logs in; the new one does.
	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "test@example.com",
		"password": "newpassword1",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestForgotAndResetPassword(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	env.signUpUser(t, "Test User", "test@example.com", "password123", "")

	// Unknown email rejected
	resp, _ := doJSON(t, env.app, http.MethodPost, "/api/users/forgot-password", map[string]string{
		"email": "nobody@example.com",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Known email yields a reset token
	resp, body := doJSON(t, env.app, http.MethodPost, "/api/users/forgot-password", map[string]string{
		"email": "test@example.com",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resetToken, _ := body["resetToken"].(string)
	assert.NotEmpty(t, resetToken)

	// Bogus token rejected
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/users/reset-password", map[string]string{
		"token":              "bogus",
		"newPassword":        "newpassword1",
		"newPasswordConfirm": "newpassword1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Redeeming the real token sets the new password
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/users/reset-password", map[string]string{
		"token":              resetToken,
		"newPassword":        "newpassword1",
		"newPasswordConfirm": "newpassword1",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "test@example.com",
		"password": "newpassword1",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A redeemed token cannot be reused.
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/users/reset-password", map[string]string{
		"token":              resetToken,
		"newPassword":        "anotherpass1",
		"newPasswordConfirm": "anotherpass1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartAndOrderFlow(t *testing.T) {
	env, err := setupApp()
	assert.NoError(t, err)
	customer := env.signUpUser(t, "Customer", "customer@example.com", "password123", "")
	staff := env.signUpUser(t, "Counseler", "counseler@example.com", "password123", models.RoleCounseler)
	token := env.tokenFor(t, customer)

	sneaker := &models.Sneaker{Name: "Air Max 90", Brand: "Nike", Price: 120.0, Size: 42, Stock: 10}
	assert.NoError(t, env.sneakerRepo.Create(sneaker))

	// Carts require a session.
	resp, _ := doJSON(t, env.app, http.MethodGet, "/api/carts", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Add to cart.
	resp, body := doJSON(t, env.app, http.MethodPost, "/api/carts/items", map[string]interface{}{
		"sneaker_id": sneaker.ID,
		"quantity":   2,
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	cart := body["data"].(map[string]interface{})["cart"].(map[string]interface{})
	items := cart["items"].([]interface{})
	assert.Len(t, items, 1)

	// Place the order.
	resp, body = doJSON(t, env.app, http.MethodPost, "/api/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"sneaker_id": sneaker.ID, "quantity": 2}},
	}, token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	order := body["data"].(map[string]interface{})["order"].(map[string]interface{})
	assert.Equal(t, 240.0, order["total_amount"])
	assert.Equal(t, "pending", order["status"])
	orderID := order["id"].(string)

	// Customers cannot move the order through its lifecycle; staff can.
	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]string{
		"status": "processing",
	}, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, env.app, http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]string{
		"status": "processing",
	}, env.tokenFor(t, staff))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The customer sees only their own orders.
	resp, body = doJSON(t, env.app, http.MethodGet, "/api/orders", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	orders := body["data"].(map[string]interface{})["orders"].([]interface{})
	assert.Len(t, orders, 1)
}
