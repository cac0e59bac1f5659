// README: End-to-end tests through the router with in-memory stores.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"swiftlogix/internal/auth"
	"swiftlogix/internal/modules/location"
	"swiftlogix/internal/modules/order"
	"swiftlogix/internal/modules/pricing"
	"swiftlogix/internal/modules/user"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	userStore := user.NewMemoryStore()
	users := user.NewService(userStore, tokens, auth.NewMemoryResetTokenStore(time.Hour))
	orders := order.NewService(order.NewMemoryStore(), pricing.NewService(pricing.DefaultParams()), userStore)
	locations := location.NewService(location.NewMemoryStore())

	return NewRouter(RouterDeps{
		Users:     users,
		Orders:    orders,
		Locations: locations,
		Tokens:    tokens,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func request(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func registerAccount(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()
	w := request(t, r, nethttp.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "pw123456", "role": role,
	})
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", email)
	}
	return token
}

var referenceOrderBody = gin.H{
	"pickup_address": "Connaught Place",
	"pickup_lat":     28.60,
	"pickup_lng":     77.20,
	"drop_address":   "Civil Lines",
	"drop_lat":       28.70,
	"drop_lng":       77.21,
	"material_type":  "electronics",
	"weight_kg":      5,
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	customer := registerAccount(t, r, "Asha", "asha@example.com", "customer")
	driver := registerAccount(t, r, "Dev", "dev@example.com", "driver")

	// Customer places an order; the fare is quoted server-side.
	w := request(t, r, nethttp.MethodPost, "/api/customer/orders", customer, referenceOrderBody)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("create order: status %d, body %s", w.Code, w.Body.String())
	}
	created := decode(t, w)
	orderID, _ := created["order_id"].(string)
	if orderID == "" {
		t.Fatal("no order_id in create response")
	}
	if created["status"] != "pending" {
		t.Errorf("status = %v, want pending", created["status"])
	}
	if d, _ := created["distance_km"].(float64); d < 11.0 || d > 11.3 {
		t.Errorf("distance_km = %v, want ~11.17", created["distance_km"])
	}

	// Driver sees it in the available feed and accepts it.
	w = request(t, r, nethttp.MethodGet, "/api/driver/orders/available", driver, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("available: status %d", w.Code)
	}
	var available []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &available); err != nil {
		t.Fatalf("decode available: %v", err)
	}
	if len(available) != 1 || available[0]["id"] != orderID {
		t.Fatalf("available feed = %v, want the new order", available)
	}

	w = request(t, r, nethttp.MethodPost, "/api/driver/orders/"+orderID+"/accept", driver, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("accept: status %d, body %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["status"]; got != "assigned" {
		t.Errorf("status after accept = %v, want assigned", got)
	}

	// Driver reports a position; the customer sees it on the tracker.
	w = request(t, r, nethttp.MethodPost, "/api/driver/location", driver, gin.H{"lat": 28.62, "lng": 77.22})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("location update: status %d", w.Code)
	}
	w = request(t, r, nethttp.MethodGet, "/api/customer/orders/"+orderID+"/track", customer, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("track: status %d, body %s", w.Code, w.Body.String())
	}
	track := decode(t, w)
	driverInfo, _ := track["driver"].(map[string]any)
	if driverInfo == nil {
		t.Fatalf("track has no driver: %v", track)
	}
	if lat, _ := driverInfo["lat"].(float64); lat != 28.62 {
		t.Errorf("tracked lat = %v, want 28.62", driverInfo["lat"])
	}

	// Driver walks the order to delivered.
	for _, status := range []string{"picked", "delivering", "delivered"} {
		w = request(t, r, nethttp.MethodPost, "/api/orders/"+orderID+"/status", driver, gin.H{"status": status})
		if w.Code != nethttp.StatusOK {
			t.Fatalf("advance to %s: status %d, body %s", status, w.Code, w.Body.String())
		}
	}

	// Earnings reflect the delivered order's driver share.
	w = request(t, r, nethttp.MethodGet, "/api/driver/earnings", driver, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("earnings: status %d", w.Code)
	}
	earnings := decode(t, w)
	if n, _ := earnings["delivered_count"].(float64); n != 1 {
		t.Errorf("delivered_count = %v, want 1", earnings["delivered_count"])
	}
	if total, _ := earnings["total_earnings"].(float64); total <= 0 {
		t.Errorf("total_earnings = %v, want > 0", earnings["total_earnings"])
	}
}

func TestCancelOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	customer := registerAccount(t, r, "Asha", "asha@example.com", "customer")
	w := request(t, r, nethttp.MethodPost, "/api/customer/orders", customer, referenceOrderBody)
	if w.Code != nethttp.StatusCreated {
		t.Fatalf("create: status %d", w.Code)
	}
	orderID, _ := decode(t, w)["order_id"].(string)

	// A different customer may not cancel it.
	other := registerAccount(t, r, "Ravi", "ravi@example.com", "customer")
	w = request(t, r, nethttp.MethodPost, "/api/orders/"+orderID+"/cancel", other, nil)
	if w.Code != nethttp.StatusForbidden {
		t.Errorf("foreign cancel: status %d, want 403", w.Code)
	}

	w = request(t, r, nethttp.MethodPost, "/api/orders/"+orderID+"/cancel", customer, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("cancel: status %d, body %s", w.Code, w.Body.String())
	}
	if got := decode(t, w)["status"]; got != "cancelled" {
		t.Errorf("status = %v, want cancelled", got)
	}

	// Cancelling again conflicts with the terminal state.
	w = request(t, r, nethttp.MethodPost, "/api/orders/"+orderID+"/cancel", customer, nil)
	if w.Code != nethttp.StatusConflict {
		t.Errorf("second cancel: status %d, want 409", w.Code)
	}
}

func TestAcceptConflictOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	customer := registerAccount(t, r, "Asha", "asha@example.com", "customer")
	first := registerAccount(t, r, "Dev", "dev@example.com", "driver")
	second := registerAccount(t, r, "Mona", "mona@example.com", "driver")

	w := request(t, r, nethttp.MethodPost, "/api/customer/orders", customer, referenceOrderBody)
	orderID, _ := decode(t, w)["order_id"].(string)

	if w := request(t, r, nethttp.MethodPost, "/api/driver/orders/"+orderID+"/accept", first, nil); w.Code != nethttp.StatusOK {
		t.Fatalf("first accept: status %d", w.Code)
	}
	if w := request(t, r, nethttp.MethodPost, "/api/driver/orders/"+orderID+"/accept", second, nil); w.Code != nethttp.StatusConflict {
		t.Errorf("second accept: status %d, want 409", w.Code)
	}
}

func TestRoleGatesOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	customer := registerAccount(t, r, "Asha", "asha@example.com", "customer")
	driver := registerAccount(t, r, "Dev", "dev@example.com", "driver")
	admin := registerAccount(t, r, "Root", "ops@example.com", "admin")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token on protected route", nethttp.MethodGet, "/api/customer/orders", "", nethttp.StatusUnauthorized},
		{"driver on customer route", nethttp.MethodGet, "/api/customer/orders", driver, nethttp.StatusForbidden},
		{"customer on driver route", nethttp.MethodGet, "/api/driver/earnings", customer, nethttp.StatusForbidden},
		{"customer on admin route", nethttp.MethodGet, "/api/admin/dashboard", customer, nethttp.StatusForbidden},
		{"driver on admin route", nethttp.MethodGet, "/api/admin/users", driver, nethttp.StatusForbidden},
		{"admin on dashboard", nethttp.MethodGet, "/api/admin/dashboard", admin, nethttp.StatusOK},
		{"customer lists own orders", nethttp.MethodGet, "/api/customer/orders", customer, nethttp.StatusOK},
		{"driver lists available", nethttp.MethodGet, "/api/driver/orders/available", driver, nethttp.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if w := request(t, r, tc.method, tc.path, tc.token, nil); w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestAdminDashboardOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	customer := registerAccount(t, r, "Asha", "asha@example.com", "customer")
	registerAccount(t, r, "Dev", "dev@example.com", "driver")
	admin := registerAccount(t, r, "Root", "ops@example.com", "admin")

	if w := request(t, r, nethttp.MethodPost, "/api/customer/orders", customer, referenceOrderBody); w.Code != nethttp.StatusCreated {
		t.Fatalf("create: status %d", w.Code)
	}

	w := request(t, r, nethttp.MethodGet, "/api/admin/dashboard", admin, nil)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("dashboard: status %d, body %s", w.Code, w.Body.String())
	}
	dash := decode(t, w)
	if n, _ := dash["customers"].(float64); n != 1 {
		t.Errorf("customers = %v, want 1", dash["customers"])
	}
	if n, _ := dash["drivers"].(float64); n != 1 {
		t.Errorf("drivers = %v, want 1", dash["drivers"])
	}
	if n, _ := dash["orders"].(float64); n != 1 {
		t.Errorf("orders = %v, want 1", dash["orders"])
	}
	if n, _ := dash["active_orders"].(float64); n != 0 {
		t.Errorf("active_orders = %v, want 0", dash["active_orders"])
	}
}

func TestPasswordResetOverHTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	resets := auth.NewMemoryResetTokenStore(time.Hour)
	userStore := user.NewMemoryStore()
	users := user.NewService(userStore, tokens, resets)
	r := NewRouter(RouterDeps{
		Users:     users,
		Orders:    order.NewService(order.NewMemoryStore(), pricing.NewService(pricing.DefaultParams()), userStore),
		Locations: location.NewService(location.NewMemoryStore()),
		Tokens:    tokens,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	registerAccount(t, r, "Asha", "asha@example.com", "customer")

	// The response is generic either way; grab the token from the store the
	// way the notification collaborator would.
	w := request(t, r, nethttp.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "asha@example.com"})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("forgot: status %d", w.Code)
	}
	token, err := users.ForgotPassword(context.Background(), "asha@example.com")
	if err != nil || token == "" {
		t.Fatalf("reissue token: %v", err)
	}

	w = request(t, r, nethttp.MethodPost, "/api/auth/reset-password", "", gin.H{
		"email": "asha@example.com", "token": token, "password": "newpw123",
	})
	if w.Code != nethttp.StatusOK {
		t.Fatalf("reset: status %d, body %s", w.Code, w.Body.String())
	}

	// Replaying the token is rejected.
	w = request(t, r, nethttp.MethodPost, "/api/auth/reset-password", "", gin.H{
		"email": "asha@example.com", "token": token, "password": "again",
	})
	if w.Code != nethttp.StatusBadRequest {
		t.Errorf("replayed reset: status %d, want 400", w.Code)
	}

	// The new password works at login.
	w = request(t, r, nethttp.MethodPost, "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "newpw123",
	})
	if w.Code != nethttp.StatusOK {
		t.Errorf("login with new password: status %d, body %s", w.Code, w.Body.String())
	}
}
