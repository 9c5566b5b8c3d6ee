package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealdrop/internal/domain"
	"mealdrop/internal/eventbus"
	"mealdrop/internal/service"
	"mealdrop/internal/storage"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryMedium())
	svc := service.New(store, eventbus.NewBus())
	handler := NewHandler(svc, &service.DefaultQRGenerator{BaseURL: "http://localhost:8080"})
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMerchants_ReturnsSeedsWithoutCredentials(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/merchants", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	merchants := decode[[]domain.Merchant](t, rec)
	require.Len(t, merchants, 2)
	assert.Equal(t, "金龙餐厅", merchants[0].Name)
	for _, m := range merchants {
		assert.Empty(t, m.Password)
	}
}

func TestGetMerchant_NotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/merchants/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMerchantLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/merchant/login",
		map[string]string{"account": "merchant@example.com", "password": "password"})
	require.Equal(t, http.StatusOK, rec.Code)

	auth := decode[service.MerchantAuth](t, rec)
	assert.Equal(t, "1", auth.Merchant.ID)
	assert.NotEmpty(t, auth.Token)
	assert.Empty(t, auth.Merchant.Password)

	rec = doJSON(t, router, http.MethodPost, "/api/merchant/login",
		map[string]string{"account": "merchant@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMerchantSessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/merchant/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/merchant/login",
		map[string]string{"account": "merchant@example.com", "password": "password"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/merchant/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	auth := decode[service.MerchantAuth](t, rec)
	assert.Equal(t, "1", auth.Merchant.ID)

	rec = doJSON(t, router, http.MethodPost, "/api/merchant/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/merchant/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestUserRegisterConflict(t *testing.T) {
	router := newTestRouter(t)

	body := map[string]string{"username": "王五", "email": "wangwu@example.com", "password": "p"}
	rec := doJSON(t, router, http.MethodPost, "/api/user/register", body)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/user/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMenuCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/merchants/1/menu",
		domain.MenuItem{Name: "Dumplings", Price: 18, Category: "点心", IsAvailable: true})
	require.Equal(t, http.StatusCreated, rec.Code)
	added := decode[domain.MenuItem](t, rec)
	require.NotEmpty(t, added.ID)

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/merchants/1/menu/%s", added.ID),
		map[string]float64{"price": 20})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.MenuItem](t, rec)
	assert.Equal(t, float64(20), updated.Price)
	assert.Equal(t, "Dumplings", updated.Name)

	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/merchants/1/menu/%s", added.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/merchants/1/menu/%s", added.ID),
		map[string]float64{"price": 25})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceOrder_ValidationAndIdempotency(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", domain.Order{MerchantID: "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "order without items is rejected")

	order := domain.Order{
		MerchantID: "1",
		UserID:     "user1",
		Items:      []domain.CartItem{{MenuItem: domain.MenuItem{ID: "m1", Price: 68}, Quantity: 1}},
		TotalPrice: 68,
	}
	rec = doJSON(t, router, http.MethodPost, "/api/orders", order)
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[domain.Order](t, rec)
	assert.NotEmpty(t, placed.ID)
	assert.Equal(t, domain.StatusPending, placed.Status)

	// Replaying the already-assigned id returns the stored record.
	rec = doJSON(t, router, http.MethodPost, "/api/orders", placed)
	require.Equal(t, http.StatusCreated, rec.Code)
	replayed := decode[domain.Order](t, rec)
	assert.Equal(t, placed.ID, replayed.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/merchants/1/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]domain.Order](t, rec)
	assert.Len(t, orders, 1)
}

func TestUpdateOrderStatus(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", domain.Order{
		MerchantID: "1",
		UserID:     "user1",
		Items:      []domain.CartItem{{MenuItem: domain.MenuItem{ID: "m1"}, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[domain.Order](t, rec)

	rec = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/orders/%s/status", placed.ID),
		map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.Order](t, rec)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	rec = doJSON(t, router, http.MethodPut, "/api/orders/nope/status",
		map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderQRCode(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", domain.Order{
		MerchantID: "1",
		UserID:     "user1",
		Items:      []domain.CartItem{{MenuItem: domain.MenuItem{ID: "m1"}, Quantity: 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	placed := decode[domain.Order](t, rec)

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/orders/%s/qrcode", placed.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = doJSON(t, router, http.MethodGet, "/api/orders/nope/qrcode", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
