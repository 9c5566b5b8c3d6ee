package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"mealdrop/internal/domain"
	"mealdrop/internal/service"
)

// Handler exposes the simulated service surface over REST so a frontend can
// drive the mock during development. It adds no semantics of its own.
type Handler struct {
	Service *service.Service
	QR      service.QRGenerator
}

func NewHandler(svc *service.Service, qr service.QRGenerator) *Handler {
	return &Handler{Service: svc, QR: qr}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	r.HandleFunc("/api/merchant/login", h.merchantLogin).Methods("POST")
	r.HandleFunc("/api/merchant/register", h.merchantRegister).Methods("POST")
	r.HandleFunc("/api/merchant/logout", h.merchantLogout).Methods("POST")
	r.HandleFunc("/api/merchant/session", h.merchantSession).Methods("GET")

	r.HandleFunc("/api/user/login", h.userLogin).Methods("POST")
	r.HandleFunc("/api/user/register", h.userRegister).Methods("POST")
	r.HandleFunc("/api/user/logout", h.userLogout).Methods("POST")
	r.HandleFunc("/api/user/session", h.userSession).Methods("GET")

	r.HandleFunc("/api/merchants", h.getMerchants).Methods("GET")
	r.HandleFunc("/api/merchants/{id}", h.getMerchant).Methods("GET")
	r.HandleFunc("/api/merchants/{id}", h.updateMerchant).Methods("PATCH")

	r.HandleFunc("/api/merchants/{merchantId}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/merchants/{merchantId}/menu", h.addMenuItem).Methods("POST")
	r.HandleFunc("/api/merchants/{merchantId}/menu/{itemId}", h.updateMenuItem).Methods("PATCH")
	r.HandleFunc("/api/merchants/{merchantId}/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
	r.HandleFunc("/api/merchants/{merchantId}/orders", h.getMerchantOrders).Methods("GET")
	r.HandleFunc("/api/users/{userId}/orders", h.getUserOrders).Methods("GET")
}

type credentials struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

func (h *Handler) merchantLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	auth, err := h.Service.MerchantLogin(r.Context(), creds.Account, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auth)
}

func (h *Handler) merchantRegister(w http.ResponseWriter, r *http.Request) {
	var reg service.MerchantRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	auth, err := h.Service.MerchantRegister(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, auth)
}

func (h *Handler) merchantLogout(w http.ResponseWriter, r *http.Request) {
	h.Service.MerchantLogout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) merchantSession(w http.ResponseWriter, r *http.Request) {
	auth, err := h.Service.CheckMerchantSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if auth == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, auth)
}

func (h *Handler) userLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	auth, err := h.Service.UserLogin(r.Context(), creds.Account, creds.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auth)
}

func (h *Handler) userRegister(w http.ResponseWriter, r *http.Request) {
	var reg service.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	auth, err := h.Service.UserRegister(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, auth)
}

func (h *Handler) userLogout(w http.ResponseWriter, r *http.Request) {
	h.Service.UserLogout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) userSession(w http.ResponseWriter, r *http.Request) {
	auth, err := h.Service.CheckUserSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if auth == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, auth)
}

func (h *Handler) getMerchants(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.Service.AllMerchants(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merchants)
}

func (h *Handler) getMerchant(w http.ResponseWriter, r *http.Request) {
	merchant, err := h.Service.MerchantByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merchant)
}

func (h *Handler) updateMerchant(w http.ResponseWriter, r *http.Request) {
	var patch domain.MerchantPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	merchant, err := h.Service.UpdateMerchant(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, merchant)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Menu(r.Context(), mux.Vars(r)["merchantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	added, err := h.Service.AddMenuItem(r.Context(), mux.Vars(r)["merchantId"], item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vars := mux.Vars(r)
	item, err := h.Service.UpdateMenuItem(r.Context(), vars["merchantId"], vars["itemId"], patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.Service.DeleteMenuItem(r.Context(), vars["merchantId"], vars["itemId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if order.MerchantID == "" || len(order.Items) == 0 {
		http.Error(w, "Invalid order payload", http.StatusBadRequest)
		return
	}
	placed, err := h.Service.PlaceOrder(r.Context(), order)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Service.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Service.OrderQRCode(r.Context(), mux.Vars(r)["id"], h.QR)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) getMerchantOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.OrdersForMerchant(r.Context(), mux.Vars(r)["merchantId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Service.OrdersForUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case service.IsNotFound(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrDuplicateAccount), errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
