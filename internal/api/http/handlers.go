package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"plateful/internal/cart"
	"plateful/internal/domain"
	"plateful/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Checkout service.CheckoutServiceInterface
	Orders   service.OrderQueryServiceInterface
	Menu     service.MenuServiceInterface
	Carts    cart.Store
}

func NewHandler(checkout service.CheckoutServiceInterface, orders service.OrderQueryServiceInterface, menu service.MenuServiceInterface, carts cart.Store) *Handler {
	return &Handler{
		Checkout: checkout,
		Orders:   orders,
		Menu:     menu,
		Carts:    carts,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/accept", h.acceptOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/reject", h.rejectOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/complete", h.completeOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/details", h.getOrderDetails).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{menuItemId}", h.setCartItemQuantity).Methods("PUT")
	r.HandleFunc("/api/cart/items/{menuItemId}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")

	r.HandleFunc("/api/customer/balance", h.getCustomerBalance).Methods("GET")
	r.HandleFunc("/api/restaurant/balance", h.getRestaurantBalance).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "plateful",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Auth is out of scope; the identity headers stand in for the session.
func customerID(r *http.Request) int {
	id, _ := strconv.Atoi(r.Header.Get("X-Customer-ID"))
	return id
}

func restaurantID(r *http.Request) int {
	id, _ := strconv.Atoi(r.Header.Get("X-Restaurant-ID"))
	return id
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	var req struct {
		RestaurantID   int    `json:"restaurant_id"`
		Notes          string `json:"notes"`
		IdempotencyKey string `json:"idempotency_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	sessionCart, err := h.Carts.Load(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	// Clients may pin their own key; the cart token covers everyone else.
	if req.IdempotencyKey != "" {
		sessionCart.Token = req.IdempotencyKey
	}
	if req.RestaurantID != 0 && req.RestaurantID != sessionCart.RestaurantID {
		http.Error(w, "Cart does not belong to this restaurant", http.StatusBadRequest)
		return
	}

	order, err := h.Checkout.PlaceOrder(r.Context(), cid, sessionCart, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrInvalidRestaurant):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrInsufficientFunds):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		default:
			http.Error(w, "Failed to place order, please retry", http.StatusInternalServerError)
		}
		return
	}

	// The coordinator leaves the cart alone; the surface owns its lifecycle.
	// A cart left behind here still carries its consumed token, so a later
	// submission of it dedupes to this order instead of double-charging.
	if err := h.Carts.Clear(r.Context(), cid); err != nil {
		log.Printf("Error clearing cart for customer %d: %v", cid, err)
	}

	order.QRCode = h.Orders.QRLink(order.ID)
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []domain.Order
		err    error
	)
	switch r.URL.Query().Get("role") {
	case "restaurant":
		rid := restaurantID(r)
		if rid == 0 {
			http.Error(w, "Unauthorized access", http.StatusUnauthorized)
			return
		}
		activeOnly := r.URL.Query().Get("active") == "1"
		orders, err = h.Orders.ListForRestaurant(r.Context(), rid, activeOnly)
	default:
		cid := customerID(r)
		if cid == 0 {
			http.Error(w, "Unauthorized access", http.StatusUnauthorized)
			return
		}
		orders, err = h.Orders.ListForCustomer(r.Context(), cid)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) acceptOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.Checkout.Accept)
}

func (h *Handler) rejectOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.Checkout.Reject)
}

func (h *Handler) completeOrder(w http.ResponseWriter, r *http.Request) {
	h.transitionOrder(w, r, h.Checkout.Complete)
}

func (h *Handler) transitionOrder(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, orderID int) (*domain.Order, error)) {
	if restaurantID(r) == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := apply(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, service.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to update order, please retry", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderDetails(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(r.Context(), orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qr, err := h.Orders.GetQRCode(r.Context(), orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if len(qr) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	sessionCart, err := h.Carts.Load(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sessionCart)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	if err := h.Carts.Clear(r.Context(), cid); err != nil {
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	var req struct {
		RestaurantID int `json:"restaurant_id"`
		MenuItemID   int `json:"menu_item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	menuItem, err := h.Menu.GetItem(r.Context(), req.RestaurantID, req.MenuItemID)
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	if !menuItem.IsAvailable {
		http.Error(w, "Menu item is not available", http.StatusBadRequest)
		return
	}

	sessionCart, err := h.Carts.Load(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	updated, err := sessionCart.Add(cart.Item{
		MenuItemID:   menuItem.ID,
		Name:         menuItem.Name,
		UnitPrice:    menuItem.Price,
		RestaurantID: menuItem.RestaurantID,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if err := h.Carts.Save(r.Context(), cid, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	menuItemID, _ := strconv.Atoi(mux.Vars(r)["menuItemId"])

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	sessionCart, err := h.Carts.Load(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	updated, err := sessionCart.SetQuantity(menuItemID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrItemNotInCart):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	if err := h.Carts.Save(r.Context(), cid, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	menuItemID, _ := strconv.Atoi(mux.Vars(r)["menuItemId"])

	sessionCart, err := h.Carts.Load(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	updated, err := sessionCart.Remove(menuItemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := h.Carts.Save(r.Context(), cid, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Menu.ListRestaurants(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	restaurant, err := h.Menu.GetRestaurant(r.Context(), id)
	if err != nil || restaurant == nil {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	// Owners see everything; customers only what is orderable.
	availableOnly := restaurantID(r) != id
	items, err := h.Menu.Menu(r.Context(), id, availableOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if restaurantID(r) != id {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	item.RestaurantID = id

	if err := h.Menu.CreateItem(r.Context(), &item); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory), errors.Is(err, service.ErrInvalidPrice):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	if restaurantID(r) != id {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = itemID
	item.RestaurantID = id

	if err := h.Menu.UpdateItem(r.Context(), &item); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory), errors.Is(err, service.ErrInvalidPrice):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	if restaurantID(r) != id {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}

	rows, err := h.Menu.DeleteItem(r.Context(), id, itemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getCustomerBalance(w http.ResponseWriter, r *http.Request) {
	cid := customerID(r)
	if cid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	balance, err := h.Orders.CustomerBalance(r.Context(), cid)
	if err != nil {
		http.Error(w, "Failed to fetch balance", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}

func (h *Handler) getRestaurantBalance(w http.ResponseWriter, r *http.Request) {
	rid := restaurantID(r)
	if rid == 0 {
		http.Error(w, "Unauthorized access", http.StatusUnauthorized)
		return
	}
	balance, err := h.Orders.RestaurantBalance(r.Context(), rid)
	if err != nil {
		http.Error(w, "Failed to fetch balance", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}
