package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"eshop/model"
	"eshop/shop"
)

// Handler is the HTTP layer over the shop engine. It owns the surrogate
// product ids the wire protocol uses; inside the engine products are keyed by
// identity, so the id table here is what keeps "the same product" meaning the
// same *model.Product across requests.
//
// A single mutex serializes every request: the engine's operations are
// single-writer transactions (reserve = inventory decrement + cart add,
// commit = debit + history + cart clear) that must never be observed
// half-applied, and one coarse lock per shop satisfies that.
type Handler struct {
	mu       sync.Mutex
	shop     shop.API
	products map[int64]*model.Product
	nextID   int64
}

// NewHandler returns a Handler driving s.
func NewHandler(s shop.API) *Handler {
	return &Handler{shop: s, products: make(map[int64]*model.Product), nextID: 1}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Products
	r.HandleFunc("/products", h.CreateProduct).Methods("POST")
	r.HandleFunc("/products/restock", h.Restock).Methods("POST")
	r.HandleFunc("/products/list", h.ListProducts).Methods("GET")

	// Clients
	r.HandleFunc("/clients", h.RegisterClient).Methods("POST")
	r.HandleFunc("/clients/{id}", h.DeleteClient).Methods("DELETE")
	r.HandleFunc("/clients/{id}/history", h.ClientHistory).Methods("GET")

	// Cart
	r.HandleFunc("/cart/add", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/remove", h.RemoveFromCart).Methods("POST")
	r.HandleFunc("/cart/list", h.ListCart).Methods("GET")

	// Checkout and ledger
	r.HandleFunc("/checkout/order", h.Checkout).Methods("POST")
	r.HandleFunc("/history", h.Ledger).Methods("GET")
	r.HandleFunc("/history/verbal", h.LedgerVerbal).Methods("GET")
}

// --- request / response shapes ---

type createProductReq struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock,omitempty"`
}

type restockReq struct {
	ProductID int64 `json:"product_id"`
	Amount    int   `json:"amount"`
}

type registerClientReq struct {
	ID         int     `json:"id"`
	Membership bool    `json:"membership"`
	Balance    float64 `json:"balance"`
}

type cartReq struct {
	ClientID  int   `json:"client_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type checkoutReq struct {
	ClientID int         `json:"client_id"`
	Date     *model.Date `json:"date,omitempty"` // defaults to today
}

type productView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type cartLine struct {
	ProductID int64   `json:"product_id"`
	Product   string  `json:"product"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type receipt struct {
	ClientID int                `json:"client_id"`
	Date     model.Date         `json:"date"`
	Payable  float64            `json:"payable"`
	Balance  float64            `json:"balance"`
	Items    []shop.ProductLine `json:"items"`
}

type historyDay struct {
	Date  model.Date         `json:"date"`
	Items []shop.ProductLine `json:"items"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shop.ErrClientNotRegistered),
		errors.Is(err, shop.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, shop.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) product(id int64) (*model.Product, bool) {
	p, ok := h.products[id]
	return p, ok
}

// --- Handlers ---

// CreateProduct handles POST /products.
// body: { "name": "...", "price": 1.5, "stock": 10 }
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		writeErr(w, http.StatusBadRequest, "price must be >= 0")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	p := model.NewProduct(req.Name, req.Price)
	if err := h.shop.AddProduct(p, req.Stock); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	id := h.nextID
	h.nextID++
	h.products[id] = p
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Restock handles POST /products/restock.
func (h *Handler) Restock(w http.ResponseWriter, r *http.Request) {
	var req restockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.product(req.ProductID)
	if !ok {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	if err := h.shop.AddProduct(p, req.Amount); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListProducts handles GET /products/list.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]productView, 0, len(h.products))
	for id := int64(1); id < h.nextID; id++ {
		p, ok := h.products[id]
		if !ok {
			continue
		}
		out = append(out, productView{ID: id, Name: p.Name(), Price: p.Price(), Stock: h.shop.Stock(p)})
	}
	writeJSON(w, http.StatusOK, out)
}

// RegisterClient handles POST /clients. A duplicate id is a no-op, matching
// the engine's registration policy, and answers 200 instead of 201.
func (h *Handler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req registerClientReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.shop.Client(req.ID); ok {
		writeJSON(w, http.StatusOK, map[string]string{"status": "already registered"})
		return
	}
	h.shop.RegisterClient(model.NewClient(req.ID, req.Membership, req.Balance))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// DeleteClient handles DELETE /clients/{id}.
func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid client id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(id)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}
	if err := h.shop.DeleteClient(c); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ClientHistory handles GET /clients/{id}/history.
func (h *Handler) ClientHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid client id")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(id)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}
	out := make([]historyDay, 0, c.History.Len())
	for _, date := range c.History.Dates() {
		day := c.History.On(date)
		hd := historyDay{Date: date, Items: make([]shop.ProductLine, 0, day.Len())}
		for _, p := range day.Products() {
			hd.Items = append(hd.Items, shop.ProductLine{Product: p.Name(), Price: p.Price(), Quantity: day.Quantity(p)})
		}
		out = append(out, hd)
	}
	writeJSON(w, http.StatusOK, out)
}

// AddToCart handles POST /cart/add.
// body: { "client_id": 1, "product_id": 1, "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity <= 0 {
		writeErr(w, http.StatusBadRequest, "quantity must be > 0")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(req.ClientID)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}
	p, ok := h.product(req.ProductID)
	if !ok {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	if err := h.shop.AddToCart(c, p, req.Quantity); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromCart handles POST /cart/remove.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	var req cartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Quantity <= 0 {
		writeErr(w, http.StatusBadRequest, "quantity must be > 0")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(req.ClientID)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}
	p, ok := h.product(req.ProductID)
	if !ok {
		writeErr(w, http.StatusNotFound, "product not found")
		return
	}
	if err := h.shop.RemoveFromCart(c, p, req.Quantity); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListCart handles GET /cart/list?client_id=...
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("client_id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "client_id required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(id)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}
	items := make([]cartLine, 0, c.Cart.Len())
	for _, p := range c.Cart.Products() {
		items = append(items, cartLine{
			ProductID: h.idOf(p),
			Product:   p.Name(),
			Price:     p.Price(),
			Quantity:  c.Cart.Quantity(p),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"client_id": id,
		"items":     items,
		"value":     c.Cart.Value(),
	})
}

// Checkout handles POST /checkout/order.
// body: { "client_id": 1, "date": "2023-11-02" }
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	date := model.Today()
	if req.Date != nil {
		date = *req.Date
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.shop.Client(req.ClientID)
	if !ok {
		writeErr(w, http.StatusNotFound, shop.ErrClientNotRegistered.Error())
		return
	}

	// Snapshot before Buy empties the cart.
	items := make([]shop.ProductLine, 0, c.Cart.Len())
	for _, p := range c.Cart.Products() {
		items = append(items, shop.ProductLine{Product: p.Name(), Price: p.Price(), Quantity: c.Cart.Quantity(p)})
	}
	payable := c.Cart.Value() * (1 - c.Discount())

	if err := h.shop.Buy(c, date); err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, receipt{
		ClientID: c.ID,
		Date:     date,
		Payable:  payable,
		Balance:  c.Balance,
		Items:    items,
	})
}

// Ledger handles GET /history.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, h.shop.HistoryDescending())
}

// LedgerVerbal handles GET /history/verbal.
func (h *Handler) LedgerVerbal(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(h.shop.LedgerVerbal()))
}

func (h *Handler) idOf(p *model.Product) int64 {
	for id, known := range h.products {
		if known == p {
			return id
		}
	}
	return 0
}
