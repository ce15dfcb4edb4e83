package shop

import (
	"io"
	"log"

	"eshop/model"
)

// Shop owns the inventory, the registered-client roster and the shop-wide
// purchase ledger, and runs every cross-entity operation.
//
// Cart contents are reservations carved out of inventory, not copies: the
// stock for an item leaves the sellable pool the moment it enters a cart, is
// restored when it leaves the cart (or the client is deleted), and is never
// touched again at purchase time. At any point
//
//	inventory[p] + sum of every registered cart's p
//
// equals everything ever stocked minus everything ever bought.
type Shop struct {
	inventory map[*model.Product]int
	catalog   []*model.Product
	clients   []*model.Client
	ledger    *Ledger
	logger    *log.Logger
}

func New() *Shop {
	return &Shop{
		inventory: make(map[*model.Product]int),
		ledger:    NewLedger(),
		logger:    log.Default(),
	}
}

// SetLogger redirects the shop's log output; nil silences it entirely.
func (s *Shop) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

// AddProduct stocks amount more of product, creating the inventory entry if
// the product is new to the shop. A zero amount creates an empty entry.
func (s *Shop) AddProduct(product *model.Product, amount int) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if _, ok := s.inventory[product]; !ok {
		s.catalog = append(s.catalog, product)
	}
	s.inventory[product] += amount
	return nil
}

// RegisterClient adopts client into the roster. A client whose id is already
// registered is a logged no-op, not an error.
func (s *Shop) RegisterClient(client *model.Client) {
	for _, c := range s.clients {
		if c.ID == client.ID {
			s.logger.Printf("register: client id %d already registered, ignoring", client.ID)
			return
		}
	}
	s.clients = append(s.clients, client)
}

// DeleteClient removes client from the roster, returning everything reserved
// in its cart to inventory first. The client's history goes with it.
func (s *Shop) DeleteClient(client *model.Client) error {
	idx := s.rosterIndex(client)
	if idx < 0 {
		return ErrClientNotRegistered
	}
	for _, product := range client.Cart.Products() {
		s.inventory[product] += client.Cart.Quantity(product)
	}
	client.Cart.Empty()
	s.clients = append(s.clients[:idx], s.clients[idx+1:]...)
	return nil
}

// AddToCart reserves amount of product for client: the quantity moves from
// inventory into the cart in one step, before any purchase is finalized.
func (s *Shop) AddToCart(client *model.Client, product *model.Product, amount int) error {
	if !s.registered(client) {
		return ErrClientNotRegistered
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	stock, ok := s.inventory[product]
	if !ok {
		return ErrProductNotFound
	}
	if stock < amount {
		return ErrInsufficientStock
	}
	client.Cart.Add(product, amount)
	s.inventory[product] -= amount
	return nil
}

// RemoveFromCart releases amount of product from client's cart back into
// inventory. Quantity validation is the cart's.
func (s *Shop) RemoveFromCart(client *model.Client, product *model.Product, amount int) error {
	if !s.registered(client) {
		return ErrClientNotRegistered
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := client.Cart.Remove(product, amount); err != nil {
		return err
	}
	s.inventory[product] += amount
	return nil
}

// Buy commits the client's cart as a purchase on date: the discounted cart
// value is debited, the quantities are copied into the client's history and
// the shop ledger, and the cart is emptied. Inventory is not touched here;
// it was already decremented when the items were reserved.
//
// On ErrInsufficientFunds nothing changes: cart, balance and reservations
// all stay as they were so the client can adjust the cart and retry. An
// empty cart commits trivially and records nothing.
func (s *Shop) Buy(client *model.Client, date model.Date) error {
	if !s.registered(client) {
		return ErrClientNotRegistered
	}
	payable := client.Cart.Value() * (1 - client.Discount())
	if payable > client.Balance {
		return ErrInsufficientFunds
	}
	client.Balance -= payable
	for _, product := range client.Cart.Products() {
		quantity := client.Cart.Quantity(product)
		client.History.Record(date, product, quantity)
		s.ledger.record(date, client.ID, product, quantity)
	}
	client.Cart.Empty()
	return nil
}

// Client looks a registered client up by id.
func (s *Shop) Client(id int) (*model.Client, bool) {
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Clients returns the roster in registration order.
func (s *Shop) Clients() []*model.Client {
	out := make([]*model.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Stock reports the sellable quantity of product, zero if never stocked.
func (s *Shop) Stock(product *model.Product) int {
	return s.inventory[product]
}

// Catalog returns every product ever stocked, in first-stocked order.
func (s *Shop) Catalog() []*model.Product {
	out := make([]*model.Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// HistoryDescending is the shop ledger re-ordered by descending date. A pure
// view; the ledger itself is append-only.
func (s *Shop) HistoryDescending() []DayRecord {
	return s.ledger.Descending()
}

// LedgerVerbal renders the shop ledger for humans.
func (s *Shop) LedgerVerbal() string {
	return s.ledger.Verbal()
}

func (s *Shop) registered(client *model.Client) bool {
	return s.rosterIndex(client) >= 0
}

func (s *Shop) rosterIndex(client *model.Client) int {
	for i, c := range s.clients {
		if c == client {
			return i
		}
	}
	return -1
}
