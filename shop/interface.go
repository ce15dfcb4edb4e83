package shop

import "eshop/model"

// API is the engine surface drivers program against.
type API interface {
	AddProduct(product *model.Product, amount int) error
	RegisterClient(client *model.Client)
	DeleteClient(client *model.Client) error
	Client(id int) (*model.Client, bool)
	Clients() []*model.Client

	AddToCart(client *model.Client, product *model.Product, amount int) error
	RemoveFromCart(client *model.Client, product *model.Product, amount int) error
	Buy(client *model.Client, date model.Date) error

	Stock(product *model.Product) int
	Catalog() []*model.Product
	HistoryDescending() []DayRecord
	LedgerVerbal() string
}

var _ API = (*Shop)(nil)
