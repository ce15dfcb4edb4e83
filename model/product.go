package model

// Product is an immutable catalog entry: a name and a unit price.
//
// Products are compared by identity, not by value: the *Product pointer is
// what keys inventory, cart and history maps. Creating a second Product with
// the same name and price yields a distinct catalog entry on purpose.
type Product struct {
	name  string
	price float64
}

func NewProduct(name string, price float64) *Product {
	return &Product{name: name, price: price}
}

func (p *Product) Name() string { return p.name }

func (p *Product) Price() float64 { return p.price }

func (p *Product) String() string { return p.name }
