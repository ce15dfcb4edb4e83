package model

import (
	"fmt"
	"sort"
	"strings"
)

// Purchases is an insertion-ordered product -> quantity record. Both the
// client history and the shop ledger store their per-day quantities in one of
// these; repeated purchases of the same product add up.
type Purchases struct {
	quantities map[*Product]int
	order      []*Product
}

func NewPurchases() *Purchases {
	return &Purchases{quantities: make(map[*Product]int)}
}

// Merge adds quantity of product to the record.
func (p *Purchases) Merge(product *Product, quantity int) {
	if _, ok := p.quantities[product]; !ok {
		p.order = append(p.order, product)
	}
	p.quantities[product] += quantity
}

// Quantity reports the recorded quantity for product, zero if absent.
func (p *Purchases) Quantity(product *Product) int {
	return p.quantities[product]
}

// Products returns the recorded products in first-purchase order.
func (p *Purchases) Products() []*Product {
	out := make([]*Product, len(p.order))
	copy(out, p.order)
	return out
}

func (p *Purchases) Len() int { return len(p.order) }

// History is a client's append-only purchase record, keyed by calendar day.
// Entries accumulate: buying the same product twice on one day adds the
// quantities together.
type History struct {
	byDate map[Date]*Purchases
	dates  []Date
}

func NewHistory() *History {
	return &History{byDate: make(map[Date]*Purchases)}
}

// Record adds quantity of product to the entry for date, creating the entry
// if the day has no purchases yet. Quantities are copied in; the caller's
// cart can be emptied afterwards without touching the history.
func (h *History) Record(date Date, product *Product, quantity int) {
	day, ok := h.byDate[date]
	if !ok {
		day = NewPurchases()
		h.byDate[date] = day
		h.dates = append(h.dates, date)
	}
	day.Merge(product, quantity)
}

// On returns the purchases recorded for date, or nil if none.
func (h *History) On(date Date) *Purchases {
	return h.byDate[date]
}

// Dates returns the days with purchases, most recent first.
func (h *History) Dates() []Date {
	out := make([]Date, len(h.dates))
	copy(out, h.dates)
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out
}

func (h *History) Len() int { return len(h.dates) }

// Verbal renders the history for humans, most recent day first:
//
//	On 2023-11-02, you bought:
//		2x TV
//		1x HDMI cable
func (h *History) Verbal() string {
	var b strings.Builder
	for _, date := range h.Dates() {
		fmt.Fprintf(&b, "On %s, you bought:\n", date)
		day := h.byDate[date]
		for _, product := range day.Products() {
			fmt.Fprintf(&b, "\t%dx %s\n", day.Quantity(product), product.Name())
		}
	}
	return b.String()
}
