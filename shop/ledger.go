package shop

import (
	"fmt"
	"sort"
	"strings"

	"eshop/model"
)

// Ledger is the shop-wide purchase record: date -> client id -> product ->
// quantity. Days, clients within a day and products within a client all keep
// first-purchase order; quantities for repeat purchases add up. Entries are
// copied in at commit time and never pruned.
type Ledger struct {
	byDate map[model.Date]*dayEntry
	dates  []model.Date
}

type dayEntry struct {
	byClient map[int]*model.Purchases
	clients  []int
}

func NewLedger() *Ledger {
	return &Ledger{byDate: make(map[model.Date]*dayEntry)}
}

func (l *Ledger) record(date model.Date, clientID int, product *model.Product, quantity int) {
	day, ok := l.byDate[date]
	if !ok {
		day = &dayEntry{byClient: make(map[int]*model.Purchases)}
		l.byDate[date] = day
		l.dates = append(l.dates, date)
	}
	purchases, ok := day.byClient[clientID]
	if !ok {
		purchases = model.NewPurchases()
		day.byClient[clientID] = purchases
		day.clients = append(day.clients, clientID)
	}
	purchases.Merge(product, quantity)
}

// ProductLine is one product row in a ledger view.
type ProductLine struct {
	Product  string  `json:"product"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// ClientRecord is one client's purchases within a day.
type ClientRecord struct {
	ClientID int           `json:"client_id"`
	Items    []ProductLine `json:"items"`
}

// DayRecord is one day of the ledger.
type DayRecord struct {
	Date    model.Date     `json:"date"`
	Clients []ClientRecord `json:"clients"`
}

// Descending returns the ledger ordered by descending date. Clients and
// products keep first-purchase order. The view is built fresh on every call
// and shares nothing with the ledger.
func (l *Ledger) Descending() []DayRecord {
	dates := make([]model.Date, len(l.dates))
	copy(dates, l.dates)
	sort.Slice(dates, func(i, j int) bool { return dates[j].Before(dates[i]) })

	out := make([]DayRecord, 0, len(dates))
	for _, date := range dates {
		day := l.byDate[date]
		record := DayRecord{Date: date, Clients: make([]ClientRecord, 0, len(day.clients))}
		for _, id := range day.clients {
			purchases := day.byClient[id]
			cr := ClientRecord{ClientID: id, Items: make([]ProductLine, 0, purchases.Len())}
			for _, product := range purchases.Products() {
				cr.Items = append(cr.Items, ProductLine{
					Product:  product.Name(),
					Price:    product.Price(),
					Quantity: purchases.Quantity(product),
				})
			}
			record.Clients = append(record.Clients, cr)
		}
		out = append(out, record)
	}
	return out
}

// Verbal renders the ledger for humans, most recent day first, nesting
// clients under dates and products under clients with tree connectors:
//
//	On 2023-11-02, these purchases were made:
//	├id: 1
//	│├2x TV
//	│└1x HDMI cable
//	└id: 2
//	 └3x Apple
func (l *Ledger) Verbal() string {
	var b strings.Builder
	for _, day := range l.Descending() {
		fmt.Fprintf(&b, "On %s, these purchases were made:\n", day.Date)
		for i, client := range day.Clients {
			lastClient := i == len(day.Clients)-1
			if lastClient {
				fmt.Fprintf(&b, "└id: %d\n", client.ClientID)
			} else {
				fmt.Fprintf(&b, "├id: %d\n", client.ClientID)
			}
			for j, line := range client.Items {
				lastProduct := j == len(client.Items)-1
				prefix := "│├"
				switch {
				case lastClient && lastProduct:
					prefix = " └"
				case lastClient:
					prefix = " ├"
				case lastProduct:
					prefix = "│└"
				}
				fmt.Fprintf(&b, "%s%dx %s\n", prefix, line.Quantity, line.Product)
			}
		}
	}
	return b.String()
}
