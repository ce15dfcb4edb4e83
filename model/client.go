package model

// MemberDiscount is the flat reduction applied to a member's cart value at
// purchase time.
const MemberDiscount = 0.10

// Client is a shopper: an id unique within a shop, a balance, an optional
// membership, and an owned cart and purchase history. Clients are created by
// the caller and adopted by a Shop at registration; id uniqueness is enforced
// there, not here.
type Client struct {
	ID         int
	Membership bool
	Balance    float64
	Cart       *ShoppingCart
	History    *History
}

func NewClient(id int, membership bool, balance float64) *Client {
	return &Client{
		ID:         id,
		Membership: membership,
		Balance:    balance,
		Cart:       NewShoppingCart(),
		History:    NewHistory(),
	}
}

// Discount is the fraction taken off the cart value when this client buys.
func (c *Client) Discount() float64 {
	if c.Membership {
		return MemberDiscount
	}
	return 0
}
