package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eshop/model"
)

// Two clients buying overlapping products across two dates: the ledger must
// agree with each client's own history entry for entry.
func TestLedgerMatchesClientHistories(t *testing.T) {
	s := newQuietShop()
	bob := model.NewClient(1, false, 5000)
	alice := model.NewClient(2, true, 5000)
	tv := model.NewProduct("TV", 1399)
	hdmi := model.NewProduct("HDMI cable", 10.99)
	apple := model.NewProduct("Apple", 0.76)

	s.RegisterClient(bob)
	s.RegisterClient(alice)
	require.NoError(t, s.AddProduct(tv, 10))
	require.NoError(t, s.AddProduct(hdmi, 15))
	require.NoError(t, s.AddProduct(apple, 100))

	day1 := model.NewDate(2023, time.November, 1)
	day2 := model.NewDate(2023, time.November, 2)

	require.NoError(t, s.AddToCart(bob, tv, 2))
	require.NoError(t, s.AddToCart(bob, hdmi, 1))
	require.NoError(t, s.Buy(bob, day1))
	require.NoError(t, s.AddToCart(alice, apple, 3))
	require.NoError(t, s.Buy(alice, day1))
	require.NoError(t, s.AddToCart(alice, tv, 1))
	require.NoError(t, s.Buy(alice, day2))

	ledger := s.HistoryDescending()
	require.Len(t, ledger, 2)

	// Newest first.
	assert.Equal(t, day2, ledger[0].Date)
	assert.Equal(t, day1, ledger[1].Date)

	require.Len(t, ledger[0].Clients, 1)
	assert.Equal(t, alice.ID, ledger[0].Clients[0].ClientID)
	assert.Equal(t, []ProductLine{{Product: "TV", Price: 1399, Quantity: 1}}, ledger[0].Clients[0].Items)

	require.Len(t, ledger[1].Clients, 2)
	assert.Equal(t, bob.ID, ledger[1].Clients[0].ClientID)
	assert.Equal(t, []ProductLine{
		{Product: "TV", Price: 1399, Quantity: 2},
		{Product: "HDMI cable", Price: 10.99, Quantity: 1},
	}, ledger[1].Clients[0].Items)
	assert.Equal(t, alice.ID, ledger[1].Clients[1].ClientID)
	assert.Equal(t, []ProductLine{{Product: "Apple", Price: 0.76, Quantity: 3}}, ledger[1].Clients[1].Items)

	// Ledger quantities agree with each client's own per-date history.
	assert.Equal(t, 2, bob.History.On(day1).Quantity(tv))
	assert.Equal(t, 1, bob.History.On(day1).Quantity(hdmi))
	assert.Equal(t, 3, alice.History.On(day1).Quantity(apple))
	assert.Equal(t, 1, alice.History.On(day2).Quantity(tv))
}

func TestLedgerVerbal(t *testing.T) {
	s := newQuietShop()
	bob := model.NewClient(1, false, 5000)
	alice := model.NewClient(2, true, 5000)
	tv := model.NewProduct("TV", 1399)
	hdmi := model.NewProduct("HDMI cable", 10.99)
	apple := model.NewProduct("Apple", 0.76)

	s.RegisterClient(bob)
	s.RegisterClient(alice)
	require.NoError(t, s.AddProduct(tv, 10))
	require.NoError(t, s.AddProduct(hdmi, 15))
	require.NoError(t, s.AddProduct(apple, 100))

	day1 := model.NewDate(2023, time.November, 1)
	day2 := model.NewDate(2023, time.November, 2)

	require.NoError(t, s.AddToCart(bob, tv, 2))
	require.NoError(t, s.AddToCart(bob, hdmi, 1))
	require.NoError(t, s.Buy(bob, day1))
	require.NoError(t, s.AddToCart(alice, apple, 3))
	require.NoError(t, s.Buy(alice, day1))
	require.NoError(t, s.AddToCart(alice, tv, 1))
	require.NoError(t, s.Buy(alice, day2))

	want := "On 2023-11-02, these purchases were made:\n" +
		"└id: 2\n" +
		" └1x TV\n" +
		"On 2023-11-01, these purchases were made:\n" +
		"├id: 1\n" +
		"│├2x TV\n" +
		"│└1x HDMI cable\n" +
		"└id: 2\n" +
		" └3x Apple\n"
	assert.Equal(t, want, s.LedgerVerbal())
}

func TestLedgerEmpty(t *testing.T) {
	s := newQuietShop()
	assert.Empty(t, s.HistoryDescending())
	assert.Empty(t, s.LedgerVerbal())
}
