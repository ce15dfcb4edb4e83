package main

// POST /products – Create a new catalog entry and stock it.
// POST /clients – Register a client.
// POST /cart/add – Reserve stock into a client's cart.
// POST /cart/remove – Release reserved stock back to inventory.
// POST /checkout/order – Commit the cart as a purchase.
// GET  /history – The shop ledger, newest day first.

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"eshop/handler"
	"eshop/model"
	"eshop/shop"
)

func main() {
	root := &cobra.Command{
		Use:           "eshop",
		Short:         "In-memory e-shop with reserved-stock carts and purchase ledgers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), demoCmd())
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the shop API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := shop.New()
			h := handler.NewHandler(s)

			r := mux.NewRouter()
			h.RegisterRoutes(r)

			log.Printf("Server running on %s", addr)
			return http.ListenAndServe(addr, r)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8082", "listen address")
	return cmd
}

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed a sample shop, run a few purchases and print the ledgers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(shop.New(), os.Stdout)
		},
	}
}

// runDemo seeds demo inventory and clients, drives purchases across two dates
// and prints receipts and both history renderings. Seeding happens here, on
// demand, never as package initialization.
func runDemo(s *shop.Shop, out io.Writer) error {
	tv := model.NewProduct("TV", 1399)
	hdmi := model.NewProduct("HDMI cable", 10.99)
	apple := model.NewProduct("Apple", 0.76)

	for _, seed := range []struct {
		product *model.Product
		amount  int
	}{
		{tv, 10},
		{hdmi, 15},
		{apple, 100},
	} {
		if err := s.AddProduct(seed.product, seed.amount); err != nil {
			return err
		}
	}

	bob := model.NewClient(1, false, 3000)
	alice := model.NewClient(2, true, 500)
	s.RegisterClient(bob)
	s.RegisterClient(alice)

	yesterday := model.DateOf(time.Now().AddDate(0, 0, -1))
	today := model.Today()

	type step struct {
		client  *model.Client
		product *model.Product
		amount  int
	}
	days := []struct {
		date  model.Date
		steps []step
	}{
		{yesterday, []step{{bob, tv, 1}, {bob, hdmi, 2}, {alice, apple, 12}}},
		{today, []step{{bob, apple, 5}, {alice, hdmi, 1}}},
	}
	for _, day := range days {
		for _, st := range day.steps {
			if err := s.AddToCart(st.client, st.product, st.amount); err != nil {
				return err
			}
		}
		for _, c := range []*model.Client{bob, alice} {
			if c.Cart.Len() == 0 {
				continue
			}
			if err := s.Buy(c, day.date); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(out, "Bob's balance: %.2f\n", bob.Balance)
	fmt.Fprintf(out, "Alice's balance: %.2f\n\n", alice.Balance)
	fmt.Fprintln(out, "Bob's history:")
	fmt.Fprint(out, bob.History.Verbal())
	fmt.Fprintln(out, "\nAlice's history:")
	fmt.Fprint(out, alice.History.Verbal())
	fmt.Fprintln(out, "\nShop ledger:")
	fmt.Fprint(out, s.LedgerVerbal())
	return nil
}
