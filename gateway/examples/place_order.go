//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/betbot/projectx/gateway/client"
	"github.com/betbot/projectx/gateway/types"
)

// Place a single limit order.
// Usage:
//   export PROJECTX_USERNAME="your_username"
//   export PROJECTX_API_KEY="your_api_key"
//   go run place_order.go

func main() {
	creds := client.Credentials{
		Username: os.Getenv("PROJECTX_USERNAME"),
		APIKey:   os.Getenv("PROJECTX_API_KEY"),
	}
	if creds.Username == "" || creds.APIKey == "" {
		fmt.Fprintln(os.Stderr, "set PROJECTX_USERNAME and PROJECTX_API_KEY")
		os.Exit(1)
	}

	c := client.NewClient(creds, client.Options{})
	ctx := context.Background()

	accounts, err := c.SearchAccounts(ctx, true)
	if err != nil || len(accounts) == 0 {
		fmt.Fprintf(os.Stderr, "accounts: %v\n", err)
		os.Exit(1)
	}

	contracts, err := c.SearchContracts(ctx, "NQ", false)
	if err != nil || len(contracts) == 0 {
		fmt.Fprintf(os.Stderr, "contracts: %v\n", err)
		os.Exit(1)
	}
	contract := contracts[0]

	limit := contract.AlignPrice(21000.25)
	orderID, err := c.PlaceOrder(ctx, types.PlaceOrderRequest{
		AccountID:  accounts[0].ID,
		ContractID: contract.ID,
		Type:       types.OrderTypeLimit,
		Side:       types.SideBid,
		Size:       1,
		LimitPrice: &limit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "place: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("order %d placed on %s at %.2f\n", orderID, contract.ID, limit)
}
