//go:build ignore
// +build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/betbot/projectx/gateway/client"
	"github.com/betbot/projectx/gateway/types"
)

// Fetch a week of hourly candles for the E-mini S&P front month.
// Usage:
//   export PROJECTX_USERNAME="your_username"
//   export PROJECTX_API_KEY="your_api_key"
//   go run retrieve_bars.go

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

	contracts, err := c.SearchContracts(ctx, "ES", false)
	if err != nil || len(contracts) == 0 {
		fmt.Fprintf(os.Stderr, "contracts: %v\n", err)
		os.Exit(1)
	}

	end := time.Now().UTC()
	bars, err := c.RetrieveBars(ctx, types.RetrieveBarsRequest{
		ContractID: contracts[0].ID,
		StartTime:  end.Add(-7 * 24 * time.Hour),
		EndTime:    end,
		Unit:       types.UnitHour,
		UnitNumber: 1,
		Limit:      168,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "bars: %v\n", err)
		os.Exit(1)
	}

	for _, b := range bars {
		fmt.Printf("%s  o=%.2f h=%.2f l=%.2f c=%.2f v=%.0f\n",
			b.Timestamp.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close, b.Volume)
	}
}
