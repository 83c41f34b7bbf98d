// Command quickstart walks through the whole API surface against the
// demo gateway: login, account and contract discovery, order placement,
// modification and cancellation, positions, trade history and bars.
//
//	export PROJECTX_USERNAME="your_username"
//	export PROJECTX_API_KEY="your_api_key"
//	go run ./cmd/quickstart
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/betbot/projectx/gateway/client"
	"github.com/betbot/projectx/gateway/types"
	"github.com/betbot/projectx/pkg/config"
	"github.com/betbot/projectx/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		OutputFile: cfg.Logging.OutputFile,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	c, err := client.NewClientFromConfig(cfg)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	token, err := c.Login(ctx)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	log.Infof("login ok, token %s...", token[:min(8, len(token))])

	ok, err := c.ValidateSession(ctx)
	if err != nil {
		log.Fatalf("validate: %v", err)
	}
	log.Infof("session valid: %v", ok)

	accounts, err := c.SearchAccounts(ctx, true)
	if err != nil {
		log.Fatalf("search accounts: %v", err)
	}
	if len(accounts) == 0 {
		log.Fatal("no active accounts")
	}
	account := accounts[0]
	log.Infof("using account %d (%s), balance %.2f", account.ID, account.Name, account.Balance)

	contracts, err := c.SearchContracts(ctx, "ES", false)
	if err != nil {
		log.Fatalf("search contracts: %v", err)
	}
	if len(contracts) == 0 {
		log.Fatal("no ES contracts found")
	}
	contract := contracts[0]
	log.Infof("using contract %s (%s)", contract.ID, contract.Name)

	positions, err := c.SearchOpenPositions(ctx, account.ID)
	if err != nil {
		log.Fatalf("search positions: %v", err)
	}
	for _, p := range positions {
		log.Infof("open position %s %s size=%d avg=%.2f", p.ContractID, p.Type, p.Size, p.AveragePrice)
	}

	orderID, err := c.PlaceOrder(ctx, types.PlaceOrderRequest{
		AccountID:  account.ID,
		ContractID: contract.ID,
		Type:       types.OrderTypeMarket,
		Side:       types.SideAsk,
		Size:       1,
	})
	if err != nil {
		log.Fatalf("place order: %v", err)
	}
	log.Infof("placed market order %d", orderID)

	end := time.Now().UTC()
	start := end.Add(-10 * 24 * time.Hour)

	orders, err := c.SearchOrders(ctx, account.ID, start, end)
	if err != nil {
		log.Fatalf("search orders: %v", err)
	}
	log.Infof("%d orders in the last 10 days", len(orders))

	open, err := c.SearchOpenOrders(ctx, account.ID)
	if err != nil {
		log.Fatalf("search open orders: %v", err)
	}
	if len(open) > 0 {
		target := open[0]
		stop := contract.AlignPrice(1604.0)
		if err := c.ModifyOrder(ctx, types.ModifyOrderRequest{
			AccountID: account.ID,
			OrderID:   target.ID,
			StopPrice: &stop,
		}); err != nil {
			log.Warnf("modify order %d: %v", target.ID, err)
		}
		if err := c.CancelOrder(ctx, account.ID, target.ID); err != nil {
			log.Warnf("cancel order %d: %v", target.ID, err)
		}
	}

	bars, err := c.RetrieveBars(ctx, types.RetrieveBarsRequest{
		ContractID: contract.ID,
		StartTime:  end.Add(-7 * 24 * time.Hour),
		EndTime:    end,
		Unit:       types.UnitHour,
		UnitNumber: 1,
		Limit:      168,
	})
	if err != nil {
		log.Fatalf("retrieve bars: %v", err)
	}
	log.Infof("%d hourly bars", len(bars))

	trades, err := c.SearchTrades(ctx, account.ID, start, end)
	if err != nil {
		log.Fatalf("search trades: %v", err)
	}
	log.Infof("%d trades in the last 10 days", len(trades))

	for _, p := range positions {
		if err := c.ClosePosition(ctx, account.ID, p.ContractID); err != nil {
			log.Warnf("close %s: %v", p.ContractID, err)
		}
	}
}
