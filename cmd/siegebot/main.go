package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericogr/siegebot/internal/api"
	"github.com/ericogr/siegebot/internal/config"
	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/logging"
	"github.com/ericogr/siegebot/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print build information and exit")
	mintFor := flag.String("mint-token", "", "print a gateway token for the given player id and exit")
	mintTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of tokens printed by -mint-token")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid configuration", err, nil)
	}
	defer logging.Sync()

	if *mintFor != "" {
		if cfg.GatewaySecret == "" {
			logging.Fatal("SIEGEBOT_GATEWAY_SECRET is required to mint tokens", nil, nil)
		}
		tok, err := api.SignToken([]byte(cfg.GatewaySecret), *mintFor, *mintTTL)
		if err != nil {
			logging.Fatal("Failed to sign token", err, nil)
		}
		fmt.Println(tok)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		logging.Fatal("Failed to initialize", err, nil)
	}
	defer a.close()

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: cfg.Addr,
		"version":              version.String(),
	})
	if err := a.run(ctx); err != nil {
		logging.Fatal("Server stopped with error", err, nil)
	}
	logging.Info("Server stopped", nil)
}
