package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/siegebot/internal/api"
	"github.com/ericogr/siegebot/internal/config"
	"github.com/ericogr/siegebot/internal/constants"
	"github.com/ericogr/siegebot/internal/engine"
	"github.com/ericogr/siegebot/internal/logging"
	"github.com/ericogr/siegebot/internal/service"
	"github.com/ericogr/siegebot/internal/storage"
	"github.com/ericogr/siegebot/internal/telemetry"
)

const serviceName = "siegebot"

type app struct {
	cfg      config.Env
	svc      *service.Service
	server   *http.Server
	shutdown func(context.Context) error
}

func newApp(ctx context.Context, cfg config.Env) (*app, error) {
	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint, serviceName)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}

	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)

	eng := engine.New(catalog,
		engine.WithCooldownRegistry(repo),
		engine.WithSettings(cfg.EngineSettings()),
	)
	svc := service.New(repo, eng)

	secret, err := gatewaySecret(cfg)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(svc), api.NewTokenVerifier(secret))

	return &app{
		cfg: cfg,
		svc: svc,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdown: shutdown,
	}, nil
}

func gatewaySecret(cfg config.Env) ([]byte, error) {
	if cfg.GatewaySecret != "" {
		return []byte(cfg.GatewaySecret), nil
	}
	logging.Warn("SIEGEBOT_GATEWAY_SECRET not set, using a random development secret", nil, logging.Fields{
		constants.LogFieldKey: "SIEGEBOT_GATEWAY_SECRET",
	})
	return api.DevSecret()
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		logging.Warn("telemetry shutdown failed", err, nil)
	}
}
