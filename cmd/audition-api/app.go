package main

import (
	"io"

	"github.com/JonnyWalker81/audition/backend/internal/config"
	"github.com/JonnyWalker81/audition/backend/internal/integration"
	"github.com/JonnyWalker81/audition/backend/internal/logger"
	"github.com/JonnyWalker81/audition/backend/internal/service"
	"github.com/JonnyWalker81/audition/backend/pkg/jsonplaceholder"
)

// app holds the components shared by serve and fetch.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	client *integration.Client
	posts  service.PostService
}

// newApp wires the upstream transport, integration client and post service.
// Logs go to out.
func newApp(cfg *config.Config, out io.Writer) *app {
	logCfg := cfg.LoggerConfig()
	logCfg.Output = out
	log := logger.New(logCfg)
	logger.SetDefault(log)

	httpClient := jsonplaceholder.NewHTTPClient(cfg.TransportConfig(log))
	api := jsonplaceholder.NewClient(cfg.Upstream.URL, jsonplaceholder.WithHTTPClient(httpClient))
	client := integration.NewClient(api,
		integration.WithServiceName(cfg.Upstream.Name),
		integration.WithLogger(log),
	)

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		posts:  service.NewPostService(client),
	}
}
