// Package main starts the contract engine MCP server process lifecycle.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/corugnoll/Johnson-Prototype-sub000/internal/balancing"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/config"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/platform/otel"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/runner"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/services/mcp/service"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/session"
	"github.com/corugnoll/Johnson-Prototype-sub000/internal/storage/sqlite"
)

type serverConfig struct {
	DBPath        string `env:"JOHNSON_DB_PATH" envDefault:"johnson.db"`
	BalancingPath string `env:"JOHNSON_BALANCING_PATH"`
	Transport     string `env:"JOHNSON_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr      string `env:"JOHNSON_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Seed          int64  `env:"JOHNSON_GENERATOR_SEED" envDefault:"0"`
}

func main() {
	log.SetPrefix("[JOHNSON] ")

	var cfg serverConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("parse environment: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := otel.Setup(ctx, "johnson-server")
	if err != nil {
		log.Fatalf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	balance, table, err := balancing.Load(cfg.BalancingPath)
	if err != nil {
		log.Fatalf("load balancing config: %v", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	gen := runner.NewGenerator(balance, runner.NewSeededRNG(cfg.Seed, true))
	sess := session.New(balance, table, gen).WithStore(store)
	if err := sess.Restore(ctx); err != nil {
		log.Fatalf("restore session: %v", err)
	}

	serviceCfg := service.Config{
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	}
	if err := service.Run(ctx, sess, serviceCfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
