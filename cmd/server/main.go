package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/listing-lab/internal/config"
	"github.com/JaimeStill/listing-lab/internal/infrastructure"
	"github.com/JaimeStill/listing-lab/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed:", err)
	}

	domain := NewDomain(cfg, infra)

	middlewareSys := buildMiddleware(infra, cfg)
	handler := middlewareSys.Apply(buildRoutes(cfg, infra, domain))

	serverSys := server.New(&cfg.Server, handler, infra.Logger)
	if err := serverSys.Start(infra.Lifecycle); err != nil {
		log.Fatal("server start failed:", err)
	}

	infra.Lifecycle.WaitForStartup()
	infra.Logger.Info("service ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	if err := infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}

	infra.Logger.Info("service stopped gracefully")
}
