package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/catalog-admin/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("configuration load failed", err)
	}
	if err := cfg.Finalize(); err != nil {
		fail("configuration invalid", err)
	}

	srv, err := NewServer(cfg)
	if err != nil {
		fail("server init failed", err)
	}

	if err := srv.Start(); err != nil {
		fail("server start failed", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Shutdown(cfg.Server.ShutdownTimeoutDuration()); err != nil {
		fail("shutdown failed", err)
	}
}

func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
