package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vendora/vendora-manager/config"
	"github.com/vendora/vendora-manager/internal/analytics"
	httpapi "github.com/vendora/vendora-manager/internal/api/http"
	"github.com/vendora/vendora-manager/internal/auth"
	"github.com/vendora/vendora-manager/internal/store"
	"github.com/vendora/vendora-manager/log"
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := log.New(cfg.Logger)

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("cannot connect to the database %v", err.Error())
	}
	defer db.Close()

	svc := analytics.New(db)
	a := auth.New(cfg.Auth)

	srv := httpapi.New(&cfg.HTTP)
	if err := srv.Start(ctx, svc, a); err != nil {
		return fmt.Errorf("cannot start the http server %v", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	select {
	case s := <-sigCh:
		logger.With("signal", s.String()).Warn("signal received, exiting")
		srv.Stop(ctx)
		logger.Info("application exited")
	case <-srv.Done():
		logger.Error("application exited")
	}

	return nil
}
