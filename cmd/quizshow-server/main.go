package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/quizshow/internal/avatar"
	"github.com/lox/quizshow/internal/questions"
	"github.com/lox/quizshow/internal/registry"
	"github.com/lox/quizshow/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"quizshow.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"host:port to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	// Load configuration
	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		host, port, err := net.SplitHostPort(CLI.Addr)
		if err != nil {
			fmt.Printf("Invalid addr %q: %v\n", CLI.Addr, err)
			kctx.Exit(1)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			fmt.Printf("Invalid port %q: %v\n", port, err)
			kctx.Exit(1)
		}
		cfg.Server.Address = host
		cfg.Server.Port = p
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	// Setup logging
	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	store, err := questions.Load(cfg.Questions.Path, logger)
	if err != nil {
		logger.Error("failed to load question archive", "path", cfg.Questions.Path, "error", err)
		kctx.Exit(1)
	}

	avatars, err := avatar.NewStore(cfg.Avatars.Directory, cfg.Avatars.URLPrefix, cfg.Avatars.MaxBytes, logger)
	if err != nil {
		logger.Error("failed to open avatar store", "dir", cfg.Avatars.Directory, "error", err)
		kctx.Exit(1)
	}

	clock := quartz.NewReal()
	reg := registry.New(logger, clock, cfg.RegistryOptions())
	srv := server.New(cfg, logger, clock, reg, store, avatars)

	minYear, maxYear := store.YearSpan()
	logger.Info("starting quizshow server",
		"addr", cfg.ListenAddr(),
		"categories", store.Categories(),
		"finals", store.Finals(),
		"years", fmt.Sprintf("%d-%d", minYear, maxYear))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("shutting down", "signal", sig)
		cancel()
	}()

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: srv.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return reg.Run(gctx)
	})
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server failed", "error", err)
		kctx.Exit(1)
	}
}
