package main

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/nikolayk812/checkout-demo/internal/config"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/render"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/nikolayk812/checkout-demo/internal/service"
	"go.uber.org/zap"
)

//go:embed seed.yaml
var defaultSeed []byte

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config.Load: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "newLogger: %v\n", err)
		os.Exit(1)
	}

	os.Exit(exitCode(run(context.Background(), cfg, logger, os.Stdout), logger))
}

// exitCode logs a failed run and flushes the logger before main exits.
func exitCode(err error, logger *zap.Logger) int {
	defer func() { _ = logger.Sync() }()

	if err != nil {
		logger.Error("pos failed", zap.Error(err))
		return 1
	}
	return 0
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zcfg.Encoding = "console"
	return zcfg.Build()
}

func loadSeed(cfg *config.Config) (repository.Seed, error) {
	var r io.Reader = bytes.NewReader(defaultSeed)

	if cfg.SeedPath != "" {
		f, err := os.Open(cfg.SeedPath)
		if err != nil {
			return repository.Seed{}, fmt.Errorf("os.Open: %w", err)
		}
		defer f.Close()
		r = f
	}

	return repository.LoadSeed(r)
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	seed, err := loadSeed(cfg)
	if err != nil {
		return fmt.Errorf("loadSeed: %w", err)
	}

	cart := domain.NewCart(cfg.Currency, domain.WithFeePolicy(cfg.Fees))
	if seed.Currency != cart.Currency() {
		return fmt.Errorf("seed currency %s does not match configured %s", seed.Currency, cart.Currency())
	}

	printer := render.NewPrinter(out)

	svc, err := service.NewCheckout(printer, printer, logger)
	if err != nil {
		return fmt.Errorf("service.NewCheckout: %w", err)
	}

	d := &driver{
		ctx:    ctx,
		out:    out,
		seed:   seed,
		svc:    svc,
		cart:   cart,
		asOf:   cfg.BusinessDate,
		logger: logger,
	}

	for _, sc := range scenarios() {
		d.header(sc.name)
		d.cart.Clear()
		if err := sc.run(d); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.name, err)
		}
	}

	return nil
}
