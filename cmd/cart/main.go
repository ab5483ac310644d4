package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"rocketcart/internal/config"
	"rocketcart/internal/logger"
	"rocketcart/internal/telemetry"
	"rocketcart/internal/usecase"
)

var cli struct {
	Config config.Client `embed:""`

	List   listCmd   `cmd:"" default:"1" help:"Show the cart."`
	Add    addCmd    `cmd:"" help:"Add one unit of a product to the cart."`
	Remove removeCmd `cmd:"" help:"Remove a product from the cart."`
	Update updateCmd `cmd:"" help:"Set the amount of a product already in the cart."`
}

type listCmd struct{}

func (c *listCmd) Run(a *cartApp) error {
	return a.print()
}

type addCmd struct {
	ID int64 `arg:"" help:"Product id."`
}

func (c *addCmd) Run(ctx context.Context, a *cartApp) error {
	a.cart.AddProduct(ctx, c.ID)
	return a.print()
}

type removeCmd struct {
	ID int64 `arg:"" help:"Product id."`
}

func (c *removeCmd) Run(ctx context.Context, a *cartApp) error {
	a.cart.RemoveProduct(ctx, c.ID)
	return a.print()
}

type updateCmd struct {
	ID     int64 `arg:"" help:"Product id."`
	Amount int64 `arg:"" help:"New amount. Zero or less does nothing."`
}

func (c *updateCmd) Run(ctx context.Context, a *cartApp) error {
	a.cart.UpdateProductAmount(ctx, usecase.UpdateProductAmountInput{ProductID: c.ID, Amount: c.Amount})
	return a.print()
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx := kong.Parse(&cli,
		kong.Name("rocketcart"),
		kong.Description("RocketShoes cart - add, remove and update products with stock checks."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(cli.Config.Validate())

	log, err := logger.New(logger.Options{Service: "rocketcart", Level: cli.Config.LogLevel, Format: logger.FormatText, Output: os.Stderr})
	kctx.FatalIfErrorf(err)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Options{Service: "rocketcart", Version: "v1.0.0", Endpoint: cli.Config.OTelEndpoint})
	kctx.FatalIfErrorf(err, "failed to init tracing")
	defer shutdownTracing(context.Background()) //nolint:errcheck

	app, err := newCartApp(ctx, cli.Config, log, os.Stdout, os.Stderr)
	kctx.FatalIfErrorf(err, "failed to open cart")
	defer app.Close()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err = kctx.Run(app)
	kctx.FatalIfErrorf(err)

	// 通知が出た操作は失敗として終了コード1
	if len(app.recorder.Messages()) > 0 {
		app.Close()
		shutdownTracing(context.Background()) //nolint:errcheck
		os.Exit(1)
	}
}
