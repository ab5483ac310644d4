package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"gorm.io/gorm"

	"rocketcart/internal/config"
	"rocketcart/internal/infra/db"
	"rocketcart/internal/infra/inventory"
	"rocketcart/internal/infra/notify"
	infraRepo "rocketcart/internal/infra/repository"
	"rocketcart/internal/infra/storage"
	repo "rocketcart/internal/repository"
	"rocketcart/internal/usecase"
)

const redisInitAttempts = 5

// CLI 1回分の部品
type cartApp struct {
	cart     *usecase.CartUsecase
	recorder *notify.Recorder
	out      io.Writer
	closers  []func() error
}

func newCartApp(ctx context.Context, cfg config.Client, log *slog.Logger, out, errOut io.Writer) (*cartApp, error) {
	a := &cartApp{recorder: &notify.Recorder{}, out: out}

	var gormDB *gorm.DB
	openDB := func() (*gorm.DB, error) {
		if gormDB != nil {
			return gormDB, nil
		}
		g, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := g.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		gormDB = g
		return g, nil
	}

	store, err := a.openStorage(ctx, cfg, log, openDB)
	if err != nil {
		a.Close()
		return nil, err
	}

	var inv repo.InventoryClient
	switch cfg.Inventory {
	case "db":
		g, err := openDB()
		if err != nil {
			a.Close()
			return nil, err
		}
		inv = inventory.NewRepositoryClient(infraRepo.NewProductGormRepository(g))
	default:
		inv = inventory.NewHTTPClient(cfg.APIURL, cfg.HTTPTimeout)
	}

	notifier := notify.Multi{notify.NewWriterNotifier(errOut), notify.NewLogNotifier(log), a.recorder}
	a.cart = usecase.NewCartUsecase(inv, store, notifier, log)
	if err := a.cart.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *cartApp) openStorage(ctx context.Context, cfg config.Client, log *slog.Logger, openDB func() (*gorm.DB, error)) (repo.CartStorage, error) {
	switch cfg.Store {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "redis":
		r := storage.NewRedisStorage(cfg.RedisAddr, log)
		a.closers = append(a.closers, r.Close)
		if err := r.Initialize(ctx, redisInitAttempts); err != nil {
			return nil, err
		}
		return r, nil
	case "postgres":
		g, err := openDB()
		if err != nil {
			return nil, err
		}
		kv := infraRepo.NewCartStorageGormRepository(g)
		if err := kv.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate cart_kv: %w", err)
		}
		return kv, nil
	case "file":
		return storage.NewFileStorage(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// 後から開いたものから閉じる
func (a *cartApp) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

// カートを表で出す
func (a *cartApp) print() error {
	cart := a.cart.Cart()

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAMOUNT\tSUBTOTAL")
	for _, e := range cart {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%.2f\n", e.ID, e.Title, e.Price, e.Amount, e.Subtotal())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(a.out, "items: %d  total: %.2f\n", cart.Size(), cart.Total())
	return err
}
