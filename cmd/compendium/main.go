// Command compendium serves the compendium browser as MCP tools.
//
// Configuration comes from COMPENDIUM_* environment variables:
//
//	COMPENDIUM_PACKS_DIR=packs COMPENDIUM_TRANSPORT=stdio compendium
//	COMPENDIUM_TRANSPORT=http COMPENDIUM_ADDR=:8080 compendium
//
// With COMPENDIUM_PACK_WATCH=true, changes under the packs directory
// rebuild the pack registry and reload every category that has loaded.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/compendium/browser"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/internal/config"
	"github.com/jonwraymond/compendium/internal/logger"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/registry"
	"github.com/jonwraymond/compendium/settings"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "compendium: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "compendium: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logger.WithContext(ctx, log)

	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Error("fatal", zap.Error(err))
	}
	_ = log.Sync()
	_ = closer.Close()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.FromContext(ctx)

	catalog := i18n.NewCatalog(cfg.Browser.Locale, nil)
	if cfg.Browser.Catalog != "" {
		var err error
		if catalog, err = i18n.LoadCatalogFile(cfg.Browser.Catalog); err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	defaults := pack.DefaultLoadDefaults()
	if cfg.Packs.Defaults != "" {
		var err error
		if defaults, err = pack.LoadDefaultsFile(cfg.Packs.Defaults); err != nil {
			return err
		}
	}

	var store settings.Store = settings.NewMemoryStore()
	if cfg.Settings.DSN != "" {
		sqlite, err := settings.OpenSQLite(ctx, cfg.Settings.DSN)
		if err != nil {
			return err
		}
		defer sqlite.Close()
		store = sqlite
	}

	b, err := browser.New(ctx, browser.Options{
		Source:       pack.NewDirSource(cfg.Packs.Dir, cfg.Packs.Concurrency),
		Settings:     store,
		Defaults:     &defaults,
		Localizer:    catalog,
		GM:           cfg.Browser.GM,
		CampaignType: cfg.Browser.CampaignType,
		ResultLimit:  cfg.Browser.ResultLimit,
	})
	if err != nil {
		return fmt.Errorf("create browser: %w", err)
	}
	defer func() {
		if err := b.Shutdown(); err != nil {
			log.Warn("shutdown browser", zap.Error(err))
		}
	}()

	reg := registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{Name: "compendium", Version: version},
	})
	if err := registry.RegisterCompendium(reg, b, version); err != nil {
		return err
	}
	if err := reg.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = reg.Stop() }()

	log.Info("serving",
		zap.String("transport", cfg.Server.Transport),
		zap.String("packs", cfg.Packs.Dir),
		zap.Strings("loaded", b.LoadedPacksAll()),
	)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Packs.Watch {
		g.Go(func() error {
			return pack.Watch(ctx, cfg.Packs.Dir, cfg.Packs.Debounce, func(ctx context.Context) {
				reload(ctx, b)
			})
		})
	}

	switch cfg.Server.Transport {
	case "http":
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           registry.Router(reg),
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(_ net.Listener) context.Context { return ctx },
		}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	default:
		g.Go(func() error {
			// Reads from stdin do not observe ctx.
			done := make(chan error, 1)
			go func() { done <- registry.ServeStdio(ctx, reg, os.Stdin, os.Stdout) }()
			select {
			case err := <-done:
				if err == nil {
					return errStdinClosed
				}
				return err
			case <-ctx.Done():
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, errStdinClosed) {
		return err
	}
	log.Info("shutting down")
	return nil
}

var errStdinClosed = errors.New("stdin closed")

// reload picks up added, removed or edited packs.
func reload(ctx context.Context, b *browser.Browser) {
	log := logger.FromContext(ctx)
	if err := b.RebuildPackRegistry(ctx); err != nil {
		log.Error("rebuild pack registry", zap.Error(err))
		return
	}
	if err := b.ResetInitializedCategories(ctx); err != nil {
		log.Error("reload categories", zap.Error(err))
		return
	}
	log.Info("reloaded packs", zap.Strings("loaded", b.LoadedPacksAll()))
}
