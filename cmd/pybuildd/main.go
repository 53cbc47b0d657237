package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/buildvault/pybuild/pkg/blob"
	"github.com/buildvault/pybuild/pkg/config"
	"github.com/buildvault/pybuild/pkg/http"
	"github.com/buildvault/pybuild/pkg/installer"
	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/pipeline"

	_ "github.com/buildvault/pybuild/pkg/blob/fs"
	_ "github.com/buildvault/pybuild/pkg/blob/s3"
	_ "github.com/buildvault/pybuild/pkg/ledger/bc"
	_ "github.com/buildvault/pybuild/pkg/ledger/ddb"
)

var (
	cfgPath = pflag.String("config", "", "Path to a config file")
)

func main() {
	pflag.Parse()

	cfg := config.NewConfig()
	if *cfgPath != "" {
		if err := cfg.LoadFromFile(*cfgPath); err != nil {
			hclog.L().Error("Could not load config", "path", *cfgPath, "error", err)
			os.Exit(1)
		}
	}

	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  "pybuild",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	appLogger.Info("pybuild is initializing")

	srv, err := http.New(appLogger)
	if err != nil {
		appLogger.Error("Error initializing webserver", "error", err)
		return
	}

	ledger.SetLogger(appLogger)
	ledger.DoCallbacks()
	ldg, err := ledger.Initialize(cfg.LedgerStore)
	if err != nil {
		appLogger.Error("Couldn't initialize ledger", "error", err)
		return
	}

	blob.SetLogger(appLogger)
	blob.DoCallbacks()
	store, err := blob.Initialize(cfg.BlobStore)
	if err != nil {
		appLogger.Error("Couldn't initialize blob store", "error", err)
		ldg.Close()
		return
	}

	p := pipeline.New(appLogger,
		pipeline.WithInstaller(installer.NewPip(appLogger, cfg.PipBin)),
		pipeline.WithLedger(ldg),
		pipeline.WithStore(store),
		pipeline.WithWorkDir(cfg.WorkDir),
		pipeline.WithArchiveDir(cfg.ArchiveDir),
	)

	srv.Mount("/api/v1", p.HTTPEntry())
	go srv.Serve(cfg.Bind)

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, os.Interrupt)

	<-stop

	appLogger.Info("Shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		appLogger.Warn("Error draining HTTP server", "error", err)
	}
	ldg.Close()
	store.Close()
	appLogger.Info("Goodbye!")
}
