package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/buildvault/pybuild/pkg/blob"
	"github.com/buildvault/pybuild/pkg/config"
	"github.com/buildvault/pybuild/pkg/installer"
	"github.com/buildvault/pybuild/pkg/ledger"
	"github.com/buildvault/pybuild/pkg/pipeline"
	"github.com/buildvault/pybuild/pkg/types"

	_ "github.com/buildvault/pybuild/pkg/blob/fs"
	_ "github.com/buildvault/pybuild/pkg/blob/s3"
	_ "github.com/buildvault/pybuild/pkg/ledger/bc"
	_ "github.com/buildvault/pybuild/pkg/ledger/ddb"
)

var (
	cfgPath  = pflag.String("config", "", "Path to a config file")
	pkg      = pflag.String("package", "", "Package to build")
	version  = pflag.String("version", "", "Version being requested")
	license  = pflag.String("license", "", "License info echoed onto the result")
	logLevel = pflag.String("log-level", "", "Override the configured log level")
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
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  "pybuild",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})
	appLogger.Info("pybuild is initializing")

	ledger.SetLogger(appLogger)
	ledger.DoCallbacks()
	ldg, err := ledger.Initialize(cfg.LedgerStore)
	if err != nil {
		appLogger.Error("Couldn't initialize ledger", "error", err)
		os.Exit(1)
	}

	blob.SetLogger(appLogger)
	blob.DoCallbacks()
	store, err := blob.Initialize(cfg.BlobStore)
	if err != nil {
		appLogger.Error("Couldn't initialize blob store", "error", err)
		ldg.Close()
		os.Exit(1)
	}

	p := pipeline.New(appLogger,
		pipeline.WithInstaller(installer.NewPip(appLogger, cfg.PipBin)),
		pipeline.WithLedger(ldg),
		pipeline.WithStore(store),
		pipeline.WithWorkDir(cfg.WorkDir),
		pipeline.WithArchiveDir(cfg.ArchiveDir),
	)

	lic, _ := json.Marshal(*license)
	req := types.BuildRequest{
		Package:     *pkg,
		Version:     *version,
		LicenseInfo: lic,
	}

	res, err := p.Build(context.Background(), req)
	ldg.Close()
	store.Close()
	if err != nil {
		appLogger.Error("Build failed", "package", *pkg, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.Encode(res.BuildResult)
}
