package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/config"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/providers/ethereum"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
	"github.com/situs-protocol/situs-indexer/internal/store"
	"github.com/situs-protocol/situs-indexer/internal/sweeper"
	"github.com/situs-protocol/situs-indexer/internal/tba"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Situs Indexer sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Connect to the chain RPC
	dialer := adapter.NewEthClientDialer()
	ethClient, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to RPC", zap.Error(err))
	}
	defer ethClient.Close()
	chainClient := ethereum.NewClient(ethClient)

	// Each ensurance chain gets a client dialed against its own endpoint
	ensurance := make(map[string]reconciler.EnsuranceChain, len(cfg.Ensurance))
	for chainName, chainCfg := range cfg.Ensurance {
		rpc, err := dialer.Dial(ctx, chainCfg.RPCURL)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to ensurance RPC",
				zap.String("chain", chainName), zap.Error(err))
		}
		defer rpc.Close()
		ensurance[chainName] = reconciler.EnsuranceChain{
			Contract: chainCfg.Contract,
			Client:   ethereum.NewClient(rpc),
		}
	}

	// TBA calculator
	calculator, err := tba.NewCalculatorFromHex(
		cfg.TBA.RegistryAddress,
		cfg.TBA.ImplementationAddress,
		cfg.TBA.Salt,
		cfg.Ethereum.ChainID,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build TBA calculator", zap.Error(err))
	}

	// Shared adapters
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	clock := adapter.NewClock()

	// Reconciler and sweeper
	rec := reconciler.New(chainClient, dataStore, calculator, httpClient, adapter.NewBase64(), clock, &reconciler.Config{
		FactoryAddress: cfg.Ethereum.FactoryAddress,
		Ensurance:      ensurance,
	})

	sw := sweeper.NewReconcileSweeper(&sweeper.Config{
		Interval:       cfg.Sweeper.Interval,
		WorkerPoolSize: cfg.Sweeper.PoolSize,
	}, rec, clock)

	errCh := make(chan error, 1)
	go func() {
		if err := sw.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "sweeper"))
	}

	sw.Stop()
	cancel()

	logger.Info("Sweeper stopped")
}
