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
	"github.com/situs-protocol/situs-indexer/internal/api/middleware"
	"github.com/situs-protocol/situs-indexer/internal/api/server"
	"github.com/situs-protocol/situs-indexer/internal/config"
	"github.com/situs-protocol/situs-indexer/internal/downloader"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/media/compositor"
	"github.com/situs-protocol/situs-indexer/internal/metadata"
	cfblob "github.com/situs-protocol/situs-indexer/internal/providers/cloudflare"
	"github.com/situs-protocol/situs-indexer/internal/providers/ethereum"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
	"github.com/situs-protocol/situs-indexer/internal/store"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
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
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Situs Indexer API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)
	dataStore := store.NewPGStore(db)

	// Connect to the chain RPC
	dialer := adapter.NewEthClientDialer()
	ethClient, err := dialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to RPC", zap.Error(err))
	}
	defer ethClient.Close()
	chainClient := ethereum.NewClient(ethClient)
	logger.InfoCtx(ctx, "Connected to RPC", zap.Uint64("chainID", cfg.Ethereum.ChainID))

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

	// Blob storage
	cfClient, err := adapter.NewCloudflareClient(cfg.Storage.APIToken)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create Cloudflare client", zap.Error(err))
	}
	blob := cfblob.NewBlobProvider(cfClient, &cfblob.Config{
		AccountID:       cfg.Storage.AccountID,
		AccountHash:     cfg.Storage.AccountHash,
		DeliveryBaseURL: cfg.Storage.DeliveryBaseURL,
	})

	// Shared adapters
	httpClient := adapter.NewHTTPClient(30 * time.Second)
	b64 := adapter.NewBase64()
	clock := adapter.NewClock()

	// Compositor and metadata generator
	comp := compositor.NewSVGCompositor(
		downloader.NewHTTPDownloader(httpClient),
		adapter.NewResvgClient(),
		adapter.NewImageEncoder(),
		b64,
	)
	generator := metadata.NewGenerator(chainClient, dataStore, calculator, comp, blob, &metadata.Config{
		FactoryAddress:   cfg.Ethereum.FactoryAddress,
		DefaultBaseImage: cfg.Storage.DefaultBaseImage,
		ImageWidth:       cfg.Compositor.Width,
	})

	// Reconciler
	rec := reconciler.New(chainClient, dataStore, calculator, httpClient, b64, clock, &reconciler.Config{
		FactoryAddress: cfg.Ethereum.FactoryAddress,
		Ensurance:      ensurance,
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			AdminAddresses: cfg.Auth.AdminAddresses,
			CronSecret:     cfg.Auth.CronSecret,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, rec, generator)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
