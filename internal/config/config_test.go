package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/situs-protocol/situs-indexer/internal/config"
)

// setRequiredEnv sets the minimum environment every binary needs
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SITUS_INDEXER_DATABASE_HOST", "localhost")
	t.Setenv("SITUS_INDEXER_DATABASE_DBNAME", "situs")
	t.Setenv("SITUS_INDEXER_ETHEREUM_RPC_URL", "https://base.example/rpc")
	t.Setenv("SITUS_INDEXER_ETHEREUM_FACTORY_ADDRESS", "0x4087fb91A1fBdef05761C02714335D232a2Bf3a1")
}

func TestLoadAPIConfig_FromEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITUS_INDEXER_DATABASE_USER", "indexer")
	t.Setenv("SITUS_INDEXER_DATABASE_PASSWORD", "secret")
	t.Setenv("SITUS_INDEXER_AUTH_CRON_SECRET", "cron-secret")
	t.Setenv("SITUS_INDEXER_AUTH_ADMIN_ADDRESSES", "0xAbC0000000000000000000000000000000000001,0xDef0000000000000000000000000000000000002")
	t.Setenv("SITUS_INDEXER_STORAGE_ACCOUNT_ID", "cf-account")
	t.Setenv("SITUS_INDEXER_TBA_IMPLEMENTATION_ADDRESS", "0x2222222222222222222222222222222222222222")

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "situs", cfg.Database.DBName)
	assert.Equal(t, "indexer", cfg.Database.User)
	assert.Equal(t, "https://base.example/rpc", cfg.Ethereum.RPCURL)
	assert.Equal(t, "0x4087fb91A1fBdef05761C02714335D232a2Bf3a1", cfg.Ethereum.FactoryAddress)
	assert.Equal(t, "cron-secret", cfg.Auth.CronSecret)
	assert.Equal(t, "cf-account", cfg.Storage.AccountID)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", cfg.TBA.ImplementationAddress)

	// Comma-separated env value becomes a slice
	require.Len(t, cfg.Auth.AdminAddresses, 2)
	assert.Equal(t, "0xAbC0000000000000000000000000000000000001", cfg.Auth.AdminAddresses[0])
}

func TestLoadAPIConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, uint64(8453), cfg.Ethereum.ChainID)
	assert.Equal(t, "0x000000006551c19487814612e58FE06813775758", cfg.TBA.RegistryAddress)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000000", cfg.TBA.Salt)
	assert.Equal(t, 1080, cfg.Compositor.Width)
}

func TestLoadAPIConfig_MissingRequired(t *testing.T) {
	testCases := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"missing db host", "SITUS_INDEXER_DATABASE_HOST", "database.host is required"},
		{"missing db name", "SITUS_INDEXER_DATABASE_DBNAME", "database.dbname is required"},
		{"missing rpc url", "SITUS_INDEXER_ETHEREUM_RPC_URL", "ethereum.rpc_url is required"},
		{"missing factory", "SITUS_INDEXER_ETHEREUM_FACTORY_ADDRESS", "ethereum.factory_address is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.unset, "")

			_, err := config.LoadAPIConfig("", t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAPIConfig_Ensurance(t *testing.T) {
	setRequiredEnv(t)

	configFile := writeConfigFile(t, `
ensurance:
  base:
    rpc_url: https://base.example/rpc
    contract: "0x1111111111111111111111111111111111111111"
  arbitrum:
    rpc_url: https://arb.example/rpc
    contract: "0x2222222222222222222222222222222222222222"
`)

	cfg, err := config.LoadAPIConfig(configFile, t.TempDir())
	require.NoError(t, err)

	require.Len(t, cfg.Ensurance, 2)
	assert.Equal(t, "https://arb.example/rpc", cfg.Ensurance["arbitrum"].RPCURL)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", cfg.Ensurance["base"].Contract)
}

func TestLoadAPIConfig_EnsuranceValidation(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown chain",
			yaml: `
ensurance:
  solana:
    rpc_url: https://sol.example/rpc
    contract: "0x1111111111111111111111111111111111111111"
`,
			wantErr: "ensurance.solana: unknown chain",
		},
		{
			name: "missing rpc url",
			yaml: `
ensurance:
  base:
    contract: "0x1111111111111111111111111111111111111111"
`,
			wantErr: "ensurance.base.rpc_url is required",
		},
		{
			name: "missing contract",
			yaml: `
ensurance:
  optimism:
    rpc_url: https://op.example/rpc
`,
			wantErr: "ensurance.optimism.contract is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			configFile := writeConfigFile(t, tc.yaml)

			_, err := config.LoadAPIConfig(configFile, t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITUS_INDEXER_SWEEPER_INTERVAL", "30m")
	t.Setenv("SITUS_INDEXER_SWEEPER_POOL_SIZE", "4")

	cfg, err := config.LoadSweeperConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.Sweeper.Interval)
	assert.Equal(t, 4, cfg.Sweeper.PoolSize)
	// Sweepers keep a small pool by default
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "indexer",
		Password: "secret",
		DBName:   "situs",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=indexer password=secret dbname=situs sslmode=require",
		cfg.DSN())
}
