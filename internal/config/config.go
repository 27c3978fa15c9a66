package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/situs-protocol/situs-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// EthereumConfig holds chain access configuration
type EthereumConfig struct {
	RPCURL         string `mapstructure:"rpc_url"`
	ChainID        uint64 `mapstructure:"chain_id"`
	FactoryAddress string `mapstructure:"factory_address"`
}

// TBAConfig holds the fixed ERC-6551 derivation parameters.
// These must never change once accounts have been mirrored: the stored
// tba_address is compared byte-for-byte against fresh derivations.
type TBAConfig struct {
	RegistryAddress       string `mapstructure:"registry_address"`
	ImplementationAddress string `mapstructure:"implementation_address"`
	Salt                  string `mapstructure:"salt"`
}

// StorageConfig holds blob storage (Cloudflare Images) configuration
type StorageConfig struct {
	AccountID        string `mapstructure:"account_id"`
	AccountHash      string `mapstructure:"account_hash"`
	APIToken         string `mapstructure:"api_token"`
	DeliveryBaseURL  string `mapstructure:"delivery_base_url"`
	DefaultBaseImage string `mapstructure:"default_base_image"`
}

// EnsuranceChainConfig holds the per-chain endpoint for ensurance mirroring.
// Every chain needs its own RPC endpoint: the primary ethereum.rpc_url only
// serves the configured chain_id.
type EnsuranceChainConfig struct {
	RPCURL   string `mapstructure:"rpc_url"`
	Contract string `mapstructure:"contract"`
}

// AuthConfig holds admin allow-list and cron auth configuration
type AuthConfig struct {
	AdminAddresses []string `mapstructure:"admin_addresses"`
	CronSecret     string   `mapstructure:"cron_secret"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// CompositorConfig holds image compositor configuration
type CompositorConfig struct {
	// Width is the target width for rasterization
	Width int `mapstructure:"width"`
}

// SweeperConfig holds reconciliation sweeper configuration
type SweeperConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	PoolSize int           `mapstructure:"pool_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig                    `mapstructure:"server"`
	Database   DatabaseConfig                  `mapstructure:"database"`
	Ethereum   EthereumConfig                  `mapstructure:"ethereum"`
	TBA        TBAConfig                       `mapstructure:"tba"`
	Storage    StorageConfig                   `mapstructure:"storage"`
	Auth       AuthConfig                      `mapstructure:"auth"`
	Compositor CompositorConfig                `mapstructure:"compositor"`
	Ensurance  map[string]EnsuranceChainConfig `mapstructure:"ensurance"`
}

// SweeperdConfig holds configuration for the sweeper binary
type SweeperdConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig                  `mapstructure:"database"`
	Ethereum   EthereumConfig                  `mapstructure:"ethereum"`
	TBA        TBAConfig                       `mapstructure:"tba"`
	Sweeper    SweeperConfig                   `mapstructure:"sweeper"`
	Ensurance  map[string]EnsuranceChainConfig `mapstructure:"ensurance"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("ethereum.chain_id", 8453) // Base mainnet
	v.SetDefault("tba.registry_address", "0x000000006551c19487814612e58FE06813775758")
	v.SetDefault("tba.salt", "0x0000000000000000000000000000000000000000000000000000000000000000")
	v.SetDefault("compositor.width", 1080)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(cfg.Database, cfg.Ethereum); err != nil {
		return nil, err
	}
	if err := validateEnsurance(cfg.Ensurance); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper binary
func LoadSweeperConfig(configFile string, envPath string) (*SweeperdConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("ethereum.chain_id", 8453)
	v.SetDefault("tba.registry_address", "0x000000006551c19487814612e58FE06813775758")
	v.SetDefault("tba.salt", "0x0000000000000000000000000000000000000000000000000000000000000000")
	v.SetDefault("sweeper.interval", "1h")
	v.SetDefault("sweeper.pool_size", 1)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperdConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateCommon(cfg.Database, cfg.Ethereum); err != nil {
		return nil, err
	}
	if err := validateEnsurance(cfg.Ensurance); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateCommon checks the fields every binary needs
func validateCommon(db DatabaseConfig, eth EthereumConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if eth.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required")
	}
	if eth.FactoryAddress == "" {
		return errors.New("ethereum.factory_address is required")
	}
	return nil
}

// validateEnsurance rejects misconfigured ensurance chains before anything
// dials an RPC endpoint
func validateEnsurance(ensurance map[string]EnsuranceChainConfig) error {
	for chainName, chain := range ensurance {
		if !domain.Chain(chainName).Valid() {
			return fmt.Errorf("ensurance.%s: unknown chain", chainName)
		}
		if chain.RPCURL == "" {
			return fmt.Errorf("ensurance.%s.rpc_url is required", chainName)
		}
		if chain.Contract == "" {
			return fmt.Errorf("ensurance.%s.contract is required", chainName)
		}
	}
	return nil
}

// readConfig reads the config file, tolerating a missing file (env-only deployments)
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SITUS_INDEXER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.factory_address",
		// TBA
		"tba.registry_address",
		"tba.implementation_address",
		"tba.salt",
		// Storage
		"storage.account_id",
		"storage.account_hash",
		"storage.api_token",
		"storage.delivery_base_url",
		"storage.default_base_image",
		// Auth
		"auth.admin_addresses",
		"auth.cron_secret",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Compositor
		"compositor.width",
		// Sweeper
		"sweeper.interval",
		"sweeper.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then optional per-service local
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
