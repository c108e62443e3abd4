package params

import (
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

type Chain struct {
	RPCURL  string
	ChainID *big.Int
	// GasLimit of 0 lets the node estimate gas for each call.
	GasLimit uint64
}

type Exchange struct {
	Address common.Address
	// PrivateKey is the hex key used to sign outgoing transactions.
	// Keep it out of logs.
	PrivateKey string
	// DryRun logs the formatted contract calls instead of sending them.
	DryRun bool
}

type CLI struct {
	TokenDecimals int32
	// DefaultTTL is added to the current time when an order omits its expiration.
	DefaultTTL time.Duration
	LogFile    string
}

type Config struct {
	Chain    Chain
	Exchange Exchange
	CLI      CLI
}

func Default() Config {
	return Config{
		Chain: Chain{
			RPCURL:  "http://127.0.0.1:8545",
			ChainID: big.NewInt(1337), // Local dev chain
		},
		Exchange: Exchange{
			DryRun: true,
		},
		CLI: CLI{
			TokenDecimals: 18,
			DefaultTTL:    time.Hour,
			LogFile:       "data/exchange.log",
		},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Try to load .env file (optional - won't fail if not exists)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.Chain.RPCURL = getEnv("RPC_URL", cfg.Chain.RPCURL)
	if id := os.Getenv("CHAIN_ID"); id != "" {
		if v, ok := new(big.Int).SetString(id, 10); ok {
			cfg.Chain.ChainID = v
		}
	}
	if gas := os.Getenv("GAS_LIMIT"); gas != "" {
		if v, err := strconv.ParseUint(gas, 10, 64); err == nil {
			cfg.Chain.GasLimit = v
		}
	}

	if addr := os.Getenv("EXCHANGE_ADDRESS"); common.IsHexAddress(addr) {
		cfg.Exchange.Address = common.HexToAddress(addr)
	}
	cfg.Exchange.PrivateKey = getEnv("PRIVATE_KEY", cfg.Exchange.PrivateKey)
	if dry := os.Getenv("DRY_RUN"); dry != "" {
		cfg.Exchange.DryRun = dry == "true"
	}

	if dec := os.Getenv("TOKEN_DECIMALS"); dec != "" {
		if v, err := strconv.ParseInt(dec, 10, 32); err == nil {
			cfg.CLI.TokenDecimals = int32(v)
		}
	}
	if ttl := os.Getenv("DEFAULT_TTL_SECONDS"); ttl != "" {
		if s, err := strconv.Atoi(ttl); err == nil {
			cfg.CLI.DefaultTTL = time.Duration(s) * time.Second
		}
	}
	cfg.CLI.LogFile = getEnv("LOG_FILE", cfg.CLI.LogFile)

	return cfg
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
