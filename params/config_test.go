package params

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(1337), cfg.Chain.ChainID.Int64())
	assert.True(t, cfg.Exchange.DryRun)
	assert.Equal(t, int32(18), cfg.CLI.TokenDecimals)
	assert.Equal(t, time.Hour, cfg.CLI.DefaultTTL)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("RPC_URL", "http://node:8545")
	t.Setenv("CHAIN_ID", "5")
	t.Setenv("GAS_LIMIT", "300000")
	t.Setenv("EXCHANGE_ADDRESS", "0x00000000000000000000000000000000000000e1")
	t.Setenv("DRY_RUN", "false")
	t.Setenv("TOKEN_DECIMALS", "6")
	t.Setenv("DEFAULT_TTL_SECONDS", "90")

	cfg := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "http://node:8545", cfg.Chain.RPCURL)
	assert.Equal(t, int64(5), cfg.Chain.ChainID.Int64())
	assert.Equal(t, uint64(300000), cfg.Chain.GasLimit)
	assert.Equal(t, common.HexToAddress("0xe1"), cfg.Exchange.Address)
	assert.False(t, cfg.Exchange.DryRun)
	assert.Equal(t, int32(6), cfg.CLI.TokenDecimals)
	assert.Equal(t, 90*time.Second, cfg.CLI.DefaultTTL)
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_FILE=/tmp/exchange-test.log\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_FILE") })

	cfg := LoadFromEnv(path)
	assert.Equal(t, "/tmp/exchange-test.log", cfg.CLI.LogFile)
}

func TestLoadFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("CHAIN_ID", "not-a-number")
	t.Setenv("EXCHANGE_ADDRESS", "0x1234")

	cfg := LoadFromEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, int64(1337), cfg.Chain.ChainID.Int64())
	assert.Equal(t, common.Address{}, cfg.Exchange.Address)
}
