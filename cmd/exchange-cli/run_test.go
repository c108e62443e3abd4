package main

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhyunpark/exchangeadapter/params"
	"github.com/uhyunpark/exchangeadapter/pkg/order"
	"github.com/uhyunpark/exchangeadapter/pkg/util"
)

const orderFile = `[{
  "maker": "0x00000000000000000000000000000000000000a1",
  "tokenM": "0x00000000000000000000000000000000000000b1",
  "tokenT": "0x00000000000000000000000000000000000000b2",
  "valueM": "1000",
  "valueT": "2000",
  "signature": {
    "v": 28,
    "r": "0x0000000000000000000000000000000000000000000000000000000000000001",
    "s": "0x0000000000000000000000000000000000000000000000000000000000000002"
  }
}]`

func TestDefaultExpirationLeavesSignedOrderUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(orderFile), 0o644))

	orders, err := loadOrders(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	exchangeAddr := common.HexToAddress("0xe1")
	before := orders[0].Hash(exchangeAddr)

	applyDefaultExpiration(orders, util.FixedClock(time.Unix(1700000000, 0)), time.Hour)

	assert.Equal(t, before, orders[0].Hash(exchangeAddr))
	assert.Zero(t, orders[0].Expiration.Sign())
}

func TestDefaultExpirationForUnsignedOrder(t *testing.T) {
	orders := []*order.Order{{}}
	now := time.Unix(1700000000, 0)

	applyDefaultExpiration(orders, util.FixedClock(now), time.Hour)
	assert.Equal(t, now.Add(time.Hour).Unix(), orders[0].Expiration.Int64())
}

func TestApplyDefaultExpirationKeepsExisting(t *testing.T) {
	orders := []*order.Order{{Expiration: big.NewInt(42)}}
	applyDefaultExpiration(orders, util.FixedClock(time.Unix(1700000000, 0)), time.Hour)
	assert.Equal(t, int64(42), orders[0].Expiration.Int64())
}

func TestLoadOrdersMissingFile(t *testing.T) {
	_, err := loadOrders(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseAmounts(t *testing.T) {
	amounts, err := parseAmounts(nil, 6)
	require.NoError(t, err)
	assert.Nil(t, amounts)

	amounts, err = parseAmounts([]string{"1", "0.5"}, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), amounts[0].Int64())
	assert.Equal(t, int64(500000), amounts[1].Int64())

	_, err = parseAmounts([]string{"x"}, 6)
	assert.Error(t, err)
}

func TestNewContractDryRun(t *testing.T) {
	cfg := params.Default()
	target, client, _, err := newContract(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.NotNil(t, target)
}

func TestNewContractRequiresKey(t *testing.T) {
	cfg := params.Default()
	cfg.Exchange.DryRun = false
	_, _, _, err := newContract(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "PRIVATE_KEY")
}
