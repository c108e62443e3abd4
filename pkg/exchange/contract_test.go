package exchange

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uhyunpark/exchangeadapter/pkg/order"
)

type transactCall struct {
	opts   *bind.TransactOpts
	method string
	params []interface{}
}

type fakeTransactor struct {
	calls []transactCall
	err   error
}

func (f *fakeTransactor) Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error) {
	f.calls = append(f.calls, transactCall{opts, method, params})
	if f.err != nil {
		return nil, f.err
	}
	return sampleTx(), nil
}

func newTestEthContract(t *testing.T, tr Transactor) (*EthContract, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	auth := &bind.TransactOpts{From: common.HexToAddress("0xdead"), GasLimit: 250000}
	return NewEthContractWithTransactor(common.HexToAddress("0xe1"), tr, auth, zap.New(core)), logs
}

func TestEthContractPacksAgainstABI(t *testing.T) {
	tr := &fakeTransactor{}
	c, _ := newTestEthContract(t, tr)
	ex := New(c)
	ctx := context.Background()

	_, err := ex.Fill(ctx, sampleOrder(100), FillOpts{FillAmount: big.NewInt(50), From: caller})
	require.NoError(t, err)
	_, err = ex.BatchFill(ctx, []*order.Order{sampleOrder(1), sampleOrder(2)}, BatchFillOpts{From: caller})
	require.NoError(t, err)
	_, err = ex.Cancel(ctx, sampleOrder(100), CancelOpts{From: maker})
	require.NoError(t, err)

	parsed, err := parseExchangeABI()
	require.NoError(t, err)

	require.Len(t, tr.calls, 3)
	for i, method := range []string{"fill", "batchFill", "cancel"} {
		call := tr.calls[i]
		assert.Equal(t, method, call.method)

		data, err := parsed.Pack(call.method, call.params...)
		require.NoError(t, err, method)

		args, err := parsed.Methods[method].Inputs.Unpack(data[4:])
		require.NoError(t, err, method)
		assert.Len(t, args, len(call.params))
	}
}

func TestEthContractFillArguments(t *testing.T) {
	tr := &fakeTransactor{}
	c, _ := newTestEthContract(t, tr)

	_, err := New(c).Fill(context.Background(), sampleOrder(100), FillOpts{FillAmount: big.NewInt(50), From: caller})
	require.NoError(t, err)

	parsed, err := parseExchangeABI()
	require.NoError(t, err)
	data, err := parsed.Pack("fill", tr.calls[0].params...)
	require.NoError(t, err)
	args, err := parsed.Methods["fill"].Inputs.Unpack(data[4:])
	require.NoError(t, err)

	assert.Equal(t, [2]common.Address{maker, {}}, args[0])
	assert.Equal(t, feeTo, args[1])
	assert.Equal(t, int64(50), args[6].(*big.Int).Int64())
	assert.Equal(t, uint8(27), args[7])
}

func TestEthContractTransactOpts(t *testing.T) {
	tr := &fakeTransactor{}
	c, _ := newTestEthContract(t, tr)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := New(c).Cancel(ctx, sampleOrder(1), CancelOpts{From: caller})
	require.NoError(t, err)

	opts := tr.calls[0].opts
	assert.Equal(t, caller, opts.From)
	assert.Equal(t, ctx, opts.Context)
	assert.Equal(t, uint64(250000), opts.GasLimit)

	// template is untouched
	assert.Equal(t, common.HexToAddress("0xdead"), c.auth.From)
	assert.Nil(t, c.auth.Context)
}

func TestEthContractKeepsTemplateFromWhenUnset(t *testing.T) {
	tr := &fakeTransactor{}
	c, _ := newTestEthContract(t, tr)

	_, err := New(c).Fill(context.Background(), sampleOrder(1), FillOpts{})
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xdead"), tr.calls[0].opts.From)
}

func TestEthContractLogsSubmissions(t *testing.T) {
	tr := &fakeTransactor{}
	c, logs := newTestEthContract(t, tr)

	tx, err := New(c).Fill(context.Background(), sampleOrder(1), FillOpts{From: caller})
	require.NoError(t, err)

	entries := logs.FilterMessage("exchange_call_sent").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "fill", fields["method"])
	assert.Equal(t, tx.Hash().Hex(), fields["tx_hash"])
	assert.Equal(t, caller.Hex(), fields["from"])
}

func TestEthContractWrapsTransactError(t *testing.T) {
	sentinel := errors.New("no contract code at given address")
	tr := &fakeTransactor{err: sentinel}
	c, logs := newTestEthContract(t, tr)

	_, err := New(c).Fill(context.Background(), sampleOrder(1), FillOpts{From: caller})
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "exchange fill")
	assert.Equal(t, 1, logs.FilterMessage("exchange_call_failed").Len())
}

func TestDryRunContract(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ex := New(NewDryRunContract(zap.New(core)))
	ctx := context.Background()

	tx, err := ex.Fill(ctx, sampleOrder(100), FillOpts{FillAmount: big.NewInt(50), From: caller})
	require.NoError(t, err)
	assert.Nil(t, tx)
	_, err = ex.BatchFill(ctx, []*order.Order{sampleOrder(1), sampleOrder(2)}, BatchFillOpts{From: caller})
	require.NoError(t, err)
	_, err = ex.Cancel(ctx, sampleOrder(100), CancelOpts{From: maker})
	require.NoError(t, err)

	all := logs.All()
	require.Len(t, all, 3)
	assert.Equal(t, "fill", all[0].Message)
	assert.Equal(t, "50", all[0].ContextMap()["fill_value_m"])
	assert.Equal(t, true, all[0].ContextMap()["dry_run"])
	assert.Equal(t, "batch_fill", all[1].Message)
	assert.Equal(t, int64(2), all[1].ContextMap()["orders"])
	assert.Equal(t, "cancel", all[2].Message)
}
