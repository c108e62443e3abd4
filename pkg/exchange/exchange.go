// Package exchange wraps an exchange contract so callers can fill and
// cancel order records instead of assembling positional arguments.
package exchange

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/uhyunpark/exchangeadapter/pkg/format"
	"github.com/uhyunpark/exchangeadapter/pkg/order"
)

// CallOpts is the per-call metadata handed to a Contract.
type CallOpts struct {
	Context context.Context
	From    common.Address
}

// Contract is the call surface of a deployed exchange. The returned
// transaction is pending; callers wait for it themselves.
type Contract interface {
	Fill(
		traders [2]common.Address,
		feeRecipient common.Address,
		tokens [2]common.Address,
		values [2]*big.Int,
		fees [2]*big.Int,
		expiration *big.Int,
		fillValueM *big.Int,
		v uint8,
		rs [2][32]byte,
		opts *CallOpts,
	) (*types.Transaction, error)

	BatchFill(
		traders [][2]common.Address,
		feeRecipients []common.Address,
		tokens [][2]common.Address,
		values [][2]*big.Int,
		fees [][2]*big.Int,
		expirations []*big.Int,
		fillValuesM []*big.Int,
		v []uint8,
		rs [][2][32]byte,
		opts *CallOpts,
	) (*types.Transaction, error)

	Cancel(
		traders [2]common.Address,
		tokens [2]common.Address,
		values [2]*big.Int,
		expiration *big.Int,
		cancelValueM *big.Int,
		opts *CallOpts,
	) (*types.Transaction, error)
}

// Formatter turns orders into contract parameters. format.Formatter is
// the default.
type Formatter interface {
	CreateFill(o *order.Order, fillValueM *big.Int) (*format.FillParams, error)
	CreateBatchFill(orders []*order.Order, fillValuesM []*big.Int) (*format.BatchFillParams, error)
	CreateCancel(o *order.Order, cancelValueM *big.Int) (*format.CancelParams, error)
}

// FillOpts configures Exchange.Fill. A nil FillAmount fills the whole
// maker amount.
type FillOpts struct {
	FillAmount *big.Int
	From       common.Address
}

// BatchFillOpts configures Exchange.BatchFill.
type BatchFillOpts struct {
	FillAmounts []*big.Int
	From        common.Address
}

// CancelOpts configures Exchange.Cancel.
type CancelOpts struct {
	CancelAmount *big.Int
	From         common.Address
}

// Exchange holds no state between calls and is safe for concurrent use.
// Errors from the formatter or the contract are returned as is.
type Exchange struct {
	contract  Contract
	formatter Formatter
}

// Option configures an Exchange.
type Option func(*Exchange)

// WithFormatter replaces the default formatter.
func WithFormatter(f Formatter) Option {
	return func(e *Exchange) { e.formatter = f }
}

// New wraps contract. The default formatter is format.Formatter.
func New(contract Contract, opts ...Option) *Exchange {
	e := &Exchange{
		contract:  contract,
		formatter: format.Formatter{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Fill formats o and sends a single fill from opts.From.
func (e *Exchange) Fill(ctx context.Context, o *order.Order, opts FillOpts) (*types.Transaction, error) {
	p, err := e.formatter.CreateFill(o, opts.FillAmount)
	if err != nil {
		return nil, err
	}
	return e.contract.Fill(
		p.Traders,
		p.FeeRecipient,
		p.Tokens,
		p.Values,
		p.Fees,
		p.Expiration,
		p.FillValueM,
		p.V,
		p.RS,
		&CallOpts{Context: ctx, From: opts.From},
	)
}

// BatchFill formats orders into parallel arrays, in input order, and
// sends them in one batchFill.
func (e *Exchange) BatchFill(ctx context.Context, orders []*order.Order, opts BatchFillOpts) (*types.Transaction, error) {
	p, err := e.formatter.CreateBatchFill(orders, opts.FillAmounts)
	if err != nil {
		return nil, err
	}
	return e.contract.BatchFill(
		p.Traders,
		p.FeeRecipients,
		p.Tokens,
		p.Values,
		p.Fees,
		p.Expirations,
		p.FillValuesM,
		p.V,
		p.RS,
		&CallOpts{Context: ctx, From: opts.From},
	)
}

// Cancel formats o and sends a cancel from opts.From.
func (e *Exchange) Cancel(ctx context.Context, o *order.Order, opts CancelOpts) (*types.Transaction, error) {
	p, err := e.formatter.CreateCancel(o, opts.CancelAmount)
	if err != nil {
		return nil, err
	}
	return e.contract.Cancel(
		p.Traders,
		p.Tokens,
		p.Values,
		p.Expiration,
		p.CancelValueM,
		&CallOpts{Context: ctx, From: opts.From},
	)
}
