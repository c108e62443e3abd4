// Package format flattens orders into the positional parameters taken by
// the exchange contract's fill, batchFill and cancel methods.
package format

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/uhyunpark/exchangeadapter/pkg/order"
)

var (
	ErrNilOrder         = errors.New("order is nil")
	ErrMissingField     = errors.New("order is missing a required field")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrEmptyBatch       = errors.New("batch contains no orders")
	ErrLengthMismatch   = errors.New("orders and amounts differ in length")
	ErrMissingSignature = errors.New("order is not signed")
)

// FillParams are the arguments of Exchange.fill, in call order.
type FillParams struct {
	Traders      [2]common.Address // maker, taker
	FeeRecipient common.Address
	Tokens       [2]common.Address // tokenM, tokenT
	Values       [2]*big.Int       // valueM, valueT
	Fees         [2]*big.Int       // feeM, feeT
	Expiration   *big.Int
	FillValueM   *big.Int
	V            uint8
	RS           [2][32]byte
}

// BatchFillParams holds one slot per order, in input order.
type BatchFillParams struct {
	Traders       [][2]common.Address
	FeeRecipients []common.Address
	Tokens        [][2]common.Address
	Values        [][2]*big.Int
	Fees          [][2]*big.Int
	Expirations   []*big.Int
	FillValuesM   []*big.Int
	V             []uint8
	RS            [][2][32]byte
}

// CancelParams are the arguments of Exchange.cancel, in call order.
type CancelParams struct {
	Traders      [2]common.Address
	Tokens       [2]common.Address
	Values       [2]*big.Int
	Expiration   *big.Int
	CancelValueM *big.Int
}

// Formatter is stateless; the zero value is ready to use.
type Formatter struct{}

// CreateFill formats a single fill. A nil fillValueM fills the whole
// maker amount.
func (Formatter) CreateFill(o *order.Order, fillValueM *big.Int) (*FillParams, error) {
	if err := checkOrder(o, true); err != nil {
		return nil, err
	}
	amount, err := amountOrDefault(fillValueM, o.ValueM)
	if err != nil {
		return nil, err
	}
	return &FillParams{
		Traders:      [2]common.Address{o.Maker, o.Taker},
		FeeRecipient: o.FeeRecipient,
		Tokens:       [2]common.Address{o.TokenM, o.TokenT},
		Values:       [2]*big.Int{clone(o.ValueM), clone(o.ValueT)},
		Fees:         [2]*big.Int{clone(o.FeeM), clone(o.FeeT)},
		Expiration:   clone(o.Expiration),
		FillValueM:   amount,
		V:            o.Signature.V,
		RS:           [2][32]byte{o.Signature.R, o.Signature.S},
	}, nil
}

// CreateBatchFill formats several fills into parallel arrays. fillValuesM
// may be nil to fill every order completely; otherwise it must have one
// entry per order, and nil entries default to that order's maker amount.
func (f Formatter) CreateBatchFill(orders []*order.Order, fillValuesM []*big.Int) (*BatchFillParams, error) {
	if len(orders) == 0 {
		return nil, ErrEmptyBatch
	}
	if fillValuesM != nil && len(fillValuesM) != len(orders) {
		return nil, fmt.Errorf("%w: %d orders, %d amounts", ErrLengthMismatch, len(orders), len(fillValuesM))
	}

	n := len(orders)
	out := &BatchFillParams{
		Traders:       make([][2]common.Address, 0, n),
		FeeRecipients: make([]common.Address, 0, n),
		Tokens:        make([][2]common.Address, 0, n),
		Values:        make([][2]*big.Int, 0, n),
		Fees:          make([][2]*big.Int, 0, n),
		Expirations:   make([]*big.Int, 0, n),
		FillValuesM:   make([]*big.Int, 0, n),
		V:             make([]uint8, 0, n),
		RS:            make([][2][32]byte, 0, n),
	}
	for i, o := range orders {
		var amount *big.Int
		if fillValuesM != nil {
			amount = fillValuesM[i]
		}
		p, err := f.CreateFill(o, amount)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		out.Traders = append(out.Traders, p.Traders)
		out.FeeRecipients = append(out.FeeRecipients, p.FeeRecipient)
		out.Tokens = append(out.Tokens, p.Tokens)
		out.Values = append(out.Values, p.Values)
		out.Fees = append(out.Fees, p.Fees)
		out.Expirations = append(out.Expirations, p.Expiration)
		out.FillValuesM = append(out.FillValuesM, p.FillValueM)
		out.V = append(out.V, p.V)
		out.RS = append(out.RS, p.RS)
	}
	return out, nil
}

// CreateCancel formats a cancel. A nil cancelValueM cancels the whole
// maker amount. Cancels are sent by the maker, so no signature is needed.
func (Formatter) CreateCancel(o *order.Order, cancelValueM *big.Int) (*CancelParams, error) {
	if err := checkOrder(o, false); err != nil {
		return nil, err
	}
	amount, err := amountOrDefault(cancelValueM, o.ValueM)
	if err != nil {
		return nil, err
	}
	return &CancelParams{
		Traders:      [2]common.Address{o.Maker, o.Taker},
		Tokens:       [2]common.Address{o.TokenM, o.TokenT},
		Values:       [2]*big.Int{clone(o.ValueM), clone(o.ValueT)},
		Expiration:   clone(o.Expiration),
		CancelValueM: amount,
	}, nil
}

func checkOrder(o *order.Order, needSig bool) error {
	if o == nil {
		return ErrNilOrder
	}
	fields := []struct {
		name string
		v    *big.Int
	}{
		{"valueM", o.ValueM},
		{"valueT", o.ValueT},
		{"feeM", o.FeeM},
		{"feeT", o.FeeT},
		{"expiration", o.Expiration},
	}
	for _, f := range fields {
		if f.v == nil {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
		if f.v.Sign() < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeAmount, f.name)
		}
	}
	if needSig && o.Signature == nil {
		return ErrMissingSignature
	}
	return nil
}

func amountOrDefault(amount, def *big.Int) (*big.Int, error) {
	if amount == nil {
		return clone(def), nil
	}
	if amount.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	return clone(amount), nil
}

func clone(v *big.Int) *big.Int {
	return new(big.Int).Set(v)
}
