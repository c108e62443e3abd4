package exchange

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// DryRunContract logs each call it receives and sends nothing. It returns
// a nil transaction.
type DryRunContract struct {
	log *zap.Logger
}

// NewDryRunContract logs to logger; nil discards.
func NewDryRunContract(logger *zap.Logger) *DryRunContract {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunContract{log: logger.With(zap.Bool("dry_run", true))}
}

func (d *DryRunContract) Fill(
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
) (*types.Transaction, error) {
	d.log.Info("fill",
		zap.Stringer("from", from(opts)),
		zap.Strings("traders", hexAddrs(traders[:])),
		zap.Stringer("fee_recipient", feeRecipient),
		zap.Strings("tokens", hexAddrs(tokens[:])),
		zap.Strings("values", decimals(values[:])),
		zap.Strings("fees", decimals(fees[:])),
		zap.Stringer("expiration", expiration),
		zap.Stringer("fill_value_m", fillValueM),
		zap.Uint8("v", v),
	)
	return nil, nil
}

func (d *DryRunContract) BatchFill(
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
) (*types.Transaction, error) {
	d.log.Info("batch_fill",
		zap.Stringer("from", from(opts)),
		zap.Int("orders", len(traders)),
		zap.Strings("fee_recipients", hexAddrs(feeRecipients)),
		zap.Strings("expirations", decimals(expirations)),
		zap.Strings("fill_values_m", decimals(fillValuesM)),
	)
	return nil, nil
}

func (d *DryRunContract) Cancel(
	traders [2]common.Address,
	tokens [2]common.Address,
	values [2]*big.Int,
	expiration *big.Int,
	cancelValueM *big.Int,
	opts *CallOpts,
) (*types.Transaction, error) {
	d.log.Info("cancel",
		zap.Stringer("from", from(opts)),
		zap.Strings("traders", hexAddrs(traders[:])),
		zap.Strings("tokens", hexAddrs(tokens[:])),
		zap.Strings("values", decimals(values[:])),
		zap.Stringer("expiration", expiration),
		zap.Stringer("cancel_value_m", cancelValueM),
	)
	return nil, nil
}

func from(opts *CallOpts) common.Address {
	if opts == nil {
		return common.Address{}
	}
	return opts.From
}

func hexAddrs(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}

func decimals(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

var _ Contract = (*DryRunContract)(nil)
