package exchange

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// Transactor sends a state-changing contract call. *bind.BoundContract
// satisfies it.
type Transactor interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// EthContract sends exchange calls as signed transactions through a
// go-ethereum backend.
type EthContract struct {
	transactor Transactor
	auth       *bind.TransactOpts
	log        *zap.SugaredLogger
}

// NewEthContract binds the exchange at address. auth supplies the signer,
// nonce and gas settings; its From is replaced per call by CallOpts.From.
func NewEthContract(address common.Address, backend bind.ContractBackend, auth *bind.TransactOpts, logger *zap.Logger) (*EthContract, error) {
	parsed, err := parseExchangeABI()
	if err != nil {
		return nil, fmt.Errorf("failed to parse exchange ABI: %w", err)
	}
	bound := bind.NewBoundContract(address, parsed, backend, backend, backend)
	return NewEthContractWithTransactor(address, bound, auth, logger), nil
}

// NewEthContractWithTransactor is NewEthContract with the transactor
// supplied by the caller.
func NewEthContractWithTransactor(address common.Address, t Transactor, auth *bind.TransactOpts, logger *zap.Logger) *EthContract {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EthContract{
		transactor: t,
		auth:       auth,
		log:        logger.Sugar().With("exchange", address.Hex()),
	}
}

func (c *EthContract) Fill(
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
	return c.transact(opts, "fill",
		traders, feeRecipient, tokens, values, fees, expiration, fillValueM, v, rs)
}

func (c *EthContract) BatchFill(
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
	return c.transact(opts, "batchFill",
		traders, feeRecipients, tokens, values, fees, expirations, fillValuesM, v, rs)
}

func (c *EthContract) Cancel(
	traders [2]common.Address,
	tokens [2]common.Address,
	values [2]*big.Int,
	expiration *big.Int,
	cancelValueM *big.Int,
	opts *CallOpts,
) (*types.Transaction, error) {
	return c.transact(opts, "cancel",
		traders, tokens, values, expiration, cancelValueM)
}

func (c *EthContract) transact(opts *CallOpts, method string, params ...interface{}) (*types.Transaction, error) {
	auth := c.transactOpts(opts)
	tx, err := c.transactor.Transact(auth, method, params...)
	if err != nil {
		c.log.Warnw("exchange_call_failed", "method", method, "from", auth.From.Hex(), "err", err)
		return nil, fmt.Errorf("exchange %s: %w", method, err)
	}
	c.log.Infow("exchange_call_sent",
		"method", method,
		"from", auth.From.Hex(),
		"tx_hash", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
		"gas", tx.Gas(),
	)
	return tx, nil
}

// transactOpts copies the template so concurrent calls never share one.
func (c *EthContract) transactOpts(opts *CallOpts) *bind.TransactOpts {
	auth := &bind.TransactOpts{}
	if c.auth != nil {
		*auth = *c.auth
	}
	if opts == nil {
		return auth
	}
	if opts.From != (common.Address{}) {
		auth.From = opts.From
	}
	if opts.Context != nil {
		auth.Context = opts.Context
	}
	return auth
}

// WaitMined blocks until tx is included and returns its receipt. A
// reverted call is reported as an error.
func WaitMined(ctx context.Context, backend bind.DeployBackend, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, backend, tx)
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

var _ Contract = (*EthContract)(nil)
