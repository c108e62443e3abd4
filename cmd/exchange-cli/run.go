package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uhyunpark/exchangeadapter/params"
	"github.com/uhyunpark/exchangeadapter/pkg/crypto"
	"github.com/uhyunpark/exchangeadapter/pkg/exchange"
	"github.com/uhyunpark/exchangeadapter/pkg/order"
	"github.com/uhyunpark/exchangeadapter/pkg/util"
)

type op int

const (
	opFill op = iota
	opBatchFill
	opCancel
)

func (o op) String() string {
	switch o {
	case opFill:
		return "fill"
	case opBatchFill:
		return "batch_fill"
	case opCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

func run(cmd *cobra.Command, which op) error {
	envPath, _ := cmd.Flags().GetString("env")
	cfg := params.LoadFromEnv(envPath)

	logger, err := util.NewLoggerWithFile(cfg.CLI.LogFile)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ordersPath, _ := cmd.Flags().GetString("orders")
	orders, err := loadOrders(ordersPath)
	if err != nil {
		return err
	}
	applyDefaultExpiration(orders, util.RealClock{}, cfg.CLI.DefaultTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	target, client, signerAddr, err := newContract(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	from := signerAddr
	if s, _ := cmd.Flags().GetString("from"); s != "" {
		if !common.IsHexAddress(s) {
			return fmt.Errorf("invalid --from address %q", s)
		}
		from = common.HexToAddress(s)
	}

	for _, o := range orders {
		sugar.Infow("order_loaded",
			"op", which.String(),
			"order_hash", o.Hash(cfg.Exchange.Address).Hex(),
			"maker", o.Maker.Hex(),
			"value_m", order.FormatUnits(o.ValueM, cfg.CLI.TokenDecimals),
		)
	}

	ex := exchange.New(target)
	var tx *types.Transaction
	switch which {
	case opFill:
		if len(orders) != 1 {
			return fmt.Errorf("fill takes exactly one order, got %d", len(orders))
		}
		if sig, _ := cmd.Flags().GetString("sig"); sig != "" {
			if orders[0].Signature, err = crypto.ParseSignature(sig); err != nil {
				return err
			}
		}
		amount, err := optionalAmount(cmd, "amount", cfg.CLI.TokenDecimals)
		if err != nil {
			return err
		}
		tx, err = ex.Fill(ctx, orders[0], exchange.FillOpts{FillAmount: amount, From: from})
		if err != nil {
			return err
		}

	case opBatchFill:
		raw, _ := cmd.Flags().GetStringSlice("amounts")
		amounts, err := parseAmounts(raw, cfg.CLI.TokenDecimals)
		if err != nil {
			return err
		}
		tx, err = ex.BatchFill(ctx, orders, exchange.BatchFillOpts{FillAmounts: amounts, From: from})
		if err != nil {
			return err
		}

	case opCancel:
		if len(orders) != 1 {
			return fmt.Errorf("cancel takes exactly one order, got %d", len(orders))
		}
		amount, err := optionalAmount(cmd, "amount", cfg.CLI.TokenDecimals)
		if err != nil {
			return err
		}
		tx, err = ex.Cancel(ctx, orders[0], exchange.CancelOpts{CancelAmount: amount, From: from})
		if err != nil {
			return err
		}
	}

	if tx == nil {
		sugar.Infow("dry_run_complete", "op", which.String(), "orders", len(orders))
		return nil
	}
	sugar.Infow("tx_sent", "op", which.String(), "tx_hash", tx.Hash().Hex())

	if wait, _ := cmd.Flags().GetBool("wait"); wait && client != nil {
		receipt, err := exchange.WaitMined(ctx, client, tx)
		if err != nil {
			return err
		}
		sugar.Infow("tx_mined",
			"tx_hash", tx.Hash().Hex(),
			"block", receipt.BlockNumber.String(),
			"gas_used", receipt.GasUsed,
		)
	}
	return nil
}

// newContract returns the dry-run target or a live one bound through
// ethclient. The client is nil in dry-run mode.
func newContract(ctx context.Context, cfg params.Config, logger *zap.Logger) (exchange.Contract, *ethclient.Client, common.Address, error) {
	var signerAddr common.Address
	var signer *crypto.Signer
	if cfg.Exchange.PrivateKey != "" {
		s, err := crypto.FromPrivateKeyHex(cfg.Exchange.PrivateKey)
		if err != nil {
			return nil, nil, common.Address{}, err
		}
		signer, signerAddr = s, s.Address()
	}

	if cfg.Exchange.DryRun {
		return exchange.NewDryRunContract(logger), nil, signerAddr, nil
	}
	if signer == nil {
		return nil, nil, common.Address{}, fmt.Errorf("PRIVATE_KEY is required unless DRY_RUN=true")
	}
	if cfg.Exchange.Address == (common.Address{}) {
		return nil, nil, common.Address{}, fmt.Errorf("EXCHANGE_ADDRESS is required unless DRY_RUN=true")
	}

	client, err := ethclient.DialContext(ctx, cfg.Chain.RPCURL)
	if err != nil {
		return nil, nil, common.Address{}, fmt.Errorf("dial %s: %w", cfg.Chain.RPCURL, err)
	}
	auth, err := signer.TransactOpts(cfg.Chain.ChainID, cfg.Chain.GasLimit)
	if err != nil {
		client.Close()
		return nil, nil, common.Address{}, err
	}
	target, err := exchange.NewEthContract(cfg.Exchange.Address, client, auth, logger)
	if err != nil {
		client.Close()
		return nil, nil, common.Address{}, err
	}
	return target, client, signerAddr, nil
}

func loadOrders(path string) ([]*order.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	return order.ParseOrders(data)
}

// applyDefaultExpiration gives unsigned orders without an expiration one
// ttl from now. Signed orders are left alone: the expiration is covered by
// the maker's signature.
func applyDefaultExpiration(orders []*order.Order, clock util.Clock, ttl time.Duration) {
	exp := big.NewInt(clock.Now().Add(ttl).Unix())
	for _, o := range orders {
		if o.Signature != nil {
			continue
		}
		if o.Expiration == nil || o.Expiration.Sign() == 0 {
			o.Expiration = new(big.Int).Set(exp)
		}
	}
}

func optionalAmount(cmd *cobra.Command, flag string, decimals int32) (*big.Int, error) {
	s, _ := cmd.Flags().GetString(flag)
	if s == "" {
		return nil, nil
	}
	return order.ParseUnits(s, decimals)
}

// parseAmounts returns nil for no input so every order is filled in full.
func parseAmounts(raw []string, decimals int32) ([]*big.Int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*big.Int, len(raw))
	for i, s := range raw {
		v, err := order.ParseUnits(s, decimals)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
