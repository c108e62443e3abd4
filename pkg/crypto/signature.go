package crypto

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/uhyunpark/exchangeadapter/pkg/order"
)

// SignatureToRSV splits a 65-byte [R || S || V] signature into its components
func SignatureToRSV(signature []byte) (r, s *big.Int, v uint8, err error) {
	if len(signature) != 65 {
		return nil, nil, 0, fmt.Errorf("invalid signature length: %d", len(signature))
	}
	r = new(big.Int).SetBytes(signature[:32])
	s = new(big.Int).SetBytes(signature[32:64])
	return r, s, signature[64], nil
}

// ParseSignature decodes a hex [R || S || V] signature into the form the
// exchange contract takes. A recovery id of 0 or 1 is shifted to 27 or 28.
func ParseSignature(sig string) (*order.Signature, error) {
	raw, err := hexutil.Decode(sig)
	if err != nil {
		return nil, fmt.Errorf("invalid hex signature: %w", err)
	}
	r, s, v, err := SignatureToRSV(raw)
	if err != nil {
		return nil, err
	}

	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return nil, fmt.Errorf("invalid recovery byte: %d", raw[64])
	}
	return &order.Signature{
		V: v,
		R: common.BigToHash(r),
		S: common.BigToHash(s),
	}, nil
}
