package order

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Hash returns keccak256 over the tightly packed order fields, prefixed by
// the exchange address. Nil amounts hash as zero.
//
// Only used to correlate log lines; the contract computes its own hash.
func (o *Order) Hash(exchange common.Address) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, a := range []common.Address{exchange, o.Maker, o.Taker, o.TokenM, o.TokenT, o.FeeRecipient} {
		h.Write(a.Bytes())
	}
	for _, v := range []*big.Int{o.ValueM, o.ValueT, o.FeeM, o.FeeT, o.Expiration} {
		h.Write(word(v))
	}
	return common.BytesToHash(h.Sum(nil))
}

// word left-pads v to a 32-byte uint256 word.
func word(v *big.Int) []byte {
	var w [32]byte
	if v != nil {
		v.FillBytes(w[:])
	}
	return w[:]
}
