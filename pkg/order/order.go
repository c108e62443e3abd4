package order

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Signature holds the ECDSA components the exchange contract expects.
// V is 27 or 28.
type Signature struct {
	V uint8
	R common.Hash
	S common.Hash
}

// Order is a signed trade intent: the maker offers ValueM of TokenM in
// exchange for ValueT of TokenT. A zero Taker lets anyone fill.
type Order struct {
	Maker        common.Address
	Taker        common.Address
	FeeRecipient common.Address
	TokenM       common.Address
	TokenT       common.Address
	ValueM       *big.Int
	ValueT       *big.Int
	FeeM         *big.Int
	FeeT         *big.Int
	Expiration   *big.Int // Unix seconds
	Signature    *Signature
}

// Payload is the JSON form of an Order. Amounts are base-10 strings.
type Payload struct {
	Maker        string            `json:"maker"`
	Taker        string            `json:"taker"`
	FeeRecipient string            `json:"feeRecipient"`
	TokenM       string            `json:"tokenM"`
	TokenT       string            `json:"tokenT"`
	ValueM       string            `json:"valueM"`
	ValueT       string            `json:"valueT"`
	FeeM         string            `json:"feeM"`
	FeeT         string            `json:"feeT"`
	Expiration   string            `json:"expiration,omitempty"`
	Signature    *SignaturePayload `json:"signature,omitempty"`
}

type SignaturePayload struct {
	V uint8  `json:"v"`
	R string `json:"r"` // 0x-prefixed 32 bytes
	S string `json:"s"`
}

// ToOrder converts the payload into an Order. Empty fee and expiration
// fields become zero; addresses must be hex.
func (p *Payload) ToOrder() (*Order, error) {
	o := &Order{}
	addrs := []struct {
		name string
		in   string
		out  *common.Address
		opt  bool
	}{
		{"maker", p.Maker, &o.Maker, false},
		{"taker", p.Taker, &o.Taker, true},
		{"feeRecipient", p.FeeRecipient, &o.FeeRecipient, true},
		{"tokenM", p.TokenM, &o.TokenM, false},
		{"tokenT", p.TokenT, &o.TokenT, false},
	}
	for _, a := range addrs {
		if a.in == "" && a.opt {
			continue
		}
		if !common.IsHexAddress(a.in) {
			return nil, fmt.Errorf("invalid %s: %q", a.name, a.in)
		}
		*a.out = common.HexToAddress(a.in)
	}

	ints := []struct {
		name string
		in   string
		out  **big.Int
		opt  bool
	}{
		{"valueM", p.ValueM, &o.ValueM, false},
		{"valueT", p.ValueT, &o.ValueT, false},
		{"feeM", p.FeeM, &o.FeeM, true},
		{"feeT", p.FeeT, &o.FeeT, true},
		{"expiration", p.Expiration, &o.Expiration, true},
	}
	for _, n := range ints {
		if n.in == "" && n.opt {
			*n.out = new(big.Int)
			continue
		}
		v, ok := new(big.Int).SetString(n.in, 10)
		if !ok {
			return nil, fmt.Errorf("invalid %s: %q", n.name, n.in)
		}
		*n.out = v
	}

	if p.Signature != nil {
		r, err := hexutil.Decode(p.Signature.R)
		if err != nil || len(r) != 32 {
			return nil, fmt.Errorf("invalid signature r: %q", p.Signature.R)
		}
		s, err := hexutil.Decode(p.Signature.S)
		if err != nil || len(s) != 32 {
			return nil, fmt.Errorf("invalid signature s: %q", p.Signature.S)
		}
		o.Signature = &Signature{
			V: p.Signature.V,
			R: common.BytesToHash(r),
			S: common.BytesToHash(s),
		}
	}
	return o, nil
}

// FromOrder converts an Order to its JSON payload.
func FromOrder(o *Order) *Payload {
	p := &Payload{
		Maker:        o.Maker.Hex(),
		Taker:        o.Taker.Hex(),
		FeeRecipient: o.FeeRecipient.Hex(),
		TokenM:       o.TokenM.Hex(),
		TokenT:       o.TokenT.Hex(),
		ValueM:       bigString(o.ValueM),
		ValueT:       bigString(o.ValueT),
		FeeM:         bigString(o.FeeM),
		FeeT:         bigString(o.FeeT),
		Expiration:   bigString(o.Expiration),
	}
	if o.Signature != nil {
		p.Signature = &SignaturePayload{
			V: o.Signature.V,
			R: o.Signature.R.Hex(),
			S: o.Signature.S.Hex(),
		}
	}
	return p
}

// ParseOrders decodes either a single order object or an array of them.
func ParseOrders(data []byte) ([]*Order, error) {
	var payloads []Payload
	if err := json.Unmarshal(data, &payloads); err != nil {
		var single Payload
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, fmt.Errorf("failed to unmarshal orders: %w", err)
		}
		payloads = []Payload{single}
	}

	out := make([]*Order, 0, len(payloads))
	for i := range payloads {
		o, err := payloads[i].ToOrder()
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
