package exchange

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ExchangeABI covers the fill, batchFill and cancel methods of the
// exchange contract.
const ExchangeABI = `[
  {
    "type": "function",
    "name": "fill",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "traders", "type": "address[2]"},
      {"name": "feeRecipient", "type": "address"},
      {"name": "tokens", "type": "address[2]"},
      {"name": "values", "type": "uint256[2]"},
      {"name": "fees", "type": "uint256[2]"},
      {"name": "expiration", "type": "uint256"},
      {"name": "fillValueM", "type": "uint256"},
      {"name": "v", "type": "uint8"},
      {"name": "rs", "type": "bytes32[2]"}
    ],
    "outputs": [{"name": "filledValueM", "type": "uint256"}]
  },
  {
    "type": "function",
    "name": "batchFill",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "traders", "type": "address[2][]"},
      {"name": "feeRecipients", "type": "address[]"},
      {"name": "tokens", "type": "address[2][]"},
      {"name": "values", "type": "uint256[2][]"},
      {"name": "fees", "type": "uint256[2][]"},
      {"name": "expirations", "type": "uint256[]"},
      {"name": "fillValuesM", "type": "uint256[]"},
      {"name": "v", "type": "uint8[]"},
      {"name": "rs", "type": "bytes32[2][]"}
    ],
    "outputs": [{"name": "success", "type": "bool"}]
  },
  {
    "type": "function",
    "name": "cancel",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "traders", "type": "address[2]"},
      {"name": "tokens", "type": "address[2]"},
      {"name": "values", "type": "uint256[2]"},
      {"name": "expiration", "type": "uint256"},
      {"name": "cancelValueM", "type": "uint256"}
    ],
    "outputs": [{"name": "cancelledValueM", "type": "uint256"}]
  }
]`

func parseExchangeABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(ExchangeABI))
}
