package clients

// Chain describes one EVM network a swap can be routed through.
type Chain struct {
	ID          int
	Name        string
	NativeToken string
}

// Chains supported for the DEX leg, keyed by the identifier used in
// config and quotes.
var Chains = map[string]Chain{
	"ethereum": {ID: 1, Name: "Ethereum", NativeToken: "ETH"},
	"polygon":  {ID: 137, Name: "Polygon", NativeToken: "MATIC"},
	"zksync":   {ID: 324, Name: "zkSync Era", NativeToken: "ETH"},
	"arbitrum": {ID: 42161, Name: "Arbitrum One", NativeToken: "ETH"},
	"optimism": {ID: 10, Name: "Optimism", NativeToken: "ETH"},
}

// SupportedChain reports whether the chain id is known.
func SupportedChain(chain string) bool {
	_, ok := Chains[chain]
	return ok
}
