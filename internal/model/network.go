package model

import "fmt"

// NetworkFromChain maps the chaininfo "chain" field to a Network.
func NetworkFromChain(chain string) (Network, error) {
	switch chain {
	case "main", "mainnet", "bitcoin":
		return Mainnet, nil
	case "test", "testnet", "testnet3", "testnet4":
		return Testnet, nil
	case "signet":
		return Signet, nil
	case "regtest":
		return Regtest, nil
	default:
		return "", fmt.Errorf("unknown chain %q", chain)
	}
}
