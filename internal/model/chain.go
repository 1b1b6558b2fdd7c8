// Package model defines domain models shared across explorer components.
package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Network identifies the bitcoin network the explorer is pointed at.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Signet  Network = "signet"
	Regtest Network = "regtest"
)

// ChainTip is the best-known (height, hash) pair observed from the node.
type ChainTip struct {
	Height uint64
	Hash   chainhash.Hash
}

// Zero reports whether the tip has not been resolved yet.
func (t ChainTip) Zero() bool {
	return t.Hash == chainhash.Hash{}
}
