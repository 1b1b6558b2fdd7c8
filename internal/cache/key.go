// Package cache implements the two-tier explorer cache: a bounded in-memory
// LRU in front of a persistent pebble store, with single-flight fills and
// tip-change invalidation.
package cache

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Kind tags what a cache entry holds.
type Kind uint8

const (
	// KindBlock holds raw block consensus bytes keyed by block hash.
	KindBlock Kind = iota + 1
	// KindHeader holds raw 80-byte headers keyed by block hash.
	KindHeader
	// KindTx holds raw transaction consensus bytes keyed by txid.
	KindTx
	// KindTxBlock holds the hash of the block containing a transaction.
	KindTxBlock
	// KindHeightHash holds the 32-byte best-chain block hash at a height.
	KindHeightHash
	// KindRecentBlocks holds the rendered recent-blocks summary, a
	// "latest" alias recomputed on every tip change.
	KindRecentBlocks
)

// Store key prefixes. Height-keyed entries live under a dedicated prefix so
// a reorg can clear a height window with one range delete.
var kindPrefix = map[Kind]byte{
	KindBlock:        'b',
	KindHeader:       'e',
	KindTx:           't',
	KindTxBlock:      'x',
	KindHeightHash:   'H',
	KindRecentBlocks: 'L',
}

var kindName = map[Kind]string{
	KindBlock:        "block",
	KindHeader:       "header",
	KindTx:           "tx",
	KindTxBlock:      "txblock",
	KindHeightHash:   "height",
	KindRecentBlocks: "latest",
}

// Key identifies a cache entry: a content identifier plus a kind tag.
type Key struct {
	kind   Kind
	hash   chainhash.Hash
	height uint64
}

// BlockKey keys raw block bytes by block hash.
func BlockKey(hash chainhash.Hash) Key {
	return Key{kind: KindBlock, hash: hash}
}

// HeaderKey keys raw header bytes by block hash.
func HeaderKey(hash chainhash.Hash) Key {
	return Key{kind: KindHeader, hash: hash}
}

// TxKey keys raw transaction bytes by txid.
func TxKey(txid chainhash.Hash) Key {
	return Key{kind: KindTx, hash: txid}
}

// TxBlockKey keys the containing-block hash of a transaction by txid.
func TxBlockKey(txid chainhash.Hash) Key {
	return Key{kind: KindTxBlock, hash: txid}
}

// HeightKey keys the best-chain block hash at a height. Unstable: the block
// at a height changes on a reorg.
func HeightKey(height uint64) Key {
	return Key{kind: KindHeightHash, height: height}
}

// RecentBlocksKey keys the recent-blocks summary alias. Unstable: stale
// after any tip change.
func RecentBlocksKey() Key {
	return Key{kind: KindRecentBlocks}
}

// Stable reports whether the key is content-addressed. Stable entries are
// never invalidated, only evicted for space.
func (k Key) Stable() bool {
	switch k.kind {
	case KindHeightHash, KindRecentBlocks:
		return false
	default:
		return true
	}
}

// Kind returns the key's kind tag.
func (k Key) Kind() Kind {
	return k.kind
}

// String renders the key for the in-memory tier and for logging.
func (k Key) String() string {
	switch k.kind {
	case KindHeightHash:
		return fmt.Sprintf("%s/%016x", kindName[k.kind], k.height)
	case KindRecentBlocks:
		return kindName[k.kind]
	default:
		return fmt.Sprintf("%s/%s", kindName[k.kind], k.hash)
	}
}

// storeKey renders the key for the persistent tier.
func (k Key) storeKey() []byte {
	switch k.kind {
	case KindHeightHash:
		out := make([]byte, 9)
		out[0] = kindPrefix[k.kind]
		binary.BigEndian.PutUint64(out[1:], k.height)
		return out
	case KindRecentBlocks:
		return []byte{kindPrefix[k.kind]}
	default:
		out := make([]byte, 33)
		out[0] = kindPrefix[k.kind]
		copy(out[1:], k.hash[:])
		return out
	}
}

// heightStoreRange returns the persistent-tier key range [start, end)
// covering heights from and above.
func heightStoreRange(from uint64) (start, end []byte) {
	start = HeightKey(from).storeKey()
	end = []byte{kindPrefix[KindHeightHash] + 1}
	return start, end
}

// heightFromMemKey parses a height-keyed in-memory key, reporting false for
// other kinds.
func heightFromMemKey(memKey string) (uint64, bool) {
	rest, ok := strings.CutPrefix(memKey, kindName[KindHeightHash]+"/")
	if !ok {
		return 0, false
	}
	h, err := strconv.ParseUint(rest, 16, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
