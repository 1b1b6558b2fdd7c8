package bitcoin

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// minTxLen is version (4) + one-input/one-output counts and bodies at their
// minimums + lock time (4).
const minTxLen = 4 + 1 + minTxInLen + 1 + minTxOutLen + 4

// Block is a view over a serialized block. Transactions are indexed during
// the initial scan and exposed as views into the same buffer.
type Block struct {
	raw []byte
	hdr Header
	txs []Tx
}

// ParseBlock parses a complete block serialization, indexing every
// transaction boundary. The returned view borrows buf.
func ParseBlock(buf []byte) (*Block, error) {
	if len(buf) > wire.MaxBlockPayload {
		return nil, malformedf("block: %d bytes exceeds protocol maximum", len(buf))
	}
	hdr, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	txCount, off, err := readVarInt(buf, HeaderLen)
	if err != nil {
		return nil, err
	}
	if txCount == 0 {
		return nil, malformed("block: no transactions")
	}
	if txCount > uint64(len(buf)-off)/minTxLen {
		return nil, malformedf("block: tx count %d exceeds remaining bytes", txCount)
	}

	txs := make([]Tx, txCount)
	for i := uint64(0); i < txCount; i++ {
		off, err = scanTx(buf, off, &txs[i])
		if err != nil {
			return nil, err
		}
	}
	if off != len(buf) {
		return nil, malformedf("block: %d trailing bytes", len(buf)-off)
	}
	return &Block{raw: buf, hdr: hdr, txs: txs}, nil
}

// Header returns the block header view.
func (b *Block) Header() Header {
	return b.hdr
}

// BlockHash returns the block's hash.
func (b *Block) BlockHash() chainhash.Hash {
	return b.hdr.BlockHash()
}

// TxCount returns the number of transactions in the block.
func (b *Block) TxCount() int {
	return len(b.txs)
}

// Tx returns a view of transaction i.
func (b *Block) Tx(i int) *Tx {
	return &b.txs[i]
}

// Size returns the serialized block size in bytes.
func (b *Block) Size() int {
	return len(b.raw)
}

// Bytes returns the serialization. The slice aliases the backing buffer.
func (b *Block) Bytes() []byte {
	return b.raw
}

// Summary carries the lightweight block fields many views need without the
// cost of indexing every transaction.
type Summary struct {
	BlockHash chainhash.Hash
	PrevBlock chainhash.Hash
	Version   int32
	Time      time.Time
	Bits      uint32
	Nonce     uint32
	TxCount   int
	Size      int
}

// ParseBlockSummary validates block structure and returns header fields plus
// counts. Transaction bodies are walked but no per-transaction views are
// materialized.
func ParseBlockSummary(buf []byte) (Summary, error) {
	if len(buf) > wire.MaxBlockPayload {
		return Summary{}, malformedf("block: %d bytes exceeds protocol maximum", len(buf))
	}
	hdr, err := ParseHeader(buf)
	if err != nil {
		return Summary{}, err
	}
	txCount, off, err := readVarInt(buf, HeaderLen)
	if err != nil {
		return Summary{}, err
	}
	if txCount == 0 {
		return Summary{}, malformed("block: no transactions")
	}
	if txCount > uint64(len(buf)-off)/minTxLen {
		return Summary{}, malformedf("block: tx count %d exceeds remaining bytes", txCount)
	}
	for i := uint64(0); i < txCount; i++ {
		off, err = scanTx(buf, off, nil)
		if err != nil {
			return Summary{}, err
		}
	}
	if off != len(buf) {
		return Summary{}, malformedf("block: %d trailing bytes", len(buf)-off)
	}
	return Summary{
		BlockHash: hdr.BlockHash(),
		PrevBlock: hdr.PrevBlock(),
		Version:   hdr.Version(),
		Time:      hdr.Time(),
		Bits:      hdr.Bits(),
		Nonce:     hdr.Nonce(),
		TxCount:   int(txCount),
		Size:      len(buf),
	}, nil
}
