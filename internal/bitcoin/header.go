package bitcoin

import (
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderLen is the serialized size of a block header.
const HeaderLen = 80

// Header is a view over an 80-byte serialized block header.
type Header struct {
	raw []byte
}

// ParseHeader validates length and returns a header view over buf. The view
// borrows buf; use Promote to detach it.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLen {
		return Header{}, malformedf("header: got %d bytes, need %d", len(buf), HeaderLen)
	}
	return Header{raw: buf[:HeaderLen]}, nil
}

// Version returns the block version field.
func (h Header) Version() int32 {
	return int32(binary.LittleEndian.Uint32(h.raw[0:4]))
}

// PrevBlock returns the hash of the predecessor block.
func (h Header) PrevBlock() chainhash.Hash {
	var hash chainhash.Hash
	copy(hash[:], h.raw[4:36])
	return hash
}

// MerkleRoot returns the merkle root of the block's transactions.
func (h Header) MerkleRoot() chainhash.Hash {
	var hash chainhash.Hash
	copy(hash[:], h.raw[36:68])
	return hash
}

// Time returns the block timestamp.
func (h Header) Time() time.Time {
	return time.Unix(int64(binary.LittleEndian.Uint32(h.raw[68:72])), 0).UTC()
}

// Bits returns the compact difficulty target.
func (h Header) Bits() uint32 {
	return binary.LittleEndian.Uint32(h.raw[72:76])
}

// Nonce returns the header nonce.
func (h Header) Nonce() uint32 {
	return binary.LittleEndian.Uint32(h.raw[76:80])
}

// BlockHash computes the double-SHA256 hash of the header.
func (h Header) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.raw)
}

// Bytes returns the serialized header. The slice aliases the backing buffer.
func (h Header) Bytes() []byte {
	return h.raw
}

// Promote returns a header backed by its own copy of the bytes, safe to
// retain after the original buffer is reused.
func (h Header) Promote() Header {
	return Header{raw: append([]byte(nil), h.raw...)}
}
