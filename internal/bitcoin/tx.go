package bitcoin

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// minTxInLen is outpoint (36) + empty script varint (1) + sequence (4).
	minTxInLen = 41
	// minTxOutLen is value (8) + empty script varint (1).
	minTxOutLen = 9
)

type txInLoc struct {
	prevOut span
	script  span
	seqOff  int
	witness span
}

type txOutLoc struct {
	valOff int
	script span
}

// Tx is a view over a serialized transaction. All accessors resolve against
// the backing buffer; nothing is copied until explicitly promoted or hashed.
type Tx struct {
	raw    []byte
	segwit bool
	ins    []txInLoc
	outs   []txOutLoc

	// witnessStart and lockOff delimit the witness region of a segwit
	// serialization, needed to strip it when computing the txid.
	witnessStart int
	lockOff      int
}

// ParseTx parses a complete transaction serialization. Trailing bytes are
// rejected. The returned view borrows buf.
func ParseTx(buf []byte) (*Tx, error) {
	var tx Tx
	end, err := scanTx(buf, 0, &tx)
	if err != nil {
		return nil, err
	}
	if end != len(buf) {
		return nil, malformedf("tx: %d trailing bytes", len(buf)-end)
	}
	return &tx, nil
}

// scanTx walks one transaction starting at off and returns the offset past
// it. When tx is nil the walk only validates structure, recording nothing;
// summary parsing uses that mode to skip transaction bodies cheaply.
func scanTx(buf []byte, off int, tx *Tx) (int, error) {
	start := off
	if off+4 > len(buf) {
		return 0, malformed("tx: truncated version")
	}
	off += 4

	segwit := false
	if off < len(buf) && buf[off] == 0x00 {
		if off+1 >= len(buf) {
			return 0, malformed("tx: truncated segwit flag")
		}
		if buf[off+1] != 0x01 {
			return 0, malformedf("tx: unsupported segwit flag 0x%02x", buf[off+1])
		}
		segwit = true
		off += 2
	}

	inCount, off, err := readVarInt(buf, off)
	if err != nil {
		return 0, err
	}
	if inCount == 0 {
		return 0, malformed("tx: no inputs")
	}
	if inCount > uint64(len(buf)-off)/minTxInLen {
		return 0, malformedf("tx: input count %d exceeds remaining bytes", inCount)
	}
	if tx != nil {
		tx.ins = make([]txInLoc, 0, inCount)
	}
	for i := uint64(0); i < inCount; i++ {
		if off+36 > len(buf) {
			return 0, malformed("txin: truncated outpoint")
		}
		prevOut := span{off, off + 36}
		off += 36
		scriptLen, next, err := readVarInt(buf, off)
		if err != nil {
			return 0, err
		}
		off = next
		if scriptLen > uint64(len(buf)-off) {
			return 0, malformed("txin: truncated signature script")
		}
		script := span{off, off + int(scriptLen)}
		off += int(scriptLen)
		if off+4 > len(buf) {
			return 0, malformed("txin: truncated sequence")
		}
		if tx != nil {
			tx.ins = append(tx.ins, txInLoc{prevOut: prevOut, script: script, seqOff: off})
		}
		off += 4
	}

	outCount, off, err := readVarInt(buf, off)
	if err != nil {
		return 0, err
	}
	if outCount > uint64(len(buf)-off)/minTxOutLen {
		return 0, malformedf("tx: output count %d exceeds remaining bytes", outCount)
	}
	if tx != nil {
		tx.outs = make([]txOutLoc, 0, outCount)
	}
	for i := uint64(0); i < outCount; i++ {
		if off+8 > len(buf) {
			return 0, malformed("txout: truncated value")
		}
		valOff := off
		off += 8
		scriptLen, next, err := readVarInt(buf, off)
		if err != nil {
			return 0, err
		}
		off = next
		if scriptLen > uint64(len(buf)-off) {
			return 0, malformed("txout: truncated script")
		}
		if tx != nil {
			tx.outs = append(tx.outs, txOutLoc{valOff: valOff, script: span{off, off + int(scriptLen)}})
		}
		off += int(scriptLen)
	}

	witnessStart := off
	if segwit {
		for i := uint64(0); i < inCount; i++ {
			witStart := off
			itemCount, next, err := readVarInt(buf, off)
			if err != nil {
				return 0, err
			}
			off = next
			for j := uint64(0); j < itemCount; j++ {
				itemLen, next, err := readVarInt(buf, off)
				if err != nil {
					return 0, err
				}
				off = next
				if itemLen > uint64(len(buf)-off) {
					return 0, malformed("witness: truncated item")
				}
				off += int(itemLen)
			}
			if tx != nil {
				tx.ins[i].witness = span{witStart, off}
			}
		}
	}

	if off+4 > len(buf) {
		return 0, malformed("tx: truncated lock time")
	}
	lockOff := off
	off += 4

	if tx != nil {
		tx.raw = buf[start:off]
		tx.segwit = segwit
		tx.witnessStart = witnessStart
		tx.lockOff = lockOff
		tx.rebase(start)
	}
	return off, nil
}

// rebase shifts recorded offsets so they index tx.raw instead of the outer
// buffer scanTx walked.
func (t *Tx) rebase(start int) {
	if start == 0 {
		return
	}
	for i := range t.ins {
		t.ins[i].prevOut.off -= start
		t.ins[i].prevOut.end -= start
		t.ins[i].script.off -= start
		t.ins[i].script.end -= start
		t.ins[i].seqOff -= start
		if t.ins[i].witness.end != 0 {
			t.ins[i].witness.off -= start
			t.ins[i].witness.end -= start
		}
	}
	for i := range t.outs {
		t.outs[i].valOff -= start
		t.outs[i].script.off -= start
		t.outs[i].script.end -= start
	}
	t.witnessStart -= start
	t.lockOff -= start
}

// Version returns the transaction version field.
func (t *Tx) Version() int32 {
	return int32(binary.LittleEndian.Uint32(t.raw[0:4]))
}

// LockTime returns the transaction lock time field.
func (t *Tx) LockTime() uint32 {
	return binary.LittleEndian.Uint32(t.raw[t.lockOff : t.lockOff+4])
}

// InCount returns the number of inputs.
func (t *Tx) InCount() int {
	return len(t.ins)
}

// OutCount returns the number of outputs.
func (t *Tx) OutCount() int {
	return len(t.outs)
}

// In returns a view of input i.
func (t *Tx) In(i int) TxIn {
	return TxIn{raw: t.raw, loc: t.ins[i]}
}

// Out returns a view of output i.
func (t *Tx) Out(i int) TxOut {
	return TxOut{raw: t.raw, loc: t.outs[i]}
}

// HasWitness reports whether the transaction uses the segwit serialization.
func (t *Tx) HasWitness() bool {
	return t.segwit
}

// IsCoinbase reports whether the transaction spends the null outpoint.
func (t *Tx) IsCoinbase() bool {
	if len(t.ins) != 1 {
		return false
	}
	in := t.In(0)
	return in.PrevTxID() == chainhash.Hash{} && in.PrevVout() == 0xffffffff
}

// Size returns the full serialized size in bytes.
func (t *Tx) Size() int {
	return len(t.raw)
}

// baseSize is the serialized size with marker, flag and witness stripped.
func (t *Tx) baseSize() int {
	if !t.segwit {
		return len(t.raw)
	}
	return len(t.raw) - 2 - (t.lockOff - t.witnessStart)
}

// Weight returns the BIP141 transaction weight.
func (t *Tx) Weight() int {
	return t.baseSize()*3 + len(t.raw)
}

// VSize returns the virtual size, weight rounded up to whole vbytes.
func (t *Tx) VSize() int {
	return (t.Weight() + 3) / 4
}

// TxID returns the double-SHA256 of the serialization without witness data.
func (t *Tx) TxID() chainhash.Hash {
	if !t.segwit {
		return chainhash.DoubleHashH(t.raw)
	}
	stripped := make([]byte, 0, t.baseSize())
	stripped = append(stripped, t.raw[0:4]...)
	stripped = append(stripped, t.raw[6:t.witnessStart]...)
	stripped = append(stripped, t.raw[t.lockOff:t.lockOff+4]...)
	return chainhash.DoubleHashH(stripped)
}

// WTxID returns the double-SHA256 of the full serialization.
func (t *Tx) WTxID() chainhash.Hash {
	return chainhash.DoubleHashH(t.raw)
}

// Bytes returns the serialization. The slice aliases the backing buffer.
func (t *Tx) Bytes() []byte {
	return t.raw
}

// Promote returns a transaction backed by its own copy of the bytes, safe to
// retain after the original buffer is reused. Location tables are shared;
// they are immutable after parsing.
func (t *Tx) Promote() *Tx {
	clone := *t
	clone.raw = append([]byte(nil), t.raw...)
	return &clone
}

// TxIn is a view of a single transaction input.
type TxIn struct {
	raw []byte
	loc txInLoc
}

// PrevTxID returns the txid of the spent output.
func (in TxIn) PrevTxID() chainhash.Hash {
	var hash chainhash.Hash
	copy(hash[:], in.raw[in.loc.prevOut.off:in.loc.prevOut.off+32])
	return hash
}

// PrevVout returns the output index of the spent output.
func (in TxIn) PrevVout() uint32 {
	return binary.LittleEndian.Uint32(in.raw[in.loc.prevOut.off+32 : in.loc.prevOut.end])
}

// SignatureScript returns the input script. The slice aliases the buffer.
func (in TxIn) SignatureScript() []byte {
	return in.loc.script.of(in.raw)
}

// Sequence returns the input sequence number.
func (in TxIn) Sequence() uint32 {
	return binary.LittleEndian.Uint32(in.raw[in.loc.seqOff : in.loc.seqOff+4])
}

// Witness parses and returns the input's witness items. Items alias the
// backing buffer. Returns nil for non-segwit serializations.
func (in TxIn) Witness() ([][]byte, error) {
	if in.loc.witness.end == 0 {
		return nil, nil
	}
	itemCount, off, err := readVarInt(in.raw, in.loc.witness.off)
	if err != nil {
		return nil, err
	}
	items := make([][]byte, 0, itemCount)
	for i := uint64(0); i < itemCount; i++ {
		itemLen, next, err := readVarInt(in.raw, off)
		if err != nil {
			return nil, err
		}
		off = next
		items = append(items, in.raw[off:off+int(itemLen)])
		off += int(itemLen)
	}
	return items, nil
}

// TxOut is a view of a single transaction output.
type TxOut struct {
	raw []byte
	loc txOutLoc
}

// Value returns the output amount in satoshis.
func (out TxOut) Value() btcutil.Amount {
	return btcutil.Amount(binary.LittleEndian.Uint64(out.raw[out.loc.valOff : out.loc.valOff+8]))
}

// PkScript returns the output script. The slice aliases the buffer.
func (out TxOut) PkScript() []byte {
	return out.loc.script.of(out.raw)
}
