package codec

import "github.com/ext-sakamoro/alice-vcs/plumbing/diff"

// EncodePatch encodes an ordered sequence of ops as `[varint op_count]
// [op1] [op2] ...`.
func EncodePatch(ops []diff.Op) []byte {
	buf := appendLength(nil, len(ops))
	for _, op := range ops {
		buf = EncodeOp(buf, op)
	}
	return buf
}

// DecodePatch decodes a full patch previously produced by EncodePatch.
func DecodePatch(data []byte) ([]diff.Op, error) {
	pos := 0
	count, err := decodeLength(data, &pos)
	if err != nil {
		return nil, err
	}
	ops := make([]diff.Op, 0, count)
	for i := 0; i < count; i++ {
		op, err := DecodeOp(data, &pos)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// EncodedPatchSize reports the byte-exact size EncodePatch would produce,
// without keeping the buffer around.
func EncodedPatchSize(ops []diff.Op) int {
	return len(EncodePatch(ops))
}
