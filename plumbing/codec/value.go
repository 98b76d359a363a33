package codec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
)

const (
	tagValNone  byte = 0x00
	tagValInt   byte = 0x01
	tagValFloat byte = 0x02
	tagValText  byte = 0x03
	tagValIdent byte = 0x04
	tagValBytes byte = 0x05
)

// EncodeValue appends the wire form of v to buf and returns the extended
// slice, following Go's append-and-reassign convention.
func EncodeValue(buf []byte, v ast.Value) []byte {
	switch v.Kind {
	case ast.ValueNone:
		return append(buf, tagValNone)
	case ast.ValueInt:
		buf = append(buf, tagValInt)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.Int))
		return append(buf, b[:]...)
	case ast.ValueFloat:
		buf = append(buf, tagValFloat)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.Float))
		return append(buf, b[:]...)
	case ast.ValueText:
		buf = append(buf, tagValText)
		return appendString(buf, v.Str)
	case ast.ValueIdent:
		buf = append(buf, tagValIdent)
		return appendString(buf, v.Str)
	case ast.ValueBytes:
		buf = append(buf, tagValBytes)
		buf = appendLength(buf, len(v.Bytes))
		return append(buf, v.Bytes...)
	default:
		return append(buf, tagValNone)
	}
}

// DecodeValue reads a Value starting at data[pos], advancing pos past it.
func DecodeValue(data []byte, pos *int) (ast.Value, error) {
	if *pos >= len(data) {
		return ast.Value{}, ErrTruncated
	}
	tag := data[*pos]
	*pos++

	switch tag {
	case tagValNone:
		return ast.NoneValue(), nil
	case tagValInt:
		u, err := readFixed8(data, pos)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.IntValue(int64(u)), nil
	case tagValFloat:
		u, err := readFixed8(data, pos)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.FloatValue(math.Float64frombits(u)), nil
	case tagValText:
		s, err := decodeString(data, pos)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.TextValue(s), nil
	case tagValIdent:
		s, err := decodeString(data, pos)
		if err != nil {
			return ast.Value{}, err
		}
		return ast.IdentValue(s), nil
	case tagValBytes:
		n, err := decodeLength(data, pos)
		if err != nil {
			return ast.Value{}, err
		}
		if *pos+n > len(data) {
			return ast.Value{}, ErrTruncated
		}
		b := make([]byte, n)
		copy(b, data[*pos:*pos+n])
		*pos += n
		return ast.BytesValue(b), nil
	default:
		return ast.Value{}, ErrUnknownTag
	}
}

func readFixed8(data []byte, pos *int) (uint64, error) {
	if *pos+8 > len(data) {
		return 0, ErrTruncated
	}
	u := binary.LittleEndian.Uint64(data[*pos : *pos+8])
	*pos += 8
	return u, nil
}

func appendString(buf []byte, s string) []byte {
	buf = appendLength(buf, len(s))
	return append(buf, s...)
}

func decodeString(data []byte, pos *int) (string, error) {
	n, err := decodeLength(data, pos)
	if err != nil {
		return "", err
	}
	if *pos+n > len(data) {
		return "", ErrTruncated
	}
	b := data[*pos : *pos+n]
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	s := string(b)
	*pos += n
	return s, nil
}
