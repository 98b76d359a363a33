package codec

import (
	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
	"github.com/ext-sakamoro/alice-vcs/plumbing/diff"
)

const (
	tagOpInsert  byte = 0x00
	tagOpDelete  byte = 0x01
	tagOpUpdate  byte = 0x02
	tagOpRelabel byte = 0x03
	tagOpMove    byte = 0x04
)

// EncodeOp appends the wire form of op to buf.
func EncodeOp(buf []byte, op diff.Op) []byte {
	switch op.Tag {
	case diff.Insert:
		buf = append(buf, tagOpInsert)
		buf = appendVarintU32(buf, uint32(op.ParentID))
		buf = appendLength(buf, op.Index)
		buf = append(buf, byte(op.Kind))
		buf = appendString(buf, op.Label)
		buf = EncodeValue(buf, op.Value)
		return buf
	case diff.Delete:
		buf = append(buf, tagOpDelete)
		return appendVarintU32(buf, uint32(op.NodeID))
	case diff.Update:
		buf = append(buf, tagOpUpdate)
		buf = appendVarintU32(buf, uint32(op.NodeID))
		buf = EncodeValue(buf, op.OldValue)
		buf = EncodeValue(buf, op.NewValue)
		return buf
	case diff.Relabel:
		buf = append(buf, tagOpRelabel)
		buf = appendVarintU32(buf, uint32(op.NodeID))
		buf = appendString(buf, op.OldLabel)
		buf = appendString(buf, op.NewLabel)
		return buf
	case diff.Move:
		buf = append(buf, tagOpMove)
		buf = appendVarintU32(buf, uint32(op.NodeID))
		buf = appendVarintU32(buf, uint32(op.NewParentID))
		buf = appendLength(buf, op.NewIndex)
		return buf
	default:
		return buf
	}
}

// DecodeOp reads one Op starting at data[pos], advancing pos past it.
func DecodeOp(data []byte, pos *int) (diff.Op, error) {
	if *pos >= len(data) {
		return diff.Op{}, ErrTruncated
	}
	tag := data[*pos]
	*pos++

	switch tag {
	case tagOpInsert:
		parentID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		index, err := decodeLength(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		if *pos >= len(data) {
			return diff.Op{}, ErrTruncated
		}
		kind := ast.KindFromByte(data[*pos])
		*pos++
		label, err := decodeString(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		value, err := DecodeValue(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		return diff.NewInsert(ast.NodeID(parentID), index, kind, label, value), nil

	case tagOpDelete:
		nodeID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		return diff.NewDelete(ast.NodeID(nodeID)), nil

	case tagOpUpdate:
		nodeID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		oldValue, err := DecodeValue(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		newValue, err := DecodeValue(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		return diff.NewUpdate(ast.NodeID(nodeID), oldValue, newValue), nil

	case tagOpRelabel:
		nodeID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		oldLabel, err := decodeString(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		newLabel, err := decodeString(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		return diff.NewRelabel(ast.NodeID(nodeID), oldLabel, newLabel), nil

	case tagOpMove:
		nodeID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		newParentID, err := decodeVarintU32(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		newIndex, err := decodeLength(data, pos)
		if err != nil {
			return diff.Op{}, err
		}
		return diff.NewMove(ast.NodeID(nodeID), ast.NodeID(newParentID), newIndex), nil

	default:
		return diff.Op{}, ErrUnknownTag
	}
}
