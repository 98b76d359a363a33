package ast

// NodeID uniquely identifies a node within a single Tree. 0 is reserved
// for the root and is never reassigned.
type NodeID uint32

// NodeKind is the closed enumeration of what an AST node represents.
// The discriminants are fixed and form part of the patch wire format
// (plumbing/codec); never renumber them.
type NodeKind uint8

const (
	Root      NodeKind = 0
	CsgOp     NodeKind = 1
	Primitive NodeKind = 2
	Transform NodeKind = 3
	Parameter NodeKind = 4
	Group     NodeKind = 5
	Material  NodeKind = 6
	Keyframe  NodeKind = 7
	Custom    NodeKind = 255
)

// KindFromByte decodes a wire byte into a NodeKind. Unknown bytes map to
// Custom rather than failing — the kind space is allowed to grow without
// breaking old readers.
func KindFromByte(b byte) NodeKind {
	switch b {
	case 0:
		return Root
	case 1:
		return CsgOp
	case 2:
		return Primitive
	case 3:
		return Transform
	case 4:
		return Parameter
	case 5:
		return Group
	case 6:
		return Material
	case 7:
		return Keyframe
	default:
		return Custom
	}
}

func (k NodeKind) String() string {
	switch k {
	case Root:
		return "Root"
	case CsgOp:
		return "CsgOp"
	case Primitive:
		return "Primitive"
	case Transform:
		return "Transform"
	case Parameter:
		return "Parameter"
	case Group:
		return "Group"
	case Material:
		return "Material"
	case Keyframe:
		return "Keyframe"
	default:
		return "Custom"
	}
}

// Node is a single AST node: a kind, a label, an optional value, and the
// ordered ids of its children.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Label    string
	Value    Value
	Children []NodeID
}

func newNode(id NodeID, kind NodeKind, label string) Node {
	return Node{ID: id, Kind: kind, Label: label, Value: NoneValue()}
}

func (n Node) clone() Node {
	children := make([]NodeID, len(n.Children))
	copy(children, n.Children)
	v := n.Value
	if v.Bytes != nil {
		b := make([]byte, len(v.Bytes))
		copy(b, v.Bytes)
		v.Bytes = b
	}
	n.Children = children
	n.Value = v
	return n
}
