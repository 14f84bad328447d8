// Package document defines the in-memory tree that flatcat flattens.
//
// A document is built once by a reader and is treated as immutable
// afterwards. Object members keep the order they had in the source.
package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the shape of a Node.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Member is a single named entry of an object.
type Member struct {
	Name  string
	Value *Node
}

// Node is one value of a document tree.
//
// Scalars carry their canonical text in text. Objects carry members in
// source order and arrays carry their elements.
type Node struct {
	kind     Kind
	text     string
	members  []Member
	elements []*Node
}

// NewNull returns a null scalar.
func NewNull() *Node { return &Node{kind: Null} }

// NewBool returns a boolean scalar.
func NewBool(b bool) *Node {
	return &Node{kind: Bool, text: strconv.FormatBool(b)}
}

// NewString returns a string scalar.
func NewString(s string) *Node { return &Node{kind: String, text: s} }

// NewNumber returns a number scalar holding the literal text of the number.
// The literal is kept as-is so that 1.50 and 1e3 render the way the input
// spelled them.
func NewNumber(literal string) *Node { return &Node{kind: Number, text: literal} }

// NewObject returns an object with the given members in order.
func NewObject(members ...Member) *Node {
	return &Node{kind: Object, members: members}
}

// NewArray returns an array with the given elements in order.
func NewArray(elements ...*Node) *Node {
	return &Node{kind: Array, elements: elements}
}

// KeyOrder returns the order in which the keys of m, found at path, become
// object members. Array positions do not appear in path.
type KeyOrder func(path []string, m map[string]any) []string

// FromValue converts a decoded Go value into a Node.
//
// Maps have no order of their own, so their keys are visited in the order
// returned by order, or sorted ascending when order is nil.
func FromValue(v any, order KeyOrder) (*Node, error) {
	return fromValue(v, nil, order)
}

func fromValue(v any, path []string, order KeyOrder) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return val, nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case []byte:
		return NewString(string(val)), nil
	case json.Number:
		return NewNumber(val.String()), nil
	case int:
		return NewNumber(strconv.Itoa(val)), nil
	case int8, int16, int32, int64:
		return NewNumber(fmt.Sprintf("%d", val)), nil
	case uint, uint8, uint16, uint32, uint64:
		return NewNumber(fmt.Sprintf("%d", val)), nil
	case float32:
		return NewNumber(strconv.FormatFloat(float64(val), 'g', -1, 32)), nil
	case float64:
		return NewNumber(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case time.Time:
		return NewString(val.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		return NewString(val.String()), nil
	case []any:
		elems := make([]*Node, 0, len(val))
		for _, e := range val {
			n, err := fromValue(e, path, order)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return NewArray(elems...), nil
	case []map[string]any:
		elems := make([]*Node, 0, len(val))
		for _, e := range val {
			n, err := fromValue(e, path, order)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return NewArray(elems...), nil
	case map[string]any:
		var keys []string
		if order != nil {
			keys = order(path, val)
		} else {
			keys = SortedKeys(val)
		}
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			child := append(path[:len(path):len(path)], k)
			n, err := fromValue(val[k], child, order)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", k, err)
			}
			members = append(members, Member{Name: k, Value: n})
		}
		return NewObject(members...), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind reports the shape of n.
func (n *Node) Kind() Kind { return n.kind }

// IsStructured reports whether n is an object or an array.
func (n *Node) IsStructured() bool {
	return n.kind == Object || n.kind == Array
}

// Members returns the members of an object, nil for other kinds.
func (n *Node) Members() []Member { return n.members }

// Elements returns the elements of an array, nil for other kinds.
func (n *Node) Elements() []*Node { return n.elements }

// Len returns the number of members or elements of a structured node and
// zero for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case Object:
		return len(n.members)
	case Array:
		return len(n.elements)
	default:
		return 0
	}
}

// Get returns the value of the last member called name. Later duplicates
// win, matching how decoders treat repeated keys.
func (n *Node) Get(name string) (*Node, bool) {
	for i := len(n.members) - 1; i >= 0; i-- {
		if n.members[i].Name == name {
			return n.members[i].Value, true
		}
	}
	return nil, false
}

// Render returns the text of a scalar as it appears in a flat record.
// Null renders as the literal text null and strings are not quoted.
// Structured nodes render as an empty string.
func (n *Node) Render() string {
	switch n.kind {
	case Null:
		return "null"
	case Object, Array:
		return ""
	default:
		return n.text
	}
}
