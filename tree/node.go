// Package tree implements the document tree shared by the diff, patch and
// conflict engines: a closed set of node kinds (null, bool, number, string,
// sequence, mapping) addressed by JSON-Pointer style paths. Mappings keep
// their pairs in insertion order so a document survives a decode/encode round
// trip with its keys where the author wrote them.
package tree

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant stored in a Node.
type Kind uint8

const (
	NullNode Kind = iota
	BoolNode
	NumberNode
	StringNode
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case NullNode:
		return "null"
	case BoolNode:
		return "bool"
	case NumberNode:
		return "number"
	case StringNode:
		return "string"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Pair is one ordered key/value entry of a mapping. Keys are unique within a
// mapping; MappingNode helpers preserve that invariant.
type Pair struct {
	Key   string
	Value *Node
}

// Node is a single node of a document tree. Kind selects which payload field
// is meaningful; the others are zero. Numbers are kept as json.Number so an
// integer scalar never decays to a float on the way through a patch.
type Node struct {
	Kind   Kind
	Bool   bool        // BoolNode
	Number json.Number // NumberNode
	Str    string      // StringNode
	Items  []*Node     // SequenceNode
	Pairs  []Pair      // MappingNode
}

func Null() *Node           { return &Node{Kind: NullNode} }
func Bool(b bool) *Node     { return &Node{Kind: BoolNode, Bool: b} }
func String(s string) *Node { return &Node{Kind: StringNode, Str: s} }

func Int(i int64) *Node {
	return &Node{Kind: NumberNode, Number: json.Number(strconv.FormatInt(i, 10))}
}

func Float(f float64) *Node {
	return &Node{Kind: NumberNode, Number: json.Number(strconv.FormatFloat(f, 'g', -1, 64))}
}

func Number(n json.Number) *Node {
	return &Node{Kind: NumberNode, Number: n}
}

func Sequence(items ...*Node) *Node {
	return &Node{Kind: SequenceNode, Items: items}
}

func Mapping(pairs ...Pair) *Node {
	m := &Node{Kind: MappingNode}
	for _, p := range pairs {
		m.SetKey(p.Key, p.Value)
	}
	return m
}

// IsScalar reports whether the node has no children of its own.
func (n *Node) IsScalar() bool {
	return n.Kind != SequenceNode && n.Kind != MappingNode
}

// Get returns the value stored under key. Only meaningful on mappings.
func (n *Node) Get(key string) (*Node, bool) {
	for _, p := range n.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// SetKey replaces the value under key, or appends a new pair when the key is
// not present, keeping existing pair order.
func (n *Node) SetKey(key string, v *Node) {
	for i := range n.Pairs {
		if n.Pairs[i].Key == key {
			n.Pairs[i].Value = v
			return
		}
	}
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: v})
}

// DeleteKey removes the pair under key and reports whether it was present.
func (n *Node) DeleteKey(key string) bool {
	for i := range n.Pairs {
		if n.Pairs[i].Key == key {
			n.Pairs = append(n.Pairs[:i], n.Pairs[i+1:]...)
			return true
		}
	}
	return false
}

// Equal reports deep structural equality. Sequences are order sensitive;
// mappings compare by key set and per-key value, not by pair order. Numbers
// compare by value, so 1 and 1.0 are equal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case NullNode:
		return true
	case BoolNode:
		return n.Bool == o.Bool
	case NumberNode:
		return numberEqual(n.Number, o.Number)
	case StringNode:
		return n.Str == o.Str
	case SequenceNode:
		if len(n.Items) != len(o.Items) {
			return false
		}
		for i := range n.Items {
			if !n.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case MappingNode:
		if len(n.Pairs) != len(o.Pairs) {
			return false
		}
		for _, p := range n.Pairs {
			ov, ok := o.Get(p.Key)
			if !ok || !p.Value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

func numberEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	if ai, aerr := a.Int64(); aerr == nil {
		if bi, berr := b.Int64(); berr == nil {
			return ai == bi
		}
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	if aerr != nil || berr != nil {
		return false
	}
	return af == bf
}

// Clone returns a deep copy sharing no nodes with the receiver.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Bool: n.Bool, Number: n.Number, Str: n.Str}
	switch n.Kind {
	case SequenceNode:
		c.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			c.Items[i] = item.Clone()
		}
	case MappingNode:
		c.Pairs = make([]Pair, len(n.Pairs))
		for i, p := range n.Pairs {
			c.Pairs[i] = Pair{Key: p.Key, Value: p.Value.Clone()}
		}
	}
	return c
}

// FromGo converts a decoded-JSON style Go value (nil, bool, string,
// json.Number, numeric types, []any, map[string]any) into a Node. Map keys
// are visited in sorted order since Go maps carry no order of their own.
func FromGo(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Number(json.Number(strconv.FormatUint(t, 10))), nil
	case float64:
		return Float(t), nil
	case []any:
		seq := &Node{Kind: SequenceNode, Items: make([]*Node, 0, len(t))}
		for _, item := range t {
			child, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, child)
		}
		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := &Node{Kind: MappingNode, Pairs: make([]Pair, 0, len(t))}
		for _, k := range keys {
			child, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			m.Pairs = append(m.Pairs, Pair{Key: k, Value: child})
		}
		return m, nil
	}
	return nil, fmt.Errorf("tree: cannot convert %T into a node", v)
}

// Interface converts the node back into plain Go values (map[string]any,
// []any, json.Number, ...). Mapping order is lost; use MarshalJSON when the
// serialized form must keep it.
func (n *Node) Interface() any {
	switch n.Kind {
	case NullNode:
		return nil
	case BoolNode:
		return n.Bool
	case NumberNode:
		return n.Number
	case StringNode:
		return n.Str
	case SequenceNode:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.Interface()
		}
		return out
	case MappingNode:
		out := make(map[string]any, len(n.Pairs))
		for _, p := range n.Pairs {
			out[p.Key] = p.Value.Interface()
		}
		return out
	}
	return nil
}
