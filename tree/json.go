package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON serializes the node, keeping mapping pairs in order. The
// standard encoder is only used for scalars; containers are written by hand
// because encoding a Go map would shuffle the keys.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch n.Kind {
	case NullNode:
		buf.WriteString("null")
	case BoolNode:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case NumberNode:
		num := n.Number
		if num == "" {
			num = "0"
		}
		buf.WriteString(string(num))
	case StringNode:
		b, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MappingNode:
		buf.WriteByte('{')
		for i, p := range n.Pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := p.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("tree: cannot marshal %s node", n.Kind)
	}
	return nil
}

// UnmarshalJSON parses JSON into the node, preserving object key order and
// keeping numbers as json.Number.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := readJSON(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("tree: trailing data after JSON value")
	}
	*n = *node
	return nil
}

func readJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return readJSONToken(dec, tok)
}

func readJSONToken(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return Number(t), nil
	case json.Delim:
		switch t {
		case '[':
			seq := &Node{Kind: SequenceNode, Items: []*Node{}}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				seq.Items = append(seq.Items, item)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return seq, nil
		case '{':
			m := &Node{Kind: MappingNode, Pairs: []Pair{}}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("tree: object key is not a string")
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				m.SetKey(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("tree: unexpected JSON token %v", tok)
}
