// Package yamlcodec converts YAML text to and from the document tree.
// Decoding goes through gopkg.in/yaml.v3 for its node-level metadata (tags,
// line numbers); encoding goes through goccy/go-yaml, whose MapSlice encoder
// keeps mapping keys in order.
package yamlcodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
)

// DecodeError reports malformed source text, with a best-effort 1-based line
// number (0 when the parser did not say).
type DecodeError struct {
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("yamlcodec: line %d: %s", e.Line, e.Msg)
	}
	return "yamlcodec: " + e.Msg
}

var lineRe = regexp.MustCompile(`line (\d+)`)

func decodeErr(err error) *DecodeError {
	line := 0
	if m := lineRe.FindStringSubmatch(err.Error()); m != nil {
		line, _ = strconv.Atoi(m[1])
	}
	return &DecodeError{Line: line, Msg: err.Error()}
}

// Decode parses YAML text into a tree. An empty document decodes to a null
// node. Duplicate mapping keys keep the last value; aliases are expanded.
func Decode(data []byte) (*tree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, decodeErr(err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return tree.Null(), nil
	}
	return fromYAML(doc.Content[0])
}

func fromYAML(n *yaml.Node) (*tree.Node, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.MappingNode:
		m := tree.Mapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, &DecodeError{Line: k.Line, Msg: "mapping key is not a scalar"}
			}
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.SetKey(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := tree.Sequence()
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, v)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, &DecodeError{Line: n.Line, Msg: fmt.Sprintf("unsupported node kind %d", n.Kind)}
}

func fromScalar(n *yaml.Node) (*tree.Node, error) {
	switch n.Tag {
	case "!!null":
		return tree.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, decodeErr(err)
		}
		return tree.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return tree.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return tree.Number(json.Number(strconv.FormatUint(u, 10))), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, decodeErr(err)
		}
		return tree.Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, decodeErr(err)
		}
		return tree.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags all carry text.
		return tree.String(n.Value), nil
	}
}

// Encode renders the tree as YAML text in the given style.
func Encode(n *tree.Node, style Style) ([]byte, error) {
	var buf bytes.Buffer
	enc := gyaml.NewEncoder(&buf,
		gyaml.Indent(style.Indent),
		gyaml.IndentSequence(style.IndentSequence),
	)
	if err := enc.Encode(toYAML(n)); err != nil {
		return nil, fmt.Errorf("yamlcodec: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlcodec: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// toYAML converts a tree into the value shapes goccy encodes the way we
// need: MapSlice for ordered mappings, native ints/floats for numbers.
func toYAML(n *tree.Node) any {
	switch n.Kind {
	case tree.NullNode:
		return nil
	case tree.BoolNode:
		return n.Bool
	case tree.NumberNode:
		if i, err := n.Number.Int64(); err == nil {
			return i
		}
		if f, err := n.Number.Float64(); err == nil {
			return f
		}
		return string(n.Number)
	case tree.StringNode:
		return n.Str
	case tree.SequenceNode:
		out := make([]any, len(n.Items))
		for i, item := range n.Items {
			out[i] = toYAML(item)
		}
		return out
	case tree.MappingNode:
		ms := make(gyaml.MapSlice, 0, len(n.Pairs))
		for _, p := range n.Pairs {
			ms = append(ms, gyaml.MapItem{Key: p.Key, Value: toYAML(p.Value)})
		}
		return ms
	}
	return nil
}
