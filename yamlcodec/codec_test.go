package yamlcodec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
)

func mustDecode(t *testing.T, src string) *tree.Node {
	t.Helper()
	n, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("decode %q: %v", src, err)
	}
	return n
}

func diffText(a, b string) string {
	out, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	return out
}

func TestDecodeScalarKinds(t *testing.T) {
	doc := mustDecode(t, `
null_v: ~
bool_v: true
int_v: 42
neg_v: -7
float_v: 2.5
str_v: hello
quoted_num: "42"
`)

	cases := []struct {
		key  string
		kind tree.Kind
	}{
		{"null_v", tree.NullNode},
		{"bool_v", tree.BoolNode},
		{"int_v", tree.NumberNode},
		{"neg_v", tree.NumberNode},
		{"float_v", tree.NumberNode},
		{"str_v", tree.StringNode},
		{"quoted_num", tree.StringNode},
	}
	for _, c := range cases {
		v, ok := doc.Get(c.key)
		if !ok {
			t.Fatalf("missing key %q", c.key)
		}
		if v.Kind != c.kind {
			t.Errorf("%s: got kind %v, want %v", c.key, v.Kind, c.kind)
		}
	}

	if v, _ := doc.Get("int_v"); string(v.Number) != "42" {
		t.Fatalf("integer decoded as %q", v.Number)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	if n := mustDecode(t, ""); n.Kind != tree.NullNode {
		t.Fatalf("empty document should decode to null, got %v", n.Kind)
	}
}

func TestDecodeNonMappingRoots(t *testing.T) {
	if n := mustDecode(t, "- 1\n- 2\n"); n.Kind != tree.SequenceNode {
		t.Fatalf("sequence root decoded as %v", n.Kind)
	}
	if n := mustDecode(t, "42\n"); n.Kind != tree.NumberNode {
		t.Fatalf("scalar root decoded as %v", n.Kind)
	}
}

func TestDecodeResolvesAliases(t *testing.T) {
	doc := mustDecode(t, "defaults: &d\n  retries: 3\nalias: *d\n")
	v, ok := doc.Get("alias")
	if !ok || v.Kind != tree.MappingNode {
		t.Fatalf("alias not expanded: %v", v)
	}
	if r, _ := v.Get("retries"); !r.Equal(tree.Int(3)) {
		t.Fatalf("alias content wrong: %v", r)
	}
}

func TestDecodeErrorReportsType(t *testing.T) {
	_, err := Decode([]byte("not: [valid"))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Msg == "" {
		t.Fatalf("decode error without message")
	}
}

func TestEncodeKeepsKeyOrder(t *testing.T) {
	src := `zebra: 1
apple: 2
nested:
  z: true
  a: false
items:
  - one
  - two
`
	out, err := Encode(mustDecode(t, src), DefaultStyle())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(out) != src {
		t.Fatalf("encode changed the document:\n%s", diffText(src, string(out)))
	}
}

func TestEncodeJSONNumberFidelity(t *testing.T) {
	out, err := Encode(mustDecode(t, "a: 1\nb: 1.5\n"), DefaultStyle())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "a: 1\nb: 1.5\n"
	if string(out) != want {
		t.Fatalf("number fidelity:\n%s", diffText(want, string(out)))
	}
}

func TestDecodeEncodeRoundTripViaJSON(t *testing.T) {
	doc := mustDecode(t, "a:\n  b: [1, 2]\n  c: text\n")
	j, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(j) != `{"a":{"b":[1,2],"c":"text"}}` {
		t.Fatalf("unexpected JSON: %s", j)
	}
}
