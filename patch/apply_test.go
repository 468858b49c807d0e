package patch

import (
	"errors"
	"testing"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
)

func mustOps(t *testing.T, src string) Patch {
	t.Helper()
	p, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse patch %q: %v", src, err)
	}
	return p
}

func TestApplyAddAutoVivifies(t *testing.T) {
	doc := mustYAML(t, "{}\n")
	got, err := Apply(doc, mustOps(t, `[{"op":"add","path":"/a/b/c","value":42}]`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.Equal(mustYAML(t, "a:\n  b:\n    c: 42\n")) {
		t.Fatalf("auto-vivification failed: %s", mustJSON(t, got))
	}
}

func TestApplyAppendMarker(t *testing.T) {
	doc := mustYAML(t, "items: [1, 2]\n")
	got, err := Apply(doc, mustOps(t, `[{"op":"add","path":"/items/-","value":"X"}]`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.Equal(mustYAML(t, "items: [1, 2, X]\n")) {
		t.Fatalf("append failed: %s", mustJSON(t, got))
	}
}

func TestApplyRemovalOrderMatters(t *testing.T) {
	doc := mustYAML(t, "items: [0, 1, 2, 3]\n")

	descending := mustOps(t, `[{"op":"remove","path":"/items/2"},{"op":"remove","path":"/items/1"}]`)
	got, err := Apply(doc, descending)
	if err != nil {
		t.Fatalf("descending removal: %v", err)
	}
	if !got.Equal(mustYAML(t, "items: [0, 3]\n")) {
		t.Fatalf("descending removal produced %s", mustJSON(t, got))
	}

	// The same literal indices in ascending order hit a re-based sequence
	// and remove the wrong element.
	ascending := mustOps(t, `[{"op":"remove","path":"/items/1"},{"op":"remove","path":"/items/2"}]`)
	got, err = Apply(doc, ascending)
	if err != nil {
		t.Fatalf("ascending removal: %v", err)
	}
	if got.Equal(mustYAML(t, "items: [0, 3]\n")) {
		t.Fatalf("ascending removal should not reach the descending result")
	}
	if !got.Equal(mustYAML(t, "items: [0, 2]\n")) {
		t.Fatalf("ascending removal produced %s", mustJSON(t, got))
	}
}

func TestApplyReplaceRequiresExistingPath(t *testing.T) {
	doc := mustYAML(t, "a: 1\n")
	_, err := Apply(doc, mustOps(t, `[{"op":"replace","path":"/missing","value":1}]`))
	var ae *ApplyError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *ApplyError, got %v", err)
	}
	var pe *tree.PathError
	if !errors.As(err, &pe) || pe.Kind != tree.PathNotFound {
		t.Fatalf("expected wrapped PathNotFound, got %v", err)
	}
}

func TestApplyIsAtomic(t *testing.T) {
	doc := mustYAML(t, "a: 1\nitems: [1, 2]\n")
	before := doc.Clone()

	ops := mustOps(t, `[
		{"op":"replace","path":"/a","value":2},
		{"op":"add","path":"/items/5","value":0},
		{"op":"replace","path":"/a","value":3}
	]`)
	_, err := Apply(doc, ops)
	var ae *ApplyError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *ApplyError, got %v", err)
	}
	if ae.Index != 1 || ae.Op != OpAdd {
		t.Fatalf("failure attributed to wrong operation: %+v", ae)
	}
	if !doc.Equal(before) {
		t.Fatalf("failed patch left partial mutations: %s", mustJSON(t, doc))
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	doc := mustYAML(t, "a: 1\n")
	before := doc.Clone()

	got, err := Apply(doc, mustOps(t, `[{"op":"replace","path":"/a","value":2}]`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !doc.Equal(before) {
		t.Fatalf("successful apply mutated its input")
	}
	if got.Equal(doc) {
		t.Fatalf("result should differ from input")
	}
}

func TestApplySequentialPreconditions(t *testing.T) {
	// The second op's path only exists because the first op created it.
	doc := mustYAML(t, "{}\n")
	got, err := Apply(doc, mustOps(t, `[
		{"op":"add","path":"/a","value":{"b":1}},
		{"op":"replace","path":"/a/b","value":2}
	]`))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !got.Equal(mustYAML(t, "a:\n  b: 2\n")) {
		t.Fatalf("sequential application produced %s", mustJSON(t, got))
	}
}

func TestParseRejectsBadPatches(t *testing.T) {
	bad := []string{
		`not json`,
		`{"op":"add"}`, // object, not array
		`[{"op":"move","from":"/a","path":"/b"}]`,
		`[{"op":"add","path":"/a"}]`, // add without value
		`[{"op":"add","path":"a","value":1}]`, // pointer without slash
	}
	for _, src := range bad {
		if _, err := Parse([]byte(src)); err == nil {
			t.Fatalf("Parse(%q) should fail", src)
		}
	}
}

func TestParseAllowsRemoveWithoutValue(t *testing.T) {
	p := mustOps(t, `[{"op":"remove","path":"/a"}]`)
	if len(p) != 1 || p[0].Op != OpRemove || p[0].Value != nil {
		t.Fatalf("unexpected parse result: %+v", p)
	}
}
