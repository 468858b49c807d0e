package core

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kazuhideoki/yaml-note-mvp/yamlcodec"
)

func decodeEqual(t *testing.T, a, b string) bool {
	t.Helper()
	an, err := yamlcodec.Decode([]byte(a))
	if err != nil {
		t.Fatalf("decode %q: %v", a, err)
	}
	bn, err := yamlcodec.Decode([]byte(b))
	if err != nil {
		t.Fatalf("decode %q: %v", b, err)
	}
	return an.Equal(bn)
}

func TestDiffBasic(t *testing.T) {
	out := Diff("a: 1", "a: 2")

	var ops []map[string]any
	if err := json.Unmarshal([]byte(out), &ops); err != nil {
		t.Fatalf("diff output is not a JSON array: %v\n%s", err, out)
	}
	if len(ops) != 1 {
		t.Fatalf("expected one operation, got %s", out)
	}
	if ops[0]["op"] != "replace" || ops[0]["path"] != "/a" {
		t.Fatalf("unexpected operation: %s", out)
	}
}

func TestDiffEqualDocumentsIsEmpty(t *testing.T) {
	if out := Diff("a: 1\nb: [1, 2]\n", "a: 1\nb: [1, 2]\n"); out != "[]" {
		t.Fatalf("expected [], got %s", out)
	}
}

func TestDiffFailSoft(t *testing.T) {
	if out := Diff("not: [valid", "a: 1"); out != "[]" {
		t.Fatalf("malformed base must yield [], got %s", out)
	}
	if out := Diff("a: 1", "not: [valid"); out != "[]" {
		t.Fatalf("malformed target must yield [], got %s", out)
	}
}

func TestApplyPatchRoundTrip(t *testing.T) {
	base := "title: Note\nitems:\n  - 1\n  - 2\n"
	target := "title: Renamed\nitems:\n  - 1\n  - 2\n  - 3\nextra: true\n"

	patched := ApplyPatch(base, Diff(base, target))
	if !decodeEqual(t, patched, target) {
		t.Fatalf("apply(base, diff(base, target)) != target:\n%s", patched)
	}
}

func TestApplyPatchFailSoft(t *testing.T) {
	if out := ApplyPatch("a: 1", "not json"); out != "a: 1" {
		t.Fatalf("malformed patch must return the document unchanged, got %q", out)
	}
	if out := ApplyPatch("not: [valid", "[]"); out != "not: [valid" {
		t.Fatalf("malformed document must be returned unchanged, got %q", out)
	}
	// decodable patch whose operation fails to apply
	if out := ApplyPatch("a: 1", `[{"op":"remove","path":"/missing"}]`); out != "a: 1" {
		t.Fatalf("failing patch must return the document unchanged, got %q", out)
	}
}

func TestApplyPatchKeepsIndentStyle(t *testing.T) {
	base := "a:\n    b: 1\n"
	patched := ApplyPatch(base, `[{"op":"replace","path":"/a/b","value":2}]`)
	want := "a:\n    b: 2\n"
	if patched != want {
		t.Fatalf("indent style lost:\nwant: %q\ngot:  %q", want, patched)
	}
}

func TestDetectConflictsBasic(t *testing.T) {
	out := DetectConflicts("a: 1", "a: 2")

	var report struct {
		HasConflict bool `json:"has_conflict"`
		Conflicts   []struct {
			Path  string `json:"path"`
			Value any    `json:"value"`
		} `json:"conflicts"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid report JSON: %v\n%s", err, out)
	}
	if !report.HasConflict || len(report.Conflicts) != 1 {
		t.Fatalf("expected one conflict, got %s", out)
	}
	if report.Conflicts[0].Path != "/a" {
		t.Fatalf("unexpected conflict path: %s", out)
	}
	if report.Conflicts[0].Value != float64(2) {
		t.Fatalf("unexpected conflict value: %s", out)
	}
}

func TestDetectConflictsNone(t *testing.T) {
	out := DetectConflicts("a: 1", "a: 1")
	if out != `{"has_conflict":false,"conflicts":[]}` {
		t.Fatalf("unexpected report: %s", out)
	}
}

func TestDetectConflictsFailSoft(t *testing.T) {
	want := `{"has_conflict":false,"conflicts":[]}`
	if out := DetectConflicts("not: [valid", "a: 1"); out != want {
		t.Fatalf("malformed base: %s", out)
	}
	if out := DetectConflicts("a: 1", "not: [valid"); out != want {
		t.Fatalf("malformed edited: %s", out)
	}
}

func TestParseYAMLKeepsKeyOrder(t *testing.T) {
	out, err := ParseYAML("title: Hello\ncontent: World\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out != `{"title":"Hello","content":"World"}` {
		t.Fatalf("unexpected JSON: %s", out)
	}

	if _, err := ParseYAML("not: [valid"); err == nil {
		t.Fatalf("expected error for malformed YAML")
	}
}

func TestStringifyYAML(t *testing.T) {
	out, err := StringifyYAML(`{"title":"Hello","tags":["a","b"]}`)
	if err != nil {
		t.Fatalf("stringify: %v", err)
	}
	if !decodeEqual(t, out, "title: Hello\ntags:\n  - a\n  - b\n") {
		t.Fatalf("unexpected YAML: %q", out)
	}

	if _, err := StringifyYAML("not json"); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestMarkdownEntryPoints(t *testing.T) {
	yaml := MDToYAML("# Title\n\nbody")
	if !strings.Contains(yaml, "title: Title") {
		t.Fatalf("unexpected transform: %s", yaml)
	}
	md, err := YAMLToMD(yaml)
	if err != nil {
		t.Fatalf("transform back: %v", err)
	}
	if !strings.Contains(md, "# Title") {
		t.Fatalf("unexpected markdown: %s", md)
	}
}

func TestSchemaEntryPoints(t *testing.T) {
	schemaText := "type: object\nproperties:\n  title:\n    type: string\nrequired:\n  - title\n"
	if r := ValidateYAML("title: x\n", schemaText); !r.Success {
		t.Fatalf("validate: %s", r.ToJSON())
	}
	if r := ValidateYAML("other: x\n", schemaText); r.Success {
		t.Fatalf("missing required title must fail")
	}
	if r := CompileSchema(schemaText); !r.Success {
		t.Fatalf("compile: %s", r.ToJSON())
	}
	if r := CompileSchema("properties: {}\n"); r.Success {
		t.Fatalf("schema without type must fail")
	}
}
