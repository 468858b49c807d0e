// Package core is the textual surface of the note engine. The three
// collaboration entry points — Diff, ApplyPatch, DetectConflicts — are
// deliberately fail-soft: a caller holding two pieces of text always gets a
// usable piece of text back, never an error payload. Malformed input
// degrades to an empty patch, an unchanged document, or an empty conflict
// report. Everything underneath these functions reports hard errors; the
// softness lives only at this boundary.
package core

import (
	"encoding/json"

	"github.com/kazuhideoki/yaml-note-mvp/markdown"
	"github.com/kazuhideoki/yaml-note-mvp/patch"
	"github.com/kazuhideoki/yaml-note-mvp/schema"
	"github.com/kazuhideoki/yaml-note-mvp/tree"
	"github.com/kazuhideoki/yaml-note-mvp/yamlcodec"
)

const (
	emptyPatch  = "[]"
	emptyReport = `{"has_conflict":false,"conflicts":[]}`
)

// Diff returns the JSON Patch transforming baseYAML into targetYAML. If
// either document fails to decode, or the patch fails to serialize, it
// returns the empty patch "[]".
func Diff(baseYAML, targetYAML string) string {
	base, err := yamlcodec.Decode([]byte(baseYAML))
	if err != nil {
		return emptyPatch
	}
	target, err := yamlcodec.Decode([]byte(targetYAML))
	if err != nil {
		return emptyPatch
	}
	out, err := json.Marshal(patch.Diff(base, target))
	if err != nil {
		return emptyPatch
	}
	return string(out)
}

// ApplyPatch applies patchJSON to docYAML and returns the patched document,
// re-encoded in the input document's indentation style. On any failure —
// malformed document, malformed patch, or an operation that does not apply —
// it returns docYAML unchanged.
func ApplyPatch(docYAML, patchJSON string) string {
	doc, err := yamlcodec.Decode([]byte(docYAML))
	if err != nil {
		return docYAML
	}
	p, err := patch.Parse([]byte(patchJSON))
	if err != nil {
		return docYAML
	}
	patched, err := patch.Apply(doc, p)
	if err != nil {
		return docYAML
	}
	out, err := yamlcodec.Encode(patched, yamlcodec.SniffStyle([]byte(docYAML)))
	if err != nil {
		return docYAML
	}
	return string(out)
}

// DetectConflicts diffs editedYAML against baseYAML and reports every
// replaced path as a conflict, serialized as
// {"has_conflict": bool, "conflicts": [{"path", "value"}]}. Decode failures
// yield the empty report.
func DetectConflicts(baseYAML, editedYAML string) string {
	base, err := yamlcodec.Decode([]byte(baseYAML))
	if err != nil {
		return emptyReport
	}
	edited, err := yamlcodec.Decode([]byte(editedYAML))
	if err != nil {
		return emptyReport
	}
	out, err := json.Marshal(patch.Detect(base, edited))
	if err != nil {
		return emptyReport
	}
	return string(out)
}

// ParseYAML converts YAML text into its JSON representation, preserving
// mapping key order.
func ParseYAML(yamlText string) (string, error) {
	doc, err := yamlcodec.Decode([]byte(yamlText))
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StringifyYAML converts JSON text into YAML.
func StringifyYAML(jsonText string) (string, error) {
	var doc tree.Node
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return "", err
	}
	out, err := yamlcodec.Encode(&doc, yamlcodec.DefaultStyle())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// MDToYAML converts a markdown note into title/content YAML.
func MDToYAML(md string) string {
	return markdown.MDToYAML(md)
}

// YAMLToMD converts title/content YAML back into markdown.
func YAMLToMD(yamlText string) (string, error) {
	return markdown.YAMLToMD(yamlText)
}

// ValidateYAML validates yamlText against a Draft 7 schema.
func ValidateYAML(yamlText, schemaText string) schema.Result {
	return schema.Validate(yamlText, schemaText)
}

// CompileSchema sanity-checks a schema document.
func CompileSchema(schemaText string) schema.Result {
	return schema.Compile(schemaText)
}
