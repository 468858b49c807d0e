package schema

import (
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
	"github.com/kazuhideoki/yaml-note-mvp/yamlcodec"
)

var printer = message.NewPrinter(language.English)

// Validate checks yamlText against schemaText (a Draft 7 JSON Schema, itself
// written in YAML or JSON). Parse and compile failures are reported through
// the Result rather than as hard errors, so the caller always gets a
// serializable outcome.
func Validate(yamlText, schemaText string) Result {
	doc, err := yamlcodec.Decode([]byte(yamlText))
	if err != nil {
		return Failure(yamlParseError(err))
	}
	schemaDoc, err := yamlcodec.Decode([]byte(schemaText))
	if err != nil {
		return Failure(yamlParseError(err))
	}

	compiled, err := compile(schemaDoc)
	if err != nil {
		return Failure(ErrorInfo{
			Message: "schema compile error: " + err.Error(),
			Code:    CodeSchemaCompile,
		})
	}

	err = compiled.Validate(doc.Interface())
	if err == nil {
		return OK()
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return Failure(ErrorInfo{Message: err.Error(), Code: CodeSchemaValidation})
	}

	var infos []ErrorInfo
	for _, leaf := range leafCauses(ve) {
		path := instancePointer(leaf.InstanceLocation)
		infos = append(infos, ErrorInfo{
			Line:    findLineForPath(yamlText, path),
			Message: leaf.ErrorKind.LocalizedString(printer),
			Path:    path,
			Code:    CodeSchemaValidation,
		})
	}
	return Failure(infos...)
}

func compile(schemaDoc *tree.Node) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	if err := c.AddResource("schema.json", schemaDoc.Interface()); err != nil {
		return nil, err
	}
	return c.Compile("schema.json")
}

func yamlParseError(err error) ErrorInfo {
	info := ErrorInfo{Message: "YAML parse error: " + err.Error(), Code: CodeYAMLParse}
	var de *yamlcodec.DecodeError
	if errors.As(err, &de) {
		info.Line = de.Line
	}
	return info
}

// leafCauses flattens a validation error tree into its leaf causes, which
// carry the actionable messages.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}

func instancePointer(location []string) string {
	p := make(tree.Pointer, 0, len(location))
	for _, seg := range location {
		p = p.Child(tree.KeyToken(seg))
	}
	return p.String()
}

// findLineForPath scans the YAML source for the line that defines the last
// key of path. Best effort only: it returns the first line mentioning the
// key next to a colon, or 0.
func findLineForPath(yamlText, path string) int {
	lastKey := path[strings.LastIndex(path, "/")+1:]
	for i, line := range strings.Split(yamlText, "\n") {
		if strings.Contains(line, lastKey) && strings.Contains(line, ":") {
			return i + 1
		}
	}
	return 0
}
