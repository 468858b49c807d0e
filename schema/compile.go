package schema

import (
	"fmt"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
	"github.com/kazuhideoki/yaml-note-mvp/yamlcodec"
)

var validTypes = []string{"object", "array", "string", "number", "integer", "boolean", "null"}

// Compile checks that schemaText parses and looks like a usable JSON Schema:
// a 'type' field with a known value, 'properties' for objects, 'items' for
// arrays, and a well-formed 'required' list that only names declared
// properties. It reports problems a full validator would surface too late or
// too cryptically while the user is still writing the schema.
func Compile(schemaText string) Result {
	doc, err := yamlcodec.Decode([]byte(schemaText))
	if err != nil {
		info := yamlParseError(err)
		info.Message = "schema syntax error: " + info.Message
		return Failure(info)
	}

	if msg := checkBasics(doc); msg != "" {
		return Failure(ErrorInfo{Message: "schema syntax error: " + msg, Code: CodeSchemaCompile})
	}
	if msg := checkStructure(doc); msg != "" {
		return Failure(ErrorInfo{Message: "schema syntax error: " + msg, Code: CodeSchemaCompile})
	}
	return OK()
}

func checkBasics(doc *tree.Node) string {
	typeNode, ok := doc.Get("type")
	if !ok {
		return "schema must have a 'type' field"
	}
	if typeNode.Kind != tree.StringNode {
		return "'type' must be a string"
	}
	typeStr := typeNode.Str
	valid := false
	for _, t := range validTypes {
		if typeStr == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Sprintf("%q is not a valid type; expected one of object, array, string, number, integer, boolean, null", typeStr)
	}

	if typeStr == "object" {
		if _, ok := doc.Get("properties"); !ok {
			return "object schemas must have a 'properties' field"
		}
	}
	if typeStr == "array" {
		if _, ok := doc.Get("items"); !ok {
			return "array schemas must have an 'items' field"
		}
	}
	return ""
}

func checkStructure(doc *tree.Node) string {
	properties, hasProps := doc.Get("properties")
	if hasProps {
		if properties.Kind != tree.MappingNode {
			return "'properties' must be a mapping"
		}
		for _, p := range properties.Pairs {
			if p.Value.Kind != tree.MappingNode {
				return fmt.Sprintf("property %q is not defined as a mapping", p.Key)
			}
			if _, ok := p.Value.Get("type"); !ok {
				return fmt.Sprintf("property %q has no 'type' field", p.Key)
			}
		}
	}

	if required, ok := doc.Get("required"); ok {
		if required.Kind != tree.SequenceNode {
			return "'required' must be a sequence"
		}
		for i, item := range required.Items {
			if item.Kind != tree.StringNode {
				return fmt.Sprintf("'required' entry %d must be a string", i)
			}
			if hasProps {
				if _, ok := properties.Get(item.Str); !ok {
					return fmt.Sprintf("required property %q is not defined in properties", item.Str)
				}
			}
		}
	}
	return ""
}
