// Package markdown bridges markdown notes and the YAML document model:
// frontmatter extraction and the title/content transform between the two
// formats.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazuhideoki/yaml-note-mvp/schema"
)

// Frontmatter is the YAML block between the leading "---" fences of a note.
type Frontmatter struct {
	// SchemaPath points at the schema the note validates against. Nil when
	// the key is absent.
	SchemaPath *string
	// Validated toggles validation for the note. Defaults to true when the
	// key is absent.
	Validated bool
	// Raw is the frontmatter text as it appeared in the note.
	Raw string
}

// ParseFrontmatter extracts and decodes the first "---"-delimited block.
// A note without a complete block, or with one that is not valid YAML,
// is an error.
func ParseFrontmatter(md string) (*Frontmatter, error) {
	lines := strings.Split(md, "\n")

	start, end := -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "---" {
			continue
		}
		if start < 0 {
			start = i
		} else {
			end = i
			break
		}
	}
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("markdown: frontmatter missing or incomplete")
	}

	raw := strings.Join(lines[start+1:end], "\n")
	var decoded struct {
		SchemaPath *string `yaml:"schema_path"`
		Validated  *bool   `yaml:"validated"`
	}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("markdown: failed to parse frontmatter: %w", err)
	}

	fm := &Frontmatter{SchemaPath: decoded.SchemaPath, Validated: true, Raw: raw}
	if decoded.Validated != nil {
		fm.Validated = *decoded.Validated
	}
	return fm, nil
}

// ValidateFrontmatter checks the decoded frontmatter: a schema_path key, if
// present, must not be blank.
func ValidateFrontmatter(fm *Frontmatter) schema.Result {
	var errs []schema.ErrorInfo
	if fm.SchemaPath != nil && strings.TrimSpace(*fm.SchemaPath) == "" {
		errs = append(errs, schema.ErrorInfo{
			Message: "schema_path is empty",
			Path:    "schema_path",
			Code:    schema.CodeFrontmatterValidation,
		})
	}
	if len(errs) > 0 {
		return schema.Failure(errs...)
	}
	return schema.OK()
}
