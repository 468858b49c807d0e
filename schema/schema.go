// Package schema validates documents against JSON Schema (Draft 7) and
// performs structural sanity checks on schemas themselves. Results are
// reported as a Result value whose JSON form is consumed by editor frontends.
package schema

import "encoding/json"

// Code classifies a reported error.
type Code string

const (
	CodeYAMLParse             Code = "yaml-parse"
	CodeSchemaCompile         Code = "schema-compile"
	CodeFrontmatterParse      Code = "frontmatter-parse"
	CodeFrontmatterValidation Code = "frontmatter-validation"
	CodeSchemaValidation      Code = "schema-validation"
	CodeUnknown               Code = "unknown"
)

// ErrorInfo is one reported problem. Line is 1-based and 0 when unknown;
// Path is a JSON Pointer into the document ("" for the whole document).
type ErrorInfo struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
	Path    string `json:"path"`
	Code    Code   `json:"code"`
}

// Result is the outcome of a validation or compile check.
type Result struct {
	Success bool        `json:"success"`
	Errors  []ErrorInfo `json:"errors"`
}

// OK is the successful Result.
func OK() Result {
	return Result{Success: true, Errors: []ErrorInfo{}}
}

// Failure builds a failed Result from one or more errors.
func Failure(errs ...ErrorInfo) Result {
	return Result{Success: false, Errors: errs}
}

// ToJSON serializes the result. It never fails; if serialization itself
// breaks it degrades to a canned error payload.
func (r Result) ToJSON() string {
	out, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"errors":[{"line":0,"message":"failed to serialize errors","path":"","code":"unknown"}]}`
	}
	return string(out)
}
