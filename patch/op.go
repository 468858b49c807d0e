// Package patch computes and applies structural differences between two
// document trees and flags conflicting edits. Patches use the RFC 6902 wire
// shape restricted to add/remove/replace.
package patch

import (
	"encoding/json"
	"fmt"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
)

// Op is a patch operation type.
type Op string

const (
	OpAdd     Op = "add"
	OpRemove  Op = "remove"
	OpReplace Op = "replace"
)

// Operation is a single edit step: an op, the pointer it targets and, for
// add/replace, the value to place there.
type Operation struct {
	Op    Op
	Path  tree.Pointer
	Value *tree.Node
}

// Patch is an ordered sequence of operations. Each operation's preconditions
// are evaluated against the tree as left by the operations before it.
type Patch []Operation

type wireOperation struct {
	Op    Op              `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON renders the operation in the RFC 6902 wire form.
func (o Operation) MarshalJSON() ([]byte, error) {
	w := wireOperation{Op: o.Op, Path: o.Path.String()}
	if o.Value != nil {
		v, err := json.Marshal(o.Value)
		if err != nil {
			return nil, err
		}
		w.Value = v
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses one wire operation, rejecting unsupported ops and
// add/replace operations without a value.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var w wireOperation
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Op {
	case OpAdd, OpReplace:
		if w.Value == nil {
			return fmt.Errorf("patch: %s operation at %q has no value", w.Op, w.Path)
		}
	case OpRemove:
	default:
		return fmt.Errorf("patch: unsupported operation %q", w.Op)
	}
	ptr, err := tree.ParsePointer(w.Path)
	if err != nil {
		return fmt.Errorf("patch: %w", err)
	}
	o.Op = w.Op
	o.Path = ptr
	o.Value = nil
	if w.Value != nil {
		var v tree.Node
		if err := json.Unmarshal(w.Value, &v); err != nil {
			return fmt.Errorf("patch: invalid value at %q: %w", w.Path, err)
		}
		o.Value = &v
	}
	return nil
}

// Parse decodes a serialized patch document (a JSON array of operations).
func Parse(data []byte) (Patch, error) {
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("patch: %w", err)
	}
	if p == nil {
		p = Patch{}
	}
	return p, nil
}
