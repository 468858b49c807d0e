package patch

import (
	"fmt"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
)

// ApplyError reports the first operation of a patch that failed. Index is the
// operation's position within the patch; Err is usually a *tree.PathError.
type ApplyError struct {
	Index int
	Op    Op
	Err   error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("patch: operation %d (%s) failed: %v", e.Index, e.Op, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// Apply runs the patch against a deep copy of doc and returns the result.
// Operations execute strictly in order; the first failure aborts the whole
// patch with an *ApplyError and doc is never mutated, so the caller observes
// either the full result or their original tree.
func Apply(doc *tree.Node, p Patch) (*tree.Node, error) {
	out := doc.Clone()
	for i, op := range p {
		value := op.Value
		if value == nil {
			value = tree.Null()
		}
		var err error
		switch op.Op {
		case OpAdd:
			err = tree.Insert(out, op.Path, value)
		case OpRemove:
			err = tree.Delete(out, op.Path)
		case OpReplace:
			err = tree.Set(out, op.Path, value)
		default:
			err = fmt.Errorf("unsupported operation %q", op.Op)
		}
		if err != nil {
			return nil, &ApplyError{Index: i, Op: op.Op, Err: err}
		}
	}
	return out, nil
}
