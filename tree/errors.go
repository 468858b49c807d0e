package tree

import "fmt"

// PathErrorKind classifies why a path could not be resolved or mutated.
type PathErrorKind int

const (
	// PathNotFound means a mapping key named by the path does not exist.
	PathNotFound PathErrorKind = iota
	// IndexOutOfBounds means a sequence index is outside the valid range.
	IndexOutOfBounds
	// InvalidPath means the path itself is malformed for the operation,
	// e.g. a non-numeric sequence token, a non-final append marker, or an
	// attempt to delete the root.
	InvalidPath
	// TypeMismatch means the path tries to traverse through a scalar.
	TypeMismatch
)

func (k PathErrorKind) String() string {
	switch k {
	case PathNotFound:
		return "path not found"
	case IndexOutOfBounds:
		return "index out of bounds"
	case InvalidPath:
		return "invalid path"
	case TypeMismatch:
		return "type mismatch"
	}
	return fmt.Sprintf("path error(%d)", int(k))
}

// PathError reports a failed resolve or mutation. Path holds the pointer
// prefix up to and including the failing token.
type PathError struct {
	Kind   PathErrorKind
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("tree: %s at %q: %s", e.Kind, e.Path, e.Reason)
	}
	return fmt.Sprintf("tree: %s at %q", e.Kind, e.Path)
}

func pathErr(kind PathErrorKind, at Pointer, reason string) *PathError {
	return &PathError{Kind: kind, Path: at.String(), Reason: reason}
}
