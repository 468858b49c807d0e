package patch

import "github.com/kazuhideoki/yaml-note-mvp/tree"

// Conflict is a flagged path together with the value an edit wants there.
type Conflict struct {
	Path  string     `json:"path"`
	Value *tree.Node `json:"value"`
}

// Report is the conflict detection result, serialized on the wire as
// {"has_conflict": bool, "conflicts": [...]}.
type Report struct {
	HasConflict bool       `json:"has_conflict"`
	Conflicts   []Conflict `json:"conflicts"`
}

func emptyReport() Report {
	return Report{Conflicts: []Conflict{}}
}

// Detect is the single-source detector: it diffs edited against base and
// flags every replace operation as a conflict. This is deliberately
// conservative — it reports all replacements, not only divergent concurrent
// edits — and is kept for compatibility with the textual boundary. Use
// DetectThreeWay for genuine base/left/right detection.
func Detect(base, edited *tree.Node) Report {
	r := emptyReport()
	for _, op := range Diff(base, edited) {
		if op.Op == OpReplace {
			r.Conflicts = append(r.Conflicts, Conflict{Path: op.Path.String(), Value: op.Value})
		}
	}
	r.HasConflict = len(r.Conflicts) > 0
	return r
}

// DetectThreeWay compares two branches edited independently from a common
// base and flags every path that both branches replace with different
// values. The reported value is the right branch's. Paths only one branch
// touches, and paths both branches set to the same value, are not conflicts.
func DetectThreeWay(base, left, right *tree.Node) Report {
	leftReplaced := map[string]*tree.Node{}
	for _, op := range Diff(base, left) {
		if op.Op == OpReplace {
			leftReplaced[op.Path.String()] = op.Value
		}
	}
	r := emptyReport()
	for _, op := range Diff(base, right) {
		if op.Op != OpReplace {
			continue
		}
		path := op.Path.String()
		if lv, ok := leftReplaced[path]; ok && !lv.Equal(op.Value) {
			r.Conflicts = append(r.Conflicts, Conflict{Path: path, Value: op.Value})
		}
	}
	r.HasConflict = len(r.Conflicts) > 0
	return r
}
