package patch

import "github.com/kazuhideoki/yaml-note-mvp/tree"

// Diff computes an ordered operation sequence transforming base into target.
// It is total (it never fails, degrading to a root-level replace when the two
// trees are incomparable) and deterministic: mapping keys are visited in
// target order followed by the removed keys in base order, and trailing
// sequence removals are emitted in descending index order so that applying
// the operations in sequence stays valid. Equal trees produce an empty,
// non-nil patch.
func Diff(base, target *tree.Node) Patch {
	return diffNodes(tree.Pointer{}, base, target, Patch{})
}

func diffNodes(at tree.Pointer, base, target *tree.Node, ops Patch) Patch {
	if base.Equal(target) {
		return ops
	}
	switch {
	case base.Kind == tree.MappingNode && target.Kind == tree.MappingNode:
		return diffMappings(at, base, target, ops)
	case base.Kind == tree.SequenceNode && target.Kind == tree.SequenceNode:
		return diffSequences(at, base, target, ops)
	default:
		return append(ops, Operation{Op: OpReplace, Path: at, Value: target.Clone()})
	}
}

func diffMappings(at tree.Pointer, base, target *tree.Node, ops Patch) Patch {
	for _, p := range target.Pairs {
		child := at.Child(tree.KeyToken(p.Key))
		bv, ok := base.Get(p.Key)
		switch {
		case !ok:
			ops = append(ops, Operation{Op: OpAdd, Path: child, Value: p.Value.Clone()})
		case bv.Equal(p.Value):
		case bv.Kind == p.Value.Kind && !bv.IsScalar():
			ops = diffNodes(child, bv, p.Value, ops)
		default:
			ops = append(ops, Operation{Op: OpReplace, Path: child, Value: p.Value.Clone()})
		}
	}
	for _, p := range base.Pairs {
		if _, ok := target.Get(p.Key); !ok {
			ops = append(ops, Operation{Op: OpRemove, Path: at.Child(tree.KeyToken(p.Key))})
		}
	}
	return ops
}

func diffSequences(at tree.Pointer, base, target *tree.Node, ops Patch) Patch {
	// Position-wise: no move or edit-distance detection.
	n := min(len(base.Items), len(target.Items))
	for i := 0; i < n; i++ {
		if !base.Items[i].Equal(target.Items[i]) {
			ops = append(ops, Operation{
				Op:    OpReplace,
				Path:  at.Child(tree.IndexToken(i)),
				Value: target.Items[i].Clone(),
			})
		}
	}
	for i := n; i < len(target.Items); i++ {
		ops = append(ops, Operation{
			Op:    OpAdd,
			Path:  at.Child(tree.AppendToken()),
			Value: target.Items[i].Clone(),
		})
	}
	// Descending so earlier removals do not shift the later targets.
	for i := len(base.Items) - 1; i >= n; i-- {
		ops = append(ops, Operation{Op: OpRemove, Path: at.Child(tree.IndexToken(i))})
	}
	return ops
}
