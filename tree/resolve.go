package tree

// Resolve walks ptr from root and returns the addressed node. The append
// marker never addresses an existing element, so resolving through it is
// InvalidPath.
func Resolve(root *Node, ptr Pointer) (*Node, error) {
	cur := root
	for i, tok := range ptr {
		at := ptr[:i+1]
		switch cur.Kind {
		case MappingNode:
			v, ok := cur.Get(tok.Key())
			if !ok {
				return nil, pathErr(PathNotFound, at, "no such key")
			}
			cur = v
		case SequenceNode:
			idx, err := seqIndex(cur, tok, at)
			if err != nil {
				return nil, err
			}
			cur = cur.Items[idx]
		default:
			return nil, pathErr(TypeMismatch, at, "cannot traverse through a "+cur.Kind.String()+" scalar")
		}
	}
	return cur, nil
}

// seqIndex validates tok as an existing index into seq.
func seqIndex(seq *Node, tok Token, at Pointer) (int, error) {
	if tok.IsAppend() {
		return 0, pathErr(InvalidPath, at, "append marker does not address an element")
	}
	idx, ok := tok.Index()
	if !ok {
		return 0, pathErr(InvalidPath, at, "sequence index must be a non-negative integer")
	}
	if idx >= len(seq.Items) {
		return 0, pathErr(IndexOutOfBounds, at, "")
	}
	return idx, nil
}

// Insert places value at ptr, mutating root in place. Missing intermediate
// mapping keys are created as empty mappings (auto-vivification); a final
// mapping key that already exists is overwritten. Sequence inserts shift
// elements right, with the append marker or an index equal to the length
// appending. On error the tree is left untouched: every mutation happens
// only after the whole remaining path has been validated.
func Insert(root *Node, ptr Pointer, value *Node) error {
	if ptr.IsRoot() {
		*root = *value.Clone()
		return nil
	}
	return insertInto(root, ptr, 0, value)
}

func insertInto(cur *Node, ptr Pointer, depth int, value *Node) error {
	tok := ptr[depth]
	last := depth == len(ptr)-1
	at := ptr[:depth+1]
	switch cur.Kind {
	case MappingNode:
		if last {
			cur.SetKey(tok.Key(), value.Clone())
			return nil
		}
		child, ok := cur.Get(tok.Key())
		if !ok {
			cur.SetKey(tok.Key(), buildChain(ptr, depth+1, value))
			return nil
		}
		return insertInto(child, ptr, depth+1, value)
	case SequenceNode:
		if tok.IsAppend() {
			if !last {
				return pathErr(InvalidPath, at, "append marker must be the final token")
			}
			cur.Items = append(cur.Items, value.Clone())
			return nil
		}
		idx, ok := tok.Index()
		if !ok {
			return pathErr(InvalidPath, at, "sequence index must be a non-negative integer")
		}
		if last {
			if idx > len(cur.Items) {
				return pathErr(IndexOutOfBounds, at, "")
			}
			cur.Items = append(cur.Items, nil)
			copy(cur.Items[idx+1:], cur.Items[idx:])
			cur.Items[idx] = value.Clone()
			return nil
		}
		if idx >= len(cur.Items) {
			return pathErr(IndexOutOfBounds, at, "")
		}
		return insertInto(cur.Items[idx], ptr, depth+1, value)
	default:
		return pathErr(TypeMismatch, at, "cannot traverse through a "+cur.Kind.String()+" scalar")
	}
}

// buildChain wraps value in nested single-key mappings for the tokens from
// depth onward. Inside a vivified chain every token is a literal mapping key,
// so construction cannot fail.
func buildChain(ptr Pointer, depth int, value *Node) *Node {
	node := value.Clone()
	for i := len(ptr) - 1; i >= depth; i-- {
		node = Mapping(Pair{Key: ptr[i].Key(), Value: node})
	}
	return node
}

// Delete removes the node at ptr, mutating root in place. The root itself
// cannot be deleted. On error the tree is left untouched.
func Delete(root *Node, ptr Pointer) error {
	if ptr.IsRoot() {
		return pathErr(InvalidPath, ptr, "cannot delete the root")
	}
	parent, err := Resolve(root, ptr[:len(ptr)-1])
	if err != nil {
		return err
	}
	tok := ptr[len(ptr)-1]
	switch parent.Kind {
	case MappingNode:
		if !parent.DeleteKey(tok.Key()) {
			return pathErr(PathNotFound, ptr, "no such key")
		}
		return nil
	case SequenceNode:
		idx, err := seqIndex(parent, tok, ptr)
		if err != nil {
			return err
		}
		parent.Items = append(parent.Items[:idx], parent.Items[idx+1:]...)
		return nil
	default:
		return pathErr(TypeMismatch, ptr, "cannot traverse through a "+parent.Kind.String()+" scalar")
	}
}

// Set replaces the node at ptr, mutating root in place. The target must
// already exist; the empty pointer replaces the root. On error the tree is
// left untouched.
func Set(root *Node, ptr Pointer, value *Node) error {
	if ptr.IsRoot() {
		*root = *value.Clone()
		return nil
	}
	parent, err := Resolve(root, ptr[:len(ptr)-1])
	if err != nil {
		return err
	}
	tok := ptr[len(ptr)-1]
	switch parent.Kind {
	case MappingNode:
		if _, ok := parent.Get(tok.Key()); !ok {
			return pathErr(PathNotFound, ptr, "no such key")
		}
		parent.SetKey(tok.Key(), value.Clone())
		return nil
	case SequenceNode:
		idx, err := seqIndex(parent, tok, ptr)
		if err != nil {
			return err
		}
		parent.Items[idx] = value.Clone()
		return nil
	default:
		return pathErr(TypeMismatch, ptr, "cannot traverse through a "+parent.Kind.String()+" scalar")
	}
}
