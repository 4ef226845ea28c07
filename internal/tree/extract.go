package tree

// ExtractSubtree implements the "filtered copy / subtree extraction"
// tree operation: it recursively copies src's subtree into t, rotating
// newly allocated nodes across t's per-thread allocators to spread
// load. A child whose own visit count is below minVisits is dropped
// unless it is itself proven. Surviving ancestors have their proven
// type recomputed from the children that did survive: ProvenWin iff
// any surviving child is ProvenLoss, ProvenLoss iff every surviving
// child is ProvenWin, NotProven otherwise.
//
// If a target allocator fills mid-copy, that branch stops there:
// truncated is reported, and the branch's ancestors keep the
// statistics already accumulated but have their proven type
// downgraded to NotProven rather than trust a recomputation over an
// incomplete child set. The root of the copy is always returned valid.
func ExtractSubtree(src *Node, t *Tree, minVisits int32) (root *Node, truncated bool) {
	rotor := 0
	return extractNode(src, nil, t, &rotor, minVisits)
}

func extractNode(src, parent *Node, t *Tree, rotor *int, minVisits int32) (*Node, bool) {
	alloc := t.allocators[*rotor%len(t.allocators)]
	*rotor++
	dst, err := alloc.Alloc(parent, src.Move, src.Terminal())
	if err != nil {
		return nil, true
	}
	dst.copyStatsFrom(src)

	srcChildren := src.Children()
	if len(srcChildren) == 0 {
		dst.SetProvenType(src.ProvenType())
		return dst, false
	}

	kept := make([]*Node, 0, len(srcChildren))
	truncated := false
	for _, c := range srcChildren {
		if c.RealVisits() < minVisits && !c.Proven() {
			continue
		}
		childDst, childTruncated := extractNode(c, dst, t, rotor, minVisits)
		if childTruncated {
			truncated = true
		}
		if childDst != nil {
			kept = append(kept, childDst)
		}
	}
	AttachChildren(dst, kept)
	if truncated {
		dst.SetProvenType(NotProven)
	} else {
		dst.SetProvenType(recomputeProven(kept))
	}
	return dst, truncated
}

func recomputeProven(children []*Node) ProvenType {
	if len(children) == 0 {
		return NotProven
	}
	allWin := true
	for _, c := range children {
		switch c.ProvenType() {
		case ProvenLoss:
			return ProvenWin
		case ProvenWin:
		default:
			allWin = false
		}
	}
	if allWin {
		return ProvenLoss
	}
	return NotProven
}
