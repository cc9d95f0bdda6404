package hfsm

// regionChain returns v's ancestor regions, leaf-first: v's own owning
// region, then that region's owning state's owning region, and so on up
// to (but not including) the state machine root's owning region (which is
// nil).
func regionChain(v Vertex) []*Region {
	var chain []*Region
	r := v.base().owner
	for r != nil {
		chain = append(chain, r)
		r = r.owner.base().owner
	}
	return chain
}

// isDescendant reports whether target is a proper descendant of source,
// i.e. source is a composite state some region of which transitively
// contains target. Used by NewTransition to normalize Local transitions
// (invariant 4).
func isDescendant(source, target Vertex) bool {
	sourceBase := source.base()
	r := target.base().owner
	for r != nil {
		if r.owner.base() == sourceBase {
			return true
		}
		r = r.owner.base().owner
	}
	return false
}

// lowestCommonRegion returns the deepest region that is an ancestor of
// both s and v -- the LCA used to scope External transitions (spec §4.2
// Pass B, Glossary "LCA").
func lowestCommonRegion(s, v Vertex) *Region {
	sc := regionChain(s)
	vc := regionChain(v)
	reverseRegions(sc)
	reverseRegions(vc)
	var last *Region
	for i := 0; i < len(sc) && i < len(vc); i++ {
		if sc[i] != vc[i] {
			break
		}
		last = sc[i]
	}
	return last
}

func reverseRegions(rs []*Region) {
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
}

func reverseVertices(vs []Vertex) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}

// topAncestorBelow returns the ancestor of v (or v itself) that is a
// direct child of stop's region -- i.e. the A_S/A_V of spec §4.2 Pass B.
func topAncestorBelow(v Vertex, stop *Region) Vertex {
	chain := ancestorUpTo(v, stop)
	return chain[len(chain)-1]
}

// ownerStateOf returns the State that owns v's region, or nil if v is the
// state machine root (which has no owning region).
func ownerStateOf(v Vertex) *State {
	owner := v.base().owner
	if owner == nil {
		return nil
	}
	return owner.owner
}

// ancestorUpTo walks v's ancestor vertex chain (via owning regions) up to
// and including the vertex owned by stop (stop's own owning state is not
// included), returning vertices deepest-first (v itself first). If v's chain never reaches stop, the
// full chain to the root is returned.
func ancestorUpTo(v Vertex, stop *Region) []Vertex {
	var chain []Vertex
	chain = append(chain, v)
	r := v.base().owner
	for r != nil && r != stop {
		owner := r.owner
		chain = append(chain, owner)
		r = owner.base().owner
	}
	return chain
}
