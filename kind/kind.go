// Package kind implements the bit-packed element-kind tags used throughout
// the model, compiler and evaluator. A kind is a 64-bit integer: the low 8
// bits identify the element's own tag, and each successive 8-bit slot
// records one of its ancestor tags (e.g. Choice is also a PseudoState is
// also a Vertex is also an Element). IsKind walks those slots so a single
// check answers "is this a PseudoState" without a type switch.
package kind

const (
	length   = 64
	idLength = 8
	depthMax = length / idLength
	idMask   = (1 << idLength) - 1
)

// Bases returns the ancestor ids encoded in t, deepest-first.
func Bases(t uint64) [depthMax]uint64 {
	var bases [depthMax]uint64
	for i := 1; i < depthMax; i++ {
		bases[i-1] = (t >> (idLength * i)) & idMask
	}
	return bases
}

// Kind packs id together with the ancestor ids already encoded in bases,
// producing a new tag that IsKind(_, id) and IsKind(_, base) both match.
func Kind(id uint64, bases ...uint64) uint64 {
	id = id & idMask
	seen := make(map[uint64]struct{})
	for _, base := range bases {
		for j := 0; j < depthMax; j++ {
			baseID := (base >> (idLength * j)) & idMask
			if baseID == 0 {
				break
			}
			if _, ok := seen[baseID]; !ok {
				seen[baseID] = struct{}{}
				id |= baseID << (idLength * len(seen))
			}
		}
	}
	return id
}

// IsKind reports whether k matches any of the given tags, either directly
// or through one of its encoded ancestors.
func IsKind(k uint64, tags ...uint64) bool {
	for _, tag := range tags {
		tagID := tag & idMask
		if k == tagID {
			return true
		}
		for i := 0; i < depthMax; i++ {
			current := (k >> (idLength * i)) & idMask
			if current == tagID {
				return true
			}
		}
	}
	return false
}

// Element kinds, leaves last. Composite tags (e.g. Initial) encode every
// ancestor in the chain so a single IsKind(k, PseudoState) call matches
// Initial, History, ShallowHistory, DeepHistory, Choice, Junction and
// Terminate alike.
var (
	Null = Kind(0)

	Element    = Kind(1)
	Vertex     = Kind(2, Element)
	Region     = Kind(3, Element)
	Behavior   = Kind(4, Element)
	Constraint = Kind(5, Element)
	Event      = Kind(6, Element)
	Transition = Kind(7, Element)

	// Transition traversal kinds.
	External = Kind(8, Transition)
	Internal = Kind(9, Transition)
	Local    = Kind(10, Transition)

	// Vertex kinds.
	State        = Kind(11, Vertex)
	FinalState   = Kind(12, State)
	StateMachine = Kind(13, State)

	PseudoState    = Kind(14, Vertex)
	Initial        = Kind(15, PseudoState)
	History        = Kind(16, PseudoState)
	ShallowHistory = Kind(17, History)
	DeepHistory    = Kind(18, History)
	Choice         = Kind(19, PseudoState)
	Junction       = Kind(20, PseudoState)
	Terminate      = Kind(21, PseudoState)

	CompletionEvent = Kind(22, Event)
)

// InitialFamily reports whether k is Initial, ShallowHistory or DeepHistory
// -- the set of pseudo-state kinds a Region may use as its sole resolved
// initial child.
func InitialFamily(k uint64) bool {
	return IsKind(k, Initial, History)
}
