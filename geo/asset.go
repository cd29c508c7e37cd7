package geo

// AssetKind is the closed set of things that can be attached to a node.
type AssetKind int

const (
	Load AssetKind = iota
	Solar
	Capacitor
	VoltageSource
)

func (k AssetKind) String() string {
	switch k {
	case Load:
		return "Load"
	case Solar:
		return "Solar"
	case Capacitor:
		return "Capacitor"
	case VoltageSource:
		return "VoltageSource"
	default:
		return "Unknown"
	}
}

// Phase is one of the six conductor labels used throughout the pipeline.
type Phase int

const (
	PhaseA Phase = iota
	PhaseB
	PhaseC
	PhaseN
	PhaseS1
	PhaseS2
)

func (p Phase) String() string {
	switch p {
	case PhaseA:
		return "A"
	case PhaseB:
		return "B"
	case PhaseC:
		return "C"
	case PhaseN:
		return "N"
	case PhaseS1:
		return "S1"
	case PhaseS2:
		return "S2"
	default:
		return "Unknown"
	}
}

// PhaseSet is a small, order-independent set of Phase values. It is
// represented as a map so set operations (union, subset, equality) read
// naturally; callers needing a deterministic ordering should use Sorted.
type PhaseSet map[Phase]struct{}

// NewPhaseSet builds a PhaseSet from the given phases, deduplicating.
func NewPhaseSet(phases ...Phase) PhaseSet {
	s := make(PhaseSet, len(phases))
	for _, p := range phases {
		s[p] = struct{}{}
	}

	return s
}

// Has reports whether p is a member of the set.
func (s PhaseSet) Has(p Phase) bool {
	_, ok := s[p]

	return ok
}

// Union returns a new PhaseSet containing every phase in s or other.
func (s PhaseSet) Union(other PhaseSet) PhaseSet {
	out := make(PhaseSet, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}

	return out
}

// Intersect returns a new PhaseSet containing only phases present in
// both s and other.
func (s PhaseSet) Intersect(other PhaseSet) PhaseSet {
	out := make(PhaseSet, len(s))
	for p := range s {
		if other.Has(p) {
			out[p] = struct{}{}
		}
	}

	return out
}

// Subset reports whether every phase in s is also in other.
func (s PhaseSet) Subset(other PhaseSet) bool {
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}

	return true
}

// Equal reports whether s and other contain exactly the same phases.
func (s PhaseSet) Equal(other PhaseSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Has(p) {
			return false
		}
	}

	return true
}

// ABC is the canonical three-phase set {A, B, C}.
func ABC() PhaseSet { return NewPhaseSet(PhaseA, PhaseB, PhaseC) }

// Sorted returns the set's members in a fixed, deterministic order
// (A, B, C, N, S1, S2), useful for stable output and test assertions.
func (s PhaseSet) Sorted() []Phase {
	order := []Phase{PhaseA, PhaseB, PhaseC, PhaseN, PhaseS1, PhaseS2}
	out := make([]Phase, 0, len(s))
	for _, p := range order {
		if s.Has(p) {
			out = append(out, p)
		}
	}

	return out
}

// Len returns the number of phases in the set.
func (s PhaseSet) Len() int { return len(s) }
