package knot

// RebuildKind is the work a parameter change requires.
type RebuildKind int

const (
	RebuildNone RebuildKind = iota
	// RebuildReframe recomputes positions, handles and normals in place.
	RebuildReframe
	// RebuildFull clears the buffer and resamples the curve.
	RebuildFull
)

func (k RebuildKind) String() string {
	switch k {
	case RebuildReframe:
		return "reframe"
	case RebuildFull:
		return "full"
	default:
		return "none"
	}
}

// merge keeps the more expensive of two pending commands.
func (k RebuildKind) merge(o RebuildKind) RebuildKind {
	if o > k {
		return o
	}
	return k
}

// State is the builder lifecycle stage.
type State int

const (
	StateEmpty State = iota
	StateConstructed
	StateUpdated
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateUpdated:
		return "updated"
	default:
		return "empty"
	}
}
