package core

// Phase represents a stage of the collective mission. Phases form a closed
// ordered set; transitions are driven by mission control, never by a mind on
// its own.
type Phase string

const (
	PhaseAnalysis       Phase = "analysis"
	PhaseCoreSystems    Phase = "core_systems"
	PhaseUserExperience Phase = "user_experience"
	PhasePolish         Phase = "polish"
)

var phaseOrder = []Phase{PhaseAnalysis, PhaseCoreSystems, PhaseUserExperience, PhasePolish}

// Valid reports whether p is a known mission phase.
func (p Phase) Valid() bool {
	for _, known := range phaseOrder {
		if p == known {
			return true
		}
	}
	return false
}

// Next returns the phase that follows p in mission order. The final phase
// repeats itself.
func (p Phase) Next() Phase {
	for i, known := range phaseOrder {
		if p == known && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return p
}

// Phases returns the mission phases in order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}
