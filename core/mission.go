package core

// Mission is the fixed goal a mind operates under. It is immutable after
// construction; every mind in a collective carries the same mission.
type Mission struct {
	Goal            string   `json:"goal"`
	TimelineDays    int      `json:"timeline_days"`
	SuccessCriteria string   `json:"success_criteria"`
	Principles      []string `json:"principles"`
}

// DefaultMission returns the collective's standing mission, used when no
// mission is configured in the environment.
func DefaultMission() Mission {
	return Mission{
		Goal:            "Build the collective project end to end",
		TimelineDays:    30,
		SuccessCriteria: "A working system the collective agrees is complete",
		Principles: []string{
			"Clarity",
			"Respect",
			"Collaboration",
			"Sustainability",
			"Human-centered outcomes",
		},
	}
}
