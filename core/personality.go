package core

// Trait names. Every profile carries exactly this set.
const (
	TraitCuriosity     = "curiosity"
	TraitCaution       = "caution"
	TraitCreativity    = "creativity"
	TraitLogic         = "logic"
	TraitEmpathy       = "empathy"
	TraitProductivity  = "productivity"
	TraitPerfectionism = "perfectionism"
)

// Specialization tags recognized by the collective. An unknown tag behaves
// like SpecGeneralist.
const (
	SpecGeneralist = "generalist"
	SpecEngineer   = "engineer"
	SpecDesigner   = "designer"
	SpecArchitect  = "architect"
	SpecOptimizer  = "optimizer"
)

// PersonalityProfile maps trait names to values in [0,1]. Derived once at
// mind construction and read-only afterwards.
type PersonalityProfile map[string]float64

// BasePersonality returns the shared baseline every specialization starts
// from.
func BasePersonality() PersonalityProfile {
	return PersonalityProfile{
		TraitCuriosity:     0.7,
		TraitCaution:       0.5,
		TraitCreativity:    0.7,
		TraitLogic:         0.7,
		TraitEmpathy:       0.6,
		TraitProductivity:  0.7,
		TraitPerfectionism: 0.5,
	}
}

// roleOverrides overwrite a subset of base traits per specialization.
var roleOverrides = map[string]PersonalityProfile{
	SpecEngineer: {
		TraitLogic:         0.9,
		TraitProductivity:  0.85,
		TraitPerfectionism: 0.7,
	},
	SpecDesigner: {
		TraitCreativity: 0.9,
		TraitEmpathy:    0.8,
		TraitCuriosity:  0.8,
	},
	SpecArchitect: {
		TraitLogic:         0.85,
		TraitCaution:       0.7,
		TraitPerfectionism: 0.8,
	},
	SpecOptimizer: {
		TraitPerfectionism: 0.9,
		TraitProductivity:  0.8,
		TraitCaution:       0.6,
	},
}

// DerivePersonality builds the profile for a specialization: base profile
// plus the role's override table. Unknown specializations get the unmodified
// base. All values stay within [0,1].
func DerivePersonality(specialization string) PersonalityProfile {
	profile := BasePersonality()
	for trait, value := range roleOverrides[specialization] {
		profile[trait] = clamp01(value)
	}
	return profile
}

// DefaultValues returns the decision-weighting value map, fixed at init.
func DefaultValues() map[string]float64 {
	return map[string]float64{
		"human_wellbeing":   0.9,
		"technical_quality": 0.9,
		"design_quality":    0.8,
		"collaboration":     0.9,
		"innovation":        0.8,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
