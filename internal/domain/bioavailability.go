package domain

// RuleCheck records one inclusive-threshold property check.
type RuleCheck struct {
	Rule      string   `json:"rule"`
	Threshold float64  `json:"threshold"`
	Value     *float64 `json:"value"`
	Pass      bool     `json:"pass"`
}

// BioavailabilityScore summarises the Martin-style six-rule oral
// bioavailability estimate.
type BioavailabilityScore struct {
	RulesPassed int         `json:"rules_passed"`
	RulesTotal  int         `json:"rules_total"`
	Score       float64     `json:"score"`
	Category    string      `json:"category"`
	Checks      []RuleCheck `json:"checks"`
}

// bioavailabilityRules lists the six checks in reporting order. Thresholds
// are inclusive: a value equal to its threshold passes.
var bioavailabilityRules = []struct {
	name      string
	threshold float64
	value     func(CompoundProperties) *float64
}{
	{"molecular_weight", 500, func(p CompoundProperties) *float64 { return p.MolecularWeight }},
	{"alogp", 5, func(p CompoundProperties) *float64 { return p.ALogP }},
	{"hbd", 5, func(p CompoundProperties) *float64 { return p.HBD }},
	{"hba", 10, func(p CompoundProperties) *float64 { return p.HBA }},
	{"psa", 140, func(p CompoundProperties) *float64 { return p.PSA }},
	{"rotatable_bonds", 10, func(p CompoundProperties) *float64 { return p.RotatableBonds }},
}

// ScoreBioavailability counts how many of the six rules hold. A missing
// property fails its rule. The score is passed/6 in [0,1]; the category
// buckets the count (>=5 High, >=3 Medium, else Low).
func ScoreBioavailability(p CompoundProperties) BioavailabilityScore {
	checks := make([]RuleCheck, 0, len(bioavailabilityRules))
	passed := 0
	for _, r := range bioavailabilityRules {
		v := r.value(p)
		pass := v != nil && *v <= r.threshold
		if pass {
			passed++
		}
		checks = append(checks, RuleCheck{Rule: r.name, Threshold: r.threshold, Value: v, Pass: pass})
	}
	return BioavailabilityScore{
		RulesPassed: passed,
		RulesTotal:  len(bioavailabilityRules),
		Score:       float64(passed) / float64(len(bioavailabilityRules)),
		Category:    bioavailabilityCategory(passed),
		Checks:      checks,
	}
}

func bioavailabilityCategory(passed int) string {
	switch {
	case passed >= 5:
		return "High"
	case passed >= 3:
		return "Medium"
	default:
		return "Low"
	}
}
