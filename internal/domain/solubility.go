package domain

import "math"

// SolubilityEstimate is the output of the three-model aqueous solubility
// estimate. LogS values are log10 of molar solubility.
type SolubilityEstimate struct {
	LogS            float64  `json:"logs"`
	LogSYalkowsky   float64  `json:"logs_yalkowsky"`
	LogSAli         float64  `json:"logs_ali"`
	LogSESOL        float64  `json:"logs_esol"`
	MolarSolubility float64  `json:"molar_solubility_mol_per_l"`
	MassSolubility  *float64 `json:"mass_solubility_mg_per_ml"`
	Class           string   `json:"classification"`

	Explanations    SolubilityExplanations `json:"explanations"`
	Recommendations []string               `json:"recommendations"`
}

// SolubilityExplanations carries the qualitative per-factor notes. A factor
// whose underlying property is absent upstream reads "Unknown".
type SolubilityExplanations struct {
	Lipophilicity   string `json:"lipophilicity"`
	HydrogenBonding string `json:"hydrogen_bonding"`
	Size            string `json:"size"`
	Flexibility     string `json:"flexibility"`
}

// EstimateSolubility computes three independent linear logS estimates from
// the computed properties and averages them:
//
//	yalkowsky = 0.5 - logP                              (general solubility equation, melting term omitted)
//	ali       = 0.25 - 1.0377*logP - 0.0035*MW + 0.25*HBD
//	esol      = 0.16 - 0.63*logP - 0.0062*MW + 0.066*RTB (Delaney, aromatic-proportion term omitted)
//
// A missing input contributes 0 to the arithmetic; the explanations report
// it as Unknown instead. Molar solubility is 10^logS, mass solubility is
// 10^logS * MW (unknown when MW is absent).
func EstimateSolubility(p CompoundProperties) SolubilityEstimate {
	logP := orZero(p.ALogP)
	mw := orZero(p.MolecularWeight)
	hbd := orZero(p.HBD)
	rtb := orZero(p.RotatableBonds)

	yalkowsky := 0.5 - logP
	ali := 0.25 - 1.0377*logP - 0.0035*mw + 0.25*hbd
	esol := 0.16 - 0.63*logP - 0.0062*mw + 0.066*rtb
	logS := (yalkowsky + ali + esol) / 3

	est := SolubilityEstimate{
		LogS:            logS,
		LogSYalkowsky:   yalkowsky,
		LogSAli:         ali,
		LogSESOL:        esol,
		MolarSolubility: math.Pow(10, logS),
		Class:           ClassifySolubility(logS),
		Explanations:    explainSolubility(p),
		Recommendations: solubilityRecommendations(p, logS),
	}
	if p.MolecularWeight != nil {
		mass := est.MolarSolubility * *p.MolecularWeight
		est.MassSolubility = &mass
	}
	return est
}

// ClassifySolubility buckets a logS value into five classes. Breakpoints use
// strict '>' semantics, so logS == -1 classifies as "soluble".
func ClassifySolubility(logS float64) string {
	switch {
	case logS > -1:
		return "very soluble"
	case logS > -2:
		return "soluble"
	case logS > -3:
		return "moderately soluble"
	case logS > -4:
		return "slightly soluble"
	default:
		return "poorly soluble"
	}
}

func explainSolubility(p CompoundProperties) SolubilityExplanations {
	return SolubilityExplanations{
		Lipophilicity:   explainLipophilicity(p.ALogP),
		HydrogenBonding: explainHydrogenBonding(p.HBD, p.HBA),
		Size:            explainSize(p.MolecularWeight),
		Flexibility:     explainFlexibility(p.RotatableBonds),
	}
}

func explainLipophilicity(logP *float64) string {
	switch {
	case logP == nil:
		return "Unknown"
	case *logP > 5:
		return "Very high lipophilicity severely limits aqueous solubility"
	case *logP > 3:
		return "High lipophilicity reduces aqueous solubility"
	case *logP > 1:
		return "Moderate lipophilicity has a limited effect on solubility"
	default:
		return "Low lipophilicity favors aqueous solubility"
	}
}

func explainHydrogenBonding(hbd, hba *float64) string {
	if hbd == nil && hba == nil {
		return "Unknown"
	}
	total := orZero(hbd) + orZero(hba)
	switch {
	case total > 10:
		return "Extensive hydrogen bonding strongly promotes water solubility"
	case total > 5:
		return "Moderate hydrogen bonding supports water solubility"
	default:
		return "Limited hydrogen bonding provides little solubilizing effect"
	}
}

func explainSize(mw *float64) string {
	switch {
	case mw == nil:
		return "Unknown"
	case *mw > 500:
		return "Large molecular size hinders dissolution"
	case *mw > 350:
		return "Moderate molecular size has a modest effect on dissolution"
	default:
		return "Small molecular size favors dissolution"
	}
}

func explainFlexibility(rtb *float64) string {
	switch {
	case rtb == nil:
		return "Unknown"
	case *rtb > 10:
		return "High flexibility increases the entropic cost of dissolution"
	case *rtb > 5:
		return "Moderate flexibility slightly disfavors dissolution"
	default:
		return "Rigid structure keeps the entropic cost of dissolution low"
	}
}

func solubilityRecommendations(p CompoundProperties, logS float64) []string {
	var recs []string
	if logS < -3 {
		recs = append(recs, "Low predicted solubility: consider salt forms, amorphous dispersions or lipid-based formulation strategies")
	}
	if p.ALogP != nil && *p.ALogP > 3 {
		recs = append(recs, "Reducing lipophilicity (logP > 3) would improve aqueous solubility")
	}
	if orZero(p.HBD)+orZero(p.HBA) < 3 {
		recs = append(recs, "Few hydrogen-bonding groups: introducing polar functionality may improve solubility")
	}
	if p.MolecularWeight != nil && *p.MolecularWeight > 500 {
		recs = append(recs, "Lowering molecular weight (currently above 500 Da) would likely improve solubility")
	}
	return recs
}
