package domain

import (
	"fmt"
	"sort"
)

// PropertyStats summarises one numeric property across a result set. Only
// records with a non-null value contribute; when Count is zero the remaining
// fields are null.
type PropertyStats struct {
	Count  int      `json:"count"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
}

// SearchAnalytics is the post-processing attached to advanced property
// searches.
type SearchAnalytics struct {
	TotalCompounds         int                      `json:"total_compounds"`
	Properties             map[string]PropertyStats `json:"properties"`
	LipinskiComplianceRate *float64                 `json:"lipinski_compliance_rate"`
	Insights               []string                 `json:"insights"`
}

// SummarizeProperty computes count/min/max/mean/median over the given values.
func SummarizeProperty(values []float64) PropertyStats {
	stats := PropertyStats{Count: len(values)}
	if len(values) == 0 {
		return stats
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	minV := sorted[0]
	maxV := sorted[len(sorted)-1]
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	stats.Min = &minV
	stats.Max = &maxV
	stats.Mean = &mean
	stats.Median = &median
	return stats
}

// analyzedProperties lists the six summarised properties in reporting order.
var analyzedProperties = []struct {
	name  string
	value func(CompoundProperties) *float64
}{
	{"molecular_weight", func(p CompoundProperties) *float64 { return p.MolecularWeight }},
	{"alogp", func(p CompoundProperties) *float64 { return p.ALogP }},
	{"hbd", func(p CompoundProperties) *float64 { return p.HBD }},
	{"hba", func(p CompoundProperties) *float64 { return p.HBA }},
	{"psa", func(p CompoundProperties) *float64 { return p.PSA }},
	{"rotatable_bonds", func(p CompoundProperties) *float64 { return p.RotatableBonds }},
}

// AnalyzeCompounds computes per-property summary statistics, the Lipinski
// compliance rate (fraction of records whose upstream violation count is at
// most 1, over records that carry the count at all), and threshold-driven
// insight strings.
func AnalyzeCompounds(props []CompoundProperties) SearchAnalytics {
	analytics := SearchAnalytics{
		TotalCompounds: len(props),
		Properties:     make(map[string]PropertyStats, len(analyzedProperties)),
	}

	for _, ap := range analyzedProperties {
		var values []float64
		for _, p := range props {
			if v := ap.value(p); v != nil {
				values = append(values, *v)
			}
		}
		analytics.Properties[ap.name] = SummarizeProperty(values)
	}

	withViolations, compliant := 0, 0
	for _, p := range props {
		if p.NumRo5Violations == nil {
			continue
		}
		withViolations++
		if *p.NumRo5Violations <= 1 {
			compliant++
		}
	}
	if withViolations > 0 {
		rate := float64(compliant) / float64(withViolations)
		analytics.LipinskiComplianceRate = &rate
	}

	analytics.Insights = searchInsights(analytics)
	return analytics
}

func searchInsights(a SearchAnalytics) []string {
	var insights []string

	if rate := a.LipinskiComplianceRate; rate != nil {
		switch {
		case *rate < 0.5:
			insights = append(insights, fmt.Sprintf("Only %.0f%% of the result set is Lipinski-compliant; consider tightening the property filters", *rate*100))
		case *rate > 0.9:
			insights = append(insights, fmt.Sprintf("%.0f%% of the result set is Lipinski-compliant; the set is highly drug-like", *rate*100))
		}
	}

	if mw := a.Properties["molecular_weight"]; mw.Count > 0 && *mw.Max-*mw.Min < 100 {
		insights = append(insights, "Narrow molecular weight range (under 100 Da) across the result set")
	}
	if hbd := a.Properties["hbd"]; hbd.Count > 0 && *hbd.Max < 3 {
		insights = append(insights, "Low hydrogen bond donor counts across the result set")
	}
	return insights
}
