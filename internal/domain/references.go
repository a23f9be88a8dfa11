package domain

import (
	"fmt"
	"strings"
)

// ExternalReference is one cross-reference record merged from the upstream
// molecule and compound-record endpoints.
type ExternalReference struct {
	Source string `json:"source"`
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	URL    string `json:"url,omitempty"`
	Origin string `json:"origin"`
}

// Reference category names, in reporting order.
const (
	CategoryChemical   = "chemical_databases"
	CategoryStructural = "structural_databases"
	CategoryLiterature = "literature"
	CategoryPatents    = "patents"
	CategoryBiological = "biological_databases"
	CategoryOther      = "other"
)

// referenceBuckets maps lowercase source keywords to categories. Matching is
// a case-insensitive substring test against the source database name.
var referenceBuckets = []struct {
	keyword  string
	category string
}{
	{"pubchem", CategoryChemical},
	{"chemspider", CategoryChemical},
	{"chebi", CategoryChemical},
	{"pdb", CategoryStructural},
	{"rcsb", CategoryStructural},
	{"pubmed", CategoryLiterature},
	{"doi", CategoryLiterature},
	{"patent", CategoryPatents},
	{"uniprot", CategoryBiological},
	{"gene", CategoryBiological},
	{"kegg", CategoryBiological},
}

// referenceURLPatterns generates canonical external URLs for the known
// databases; sources not listed here get no URL.
var referenceURLPatterns = []struct {
	keyword string
	pattern string
}{
	{"pubchem", "https://pubchem.ncbi.nlm.nih.gov/compound/%s"},
	{"chemspider", "https://www.chemspider.com/Chemical-Structure.%s.html"},
	{"chebi", "https://www.ebi.ac.uk/chebi/searchId.do?chebiId=%s"},
	{"pdb", "https://www.rcsb.org/ligand/%s"},
	{"uniprot", "https://www.uniprot.org/uniprotkb/%s"},
	{"kegg", "https://www.kegg.jp/entry/%s"},
	{"drugbank", "https://go.drugbank.com/drugs/%s"},
	{"wikipedia", "https://en.wikipedia.org/wiki/%s"},
}

// BucketReference returns the category for a source database name.
func BucketReference(source string) string {
	lower := strings.ToLower(source)
	for _, b := range referenceBuckets {
		if strings.Contains(lower, b.keyword) {
			return b.category
		}
	}
	return CategoryOther
}

// ReferenceURL returns the canonical external URL for a source/id pair, or
// the empty string when the database is unknown.
func ReferenceURL(source, id string) string {
	lower := strings.ToLower(source)
	for _, p := range referenceURLPatterns {
		if strings.Contains(lower, p.keyword) {
			return fmt.Sprintf(p.pattern, id)
		}
	}
	return ""
}

// GroupReferences buckets references by category, preserving input order
// within each bucket.
func GroupReferences(refs []ExternalReference) map[string][]ExternalReference {
	groups := make(map[string][]ExternalReference)
	for _, ref := range refs {
		cat := BucketReference(ref.Source)
		groups[cat] = append(groups[cat], ref)
	}
	return groups
}
