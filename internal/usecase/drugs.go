package usecase

func (r *Registry) registerDrugOperations() {
	r.register(r.searchOperation(
		"search_drugs",
		"Search approved and clinical-stage drugs",
		"/drug/search.json",
		"Free-text query matched against drug names and synonyms",
	))

	r.register(r.lookupOperation(
		"get_drug_info",
		"Retrieve the drug record for a single compound",
		"/drug/%s.json",
		"ChEMBL compound identifier of the drug",
	))

	r.register(r.listByMoleculeOperation(
		"get_drug_indications",
		"List disease indications recorded for a drug",
		"/drug_indication.json",
		"ChEMBL compound identifier of the drug",
	))

	r.register(r.listByMoleculeOperation(
		"get_drug_mechanisms",
		"List mechanism-of-action records for a drug",
		"/mechanism.json",
		"ChEMBL compound identifier of the drug",
	))

	r.register(r.listByMoleculeOperation(
		"get_drug_warnings",
		"List safety warnings recorded for a drug",
		"/drug_warning.json",
		"ChEMBL compound identifier of the drug",
	))
}
