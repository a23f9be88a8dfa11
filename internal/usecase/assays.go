package usecase

func (r *Registry) registerAssayOperations() {
	r.register(r.searchOperation(
		"search_assays",
		"Search ChEMBL assays by description",
		"/assay/search.json",
		"Free-text query matched against assay descriptions",
	))

	r.register(r.lookupOperation(
		"get_assay_info",
		"Retrieve the full ChEMBL record for a single assay",
		"/assay/%s.json",
		"ChEMBL assay identifier, e.g. CHEMBL615117",
	))
}
