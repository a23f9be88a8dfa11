package usecase_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
	"github.com/lighteternal/chembl-mcp-server/internal/usecase"
)

// recordingUpstream is a fake ChEMBL API that records every request it serves.
type recordingUpstream struct {
	mu       sync.Mutex
	requests []*http.Request
	handler  http.HandlerFunc
}

func (u *recordingUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	clone := r.Clone(r.Context())
	u.requests = append(u.requests, clone)
	u.mu.Unlock()
	u.handler(w, r)
}

func (u *recordingUpstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}

func newTestRegistry(t *testing.T, handler http.HandlerFunc) (*usecase.Registry, *recordingUpstream) {
	upstream := &recordingUpstream{handler: handler}
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := chembl.New(server.Client(), server.URL, "", logger)
	return usecase.NewRegistry(client, logger), upstream
}

func staticJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestRegistryRegistersAllOperations(t *testing.T) {
	registry, _ := newTestRegistry(t, staticJSON(`{}`))

	want := []string{
		"search_compounds",
		"get_compound_info",
		"batch_compound_lookup",
		"compare_compounds",
		"search_similar_compounds",
		"search_substructure",
		"search_by_inchi",
		"search_activities",
		"search_activities_by_type",
		"get_dose_response",
		"search_targets",
		"get_target_info",
		"get_target_compounds",
		"get_target_pathways",
		"search_assays",
		"get_assay_info",
		"search_drugs",
		"get_drug_info",
		"get_drug_indications",
		"get_drug_mechanisms",
		"get_drug_warnings",
		"advanced_search",
		"calculate_descriptors",
		"predict_admet",
		"predict_solubility",
		"assess_drug_likeness",
		"get_external_references",
	}

	ops := registry.Operations()
	require.Len(t, ops, len(want))
	for i, op := range ops {
		assert.Equal(t, want[i], op.Tool.Name)
		assert.NotEmpty(t, op.Tool.Description)
		assert.Equal(t, "object", op.Tool.InputSchema.Type)
	}
}

func TestExecuteUnknownOperation(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{}`))

	_, err := registry.Execute(context.Background(), "no_such_tool", nil)

	assert.ErrorIs(t, err, domain.ErrUnknownOperation)
	assert.Zero(t, upstream.count())
}

func TestExecuteInvalidArgumentsMakeNoUpstreamCall(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{}`))

	_, err := registry.Execute(context.Background(), "search_compounds", map[string]any{"limit": 10})

	assert.ErrorIs(t, err, domain.ErrInvalidParams)
	assert.Zero(t, upstream.count())
}

func TestExecuteLookupPassesBodyThroughVerbatim(t *testing.T) {
	// Passthrough operations must not reformat the upstream body.
	const body = `{"molecule_chembl_id":"CHEMBL25","pref_name":"ASPIRIN"}`
	registry, upstream := newTestRegistry(t, staticJSON(body))

	result, err := registry.Execute(context.Background(), "get_compound_info", map[string]any{"chembl_id": "CHEMBL25"})

	require.NoError(t, err)
	assert.Equal(t, body, result)
	require.Equal(t, 1, upstream.count())
	assert.Equal(t, "/molecule/CHEMBL25.json", upstream.requests[0].URL.Path)
}

func TestExecuteSearchCompoundsQuery(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "search_compounds", map[string]any{
		"query":  "aspirin",
		"limit":  5,
		"offset": 10,
	})

	require.NoError(t, err)
	require.Equal(t, 1, upstream.count())
	req := upstream.requests[0]
	assert.Equal(t, "/molecule/search.json", req.URL.Path)
	assert.Equal(t, "aspirin", req.URL.Query().Get("q"))
	assert.Equal(t, "5", req.URL.Query().Get("limit"))
	assert.Equal(t, "10", req.URL.Query().Get("offset"))
}

func TestExecuteSimilaritySearchPath(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "search_similar_compounds", map[string]any{
		"smiles":     "CCO",
		"similarity": 0.85,
	})

	require.NoError(t, err)
	require.Equal(t, 1, upstream.count())
	req := upstream.requests[0]
	assert.Equal(t, "/similarity/CCO/85.json", req.URL.Path)
	assert.Equal(t, "25", req.URL.Query().Get("limit"))
}

func TestExecuteSimilarityDefaultsToSeventyPercent(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "search_similar_compounds", map[string]any{"smiles": "CCO"})

	require.NoError(t, err)
	assert.Equal(t, "/similarity/CCO/70.json", upstream.requests[0].URL.Path)
}

func TestExecuteInChIRouting(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "search_by_inchi", map[string]any{
		"inchi": "BSYNRYMUTXBXSQ-UHFFFAOYSA-N",
	})
	require.NoError(t, err)

	_, err = registry.Execute(context.Background(), "search_by_inchi", map[string]any{
		"inchi": "InChI=1S/CH4/h1H4",
	})
	require.NoError(t, err)

	require.Equal(t, 2, upstream.count())
	keyQuery := upstream.requests[0].URL.Query()
	assert.Equal(t, "BSYNRYMUTXBXSQ-UHFFFAOYSA-N", keyQuery.Get("molecule_structures__standard_inchi_key"))
	assert.Empty(t, keyQuery.Get("molecule_structures__standard_inchi"))

	fullQuery := upstream.requests[1].URL.Query()
	assert.Equal(t, "InChI=1S/CH4/h1H4", fullQuery.Get("molecule_structures__standard_inchi"))
	assert.Empty(t, fullQuery.Get("molecule_structures__standard_inchi_key"))
}

func TestExecuteBatchLookupCapsFanOut(t *testing.T) {
	registry, upstream := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"molecule_chembl_id": "X"}`))
	})

	ids := make([]any, 12)
	for i := range ids {
		ids[i] = "CHEMBL25"
	}
	result, err := registry.Execute(context.Background(), "batch_compound_lookup", map[string]any{"chembl_ids": ids})

	require.NoError(t, err)
	assert.Equal(t, 10, upstream.count())

	var decoded struct {
		Requested int `json:"requested"`
		Processed int `json:"processed"`
		Results   []struct {
			ChemblID string `json:"chembl_id"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, 12, decoded.Requested)
	assert.Equal(t, 10, decoded.Processed)
	assert.Len(t, decoded.Results, 10)
}

func TestExecuteBatchLookupFailsOnAnyError(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/molecule/BAD.json" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"molecule_chembl_id": "X"}`))
	})

	_, err := registry.Execute(context.Background(), "batch_compound_lookup", map[string]any{
		"chembl_ids": []any{"CHEMBL25", "BAD"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD")
}

func TestExecuteCompareCompoundsCapsFanOut(t *testing.T) {
	registry, upstream := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/activity.json" {
			w.Write([]byte(`{"activities": []}`))
			return
		}
		w.Write([]byte(`{"molecule_chembl_id": "X"}`))
	})

	ids := make([]any, 7)
	for i := range ids {
		ids[i] = "CHEMBL25"
	}
	result, err := registry.Execute(context.Background(), "compare_compounds", map[string]any{"chembl_ids": ids})

	require.NoError(t, err)
	// One molecule fetch plus one activity fetch per compared compound.
	assert.Equal(t, 10, upstream.count())

	var decoded struct {
		Compared int `json:"compared"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, 5, decoded.Compared)
}

func TestExecuteDoseResponseUsesTypeSet(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"activities": []}`))

	_, err := registry.Execute(context.Background(), "get_dose_response", map[string]any{
		"target_chembl_id": "CHEMBL240",
		"activity_type":    "IC50", // superseded by the fixed type set
	})

	require.NoError(t, err)
	require.Equal(t, 1, upstream.count())
	q := upstream.requests[0].URL.Query()
	assert.Equal(t, "/activity.json", upstream.requests[0].URL.Path)
	assert.Equal(t, "CHEMBL240", q.Get("target_chembl_id"))
	assert.Equal(t, "IC50,EC50,Ki,Kd,GI50,LC50,LD50", q.Get("standard_type__in"))
	assert.Empty(t, q.Get("standard_type"))
}

func TestExecuteActivityRangeQuery(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"activities": []}`))

	_, err := registry.Execute(context.Background(), "search_activities_by_type", map[string]any{
		"activity_type": "IC50",
		"min_value":     10,
		"max_value":     1000.5,
	})

	require.NoError(t, err)
	q := upstream.requests[0].URL.Query()
	assert.Equal(t, "IC50", q.Get("standard_type"))
	assert.Equal(t, "10", q.Get("standard_value__gte"))
	assert.Equal(t, "1000.5", q.Get("standard_value__lte"))
}

func TestExecuteAdvancedSearch(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{
		"molecules": [
			{"molecule_properties": {"full_mwt": "180.16", "alogp": 1.31, "num_ro5_violations": 0}},
			{"molecule_properties": {"full_mwt": "250.3", "alogp": 2.4, "num_ro5_violations": 2}},
			{"molecule_properties": null}
		]
	}`))

	result, err := registry.Execute(context.Background(), "advanced_search", map[string]any{
		"min_mw":   100,
		"max_mw":   300,
		"max_logp": 3.5,
	})

	require.NoError(t, err)
	q := upstream.requests[0].URL.Query()
	assert.Equal(t, "/molecule.json", upstream.requests[0].URL.Path)
	assert.Equal(t, "100", q.Get("molecule_properties__mw_freebase__gte"))
	assert.Equal(t, "300", q.Get("molecule_properties__mw_freebase__lte"))
	assert.Equal(t, "3.5", q.Get("molecule_properties__alogp__lte"))
	assert.Empty(t, q.Get("molecule_properties__alogp__gte"))

	var decoded struct {
		Count     int `json:"count"`
		Analytics struct {
			TotalCompounds int `json:"total_compounds"`
			Properties     map[string]struct {
				Count int      `json:"count"`
				Mean  *float64 `json:"mean"`
			} `json:"properties"`
			LipinskiComplianceRate *float64 `json:"lipinski_compliance_rate"`
		} `json:"analytics"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, 3, decoded.Count)
	assert.Equal(t, 3, decoded.Analytics.TotalCompounds)
	assert.Equal(t, 2, decoded.Analytics.Properties["molecular_weight"].Count)
	require.NotNil(t, decoded.Analytics.LipinskiComplianceRate)
	assert.InDelta(t, 0.5, *decoded.Analytics.LipinskiComplianceRate, 1e-9)
}

func TestExecuteAdvancedSearchEmptyArgs(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "advanced_search", map[string]any{})

	require.NoError(t, err)
	q := upstream.requests[0].URL.Query()
	assert.Equal(t, "25", q.Get("limit"))
	assert.Len(t, q, 1)
}

func TestExecuteCalculatorResolvesSMILES(t *testing.T) {
	registry, upstream := newTestRegistry(t, staticJSON(`{
		"molecules": [{
			"molecule_chembl_id": "CHEMBL25",
			"molecule_properties": {"full_mwt": "180.16", "alogp": 1.31, "hbd": 1, "hba": 3, "psa": "63.60", "rtb": 2, "num_ro5_violations": 0}
		}]
	}`))

	result, err := registry.Execute(context.Background(), "assess_drug_likeness", map[string]any{
		"smiles": "CC(=O)Oc1ccccc1C(=O)O",
	})

	require.NoError(t, err)
	req := upstream.requests[0]
	assert.Equal(t, "/molecule.json", req.URL.Path)
	assert.Equal(t, "CC(=O)Oc1ccccc1C(=O)O", req.URL.Query().Get("molecule_structures__canonical_smiles__flexmatch"))
	assert.Equal(t, "1", req.URL.Query().Get("limit"))

	var decoded struct {
		SMILES     string `json:"smiles"`
		ChemblID   string `json:"chembl_id"`
		Assessment struct {
			OverallPass bool `json:"overall_pass"`
		} `json:"assessment"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "CC(=O)Oc1ccccc1C(=O)O", decoded.SMILES)
	assert.Equal(t, "CHEMBL25", decoded.ChemblID)
	assert.True(t, decoded.Assessment.OverallPass)
}

func TestExecuteCalculatorUnknownSMILES(t *testing.T) {
	registry, _ := newTestRegistry(t, staticJSON(`{"molecules": []}`))

	_, err := registry.Execute(context.Background(), "calculate_descriptors", map[string]any{"smiles": "CCCC"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecutePredictAdmetReport(t *testing.T) {
	registry, _ := newTestRegistry(t, staticJSON(`{
		"molecules": [{
			"molecule_chembl_id": "CHEMBL25",
			"molecule_properties": {"full_mwt": "180.16", "alogp": 1.31, "hbd": 1, "hba": 3, "psa": "63.60", "rtb": 2, "num_ro5_violations": 0}
		}]
	}`))

	result, err := registry.Execute(context.Background(), "predict_admet", map[string]any{"smiles": "CCO"})

	require.NoError(t, err)
	var decoded struct {
		Bioavailability struct {
			Category string `json:"category"`
		} `json:"bioavailability"`
		Solubility struct {
			Classification string `json:"classification"`
		} `json:"solubility"`
		DrugLikeness struct {
			OverallPass bool `json:"overall_pass"`
		} `json:"drug_likeness"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "High", decoded.Bioavailability.Category)
	assert.NotEmpty(t, decoded.Solubility.Classification)
	assert.True(t, decoded.DrugLikeness.OverallPass)
}

func TestExecuteExternalReferencesBestEffort(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/molecule/CHEMBL25.json":
			w.Write([]byte(`{
				"molecule_chembl_id": "CHEMBL25",
				"cross_references": [
					{"xref_src": "PubChem", "xref_id": "2244", "xref_name": "SID: 2244"},
					{"xref_src": "Wikipedia", "xref_id": "Aspirin"}
				]
			}`))
		case "/compound_record.json":
			// The secondary source is down; the operation must still succeed.
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	})

	result, err := registry.Execute(context.Background(), "get_external_references", map[string]any{"chembl_id": "CHEMBL25"})

	require.NoError(t, err)
	var decoded struct {
		ChemblID string `json:"chembl_id"`
		Total    int    `json:"total"`
		Groups   map[string][]struct {
			Source string `json:"source"`
			URL    string `json:"url"`
			Origin string `json:"origin"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "CHEMBL25", decoded.ChemblID)
	assert.Equal(t, 2, decoded.Total)
	require.Len(t, decoded.Groups["chemical_databases"], 1)
	assert.Equal(t, "https://pubchem.ncbi.nlm.nih.gov/compound/2244", decoded.Groups["chemical_databases"][0].URL)
	assert.Equal(t, "molecule", decoded.Groups["chemical_databases"][0].Origin)
}

func TestExecuteTargetPathwaysBestEffortMechanisms(t *testing.T) {
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/target/CHEMBL240.json":
			w.Write([]byte(`{
				"target_chembl_id": "CHEMBL240",
				"pref_name": "HERG",
				"target_components": [{
					"accession": "Q12809",
					"target_component_xrefs": [
						{"xref_src_db": "Reactome", "xref_id": "R-HSA-5576890", "xref_name": "Phase 3 - rapid repolarisation"},
						{"xref_src_db": "PDBe", "xref_id": "5VA1"}
					]
				}]
			}`))
		case "/mechanism.json":
			http.Error(w, "bad gateway", http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	})

	result, err := registry.Execute(context.Background(), "get_target_pathways", map[string]any{"chembl_id": "CHEMBL240"})

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(result), &decoded))
	assert.Equal(t, "CHEMBL240", decoded["target_chembl_id"])
}

func TestExecuteTargetPathwaysRequiresTarget(t *testing.T) {
	// The target record itself is not best-effort.
	registry, _ := newTestRegistry(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := registry.Execute(context.Background(), "get_target_pathways", map[string]any{"chembl_id": "CHEMBL240"})

	require.Error(t, err)
}

func TestLookupFindsRegisteredOperation(t *testing.T) {
	registry, _ := newTestRegistry(t, staticJSON(`{}`))

	op, ok := registry.Lookup("search_drugs")
	require.True(t, ok)
	assert.Equal(t, "search_drugs", op.Tool.Name)

	_, ok = registry.Lookup("missing")
	assert.False(t, ok)
}
