package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

func (r *Registry) registerCompoundOperations() {
	r.register(r.searchOperation(
		"search_compounds",
		"Search ChEMBL compounds by name, synonym or identifier",
		"/molecule/search.json",
		"Free-text query matched against compound names, synonyms and identifiers",
	))

	r.register(r.lookupOperation(
		"get_compound_info",
		"Retrieve the full ChEMBL record for a single compound",
		"/molecule/%s.json",
		"ChEMBL compound identifier, e.g. CHEMBL25",
	))

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "batch_compound_lookup",
			Description: fmt.Sprintf("Look up several compounds in one call (the first %d identifiers are processed)", domain.MaxBatchLookups),
			InputSchema: batchSchema("ChEMBL compound identifiers (1-50; extras beyond the processing cap are ignored)", 50),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseBatchArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.batchLookup(ctx, args)
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "compare_compounds",
			Description: fmt.Sprintf("Compare the records and recent bioactivities of up to %d compounds", domain.MaxComparedCompounds),
			InputSchema: batchSchema("ChEMBL compound identifiers (1-50; extras beyond the comparison cap are ignored)", 50),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseBatchArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.compareCompounds(ctx, args)
			}, nil
		},
	})
}

// searchOperation builds a query-shaped passthrough operation against an
// upstream free-text search endpoint.
func (r *Registry) searchOperation(name, desc, path, queryDesc string) Operation {
	return Operation{
		Tool: domain.Tool{
			Name:        name,
			Description: desc,
			InputSchema: querySchema(queryDesc),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseQueryArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("q", args.Query)
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				q.Set("offset", strconv.Itoa(args.OffsetOrDefault()))
				return r.client.Get(ctx, chembl.Request{Path: path, Query: q})
			}, nil
		},
	}
}

// lookupOperation builds an identifier-shaped passthrough operation against
// a single-entity endpoint. pathFmt must contain one %s for the escaped
// identifier.
func (r *Registry) lookupOperation(name, desc, pathFmt, idDesc string) Operation {
	return Operation{
		Tool: domain.Tool{
			Name:        name,
			Description: desc,
			InputSchema: identifierSchema(idDesc),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseIdentifierArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.client.Get(ctx, chembl.Request{
					Path: fmt.Sprintf(pathFmt, url.PathEscape(args.ChemblID)),
				})
			}, nil
		},
	}
}

// listByMoleculeOperation builds an identifier-shaped passthrough operation
// against a list endpoint filtered by molecule_chembl_id.
func (r *Registry) listByMoleculeOperation(name, desc, path, idDesc string) Operation {
	return Operation{
		Tool: domain.Tool{
			Name:        name,
			Description: desc,
			InputSchema: identifierWithLimitSchema(idDesc),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseIdentifierArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("molecule_chembl_id", args.ChemblID)
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{Path: path, Query: q})
			}, nil
		},
	}
}

type batchEntry struct {
	ChemblID string          `json:"chembl_id"`
	Molecule json.RawMessage `json:"molecule"`
}

type batchResult struct {
	Requested int          `json:"requested"`
	Processed int          `json:"processed"`
	Results   []batchEntry `json:"results"`
}

// batchLookup fans out one molecule fetch per identifier, capped at
// MaxBatchLookups. Fetches run concurrently but the output preserves the
// input order; any single failure fails the whole operation.
func (r *Registry) batchLookup(ctx context.Context, args domain.BatchArgs) (any, error) {
	ids := args.Capped(domain.MaxBatchLookups)
	entries := make([]batchEntry, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			body, err := r.client.Get(ctx, chembl.Request{
				Path: fmt.Sprintf("/molecule/%s.json", url.PathEscape(id)),
			})
			entries[i] = batchEntry{ChemblID: id, Molecule: body}
			errs[i] = err
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("lookup of %s failed: %w", ids[i], err)
		}
	}
	return batchResult{
		Requested: len(args.ChemblIDs),
		Processed: len(ids),
		Results:   entries,
	}, nil
}

type comparisonEntry struct {
	ChemblID   string          `json:"chembl_id"`
	Molecule   json.RawMessage `json:"molecule"`
	Activities json.RawMessage `json:"activities"`
}

type comparisonResult struct {
	Compared  int               `json:"compared"`
	Compounds []comparisonEntry `json:"compounds"`
}

// compareCompounds fetches the record plus a small bioactivity sample for up
// to MaxComparedCompounds identifiers, preserving input order.
func (r *Registry) compareCompounds(ctx context.Context, args domain.BatchArgs) (any, error) {
	ids := args.Capped(domain.MaxComparedCompounds)
	entries := make([]comparisonEntry, len(ids))
	errs := make([]error, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			molecule, err := r.client.Get(ctx, chembl.Request{
				Path: fmt.Sprintf("/molecule/%s.json", url.PathEscape(id)),
			})
			if err != nil {
				errs[i] = err
				return
			}
			q := url.Values{}
			q.Set("molecule_chembl_id", id)
			q.Set("limit", strconv.Itoa(domain.MaxComparedCompounds))
			activities, err := r.client.Get(ctx, chembl.Request{Path: "/activity.json", Query: q})
			if err != nil {
				errs[i] = err
				return
			}
			entries[i] = comparisonEntry{ChemblID: id, Molecule: molecule, Activities: activities}
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("comparison of %s failed: %w", ids[i], err)
		}
	}
	return comparisonResult{Compared: len(ids), Compounds: entries}, nil
}
