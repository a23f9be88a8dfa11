package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// Upstream filter keys for InChI routing. A query string carrying the
// "InChI=" prefix is a full InChI; anything else is treated as an InChI key.
const (
	inchiFilterKey    = "molecule_structures__standard_inchi"
	inchiKeyFilterKey = "molecule_structures__standard_inchi_key"
)

func (r *Registry) registerStructureOperations() {
	r.register(Operation{
		Tool: domain.Tool{
			Name:        "search_similar_compounds",
			Description: "Find compounds structurally similar to a SMILES string (Tanimoto similarity)",
			InputSchema: objectSchema(map[string]domain.JSONSchemaProps{
				"smiles":     stringProp("SMILES string of the reference structure"),
				"similarity": similarityProp(),
				"limit":      limitProp(),
			}, "smiles"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseSimilarityArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{
					Path:  fmt.Sprintf("/similarity/%s/%d.json", url.PathEscape(args.SMILES), args.Percent()),
					Query: q,
				})
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "search_substructure",
			Description: "Find compounds containing a SMILES substructure",
			InputSchema: objectSchema(map[string]domain.JSONSchemaProps{
				"smiles": stringProp("SMILES string of the substructure"),
				"limit":  limitProp(),
			}, "smiles"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseSubstructureArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{
					Path:  fmt.Sprintf("/substructure/%s.json", url.PathEscape(args.SMILES)),
					Query: q,
				})
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "search_by_inchi",
			Description: "Find compounds by InChI string or InChI key",
			InputSchema: objectSchema(map[string]domain.JSONSchemaProps{
				"inchi": stringProp("Full InChI (starting with \"InChI=\") or an InChI key"),
				"limit": limitProp(),
			}, "inchi"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseInChIArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				key := inchiKeyFilterKey
				if args.IsFullInChI() {
					key = inchiFilterKey
				}
				q := url.Values{}
				q.Set(key, args.InChI)
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{Path: "/molecule.json", Query: q})
			}, nil
		},
	})
}

func similarityProp() domain.JSONSchemaProps {
	p := numberProp("Minimum Tanimoto similarity as a 0-1 fraction", fptr(0), fptr(1))
	p.Default = domain.DefaultSimilarity
	return p
}

// fetchMoleculeBySMILES resolves a SMILES string to its ChEMBL molecule
// record via the exact-structure (flexmatch) filter. Zero matches is a
// domain.ErrNotFound, surfaced as an error rather than an empty success.
func (r *Registry) fetchMoleculeBySMILES(ctx context.Context, smiles string) (map[string]any, error) {
	q := url.Values{}
	q.Set("molecule_structures__canonical_smiles__flexmatch", smiles)
	q.Set("limit", "1")
	resp, err := r.client.GetJSON(ctx, chembl.Request{Path: "/molecule.json", Query: q})
	if err != nil {
		return nil, err
	}
	molecules, _ := resp["molecules"].([]any)
	if len(molecules) == 0 {
		return nil, fmt.Errorf("%w: no ChEMBL compound matches SMILES %q", domain.ErrNotFound, smiles)
	}
	molecule, ok := molecules[0].(map[string]any)
	if !ok {
		return nil, &domain.UpstreamError{Message: "unexpected molecule record shape from upstream"}
	}
	return molecule, nil
}

func moleculeChemblID(mol map[string]any) string {
	id, _ := mol["molecule_chembl_id"].(string)
	return id
}
