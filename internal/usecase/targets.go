package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// pathwaySourceKeywords selects cross-references that point at pathway
// databases (case-insensitive substring match on the source name).
var pathwaySourceKeywords = []string{"reactome", "kegg", "pathway", "biocyc"}

const pathwayDisclaimer = "ChEMBL's native pathway annotation is incomplete. " +
	"The cross-references and mechanism records below are a starting point; " +
	"consult the suggested external queries for comprehensive pathway data."

func (r *Registry) registerTargetOperations() {
	r.register(r.searchOperation(
		"search_targets",
		"Search ChEMBL targets by name or synonym",
		"/target/search.json",
		"Free-text query matched against target names and synonyms",
	))

	r.register(r.lookupOperation(
		"get_target_info",
		"Retrieve the full ChEMBL record for a single target",
		"/target/%s.json",
		"ChEMBL target identifier, e.g. CHEMBL240",
	))

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "get_target_compounds",
			Description: "List bioactivity records (and thereby tested compounds) for a target",
			InputSchema: identifierWithLimitSchema("ChEMBL target identifier"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseIdentifierArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("target_chembl_id", args.ChemblID)
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{Path: "/activity.json", Query: q})
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "get_target_pathways",
			Description: "Assemble pathway-related annotation for a target from its components, cross-references and mechanisms",
			InputSchema: identifierSchema("ChEMBL target identifier"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseIdentifierArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.targetPathways(ctx, args.ChemblID)
			}, nil
		},
	})
}

type pathwayXref struct {
	Source    string `json:"source"`
	ID        string `json:"id"`
	Accession string `json:"accession,omitempty"`
}

type suggestedQuery struct {
	Database string `json:"database"`
	URL      string `json:"url"`
}

type pathwayReport struct {
	TargetChemblID    string           `json:"target_chembl_id"`
	UniprotAccessions []string         `json:"uniprot_accessions"`
	PathwayXrefs      []pathwayXref    `json:"pathway_xrefs"`
	Mechanisms        []any            `json:"mechanisms"`
	Disclaimer        string           `json:"disclaimer"`
	SuggestedQueries  []suggestedQuery `json:"suggested_queries"`
}

// targetPathways is not a direct upstream endpoint. It combines the target's
// component accessions, pathway-source cross-references and
// mechanism-of-action records. The mechanism fetch is best-effort: its
// failure degrades to an empty list instead of failing the operation.
func (r *Registry) targetPathways(ctx context.Context, targetID string) (any, error) {
	target, err := r.client.GetJSON(ctx, chembl.Request{
		Path: fmt.Sprintf("/target/%s.json", url.PathEscape(targetID)),
	})
	if err != nil {
		return nil, err
	}

	report := pathwayReport{
		TargetChemblID: targetID,
		Mechanisms:     []any{},
		Disclaimer:     pathwayDisclaimer,
	}

	components, _ := target["target_components"].([]any)
	for _, c := range components {
		component, ok := c.(map[string]any)
		if !ok {
			continue
		}
		accession, _ := component["accession"].(string)
		if accession != "" {
			report.UniprotAccessions = append(report.UniprotAccessions, accession)
		}
		xrefs, _ := component["target_component_xrefs"].([]any)
		for _, x := range xrefs {
			xref, ok := x.(map[string]any)
			if !ok {
				continue
			}
			src, _ := xref["xref_src_db"].(string)
			if !isPathwaySource(src) {
				continue
			}
			id, _ := xref["xref_id"].(string)
			report.PathwayXrefs = append(report.PathwayXrefs, pathwayXref{
				Source:    src,
				ID:        id,
				Accession: accession,
			})
		}
	}

	q := url.Values{}
	q.Set("target_chembl_id", targetID)
	mechanisms, err := r.client.GetJSON(ctx, chembl.Request{Path: "/mechanism.json", Query: q})
	if err != nil {
		r.logger.Warn("Mechanism lookup failed, continuing without mechanisms",
			slog.String("target_chembl_id", targetID), slog.Any("error", err))
	} else if list, ok := mechanisms["mechanisms"].([]any); ok {
		report.Mechanisms = list
	}

	report.SuggestedQueries = suggestedPathwayQueries(targetID, report.UniprotAccessions)
	return report, nil
}

func isPathwaySource(src string) bool {
	lower := strings.ToLower(src)
	for _, kw := range pathwaySourceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// suggestedPathwayQueries templates external search URLs; they are returned
// to the caller, never fetched.
func suggestedPathwayQueries(targetID string, accessions []string) []suggestedQuery {
	term := targetID
	if len(accessions) > 0 {
		term = accessions[0]
	}
	escaped := url.QueryEscape(term)
	queries := []suggestedQuery{
		{Database: "Reactome", URL: "https://reactome.org/content/query?q=" + escaped},
		{Database: "KEGG", URL: "https://www.kegg.jp/kegg-bin/search_pathway_text?map=map&keyword=" + escaped},
	}
	if len(accessions) > 0 {
		queries = append(queries, suggestedQuery{
			Database: "UniProt",
			URL:      "https://www.uniprot.org/uniprotkb/" + url.PathEscape(accessions[0]),
		})
	}
	return queries
}
