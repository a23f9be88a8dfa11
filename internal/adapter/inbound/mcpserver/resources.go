package mcpserver

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// URIScheme is the scheme of the read-only resource templates.
const URIScheme = "chembl"

var activityIDPattern = regexp.MustCompile(`^[0-9]+$`)

// resourceTemplates lists the five advertised templates.
var resourceTemplates = []struct {
	uri  string
	name string
	desc string
}{
	{"chembl://compound/{chembl_id}", "ChEMBL compound", "Full record of a compound by ChEMBL identifier"},
	{"chembl://target/{chembl_id}", "ChEMBL target", "Full record of a target by ChEMBL identifier"},
	{"chembl://assay/{chembl_id}", "ChEMBL assay", "Full record of an assay by ChEMBL identifier"},
	{"chembl://activity/{activity_id}", "ChEMBL activity", "A single bioactivity measurement by numeric identifier"},
	{"chembl://search/{query}", "ChEMBL compound search", "Free-text compound search (query is URL-encoded)"},
}

func (s *Server) registerResources() {
	for _, t := range resourceTemplates {
		template := mcp.NewResourceTemplate(
			t.uri,
			t.name,
			mcp.WithTemplateDescription(t.desc),
			mcp.WithTemplateMIMEType("application/json"),
		)
		s.mcp.AddResourceTemplate(template, s.readResource)
	}
}

// readResource resolves a chembl:// URI to its upstream call and returns the
// JSON body as a single text content item.
func (s *Server) readResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	upstream, err := ResolveURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	body, err := s.client.Get(ctx, upstream)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(body),
		},
	}, nil
}

// ResolveURI parses a chembl:// URI against the five resource templates and
// returns the corresponding upstream request. A URI matching no template is
// an ErrInvalidParams.
func ResolveURI(uri string) (chembl.Request, error) {
	rest, ok := strings.CutPrefix(uri, URIScheme+"://")
	if !ok {
		return chembl.Request{}, fmt.Errorf("%w: unsupported resource URI %q", domain.ErrInvalidParams, uri)
	}
	kind, value, ok := strings.Cut(rest, "/")
	if !ok || value == "" {
		return chembl.Request{}, fmt.Errorf("%w: malformed resource URI %q", domain.ErrInvalidParams, uri)
	}

	switch kind {
	case "compound":
		return chembl.Request{Path: fmt.Sprintf("/molecule/%s.json", url.PathEscape(value))}, nil
	case "target":
		return chembl.Request{Path: fmt.Sprintf("/target/%s.json", url.PathEscape(value))}, nil
	case "assay":
		return chembl.Request{Path: fmt.Sprintf("/assay/%s.json", url.PathEscape(value))}, nil
	case "activity":
		if !activityIDPattern.MatchString(value) {
			return chembl.Request{}, fmt.Errorf("%w: activity identifier must be numeric, got %q", domain.ErrInvalidParams, value)
		}
		return chembl.Request{Path: fmt.Sprintf("/activity/%s.json", value)}, nil
	case "search":
		query, err := url.QueryUnescape(value)
		if err != nil || query == "" {
			return chembl.Request{}, fmt.Errorf("%w: malformed search query in resource URI %q", domain.ErrInvalidParams, uri)
		}
		q := url.Values{}
		q.Set("q", query)
		q.Set("limit", fmt.Sprintf("%d", domain.DefaultLimit))
		return chembl.Request{Path: "/molecule/search.json", Query: q}, nil
	default:
		return chembl.Request{}, fmt.Errorf("%w: unsupported resource kind %q", domain.ErrInvalidParams, kind)
	}
}
