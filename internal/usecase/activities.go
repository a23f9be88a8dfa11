package usecase

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// doseResponseTypes is the fixed set of activity types queried by the
// dose-response operation, sent as a single "in" filter.
var doseResponseTypes = []string{"IC50", "EC50", "Ki", "Kd", "GI50", "LC50", "LD50"}

func (r *Registry) registerActivityOperations() {
	r.register(Operation{
		Tool: domain.Tool{
			Name:        "search_activities",
			Description: "Search bioactivity measurements filtered by target, assay and/or compound",
			InputSchema: activityFilterSchema(),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseActivityFilterArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				return r.client.Get(ctx, chembl.Request{Path: "/activity.json", Query: activityFilterQuery(args)})
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "search_activities_by_type",
			Description: "Search bioactivity measurements of one type within a value range",
			InputSchema: objectSchema(map[string]domain.JSONSchemaProps{
				"activity_type": stringProp("Standard activity type, e.g. IC50 or Ki"),
				"min_value":     numberProp("Lower bound on the standard value (inclusive)", nil, nil),
				"max_value":     numberProp("Upper bound on the standard value (inclusive)", nil, nil),
				"limit":         limitProp(),
			}, "activity_type"),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseActivityRangeArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := url.Values{}
				q.Set("standard_type", args.ActivityType)
				if args.MinValue != nil {
					q.Set("standard_value__gte", formatNumber(*args.MinValue))
				}
				if args.MaxValue != nil {
					q.Set("standard_value__lte", formatNumber(*args.MaxValue))
				}
				q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
				return r.client.Get(ctx, chembl.Request{Path: "/activity.json", Query: q})
			}, nil
		},
	})

	r.register(Operation{
		Tool: domain.Tool{
			Name:        "get_dose_response",
			Description: "Retrieve dose-response measurements (IC50, EC50, Ki, Kd, GI50, LC50, LD50) for a target and/or compound",
			InputSchema: activityFilterSchema(),
		},
		Bind: func(raw map[string]any) (Invocation, error) {
			args, err := domain.ParseActivityFilterArgs(raw)
			if err != nil {
				return nil, err
			}
			return func(ctx context.Context) (any, error) {
				q := activityFilterQuery(args)
				q.Del("standard_type")
				q.Set("standard_type__in", strings.Join(doseResponseTypes, ","))
				return r.client.Get(ctx, chembl.Request{Path: "/activity.json", Query: q})
			}, nil
		},
	})
}

func activityFilterSchema() domain.JSONSchemaProps {
	schema := objectSchema(map[string]domain.JSONSchemaProps{
		"target_chembl_id":   stringProp("ChEMBL target identifier"),
		"assay_chembl_id":    stringProp("ChEMBL assay identifier"),
		"molecule_chembl_id": stringProp("ChEMBL compound identifier"),
		"activity_type":      stringProp("Standard activity type filter, e.g. IC50"),
		"limit":              limitProp(),
	})
	schema.Description = "At least one of target_chembl_id, assay_chembl_id or molecule_chembl_id is required"
	return schema
}

// activityFilterQuery passes identifier filters through only when present;
// activity_type is renamed to the upstream standard_type key.
func activityFilterQuery(args domain.ActivityFilterArgs) url.Values {
	q := url.Values{}
	if args.TargetChemblID != "" {
		q.Set("target_chembl_id", args.TargetChemblID)
	}
	if args.AssayChemblID != "" {
		q.Set("assay_chembl_id", args.AssayChemblID)
	}
	if args.MoleculeChemblID != "" {
		q.Set("molecule_chembl_id", args.MoleculeChemblID)
	}
	if args.ActivityType != "" {
		q.Set("standard_type", args.ActivityType)
	}
	q.Set("limit", strconv.Itoa(args.LimitOrDefault()))
	return q
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
