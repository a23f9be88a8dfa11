package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults and caps applied during parameter translation.
const (
	DefaultLimit      = 25
	DefaultOffset     = 0
	DefaultSimilarity = 0.7

	// MaxBatchLookups caps the upstream fan-out of a batch lookup. Extra
	// identifiers beyond the cap are ignored, not rejected.
	MaxBatchLookups = 10

	// MaxComparedCompounds caps the fan-out of a multi-compound comparison.
	MaxComparedCompounds = 5
)

// validate checks struct tags on the parsed argument shapes. The instance is
// safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeArgs narrows an untyped argument map into a typed shape and runs the
// tag-based range checks. Any failure is reported as ErrInvalidParams so the
// caller can reject the request before it reaches the network layer.
func decodeArgs(raw map[string]any, dst any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// QueryArgs is the shape for free-text searches (compounds, targets, assays,
// drugs).
type QueryArgs struct {
	Query  string `json:"query" validate:"required"`
	Limit  *int   `json:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int   `json:"offset" validate:"omitempty,min=0"`
}

func ParseQueryArgs(raw map[string]any) (QueryArgs, error) {
	var a QueryArgs
	err := decodeArgs(raw, &a)
	return a, err
}

// LimitOrDefault returns the requested result limit, or DefaultLimit.
func (a QueryArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// OffsetOrDefault returns the requested result offset, or DefaultOffset.
func (a QueryArgs) OffsetOrDefault() int {
	if a.Offset != nil {
		return *a.Offset
	}
	return DefaultOffset
}

// IdentifierArgs is the shape for single-entity lookups. A limit is tolerated
// for the list-valued lookups (e.g. a target's compounds) and ignored
// elsewhere.
type IdentifierArgs struct {
	ChemblID string `json:"chembl_id" validate:"required"`
	Limit    *int   `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseIdentifierArgs(raw map[string]any) (IdentifierArgs, error) {
	var a IdentifierArgs
	err := decodeArgs(raw, &a)
	return a, err
}

func (a IdentifierArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// SimilarityArgs is the shape for Tanimoto similarity searches.
type SimilarityArgs struct {
	SMILES     string   `json:"smiles" validate:"required"`
	Similarity *float64 `json:"similarity" validate:"omitempty,gte=0,lte=1"`
	Limit      *int     `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseSimilarityArgs(raw map[string]any) (SimilarityArgs, error) {
	var a SimilarityArgs
	err := decodeArgs(raw, &a)
	return a, err
}

// Percent converts the 0-1 similarity fraction into the integer percentage
// the upstream API embeds as a path segment. Rounding is half away from zero
// (0.755 -> 76). The default fraction is DefaultSimilarity.
func (a SimilarityArgs) Percent() int {
	f := DefaultSimilarity
	if a.Similarity != nil {
		f = *a.Similarity
	}
	return int(math.Round(f * 100))
}

func (a SimilarityArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// SubstructureArgs is the shape for substructure searches.
type SubstructureArgs struct {
	SMILES string `json:"smiles" validate:"required"`
	Limit  *int   `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseSubstructureArgs(raw map[string]any) (SubstructureArgs, error) {
	var a SubstructureArgs
	err := decodeArgs(raw, &a)
	return a, err
}

func (a SubstructureArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// SMILESArgs is the shape for the structure-keyed property calculators.
type SMILESArgs struct {
	SMILES string `json:"smiles" validate:"required"`
}

func ParseSMILESArgs(raw map[string]any) (SMILESArgs, error) {
	var a SMILESArgs
	err := decodeArgs(raw, &a)
	return a, err
}

// ActivityFilterArgs is the shape for bioactivity searches. Every identifier
// field is individually optional, but at least one of the three must be
// present.
type ActivityFilterArgs struct {
	TargetChemblID   string `json:"target_chembl_id"`
	AssayChemblID    string `json:"assay_chembl_id"`
	MoleculeChemblID string `json:"molecule_chembl_id"`
	ActivityType     string `json:"activity_type"`
	Limit            *int   `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseActivityFilterArgs(raw map[string]any) (ActivityFilterArgs, error) {
	var a ActivityFilterArgs
	if err := decodeArgs(raw, &a); err != nil {
		return a, err
	}
	if a.TargetChemblID == "" && a.AssayChemblID == "" && a.MoleculeChemblID == "" {
		return a, fmt.Errorf("%w: at least one of target_chembl_id, assay_chembl_id or molecule_chembl_id is required", ErrInvalidParams)
	}
	return a, nil
}

func (a ActivityFilterArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// ActivityRangeArgs is the shape for value-range searches over a single
// activity type.
type ActivityRangeArgs struct {
	ActivityType string   `json:"activity_type" validate:"required"`
	MinValue     *float64 `json:"min_value"`
	MaxValue     *float64 `json:"max_value"`
	Limit        *int     `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseActivityRangeArgs(raw map[string]any) (ActivityRangeArgs, error) {
	var a ActivityRangeArgs
	err := decodeArgs(raw, &a)
	return a, err
}

func (a ActivityRangeArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// PropertyFilterArgs is the shape for the property-bounded advanced search.
// Every field is optional; an empty object means "unfiltered".
type PropertyFilterArgs struct {
	MinMW   *float64 `json:"min_mw" validate:"omitempty,gte=0"`
	MaxMW   *float64 `json:"max_mw" validate:"omitempty,gte=0"`
	MinLogP *float64 `json:"min_logp"`
	MaxLogP *float64 `json:"max_logp"`
	MaxHBD  *float64 `json:"max_hbd" validate:"omitempty,gte=0"`
	MaxHBA  *float64 `json:"max_hba" validate:"omitempty,gte=0"`
	Limit   *int     `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParsePropertyFilterArgs(raw map[string]any) (PropertyFilterArgs, error) {
	var a PropertyFilterArgs
	err := decodeArgs(raw, &a)
	return a, err
}

func (a PropertyFilterArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}

// BatchArgs is the shape for multi-identifier operations.
type BatchArgs struct {
	ChemblIDs []string `json:"chembl_ids" validate:"required,min=1,max=50,dive,required"`
}

func ParseBatchArgs(raw map[string]any) (BatchArgs, error) {
	var a BatchArgs
	err := decodeArgs(raw, &a)
	return a, err
}

// Capped returns at most n identifiers, preserving input order.
func (a BatchArgs) Capped(n int) []string {
	if len(a.ChemblIDs) <= n {
		return a.ChemblIDs
	}
	return a.ChemblIDs[:n]
}

// InChIArgs is the shape for InChI / InChI key searches.
type InChIArgs struct {
	InChI string `json:"inchi" validate:"required"`
	Limit *int   `json:"limit" validate:"omitempty,min=1,max=1000"`
}

func ParseInChIArgs(raw map[string]any) (InChIArgs, error) {
	var a InChIArgs
	err := decodeArgs(raw, &a)
	return a, err
}

// IsFullInChI reports whether the input is a complete InChI string rather
// than an InChI key. The upstream filter key depends on this.
func (a InChIArgs) IsFullInChI() bool {
	return strings.HasPrefix(a.InChI, "InChI=")
}

func (a InChIArgs) LimitOrDefault() int {
	if a.Limit != nil {
		return *a.Limit
	}
	return DefaultLimit
}
