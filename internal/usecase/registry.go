// Package usecase holds the operation registry: the single table that maps
// every tool identifier to its argument parser, upstream-request builder and
// response shaper.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/lighteternal/chembl-mcp-server/internal/adapter/outbound/chembl"
	"github.com/lighteternal/chembl-mcp-server/internal/domain"
)

// Invocation is a fully bound tool call, ready to execute. One is only ever
// constructed from arguments that passed the operation's parser, so nothing
// unvalidated reaches the network layer.
type Invocation func(ctx context.Context) (any, error)

// Operation couples a tool's advertised metadata with its argument binder.
type Operation struct {
	Tool domain.Tool

	// Bind validates raw arguments and returns the bound invocation, or
	// domain.ErrInvalidParams before any I/O happens.
	Bind func(raw map[string]any) (Invocation, error)
}

// Registry is the operation dispatcher. It is populated once at startup and
// read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	client *chembl.Client
	logger *slog.Logger
	tracer trace.Tracer

	ops   map[string]Operation
	names []string // registration order, for stable tool listings
}

// NewRegistry builds the full operation table against the given upstream
// client.
func NewRegistry(client *chembl.Client, logger *slog.Logger) *Registry {
	r := &Registry{
		client: client,
		logger: logger.With("component", "registry"),
		tracer: otel.Tracer("chembl-mcp-server/usecase"),
		ops:    make(map[string]Operation),
	}
	r.registerCompoundOperations()
	r.registerStructureOperations()
	r.registerActivityOperations()
	r.registerTargetOperations()
	r.registerAssayOperations()
	r.registerDrugOperations()
	r.registerAnalysisOperations()
	return r
}

func (r *Registry) register(op Operation) {
	if _, exists := r.ops[op.Tool.Name]; exists {
		panic(fmt.Sprintf("duplicate operation registered: %s", op.Tool.Name))
	}
	r.ops[op.Tool.Name] = op
	r.names = append(r.names, op.Tool.Name)
}

// Operations returns every registered operation in registration order.
func (r *Registry) Operations() []Operation {
	ops := make([]Operation, 0, len(r.names))
	for _, name := range r.names {
		ops = append(ops, r.ops[name])
	}
	return ops
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Execute runs the full pipeline for one tool call: lookup, validate, invoke
// upstream, shape, serialise. Passthrough operations return the upstream
// JSON body verbatim; shaped results are serialised with indentation.
func (r *Registry) Execute(ctx context.Context, name string, raw map[string]any) (string, error) {
	op, ok := r.ops[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownOperation, name)
	}

	ctx, span := r.tracer.Start(ctx, "tool/"+name)
	defer span.End()

	log := r.logger.With(slog.String("operation", name))
	log.Info("Executing operation")

	inv, err := op.Bind(raw)
	if err != nil {
		log.Warn("Argument validation failed", slog.Any("error", err))
		span.RecordError(err)
		return "", err
	}

	result, err := inv(ctx)
	if err != nil {
		log.Error("Operation failed", slog.Any("error", err))
		span.RecordError(err)
		return "", err
	}

	text, err := renderResult(result)
	if err != nil {
		log.Error("Failed to serialise result", slog.Any("error", err))
		span.RecordError(err)
		return "", err
	}
	log.Info("Operation succeeded", slog.Int("payload_bytes", len(text)))
	return text, nil
}

func renderResult(result any) (string, error) {
	if raw, ok := result.(json.RawMessage); ok {
		return string(raw), nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}
