// Package telemetry records a provisioning run as an OpenTelemetry span tree.
//
// The root span lists the planned steps. Each executed step gets a child span
// tagged with its position in the plan, and steps that never ran are listed on
// the root span when it ends, so a trace shows where a run stopped.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	PlanEventName = "setnodeid.plan"
	StepsKey      = "setnodeid.plan.steps"
	SkippedKey    = "setnodeid.plan.skipped"
	StepIndexKey  = "setnodeid.step.index"
	StepTitleKey  = "setnodeid.step.title"
)

// Step is one planned unit of work.
type Step struct {
	ID    string
	Title string
}

// Plan is the ordered list of steps an operation expects to run.
type Plan []Step

func (p Plan) validate() error {
	seen := make(map[string]struct{}, len(p))
	for i, s := range p {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("step %d has empty id", i)
		}
		if _, ok := seen[s.ID]; ok {
			return fmt.Errorf("duplicate step id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return nil
}

func (p Plan) index(id string) int {
	for i, s := range p {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (p Plan) ids() []string {
	ids := make([]string, len(p))
	for i, s := range p {
		ids[i] = s.ID
	}
	return ids
}

// Operation is a running traced operation. A nil *Operation is valid and
// runs steps without tracing.
type Operation struct {
	ctx    context.Context
	tracer trace.Tracer
	span   trace.Span
	plan   Plan
	ran    []bool
}

// Start opens the root span name and attaches plan to it.
func Start(ctx context.Context, tracer trace.Tracer, name string, plan Plan, attrs ...attribute.KeyValue) (*Operation, error) {
	if tracer == nil {
		return nil, errors.New("start operation: tracer is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("start operation: name is required")
	}
	if err := plan.validate(); err != nil {
		return nil, fmt.Errorf("start operation %s: %w", name, err)
	}

	steps := attribute.StringSlice(StepsKey, plan.ids())
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(append([]attribute.KeyValue{steps}, attrs...)...))
	span.AddEvent(PlanEventName, trace.WithAttributes(steps))

	return &Operation{
		ctx:    ctx,
		tracer: tracer,
		span:   span,
		plan:   plan,
		ran:    make([]bool, len(plan)),
	}, nil
}

func (o *Operation) Context() context.Context {
	if o == nil {
		return context.Background()
	}
	return o.ctx
}

// RunStep runs fn inside a child span named id. id must be in the plan.
func (o *Operation) RunStep(ctx context.Context, id string, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = o.Context()
	}
	if o == nil {
		return fn(ctx)
	}

	i := o.plan.index(id)
	if i < 0 {
		return fmt.Errorf("run step %q: not in plan", id)
	}
	o.ran[i] = true

	ctx, span := o.tracer.Start(ctx, id, trace.WithAttributes(
		attribute.Int(StepIndexKey, i),
		attribute.String(StepTitleKey, o.plan[i].Title),
	))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// SetAttributes annotates the root span.
func (o *Operation) SetAttributes(attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	o.span.SetAttributes(attrs...)
}

// Skipped returns the planned steps that have not run.
func (o *Operation) Skipped() []string {
	if o == nil {
		return nil
	}
	var skipped []string
	for i, ran := range o.ran {
		if !ran {
			skipped = append(skipped, o.plan[i].ID)
		}
	}
	return skipped
}

// End closes the root span, marking it failed when err is non-nil.
func (o *Operation) End(err error) {
	if o == nil {
		return
	}
	if skipped := o.Skipped(); len(skipped) > 0 {
		o.span.SetAttributes(attribute.StringSlice(SkippedKey, skipped))
	}
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
	}
	o.span.End()
}
