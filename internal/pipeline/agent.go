package pipeline

import "context"

// Agent is a single pipeline stage. Implementations must be stateless and
// safe for concurrent use across requests.
//
// Process always returns a context, never an error: an agent converts its
// own internal failures into workflow.Errors entries prefixed with its
// name, so the orchestrator decides whether to continue based on policy
// rather than on propagated failures. Agents only append to the workflow
// log and write their own designated output field; they never clear
// another agent's prior output.
type Agent interface {
	// Name returns a short identifier used as the workflow step label and
	// as the prefix for diagnostic entries, e.g. "quality-validator".
	Name() string

	// Description returns a human-readable summary for observability.
	Description() string

	// Process runs the stage over the workflow context and returns it.
	Process(ctx context.Context, wc *Context) *Context
}

// StructuredAgent is implemented by agents that can also handle the
// structured-prompt carrier variant. The orchestrator routes a
// *StructuredContext to the first agent implementing this interface.
type StructuredAgent interface {
	Agent

	// ProcessStructured evaluates the structured carrier and returns a
	// fixed-shape summary instead of mutating a legacy context.
	ProcessStructured(ctx context.Context, sc *StructuredContext) *QualitySummary
}
