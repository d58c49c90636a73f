package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Orchestrator sequences agents over a workflow context. Agent-level
// errors are diagnostic and never halt the run; only caller contract
// violations abort before the pipeline starts.
type Orchestrator struct {
	agents []Agent
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator running the given agents in order.
func NewOrchestrator(logger *zap.Logger, agents ...Agent) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{agents: agents, logger: logger}
}

// Run executes the agent chain over the context and returns it.
// The returned error is non-nil only for precondition violations; once the
// pipeline starts, every agent runs regardless of accumulated errors.
func (o *Orchestrator) Run(ctx context.Context, wc *Context) (*Context, error) {
	if err := checkParams(wc); err != nil {
		return nil, err
	}

	for _, agent := range o.agents {
		wc.Workflow.CurrentStep = agent.Name()
		o.logger.Info("pipeline step",
			zap.String("agent", agent.Name()),
			zap.Int("questions", len(wc.Questions)),
		)

		wc = runAgent(ctx, agent, wc)

		if n := len(wc.Workflow.Errors); n > 0 {
			o.logger.Warn("pipeline step reported errors",
				zap.String("agent", agent.Name()),
				zap.Strings("errors", wc.Workflow.Errors),
			)
		}
	}

	return wc, nil
}

// RunStructured routes a structured-prompt carrier to the first agent that
// understands it and returns the fixed-shape summary.
func (o *Orchestrator) RunStructured(ctx context.Context, sc *StructuredContext) (*QualitySummary, error) {
	for _, agent := range o.agents {
		sa, ok := agent.(StructuredAgent)
		if !ok {
			continue
		}
		o.logger.Info("structured pipeline step", zap.String("agent", agent.Name()))
		return sa.ProcessStructured(ctx, sc), nil
	}
	return nil, fmt.Errorf("no agent handles structured contexts")
}

// Dispatch pattern-matches on the carrier variant. Legacy contexts run the
// full agent chain; structured contexts short-circuit to a summary.
func (o *Orchestrator) Dispatch(ctx context.Context, c Carrier) (*Context, *QualitySummary, error) {
	switch v := c.(type) {
	case *Context:
		out, err := o.Run(ctx, v)
		return out, nil, err
	case *StructuredContext:
		sum, err := o.RunStructured(ctx, v)
		return nil, sum, err
	default:
		return nil, nil, fmt.Errorf("unsupported context carrier %T", c)
	}
}

// runAgent invokes one agent and converts a panic into a workflow error
// entry so a misbehaving stage cannot take down the request.
func runAgent(ctx context.Context, agent Agent, wc *Context) (out *Context) {
	defer func() {
		if r := recover(); r != nil {
			wc.AddError(agent.Name(), fmt.Sprintf("internal failure: %v", r))
			out = wc
		}
	}()
	return agent.Process(ctx, wc)
}

// checkParams enforces the caller-level contract: generation parameters
// must be present before the pipeline starts.
func checkParams(wc *Context) error {
	if wc == nil {
		return fmt.Errorf("nil workflow context")
	}
	if wc.QuestionType == "" {
		return fmt.Errorf("missing required generation parameter: questionType")
	}
	if wc.Grade < 1 {
		return fmt.Errorf("invalid grade %d: must be 1 or higher", wc.Grade)
	}
	return nil
}
