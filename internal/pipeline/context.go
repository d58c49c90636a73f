package pipeline

// Question is a single generated item flowing through the pipeline.
type Question struct {
	// ID uniquely identifies the question within a request.
	ID string `json:"id"`

	// Text is the question prompt shown to the student.
	Text string `json:"text"`

	// Answer is the canonical numeric answer.
	Answer float64 `json:"answer"`

	// Explanation is a brief worked solution. May be empty for
	// questions the generator could not explain.
	Explanation string `json:"explanation,omitempty"`
}

// Range bounds the numbers allowed to appear in generated questions.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DifficultySettings holds optional per-request tuning parameters.
type DifficultySettings struct {
	// NumberRange, when set, constrains every number extracted from a
	// question's text. Nil means no explicit range.
	NumberRange *Range `json:"numberRange,omitempty"`
}

// QualityChecks is the verdict written by the quality validator.
// Boolean flags start true and are flipped by the first violation in
// their category; Issues collects every finding across the batch.
type QualityChecks struct {
	MathematicalAccuracy bool     `json:"mathematicalAccuracy"`
	AgeAppropriateness   bool     `json:"ageAppropriateness"`
	PedagogicalSoundness bool     `json:"pedagogicalSoundness"`
	DiversityScore       float64  `json:"diversityScore"`
	Issues               []string `json:"issues"`
}

// Workflow is the append-only diagnostic log threaded through the pipeline.
// CurrentStep is overwritten by the orchestrator as each agent is entered;
// Errors and Warnings only ever grow.
type Workflow struct {
	CurrentStep string   `json:"currentStep"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
}

// Context is the mutable data carrier for one generation request.
// It is owned exclusively by the request's execution and discarded after
// the response is serialized; nothing here is persisted or shared.
type Context struct {
	QuestionType       string             `json:"questionType"`
	Grade              int                `json:"grade"`
	Difficulty         string             `json:"difficulty"`
	Count              int                `json:"count,omitempty"`
	DifficultySettings DifficultySettings `json:"difficultySettings"`

	Questions []Question `json:"questions"`

	// RelatedTopics is written by the context enhancer.
	RelatedTopics []string `json:"relatedTopics,omitempty"`

	// QualityChecks is written only by the quality validator.
	QualityChecks *QualityChecks `json:"qualityChecks,omitempty"`

	Workflow Workflow `json:"workflow"`
}

// AddError appends an unrecoverable-condition entry prefixed with the
// reporting agent's name. Errors are diagnostic: they never halt the run.
func (c *Context) AddError(agent, msg string) {
	c.Workflow.Errors = append(c.Workflow.Errors, agent+": "+msg)
}

// AddWarning appends a soft-problem entry.
func (c *Context) AddWarning(msg string) {
	c.Workflow.Warnings = append(c.Workflow.Warnings, msg)
}

// StructuredContext is the alternate carrier for structured-prompt flows.
// It short-circuits the legacy agent chain: instead of mutating a Context,
// handlers return a fixed-shape QualitySummary.
type StructuredContext struct {
	StructuredPrompt string     `json:"structuredPrompt"`
	QuestionType     string     `json:"questionType"`
	Grade            int        `json:"grade"`
	Questions        []Question `json:"questions"`
}

// QualitySummary is the fixed-shape verdict returned on the structured path.
type QualitySummary struct {
	Passed bool     `json:"passed"`
	Score  float64  `json:"score"`
	Issues []string `json:"issues"`
}

// Carrier is the discriminated union of context shapes the orchestrator
// can route. Exactly two variants exist: *Context and *StructuredContext.
type Carrier interface {
	carrier()
}

func (*Context) carrier()           {}
func (*StructuredContext) carrier() {}
