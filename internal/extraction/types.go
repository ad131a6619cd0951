package extraction

import "encoding/json"

// Priority is the urgency of a task. P0 is the most urgent.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

var priorities = []Priority{PriorityP0, PriorityP1, PriorityP2, PriorityP3}

// Priorities returns every accepted priority in canonical order.
func Priorities() []Priority {
	return append([]Priority(nil), priorities...)
}

// Valid reports whether p is one of the exact priority literals.
func (p Priority) Valid() bool {
	for _, v := range priorities {
		if p == v {
			return true
		}
	}
	return false
}

// Domain is the engineering area a task belongs to.
type Domain string

const (
	DomainFrontend Domain = "frontend"
	DomainBackend  Domain = "backend"
	DomainInfra    Domain = "infra"
	DomainData     Domain = "data"
	DomainProduct  Domain = "product"
	DomainDesign   Domain = "design"
	DomainQA       Domain = "qa"
	DomainUnknown  Domain = "unknown"
)

var domains = []Domain{
	DomainFrontend, DomainBackend, DomainInfra, DomainData,
	DomainProduct, DomainDesign, DomainQA, DomainUnknown,
}

// Domains returns every accepted domain in canonical order.
func Domains() []Domain {
	return append([]Domain(nil), domains...)
}

// Valid reports whether d is one of the exact domain literals.
func (d Domain) Valid() bool {
	for _, v := range domains {
		if d == v {
			return true
		}
	}
	return false
}

// Complexity is an effort estimate in Fibonacci story points.
type Complexity int

var complexities = []Complexity{1, 2, 3, 5, 8, 13}

// Complexities returns every accepted complexity in ascending order.
func Complexities() []Complexity {
	return append([]Complexity(nil), complexities...)
}

// Valid reports whether c is one of the Fibonacci points.
func (c Complexity) Valid() bool {
	for _, v := range complexities {
		if c == v {
			return true
		}
	}
	return false
}

// Decision is an agreement or conclusion reached in the meeting.
type Decision struct {
	Statement  string  `json:"statement"`
	Confidence float64 `json:"confidence"`
}

// Task is an actionable item. OwnerHint names a role or team, never a person.
type Task struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Complexity  Complexity `json:"complexity"`
	Domain      Domain     `json:"domain"`
	OwnerHint   *string    `json:"owner_hint"`
	Confidence  float64    `json:"confidence"`
	Reasoning   *string    `json:"reasoning"`
}

// NoiseItem is text judged irrelevant, with the reason it was discarded.
type NoiseItem struct {
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Meta keys written by the extraction loop.
const (
	MetaInputLength      = "input_length"
	MetaRetryCount       = "retry_count"
	MetaModel            = "model"
	MetaProcessingTimeMs = "processing_time_ms"
)

// Result is the structured interpretation of one input text.
type Result struct {
	Decisions []Decision     `json:"decisions"`
	Tasks     []Task         `json:"tasks"`
	Noise     []NoiseItem    `json:"noise"`
	Meta      map[string]any `json:"meta"`
}

// NewResult returns a Result with empty, non-nil collections.
func NewResult() Result {
	return Result{
		Decisions: []Decision{},
		Tasks:     []Task{},
		Noise:     []NoiseItem{},
		Meta:      map[string]any{},
	}
}

// MarshalJSON encodes nil collections as [] and {}.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := plain(r)
	if out.Decisions == nil {
		out.Decisions = []Decision{}
	}
	if out.Tasks == nil {
		out.Tasks = []Task{}
	}
	if out.Noise == nil {
		out.Noise = []NoiseItem{}
	}
	if out.Meta == nil {
		out.Meta = map[string]any{}
	}
	return json.Marshal(out)
}

// Violation is one way a candidate fails the contract.
// Path is dotted and indexed, e.g. tasks[2].priority.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Violations is an ordered list of contract violations.
type Violations []Violation

// ExtractInput is the input of one extraction request.
type ExtractInput struct {
	RawText string
}

// Outcome is the terminal state of an extraction loop.
type Outcome string

const (
	OutcomeSucceeded           Outcome = "succeeded"
	OutcomeExhaustedValidation Outcome = "exhausted_validation"
	OutcomeExhaustedError      Outcome = "exhausted_error"
)
