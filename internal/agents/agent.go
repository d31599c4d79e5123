// Package agents defines the contracts shared by every listing agent: typed
// results, tagged payloads, the generation boundary, and the registry the
// orchestrator dispatches through.
package agents

import (
	"context"
	"time"
)

// Name identifies an agent variant.
type Name string

// Status reports how an agent arrived at its payload.
type Status string

const (
	// StatusSuccess means the payload came from a parsed model response.
	StatusSuccess Status = "success"

	// StatusPartial means the payload came from the deterministic fallback.
	StatusPartial Status = "partial"

	// StatusError is reserved for results that carry no usable payload.
	StatusError Status = "error"
)

// Result is the outcome of one agent invocation. A result is immutable once
// returned; confidence is always within [0, 1].
type Result struct {
	Agent      Name          `json:"agent"`
	Status     Status        `json:"status"`
	Payload    Payload       `json:"payload"`
	Confidence float64       `json:"confidence"`
	Duration   time.Duration `json:"duration"`
	Notes      []string      `json:"notes,omitempty"`
}

// Fallback reports whether the result was produced by a fallback path.
func (r Result) Fallback() bool {
	return r.Status != StatusSuccess
}

// Payload is the tagged union over the concrete agent payload structs. Kind
// returns the owning agent's name.
type Payload interface {
	Kind() Name
}

// Agent produces one facet of a listing. Process never returns an error: a
// failed generation or parse yields a fallback payload with StatusPartial.
type Agent interface {
	Name() Name
	Description() string
	Process(ctx context.Context, input ProductInput) Result
}

// EvidenceAgent is an Agent whose prompt incorporates the results of agents
// that ran before it. The orchestrator invokes ProcessWithEvidence after the
// concurrent wave completes.
type EvidenceAgent interface {
	Agent
	ProcessWithEvidence(ctx context.Context, input ProductInput, evidence []Result) Result
}

// Info describes a registered agent for discovery endpoints.
type Info struct {
	Name        Name   `json:"name"`
	Description string `json:"description"`
}
