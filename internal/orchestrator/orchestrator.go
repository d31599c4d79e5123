package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
	"github.com/JaimeStill/listing-lab/internal/listings"
)

// BuildListing runs the resolved agent set against input, merges the results,
// and persists the draft in one atomic create. Agent failures surface as
// fallback content inside the record; the only error paths are invalid input,
// an unknown subset member, and the store itself.
func (o *orchestrator) BuildListing(ctx context.Context, input agents.ProductInput, subset []agents.Name) (*listings.Listing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	wave, err := o.resolve(subset)
	if err != nil {
		return nil, err
	}

	results := o.run(ctx, wave, input)

	m := mergeResults(results)
	o.adviseFallbacks(&m, len(results))

	created, err := o.store.Create(ctx, listings.CreateCommand{
		ProductInput: input,
		Fields:       m.Fields,
		Confidence:   m.Confidence,
		Notes:        m.Notes,
		Results:      storedResults(results),
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("listing built",
		"id", created.ID,
		"agents", len(results),
		"fallbacks", m.Fallbacks,
		"confidence", created.Confidence)

	return created, nil
}

// RerunAgent re-executes one agent against the listing's stored product
// input, swaps its persisted result, and re-merges the full result set so
// owned fields, notes, and aggregate confidence stay consistent.
func (o *orchestrator) RerunAgent(ctx context.Context, id uuid.UUID, name agents.Name) (*listings.Listing, error) {
	agent, err := o.registry.Get(name)
	if err != nil {
		return nil, err
	}

	current, err := o.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	stored, err := o.store.Results(ctx, id)
	if err != nil {
		return nil, err
	}

	results := restoreResults(stored)

	var evidence []agents.Result
	if _, ok := agent.(agents.EvidenceAgent); ok {
		evidence = make([]agents.Result, 0, len(results))
		for _, result := range results {
			if result.Agent != name {
				evidence = append(evidence, result)
			}
		}
	}

	fresh := o.invoke(ctx, agent, current.ProductInput, evidence)

	replaced := false
	for i, result := range results {
		if result.Agent == name {
			results[i] = fresh
			replaced = true
			break
		}
	}
	if !replaced {
		results = append(results, fresh)
	}

	m := mergeResults(results)
	o.adviseFallbacks(&m, len(results))

	updated, err := o.store.ReplaceResult(ctx, id, storedResult(fresh, len(results)-1), m.command())
	if err != nil {
		return nil, err
	}

	o.logger.Info("agent rerun",
		"id", id,
		"agent", name,
		"status", fresh.Status,
		"version", updated.Version)

	return updated, nil
}

// Agents describes the registered agent set in invocation order.
func (o *orchestrator) Agents() []agents.Info {
	return o.registry.List()
}

// resolve selects the agents to run. An empty subset means all registered
// agents; a non-empty subset is validated and reordered to canonical
// invocation order so note ordering stays stable.
func (o *orchestrator) resolve(subset []agents.Name) ([]agents.Agent, error) {
	names := o.registry.Names()

	if len(subset) > 0 {
		requested := make(map[agents.Name]bool, len(subset))
		for _, name := range subset {
			if _, err := o.registry.Get(name); err != nil {
				return nil, err
			}
			requested[name] = true
		}

		ordered := make([]agents.Name, 0, len(requested))
		for _, name := range names {
			if requested[name] {
				ordered = append(ordered, name)
			}
		}
		names = ordered
	}

	wave := make([]agents.Agent, 0, len(names))
	for _, name := range names {
		agent, err := o.registry.Get(name)
		if err != nil {
			return nil, err
		}
		wave = append(wave, agent)
	}
	return wave, nil
}

// run dispatches independent agents concurrently and evidence agents after
// the wave completes. Results land in a slice indexed by invocation position,
// so note ordering never depends on completion order. A canceled or expired
// ctx surfaces inside each agent as a timeout fallback rather than aborting
// the build.
func (o *orchestrator) run(ctx context.Context, wave []agents.Agent, input agents.ProductInput) []agents.Result {
	results := make([]agents.Result, len(wave))

	var reviewers []int

	g, gctx := errgroup.WithContext(ctx)
	for i, agent := range wave {
		if _, ok := agent.(agents.EvidenceAgent); ok {
			reviewers = append(reviewers, i)
			continue
		}
		g.Go(func() error {
			results[i] = o.invoke(gctx, agent, input, nil)
			return nil
		})
	}
	_ = g.Wait()

	for _, i := range reviewers {
		evidence := make([]agents.Result, 0, len(results))
		for j, result := range results {
			if j == i || result.Agent == "" {
				continue
			}
			evidence = append(evidence, result)
		}
		results[i] = o.invoke(ctx, wave[i], input, evidence)
	}

	return results
}

// invoke runs a single agent under the configured per-agent deadline.
func (o *orchestrator) invoke(ctx context.Context, agent agents.Agent, input agents.ProductInput, evidence []agents.Result) agents.Result {
	if timeout := o.cfg.AgentTimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var result agents.Result
	if reviewer, ok := agent.(agents.EvidenceAgent); ok && evidence != nil {
		result = reviewer.ProcessWithEvidence(ctx, input, evidence)
	} else {
		result = agent.Process(ctx, input)
	}

	if result.Fallback() {
		o.logger.Warn("agent fell back",
			"agent", result.Agent,
			"confidence", result.Confidence,
			"notes", result.Notes)
	}
	return result
}

// adviseFallbacks appends the advisory note when fallback results exceed the
// configured tolerance. The build still succeeds; the record simply carries
// lower confidence.
func (o *orchestrator) adviseFallbacks(m *merged, total int) {
	tolerance := o.cfg.FallbackTolerance
	if m.Fallbacks <= tolerance {
		return
	}

	m.Notes = append(m.Notes, fmt.Sprintf(
		"orchestrator: %d of %d agents used fallback content (tolerance %d)",
		m.Fallbacks, total, tolerance))

	o.logger.Warn("fallback tolerance exceeded",
		"fallbacks", m.Fallbacks,
		"agents", total,
		"tolerance", tolerance)
}

func storedResults(results []agents.Result) []listings.AgentResult {
	stored := make([]listings.AgentResult, len(results))
	for i, result := range results {
		stored[i] = storedResult(result, i)
	}
	return stored
}

func storedResult(result agents.Result, position int) listings.AgentResult {
	return listings.AgentResult{
		Agent:      result.Agent,
		Status:     result.Status,
		Payload:    encodePayload(result.Payload),
		Confidence: result.Confidence,
		Duration:   result.Duration,
		Notes:      result.Notes,
		Position:   position,
	}
}

// restoreResults decodes persisted rows back into typed results. A row whose
// payload no longer decodes keeps its confidence and notes so the aggregate
// stays honest, but contributes no fields.
func restoreResults(stored []listings.AgentResult) []agents.Result {
	results := make([]agents.Result, 0, len(stored))
	for _, row := range stored {
		payload, err := listing.DecodePayload(row.Agent, row.Payload)
		if err != nil {
			payload = nil
		}
		results = append(results, agents.Result{
			Agent:      row.Agent,
			Status:     row.Status,
			Payload:    payload,
			Confidence: row.Confidence,
			Duration:   row.Duration,
			Notes:      row.Notes,
		})
	}
	return results
}

func encodePayload(payload agents.Payload) json.RawMessage {
	if payload == nil {
		return json.RawMessage("{}")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
