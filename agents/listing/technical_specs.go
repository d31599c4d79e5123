package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const technicalSpecsInstructions = `You are a technical documentation specialist. Turn the raw specifications of the product described below into a structured spec table.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"specs": [
		{
			"name": "<specification name>",
			"value": "<specification value with units>"
		}
	],
	"compatibility_notes": ["<requirement or compatibility constraint>"],
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Produce one entry per distinct specification; keep values verbatim where possible
- Include certifications as spec entries
- compatibility_notes capture requirements the buyer must check before purchase
- confidence_score reflects how complete the raw specifications are
- JSON response only; no preamble or dialog`

// SpecEntry is one row of the structured spec table.
type SpecEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TechnicalSpecsPayload is the structured spec table with compatibility notes.
type TechnicalSpecsPayload struct {
	Specs              []SpecEntry `json:"specs"`
	CompatibilityNotes []string    `json:"compatibility_notes"`
}

func (TechnicalSpecsPayload) Kind() agents.Name { return TechnicalSpecs }

type technicalSpecsAgent struct {
	base
}

// NewTechnicalSpecs builds the agent that structures raw specifications into
// a name/value spec table.
func NewTechnicalSpecs(gen agents.Generator, tables Tables) agents.Agent {
	return &technicalSpecsAgent{base{
		name:               TechnicalSpecs,
		description:        "Structures raw specifications into a spec table with compatibility notes",
		temperature:        0.3,
		fallbackConfidence: 0.5,
		gen:                gen,
		tables:             tables,
	}}
}

func (a *technicalSpecsAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.run(ctx, technicalSpecsInstructions, input.Describe(), parseTechnicalSpecs, func() agents.Payload {
		return technicalSpecsFallback(input)
	})
}

func parseTechnicalSpecs(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		TechnicalSpecsPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.Specs) == 0 {
		return nil, nil, fmt.Errorf("%w: missing specs", agents.ErrParse)
	}
	for i, spec := range decoded.Specs {
		if strings.TrimSpace(spec.Name) == "" || strings.TrimSpace(spec.Value) == "" {
			return nil, nil, fmt.Errorf("%w: spec entry %d incomplete", agents.ErrParse, i)
		}
	}

	return decoded.TechnicalSpecsPayload, decoded.Confidence, nil
}

// technicalSpecsFallback splits each raw specification on the first colon;
// lines without one land under a generic name.
func technicalSpecsFallback(input agents.ProductInput) TechnicalSpecsPayload {
	specs := make([]SpecEntry, 0, len(input.Specifications)+len(input.Certifications))
	for _, raw := range input.Specifications {
		name, value, found := strings.Cut(raw, ":")
		if !found || strings.TrimSpace(value) == "" {
			specs = append(specs, SpecEntry{Name: "Specification", Value: strings.TrimSpace(raw)})
			continue
		}
		specs = append(specs, SpecEntry{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	for _, cert := range input.Certifications {
		specs = append(specs, SpecEntry{Name: "Certification", Value: cert})
	}
	if len(specs) == 0 {
		specs = append(specs, SpecEntry{Name: "Category", Value: input.Category})
	}

	notes := []string{}
	if input.Warranty != "" {
		notes = append(notes, "Warranty: "+input.Warranty)
	}

	return TechnicalSpecsPayload{
		Specs:              specs,
		CompatibilityNotes: notes,
	}
}
