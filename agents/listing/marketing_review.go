package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/JaimeStill/listing-lab/internal/agents"
)

const marketingReviewInstructions = `You are a marketplace listing reviewer. The agent results below describe a fully assembled e-commerce listing. Assess whether it is ready to publish and recommend concrete improvements.

OUTPUT FORMAT: Respond with ONLY a JSON object matching this exact schema:
{
	"recommendations": ["<specific, actionable improvement>"],
	"overall_assessment": "<one-paragraph verdict on the listing>",
	"readiness_score": <0.0-1.0>,
	"confidence_score": <0.0-1.0>
}

INSTRUCTIONS:
- Judge title keyword coverage, bullet persuasiveness, description completeness, and keyword breadth
- Weigh results marked partial lower; they carry templated fallback content
- Produce 3-6 recommendations ordered by expected impact
- readiness_score is your publish-readiness verdict; confidence_score is how sure you are of it
- JSON response only; no preamble or dialog`

// MarketingReviewPayload is the final review: recommendations, a verdict,
// and a publish-readiness score.
type MarketingReviewPayload struct {
	Recommendations   []string `json:"recommendations"`
	OverallAssessment string   `json:"overall_assessment"`
	ReadinessScore    float64  `json:"readiness_score"`
}

func (MarketingReviewPayload) Kind() agents.Name { return MarketingReview }

type marketingReviewAgent struct {
	base
}

// NewMarketingReview builds the review agent. It implements
// agents.EvidenceAgent: the orchestrator runs it after the concurrent wave
// and feeds it the other agents' results.
func NewMarketingReview(gen agents.Generator, tables Tables) agents.Agent {
	return &marketingReviewAgent{base{
		name:               MarketingReview,
		description:        "Reviews the assembled listing and recommends improvements",
		temperature:        0.4,
		fallbackConfidence: 0.4,
		gen:                gen,
		tables:             tables,
	}}
}

// Process without evidence cannot judge a listing, so it reports the
// deterministic fallback review.
func (a *marketingReviewAgent) Process(ctx context.Context, input agents.ProductInput) agents.Result {
	return a.ProcessWithEvidence(ctx, input, nil)
}

func (a *marketingReviewAgent) ProcessWithEvidence(ctx context.Context, input agents.ProductInput, evidence []agents.Result) agents.Result {
	if len(evidence) == 0 {
		return a.partial(marketingReviewFallback(evidence), time.Now(), "no agent evidence available")
	}

	return a.run(ctx, marketingReviewInstructions, buildReviewContext(input, evidence), parseMarketingReview, func() agents.Payload {
		return marketingReviewFallback(evidence)
	})
}

func parseMarketingReview(content string) (agents.Payload, *float64, error) {
	block, err := agents.ExtractJSON(content)
	if err != nil {
		return nil, nil, err
	}

	var decoded struct {
		MarketingReviewPayload
		Confidence *float64 `json:"confidence_score"`
	}
	if err := json.Unmarshal(block, &decoded); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", agents.ErrParse, err)
	}

	if len(decoded.Recommendations) == 0 {
		return nil, nil, fmt.Errorf("%w: missing recommendations", agents.ErrParse)
	}
	if strings.TrimSpace(decoded.OverallAssessment) == "" {
		return nil, nil, fmt.Errorf("%w: missing overall_assessment", agents.ErrParse)
	}
	decoded.ReadinessScore = agents.Clamp(decoded.ReadinessScore)

	return decoded.MarketingReviewPayload, decoded.Confidence, nil
}

// buildReviewContext renders the product followed by a digest of every
// agent result for the review prompt.
func buildReviewContext(input agents.ProductInput, evidence []agents.Result) string {
	var sb strings.Builder

	sb.WriteString(input.Describe())
	sb.WriteString("\n\nAgent results:\n")

	for _, result := range evidence {
		fmt.Fprintf(&sb, "\n%s (status: %s, confidence: %.2f)\n", result.Agent, result.Status, result.Confidence)
		sb.WriteString(summarizePayload(result.Payload))
	}

	sb.WriteString("\nAssess publish readiness and recommend improvements.")
	return sb.String()
}

func summarizePayload(payload agents.Payload) string {
	switch p := payload.(type) {
	case ProductAnalysisPayload:
		return fmt.Sprintf("  target market: %s\n  key features: %s\n", p.TargetMarket, strings.Join(p.KeyFeatures, "; "))
	case CustomerResearchPayload:
		return fmt.Sprintf("  customer profile: %s\n  pain points: %s\n", p.CustomerProfile, strings.Join(p.PainPoints, "; "))
	case ValuePropositionPayload:
		return fmt.Sprintf("  headline: %s\n  differentiators: %s\n", p.Headline, strings.Join(p.Differentiators, "; "))
	case TechnicalSpecsPayload:
		return fmt.Sprintf("  spec entries: %d\n  compatibility notes: %d\n", len(p.Specs), len(p.CompatibilityNotes))
	case ListingContentPayload:
		return fmt.Sprintf("  title: %s\n  bullets: %d\n  description length: %d\n", p.Title, len(p.BulletPoints), len(p.Description))
	case PricingStrategyPayload:
		return fmt.Sprintf("  pricing notes: %s\n  position: %s\n", p.PricingNotes, p.PricePosition)
	case SEOKeywordsPayload:
		return fmt.Sprintf("  search terms: %s\n  backend keywords: %d\n", strings.Join(p.SearchTerms, ", "), len(p.BackendKeywords))
	case SocialContentPayload:
		return fmt.Sprintf("  hashtags: %s\n", strings.Join(p.Hashtags, " "))
	case ImageSearchPayload:
		return fmt.Sprintf("  image prompts: %d\n  image urls: %d\n", len(p.ImagePrompts), len(p.ImageURLs))
	default:
		return "  (no summary available)\n"
	}
}

// marketingReviewFallback derives a deterministic review from the evidence:
// readiness is the mean result confidence, and the first recommendation
// flags any fallback content that should be regenerated.
func marketingReviewFallback(evidence []agents.Result) MarketingReviewPayload {
	readiness := 0.5
	fallbacks := 0

	if len(evidence) > 0 {
		var sum float64
		for _, result := range evidence {
			sum += result.Confidence
			if result.Fallback() {
				fallbacks++
			}
		}
		readiness = math.Round(sum/float64(len(evidence))*100) / 100
	}

	recommendations := []string{
		"Review competitor listings in the category before publishing",
		"Tighten keyword coverage across the title and backend terms",
		"Verify bullet points address the top customer pain points",
	}
	if fallbacks > 0 {
		recommendations = append([]string{
			fmt.Sprintf("Re-run agents that fell back to templated content (%d of %d)", fallbacks, len(evidence)),
		}, recommendations...)
	}

	assessment := fmt.Sprintf("Automated review unavailable; verdict derived from %d agent results, %d of which used fallback content.",
		len(evidence), fallbacks)

	return MarketingReviewPayload{
		Recommendations:   recommendations,
		OverallAssessment: assessment,
		ReadinessScore:    readiness,
	}
}
