package listing_test

import (
	"context"
	"strings"
	"testing"

	"github.com/JaimeStill/listing-lab/agents/listing"
	"github.com/JaimeStill/listing-lab/internal/agents"
)

func TestSocialContent_Success(t *testing.T) {
	gen := &scriptedGenerator{content: `{
		"hashtags": ["#smartwatch", "#fitnesstech"],
		"captions": ["A week of battery. One charge."],
		"confidence_score": 0.75
	}`}

	result := listing.NewSocialContent(gen, listing.DefaultTables()).
		Process(context.Background(), testInput())

	if result.Status != agents.StatusSuccess {
		t.Fatalf("got status %s, want %s (notes: %v)", result.Status, agents.StatusSuccess, result.Notes)
	}
	if result.Confidence != 0.75 {
		t.Errorf("got confidence %v, want 0.75", result.Confidence)
	}
}

func TestSocialContent_Fallback(t *testing.T) {
	result := listing.NewSocialContent(unavailableGenerator(), listing.DefaultTables()).
		Process(context.Background(), testInput())

	if result.Status != agents.StatusPartial {
		t.Fatalf("got status %s, want %s", result.Status, agents.StatusPartial)
	}
	if result.Confidence != 0.4 {
		t.Errorf("got confidence %v, want 0.4", result.Confidence)
	}

	payload, ok := result.Payload.(listing.SocialContentPayload)
	if !ok {
		t.Fatalf("expected SocialContentPayload, got %T", result.Payload)
	}

	if len(payload.Hashtags) == 0 || len(payload.Hashtags) > 10 {
		t.Fatalf("got %d hashtags, want 1-10", len(payload.Hashtags))
	}
	for _, tag := range payload.Hashtags {
		if !strings.HasPrefix(tag, "#") {
			t.Errorf("hashtag %q missing # prefix", tag)
		}
		if strings.ContainsAny(tag[1:], " #") {
			t.Errorf("hashtag %q contains invalid characters", tag)
		}
	}

	if payload.Hashtags[0] != "#smartwatchprox1" {
		t.Errorf("expected the squashed product name first, got %q", payload.Hashtags[0])
	}
	if !containsString(payload.Hashtags, "#electronics") {
		t.Errorf("expected a category hashtag, got %v", payload.Hashtags)
	}
	if len(payload.Captions) != 2 {
		t.Errorf("got %d captions, want 2", len(payload.Captions))
	}
}

func TestSocialContent_FallbackUsesTablePool(t *testing.T) {
	tables := listing.DefaultTables()
	tables.Hashtags = []string{"#customtag"}

	result := listing.NewSocialContent(unavailableGenerator(), tables).
		Process(context.Background(), testInput())

	payload := result.Payload.(listing.SocialContentPayload)
	if !containsString(payload.Hashtags, "#customtag") {
		t.Errorf("expected the injected pool tag, got %v", payload.Hashtags)
	}
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
