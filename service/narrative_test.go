package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nychousing-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubGenerator struct {
	response string
	err      error
	delay    time.Duration

	calls  int
	prompt string
	config GenerationConfig
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	s.calls++
	s.prompt = prompt
	s.config = cfg
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.response, s.err
}

// blockingGenerator answers only once release is closed, whatever ctx says
type blockingGenerator struct {
	release chan struct{}
}

func (b blockingGenerator) GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	<-b.release
	return `{"headline":"late","insights":[],"call_to_action":"x"}`, nil
}

func narrativeFixture() (models.Persona, []models.NeighborhoodMatch, []models.PreferenceWeight, []models.SourceSnippet) {
	persona := models.Persona{
		Title:      "Culinary Explorer",
		Tagline:    "Hunts for diverse bites and market culture",
		Priorities: []string{"Food Scene", "Diversity"},
		NYCFocus:   "Queens",
	}
	top := []models.NeighborhoodMatch{
		{Name: "Astoria", Borough: "Queens", Score: 91.25, Summary: "diverse and welcoming"},
		{Name: "Flushing", Borough: "Queens", Score: 88},
	}
	weights := []models.PreferenceWeight{
		{Key: models.PrefFoodImportance, Label: "Food Scene", Weight: 90},
		{Key: models.PrefDiversity, Label: "Diversity", Weight: 72.5},
	}
	sources := AggregateSourceDigest(top)
	return persona, top, weights, sources
}

func TestFallbackSummary(t *testing.T) {
	persona, top, weights, sources := narrativeFixture()

	summary := FallbackSummary(persona, top, weights, sources)

	assert.Equal(t, "Culinary Explorer game plan", summary.Headline)
	assert.Equal(t, []string{
		"Your search leans into food scene with diversity close behind.",
		"Your leading NYC matches today: Astoria, Flushing.",
		"Local chatter highlights astoria-ditmars food crawl report in Queens.",
		"Food Scene scored 90/100 in your quiz.",
	}, summary.Insights)
	assert.Equal(t, "Head to the NYC Housing Map to compare affordability and lifestyle scores for these picks.", summary.CallToAction)
	assert.Equal(t, models.GeneratedByFallback, summary.GeneratedBy)
}

func TestFallbackSummary_IsDeterministic(t *testing.T) {
	persona, top, weights, sources := narrativeFixture()

	assert.Equal(t,
		FallbackSummary(persona, top, weights, sources),
		FallbackSummary(persona, top, weights, sources))
}

func TestFallbackSummary_EmptyInputs(t *testing.T) {
	summary := FallbackSummary(models.Persona{}, nil, nil, nil)

	assert.Equal(t, "NYC Explorer game plan", summary.Headline)
	assert.Empty(t, summary.Insights)
	assert.NotNil(t, summary.Insights)
}

func TestBuildPrompt(t *testing.T) {
	persona, top, weights, sources := narrativeFixture()

	prompt := BuildPrompt(persona, top, weights, sources)

	assert.True(t, strings.HasPrefix(prompt, "Create a JSON object with keys headline, insights, and call_to_action."))
	assert.Contains(t, prompt, "Persona: Culinary Explorer - Hunts for diverse bites and market culture | Focus: Queens.\n")
	assert.Contains(t, prompt, "Top priorities: Food Scene, Diversity.\n")
	assert.Contains(t, prompt, "Weighted traits: Food Scene: 90, Diversity: 72.\n")
	assert.Contains(t, prompt, "- Astoria (Queens): diverse and welcoming; compatibility score 91.2\n")
	assert.Contains(t, prompt, "- Flushing (Queens): NYC vibe; compatibility score 88.0\n")
	assert.Contains(t, prompt, "Recent NYC source snippets:\nQueens Eats Newsletter (Queens): ")
}

func TestBuildPrompt_LimitsWeightsAndSources(t *testing.T) {
	persona, top, _, _ := narrativeFixture()

	var weights []models.PreferenceWeight
	for i := 0; i < 8; i++ {
		weights = append(weights, models.PreferenceWeight{Label: "Trait", Weight: 50})
	}
	var sources []models.SourceSnippet
	for i := 0; i < 8; i++ {
		sources = append(sources, models.SourceSnippet{Source: "Feed", Borough: "Bronx", Summary: "news"})
	}

	prompt := BuildPrompt(persona, top, weights, sources)

	assert.Equal(t, 5, strings.Count(prompt, "Trait: 50"))
	assert.Equal(t, 5, strings.Count(prompt, "Feed (Bronx): news"))
}

func TestNarrativeGenerator_Generate(t *testing.T) {
	persona, top, weights, sources := narrativeFixture()
	ctx := context.Background()

	t.Run("uses external response", func(t *testing.T) {
		stub := &stubGenerator{response: "```json\n{\"headline\":\"Queens eats\",\"insights\":[\"Go to Astoria.\"],\"call_to_action\":\"Tour this weekend.\"}\n```"}
		g := NewNarrativeGenerator(WithTextGenerator(stub), WithGenerationModel("test-model"), WithNarrativeLogger(zaptest.NewLogger(t)))

		summary := g.Generate(ctx, persona, top, weights, sources)

		assert.Equal(t, models.AISummary{
			Headline:     "Queens eats",
			Insights:     []string{"Go to Astoria."},
			CallToAction: "Tour this weekend.",
			GeneratedBy:  models.GeneratedByExternal,
		}, summary)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, BuildPrompt(persona, top, weights, sources), stub.prompt)
		assert.Equal(t, GenerationConfig{
			Model:             "test-model",
			MaxOutputTokens:   600,
			Temperature:       0.4,
			SystemInstruction: ConciergeInstruction,
		}, stub.config)
	})

	fallback := FallbackSummary(persona, top, weights, sources)

	tests := []struct {
		name string
		stub *stubGenerator
	}{
		{"generator error", &stubGenerator{err: errors.New("quota exceeded")}},
		{"not json", &stubGenerator{response: "Here are some thoughts about Queens."}},
		{"missing key", &stubGenerator{response: `{"headline":"x","insights":[]}`}},
		{"empty response", &stubGenerator{response: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewNarrativeGenerator(WithTextGenerator(tt.stub), WithNarrativeLogger(zaptest.NewLogger(t)))
			assert.Equal(t, fallback, g.Generate(ctx, persona, top, weights, sources))
		})
	}

	t.Run("timeout", func(t *testing.T) {
		stub := &stubGenerator{response: `{"headline":"late","insights":[],"call_to_action":"x"}`, delay: time.Second}
		g := NewNarrativeGenerator(WithTextGenerator(stub), WithNarrativeTimeout(20*time.Millisecond))

		assert.Equal(t, fallback, g.Generate(ctx, persona, top, weights, sources))
	})

	t.Run("timeout with a generator that ignores ctx", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		g := NewNarrativeGenerator(
			WithTextGenerator(blockingGenerator{release: release}),
			WithNarrativeTimeout(50*time.Millisecond),
		)

		start := time.Now()
		summary := g.Generate(ctx, persona, top, weights, sources)

		assert.Equal(t, fallback, summary)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("no matches skips the generator", func(t *testing.T) {
		stub := &stubGenerator{response: `{"headline":"x","insights":[],"call_to_action":"y"}`}
		g := NewNarrativeGenerator(WithTextGenerator(stub))

		summary := g.Generate(ctx, persona, nil, weights, sources)
		assert.Equal(t, models.GeneratedByFallback, summary.GeneratedBy)
		assert.Zero(t, stub.calls)
	})

	t.Run("no generator", func(t *testing.T) {
		g := NewNarrativeGenerator()
		assert.Equal(t, fallback, g.Generate(ctx, persona, top, weights, sources))
	})
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n{\"a\":1}\n ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanJSONResponse(tt.in))
	}
}

func TestFormatRounded(t *testing.T) {
	require.Equal(t, "72", formatRounded(72.5, 0))
	require.Equal(t, "74", formatRounded(73.5, 0))
	require.Equal(t, "91.2", formatRounded(91.25, 1))
	require.Equal(t, "100", formatRounded(100, 0))
}
