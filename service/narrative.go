package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"nychousing-backend/metrics"
	"nychousing-backend/models"

	"go.uber.org/zap"
)

const (
	// ConciergeInstruction is the system instruction sent with every narrative request
	ConciergeInstruction = "You are an NYC housing concierge specializing in matching residents with neighborhoods."

	DefaultNarrativeMaxTokens   = 600
	DefaultNarrativeTemperature = 0.4
	DefaultNarrativeTimeout     = 15 * time.Second

	narrativePromptLimit = 5
	fallbackCallToAction = "Head to the NYC Housing Map to compare affordability and lifestyle scores for these picks."
	fallbackPersonaTitle = "NYC Explorer"
)

var ErrMalformedNarrative = errors.New("malformed narrative response")

// GenerationConfig bounds a single text generation request
type GenerationConfig struct {
	Model             string
	MaxOutputTokens   int32
	Temperature       float32
	SystemInstruction string
}

// TextGenerator is an external text generation capability
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}

// NarrativeGenerator writes the portfolio summary, preferring the external
// generator and falling back to a deterministic template.
type NarrativeGenerator struct {
	generator TextGenerator
	config    GenerationConfig
	timeout   time.Duration
	logger    *zap.Logger
}

// NarrativeOption is a functional option for NarrativeGenerator
type NarrativeOption func(*NarrativeGenerator)

// WithTextGenerator sets the external generator. A nil generator disables it.
func WithTextGenerator(g TextGenerator) NarrativeOption {
	return func(n *NarrativeGenerator) {
		n.generator = g
	}
}

// WithGenerationModel sets the model identifier
func WithGenerationModel(model string) NarrativeOption {
	return func(n *NarrativeGenerator) {
		n.config.Model = model
	}
}

// WithGenerationLimits sets output size and sampling temperature
func WithGenerationLimits(maxTokens int32, temperature float32) NarrativeOption {
	return func(n *NarrativeGenerator) {
		n.config.MaxOutputTokens = maxTokens
		n.config.Temperature = temperature
	}
}

// WithNarrativeTimeout bounds the external call
func WithNarrativeTimeout(d time.Duration) NarrativeOption {
	return func(n *NarrativeGenerator) {
		n.timeout = d
	}
}

// WithNarrativeLogger sets the logger
func WithNarrativeLogger(logger *zap.Logger) NarrativeOption {
	return func(n *NarrativeGenerator) {
		n.logger = logger
	}
}

// NewNarrativeGenerator creates a narrative generator
func NewNarrativeGenerator(opts ...NarrativeOption) *NarrativeGenerator {
	n := &NarrativeGenerator{
		config: GenerationConfig{
			MaxOutputTokens:   DefaultNarrativeMaxTokens,
			Temperature:       DefaultNarrativeTemperature,
			SystemInstruction: ConciergeInstruction,
		},
		timeout: DefaultNarrativeTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Generate returns the narrative summary. It never fails: a missing
// generator, an error, a timeout or a malformed response all produce
// FallbackSummary.
func (n *NarrativeGenerator) Generate(
	ctx context.Context,
	persona models.Persona,
	top []models.NeighborhoodMatch,
	weights []models.PreferenceWeight,
	sources []models.SourceSnippet,
) models.AISummary {
	summary, err := n.generateExternal(ctx, persona, top, weights, sources)
	if err != nil {
		if n.generator != nil && len(top) > 0 {
			n.logger.Warn("narrative generation failed, using fallback summary", zap.Error(err))
		}
		summary = FallbackSummary(persona, top, weights, sources)
	}
	metrics.NarrativeSummaries.WithLabelValues(string(summary.GeneratedBy)).Inc()
	return summary
}

var errNarrativeSkipped = errors.New("external narrative skipped")

func (n *NarrativeGenerator) generateExternal(
	ctx context.Context,
	persona models.Persona,
	top []models.NeighborhoodMatch,
	weights []models.PreferenceWeight,
	sources []models.SourceSnippet,
) (models.AISummary, error) {
	if len(top) == 0 || n.generator == nil {
		return models.AISummary{}, errNarrativeSkipped
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	text, err := n.callGenerator(ctx, BuildPrompt(persona, top, weights, sources))
	if err != nil {
		return models.AISummary{}, fmt.Errorf("generate text: %w", err)
	}

	summary, err := parseNarrative(text)
	if err != nil {
		return models.AISummary{}, err
	}
	summary.GeneratedBy = models.GeneratedByExternal
	return summary, nil
}

type generationResult struct {
	text string
	err  error
}

// callGenerator returns when the generator answers or ctx is done, whichever
// comes first. A generator that ignores ctx is left to finish on its own.
func (n *NarrativeGenerator) callGenerator(ctx context.Context, prompt string) (string, error) {
	done := make(chan generationResult, 1)
	go func() {
		text, err := n.generator.GenerateText(ctx, prompt, n.config)
		done <- generationResult{text: text, err: err}
	}()

	select {
	case res := <-done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// parseNarrative decodes a generated JSON object that must carry headline,
// insights and call_to_action.
func parseNarrative(text string) (models.AISummary, error) {
	cleaned := cleanJSONResponse(text)
	if cleaned == "" {
		return models.AISummary{}, fmt.Errorf("%w: empty response", ErrMalformedNarrative)
	}

	var raw struct {
		Headline     *string   `json:"headline"`
		Insights     *[]string `json:"insights"`
		CallToAction *string   `json:"call_to_action"`
	}
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return models.AISummary{}, fmt.Errorf("%w: %v", ErrMalformedNarrative, err)
	}
	if raw.Headline == nil || raw.Insights == nil || raw.CallToAction == nil {
		return models.AISummary{}, fmt.Errorf("%w: missing required keys", ErrMalformedNarrative)
	}

	return models.AISummary{
		Headline:     *raw.Headline,
		Insights:     *raw.Insights,
		CallToAction: *raw.CallToAction,
	}, nil
}

// cleanJSONResponse strips markdown code fences from a generated JSON document
func cleanJSONResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

// BuildPrompt renders the persona, weights, matches and sources into the
// generation prompt. At most five weights and five sources are included.
func BuildPrompt(
	persona models.Persona,
	top []models.NeighborhoodMatch,
	weights []models.PreferenceWeight,
	sources []models.SourceSnippet,
) string {
	neighborhoodLines := make([]string, 0, len(top))
	for _, m := range top {
		highlight := m.Summary
		if highlight == "" {
			highlight = "NYC vibe"
		}
		neighborhoodLines = append(neighborhoodLines, fmt.Sprintf("- %s (%s): %s; compatibility score %s",
			m.Name, m.Borough, highlight, formatRounded(m.Score, 1)))
	}

	weightLines := make([]string, 0, narrativePromptLimit)
	for _, w := range weights[:min(len(weights), narrativePromptLimit)] {
		weightLines = append(weightLines, fmt.Sprintf("%s: %s", w.Label, formatRounded(w.Weight, 0)))
	}

	sourceLines := make([]string, 0, narrativePromptLimit)
	for _, s := range sources[:min(len(sources), narrativePromptLimit)] {
		sourceLines = append(sourceLines, fmt.Sprintf("%s (%s): %s", s.Source, s.Borough, s.Summary))
	}

	var b strings.Builder
	b.WriteString("Create a JSON object with keys headline, insights, and call_to_action. ")
	b.WriteString("Each insight should be a short sentence. Only mention NYC neighborhoods.\n")
	fmt.Fprintf(&b, "Persona: %s - %s | Focus: %s.\n", persona.Title, persona.Tagline, persona.NYCFocus)
	fmt.Fprintf(&b, "Top priorities: %s.\n", strings.Join(persona.Priorities, ", "))
	fmt.Fprintf(&b, "Weighted traits: %s.\n", strings.Join(weightLines, ", "))
	b.WriteString("Recommended neighborhoods:\n")
	b.WriteString(strings.Join(neighborhoodLines, "\n"))
	b.WriteString("\nRecent NYC source snippets:\n")
	b.WriteString(strings.Join(sourceLines, "\n"))
	return b.String()
}

// FallbackSummary builds a deterministic summary from the portfolio data
func FallbackSummary(
	persona models.Persona,
	top []models.NeighborhoodMatch,
	weights []models.PreferenceWeight,
	sources []models.SourceSnippet,
) models.AISummary {
	insights := make([]string, 0, 4)

	if len(persona.Priorities) >= 2 {
		insights = append(insights, fmt.Sprintf("Your search leans into %s with %s close behind.",
			strings.ToLower(persona.Priorities[0]), strings.ToLower(persona.Priorities[1])))
	}
	if len(top) > 0 {
		names := make([]string, 0, len(top))
		for _, m := range top {
			names = append(names, m.Name)
		}
		insights = append(insights, fmt.Sprintf("Your leading NYC matches today: %s.", strings.Join(names, ", ")))
	}
	if len(sources) > 0 {
		insights = append(insights, fmt.Sprintf("Local chatter highlights %s in %s.",
			strings.ToLower(sources[0].Headline), sources[0].Borough))
	}
	if len(weights) > 0 {
		insights = append(insights, fmt.Sprintf("%s scored %s/100 in your quiz.",
			weights[0].Label, formatRounded(weights[0].Weight, 0)))
	}

	title := persona.Title
	if title == "" {
		title = fallbackPersonaTitle
	}

	return models.AISummary{
		Headline:     title + " game plan",
		Insights:     insights,
		CallToAction: fallbackCallToAction,
		GeneratedBy:  models.GeneratedByFallback,
	}
}

// formatRounded rounds half to even at the given number of decimals
func formatRounded(v float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	rounded := math.RoundToEven(v*scale) / scale
	if decimals == 0 {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}
