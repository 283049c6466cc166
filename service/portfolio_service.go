package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"nychousing-backend/models"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TopNeighborhoodCount is the number of matches kept in a portfolio
const TopNeighborhoodCount = 3

var ErrQuizNotCompleted = errors.New("complete the quiz to unlock your NYC portfolio")

// PortfolioService assembles the recommendation portfolio from the stored quiz
type PortfolioService struct {
	neighborhoods NeighborhoodSource
	quizzes       QuizStore
	narrative     *NarrativeGenerator
	logger        *zap.Logger
}

// PortfolioServiceOption is a functional option for PortfolioService
type PortfolioServiceOption func(*PortfolioService)

// PortfolioWithNeighborhoods sets the neighborhood source
func PortfolioWithNeighborhoods(src NeighborhoodSource) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.neighborhoods = src
	}
}

// PortfolioWithQuizStore sets where the current quiz answers are read from
func PortfolioWithQuizStore(store QuizStore) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.quizzes = store
	}
}

// PortfolioWithNarrative sets the narrative generator
func PortfolioWithNarrative(n *NarrativeGenerator) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.narrative = n
	}
}

// PortfolioWithLogger sets the logger
func PortfolioWithLogger(logger *zap.Logger) PortfolioServiceOption {
	return func(s *PortfolioService) {
		s.logger = logger
	}
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(opts ...PortfolioServiceOption) *PortfolioService {
	s := &PortfolioService{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.narrative == nil {
		s.narrative = NewNarrativeGenerator(WithNarrativeLogger(s.logger))
	}
	return s
}

// BuildPortfolio ranks neighborhoods against the stored quiz and enriches the
// top three with persona, weights, sources and a narrative summary.
func (s *PortfolioService) BuildPortfolio(ctx context.Context) (*models.PortfolioArtifact, error) {
	prefs, err := s.quizzes.GetQuizResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz results: %w", err)
	}
	if prefs.IsEmpty() {
		return nil, ErrQuizNotCompleted
	}

	neighborhoods, err := s.neighborhoods.ListNeighborhoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	return s.assemble(ctx, prefs, neighborhoods), nil
}

func (s *PortfolioService) assemble(
	ctx context.Context,
	prefs *models.PreferenceVector,
	neighborhoods []models.NeighborhoodProfile,
) *models.PortfolioArtifact {
	top := TopMatches(RankCompatibility(prefs, neighborhoods), TopNeighborhoodCount)
	weights := DerivePreferenceWeights(prefs)
	persona := SynthesizePersona(weights, top)
	sources := AggregateSourceDigest(top)
	summary := s.narrative.Generate(ctx, persona, top, weights, sources)

	s.logger.Debug("portfolio assembled",
		zap.String("persona", persona.Title),
		zap.Int("matches", len(top)),
		zap.String("generated_by", string(summary.GeneratedBy)))

	return &models.PortfolioArtifact{
		Persona:           persona,
		PreferenceWeights: weights,
		TopNeighborhoods:  top,
		Sources:           sources,
		AISummary:         summary,
	}
}

// RankCompatibility scores every neighborhood against the preferences and
// sorts the matches by score, highest first.
func RankCompatibility(prefs *models.PreferenceVector, neighborhoods []models.NeighborhoodProfile) []models.NeighborhoodMatch {
	matches := make([]models.NeighborhoodMatch, 0, len(neighborhoods))
	for _, n := range neighborhoods {
		matches = append(matches, newNeighborhoodMatch(n, CompatibilityScore(prefs, n)))
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// TopMatches returns at most limit leading matches
func TopMatches(matches []models.NeighborhoodMatch, limit int) []models.NeighborhoodMatch {
	if len(matches) > limit {
		return matches[:limit]
	}
	return matches
}

func newNeighborhoodMatch(n models.NeighborhoodProfile, score float64) models.NeighborhoodMatch {
	return models.NeighborhoodMatch{
		Name:    n.Name,
		Borough: n.Borough,
		Score:   round2(score),
		Summary: n.Vibe,
		Tags: []string{
			cases.Title(language.English).String(n.Vibe),
			fmt.Sprintf("Food %s/10", strconv.FormatFloat(n.FoodScore, 'f', -1, 64)),
			fmt.Sprintf("Transit %s/10", strconv.FormatFloat(n.TransitScore, 'f', -1, 64)),
		},
		Highlights: models.NeighborhoodHighlights{
			Walkability: n.Walkability,
			Nightlife:   n.NightlifeScore,
			Parks:       n.ParksScore,
			Transit:     n.TransitScore,
		},
	}
}
