package service

import (
	"context"
	"testing"

	"nychousing-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func portfolioNeighborhoods() []models.NeighborhoodProfile {
	lively := balancedNeighborhood("Lively", "Brooklyn")
	lively.NightlifeScore = 10
	lively.Vibe = "artsy and trendy"
	lively.FoodScore = 9

	busy := balancedNeighborhood("Busy", "Manhattan")
	busy.NightlifeScore = 9

	calm := balancedNeighborhood("Calm", "Queens")
	calm.NightlifeScore = 2

	steady := balancedNeighborhood("Steady", "Bronx")
	steady.NightlifeScore = 8

	return []models.NeighborhoodProfile{calm, steady, busy, lively}
}

func TestBuildPortfolio(t *testing.T) {
	prefs := &models.PreferenceVector{Nightlife: ptr(10.0), Parks: ptr(4.0)}
	svc := NewPortfolioService(
		PortfolioWithNeighborhoods(&stubNeighborhoods{neighborhoods: portfolioNeighborhoods()}),
		PortfolioWithQuizStore(&stubQuizStore{prefs: prefs}),
		PortfolioWithLogger(zaptest.NewLogger(t)),
	)

	portfolio, err := svc.BuildPortfolio(context.Background())
	require.NoError(t, err)

	require.Len(t, portfolio.TopNeighborhoods, TopNeighborhoodCount)
	names := []string{
		portfolio.TopNeighborhoods[0].Name,
		portfolio.TopNeighborhoods[1].Name,
		portfolio.TopNeighborhoods[2].Name,
	}
	assert.Equal(t, []string{"Lively", "Busy", "Steady"}, names)

	lively := portfolio.TopNeighborhoods[0]
	assert.Equal(t, "Brooklyn", lively.Borough)
	assert.Equal(t, "artsy and trendy", lively.Summary)
	assert.Equal(t, []string{"Artsy And Trendy", "Food 9/10", "Transit 5/10"}, lively.Tags)
	assert.Equal(t, models.NeighborhoodHighlights{Walkability: 50, Nightlife: 10, Parks: 5, Transit: 5}, lively.Highlights)

	require.Len(t, portfolio.PreferenceWeights, 2)
	assert.Equal(t, models.PrefNightlife, portfolio.PreferenceWeights[0].Key)

	assert.Equal(t, "After-Hours Creative", portfolio.Persona.Title)
	assert.Equal(t, "Bronx, Brooklyn, Manhattan", portfolio.Persona.NYCFocus)

	assert.LessOrEqual(t, len(portfolio.Sources), 5)
	assert.Equal(t, models.GeneratedByFallback, portfolio.AISummary.GeneratedBy)
	assert.Equal(t, "After-Hours Creative game plan", portfolio.AISummary.Headline)
}

func TestBuildPortfolio_UsesExternalNarrative(t *testing.T) {
	stub := &stubGenerator{response: `{"headline":"Night owl plan","insights":["Start in Lively."],"call_to_action":"Book a tour."}`}
	svc := NewPortfolioService(
		PortfolioWithNeighborhoods(&stubNeighborhoods{neighborhoods: portfolioNeighborhoods()}),
		PortfolioWithQuizStore(&stubQuizStore{prefs: &models.PreferenceVector{Nightlife: ptr(10.0)}}),
		PortfolioWithNarrative(NewNarrativeGenerator(WithTextGenerator(stub))),
	)

	portfolio, err := svc.BuildPortfolio(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.GeneratedByExternal, portfolio.AISummary.GeneratedBy)
	assert.Equal(t, "Night owl plan", portfolio.AISummary.Headline)
}

func TestBuildPortfolio_RequiresQuiz(t *testing.T) {
	tests := []struct {
		name  string
		prefs *models.PreferenceVector
	}{
		{"no quiz", nil},
		{"empty quiz", &models.PreferenceVector{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPortfolioService(
				PortfolioWithNeighborhoods(&stubNeighborhoods{neighborhoods: portfolioNeighborhoods()}),
				PortfolioWithQuizStore(&stubQuizStore{prefs: tt.prefs}),
			)
			_, err := svc.BuildPortfolio(context.Background())
			assert.ErrorIs(t, err, ErrQuizNotCompleted)
		})
	}
}

func TestBuildPortfolio_FewerNeighborhoodsThanTopCount(t *testing.T) {
	svc := NewPortfolioService(
		PortfolioWithNeighborhoods(&stubNeighborhoods{neighborhoods: portfolioNeighborhoods()[:2]}),
		PortfolioWithQuizStore(&stubQuizStore{prefs: &models.PreferenceVector{Safety: ptr(5.0)}}),
	)

	portfolio, err := svc.BuildPortfolio(context.Background())
	require.NoError(t, err)
	assert.Len(t, portfolio.TopNeighborhoods, 2)
}

func TestRankCompatibility_StableOnTies(t *testing.T) {
	a := balancedNeighborhood("A", "Queens")
	b := balancedNeighborhood("B", "Queens")
	c := balancedNeighborhood("C", "Queens")

	matches := RankCompatibility(&models.PreferenceVector{Safety: ptr(5.0)}, []models.NeighborhoodProfile{a, b, c})

	require.Len(t, matches, 3)
	assert.Equal(t, "A", matches[0].Name)
	assert.Equal(t, "B", matches[1].Name)
	assert.Equal(t, "C", matches[2].Name)
	assert.Equal(t, 100.0, matches[0].Score)
}
