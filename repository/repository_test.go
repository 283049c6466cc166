package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"nychousing-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticNeighborhoodRepository(t *testing.T) {
	repo := NewStaticNeighborhoodRepository()
	ctx := context.Background()

	all, err := repo.ListNeighborhoods(ctx)
	require.NoError(t, err)
	require.Len(t, all, 12)

	seen := map[string]bool{}
	for _, n := range all {
		assert.False(t, seen[n.Name], "duplicate %s", n.Name)
		seen[n.Name] = true

		assert.NotEmpty(t, n.Borough)
		assert.NotEmpty(t, n.Vibe)
		assert.NotEmpty(t, n.PrimaryDemographic)
		assert.InDelta(t, 40.7, n.Lat, 0.2)
		assert.InDelta(t, -73.9, n.Lng, 0.2)
		assert.GreaterOrEqual(t, n.Walkability, 0.0)
		assert.LessOrEqual(t, n.Walkability, 100.0)
		for _, score := range []float64{n.FoodScore, n.NightlifeScore, n.TransitScore, n.ParksScore, n.DiversityScore, n.SafetyScore} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 10.0)
		}
	}

	astoria, err := repo.GetNeighborhood(ctx, "Astoria")
	require.NoError(t, err)
	require.NotNil(t, astoria)
	assert.Equal(t, "Queens", astoria.Borough)

	missing, err := repo.GetNeighborhood(ctx, "astoria")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStaticNeighborhoodRepository_ReturnsCopies(t *testing.T) {
	repo := NewStaticNeighborhoodRepository()
	ctx := context.Background()

	all, err := repo.ListNeighborhoods(ctx)
	require.NoError(t, err)
	all[0].Name = "Changed"

	n, err := repo.GetNeighborhood(ctx, "Williamsburg")
	require.NoError(t, err)
	n.Vibe = "changed"

	again, err := repo.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Williamsburg", again[0].Name)
	assert.NotEqual(t, "changed", again[0].Vibe)
}

func TestStaticNeighborhoodRepository_CustomProfiles(t *testing.T) {
	repo := NewStaticNeighborhoodRepository(models.NeighborhoodProfile{Name: "Only"})

	all, err := repo.ListNeighborhoods(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemorySessionRepository_Quiz(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	prefs, err := repo.GetQuizResults(ctx)
	require.NoError(t, err)
	assert.Nil(t, prefs)

	walk := 7.0
	require.NoError(t, repo.SaveQuizResults(ctx, &models.PreferenceVector{Walkability: &walk}))

	prefs, err = repo.GetQuizResults(ctx)
	require.NoError(t, err)
	require.NotNil(t, prefs)
	assert.Equal(t, 7.0, *prefs.Walkability)

	require.NoError(t, repo.SaveQuizResults(ctx, nil))
	prefs, err = repo.GetQuizResults(ctx)
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestMemorySessionRepository_QuizIsolatedFromCallers(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	walk := 7.0
	age := "students"
	saved := &models.PreferenceVector{
		Walkability:        &walk,
		AgeGroupPreference: &age,
		TargetLocation:     &models.Coordinate{Lat: 40.7, Lng: -73.9},
	}
	require.NoError(t, repo.SaveQuizResults(ctx, saved))

	walk = 1
	age = "families"
	saved.TargetLocation.Lat = 0

	got, err := repo.GetQuizResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, *got.Walkability)
	assert.Equal(t, "students", *got.AgeGroupPreference)
	assert.Equal(t, 40.7, got.TargetLocation.Lat)

	*got.Walkability = 2
	got.TargetLocation.Lng = 0

	again, err := repo.GetQuizResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, *again.Walkability)
	assert.Equal(t, -73.9, again.TargetLocation.Lng)
}

func review(neighborhood string, date time.Time) *models.Review {
	return &models.Review{
		ID:           uuid.New(),
		Neighborhood: neighborhood,
		Author:       "Ana",
		Rating:       4,
		Comment:      "Nice",
		Date:         date,
	}
}

func TestMemorySessionRepository_ReviewsNewestFirst(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AddReview(ctx, review("Harlem", base)))
	require.NoError(t, repo.AddReview(ctx, review("Harlem", base.Add(48*time.Hour))))
	require.NoError(t, repo.AddReview(ctx, review("Harlem", base.Add(24*time.Hour))))
	require.NoError(t, repo.AddReview(ctx, review("Tribeca", base)))

	reviews, err := repo.ListReviews(ctx, "Harlem")
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, base.Add(48*time.Hour), reviews[0].Date)
	assert.Equal(t, base.Add(24*time.Hour), reviews[1].Date)
	assert.Equal(t, base, reviews[2].Date)

	none, err := repo.ListReviews(ctx, "Flushing")
	require.NoError(t, err)
	assert.Empty(t, none)

	count, err := repo.CountReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMemorySessionRepository_Concurrent(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.AddReview(ctx, review("Bushwick", time.Now()))
			_, _ = repo.ListReviews(ctx, "Bushwick")
		}()
	}
	wg.Wait()

	count, err := repo.CountReviews(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}
