package service

import (
	"context"
	"errors"

	"nychousing-backend/models"
)

func ptr[T any](v T) *T {
	return &v
}

// balancedNeighborhood scores 5 on every 0-10 attribute
func balancedNeighborhood(name, borough string) models.NeighborhoodProfile {
	return models.NeighborhoodProfile{
		Name:               name,
		Borough:            borough,
		Lat:                40.7,
		Lng:                -73.9,
		Walkability:        50,
		FoodScore:          5,
		NightlifeScore:     5,
		TransitScore:       5,
		ParksScore:         5,
		DiversityScore:     5,
		SafetyScore:        5,
		PrimaryDemographic: "mixed",
		Vibe:               "balanced",
	}
}

type stubNeighborhoods struct {
	neighborhoods []models.NeighborhoodProfile
	err           error
}

func (s *stubNeighborhoods) ListNeighborhoods(ctx context.Context) ([]models.NeighborhoodProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.neighborhoods, nil
}

func (s *stubNeighborhoods) GetNeighborhood(ctx context.Context, name string) (*models.NeighborhoodProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, n := range s.neighborhoods {
		if n.Name == name {
			found := n
			return &found, nil
		}
	}
	return nil, nil
}

type stubQuizStore struct {
	prefs *models.PreferenceVector
	err   error
}

func (s *stubQuizStore) GetQuizResults(ctx context.Context) (*models.PreferenceVector, error) {
	return s.prefs, s.err
}

func (s *stubQuizStore) SaveQuizResults(ctx context.Context, prefs *models.PreferenceVector) error {
	if s.err != nil {
		return s.err
	}
	s.prefs = prefs
	return nil
}

type stubReviewStore struct {
	reviews []models.Review
	err     error
}

func (s *stubReviewStore) ListReviews(ctx context.Context, neighborhood string) ([]models.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Review
	for _, r := range s.reviews {
		if r.Neighborhood == neighborhood {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubReviewStore) AddReview(ctx context.Context, review *models.Review) error {
	if s.err != nil {
		return s.err
	}
	s.reviews = append([]models.Review{*review}, s.reviews...)
	return nil
}

func (s *stubReviewStore) CountReviews(ctx context.Context) (int, error) {
	return len(s.reviews), s.err
}

var errStoreUnavailable = errors.New("store unavailable")
