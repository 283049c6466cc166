package service

import (
	"context"

	"nychousing-backend/models"
)

// NeighborhoodSource serves the static neighborhood reference data.
// GetNeighborhood returns nil without error for an unknown name.
type NeighborhoodSource interface {
	ListNeighborhoods(ctx context.Context) ([]models.NeighborhoodProfile, error)
	GetNeighborhood(ctx context.Context, name string) (*models.NeighborhoodProfile, error)
}

// QuizStore persists the single current preference vector. GetQuizResults
// returns nil without error when no quiz was submitted.
type QuizStore interface {
	GetQuizResults(ctx context.Context) (*models.PreferenceVector, error)
	SaveQuizResults(ctx context.Context, prefs *models.PreferenceVector) error
}

// ReviewStore persists neighborhood reviews
type ReviewStore interface {
	ListReviews(ctx context.Context, neighborhood string) ([]models.Review, error)
	AddReview(ctx context.Context, review *models.Review) error
	CountReviews(ctx context.Context) (int, error)
}
