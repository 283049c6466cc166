package repository

import (
	"context"
	"sort"
	"sync"

	"nychousing-backend/models"
)

// MemorySessionRepository keeps quiz results and reviews in process memory.
// It is used when no database is configured.
type MemorySessionRepository struct {
	mu      sync.RWMutex
	quiz    *models.PreferenceVector
	reviews map[string][]models.Review
}

// NewMemorySessionRepository creates an empty in-memory session store
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		reviews: make(map[string][]models.Review),
	}
}

// GetQuizResults returns a copy of the stored quiz results, or nil
func (r *MemorySessionRepository) GetQuizResults(ctx context.Context) (*models.PreferenceVector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.quiz.Clone(), nil
}

// SaveQuizResults replaces the stored quiz results
func (r *MemorySessionRepository) SaveQuizResults(ctx context.Context, prefs *models.PreferenceVector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.quiz = prefs.Clone()
	return nil
}

// ListReviews returns the reviews of a neighborhood, newest first
func (r *MemorySessionRepository) ListReviews(ctx context.Context, neighborhood string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := make([]models.Review, len(r.reviews[neighborhood]))
	copy(reviews, r.reviews[neighborhood])
	return reviews, nil
}

// AddReview stores a review
func (r *MemorySessionRepository) AddReview(ctx context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews := append(r.reviews[review.Neighborhood], *review)
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].Date.After(reviews[j].Date)
	})
	r.reviews[review.Neighborhood] = reviews
	return nil
}

// CountReviews returns the number of stored reviews across all neighborhoods
func (r *MemorySessionRepository) CountReviews(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, reviews := range r.reviews {
		total += len(reviews)
	}
	return total, nil
}
