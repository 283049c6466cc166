package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"nychousing-backend/models"

	"go.uber.org/zap"
)

const defaultSentimentScore = 7.5

var ErrNeighborhoodNotFound = errors.New("neighborhood not found")

// NeighborhoodDetails is the profile, template summary and per-criterion
// match of a single neighborhood
type NeighborhoodDetails struct {
	Neighborhood models.NeighborhoodProfile `json:"neighborhood"`
	Summary      models.NeighborhoodSummary `json:"ai_summary"`
	Breakdown    models.ScoreBreakdown      `json:"breakdown"`
}

// NeighborhoodService serves neighborhood details, quiz answers and reviews
type NeighborhoodService struct {
	neighborhoods NeighborhoodSource
	quizzes       QuizStore
	reviews       ReviewStore
	logger        *zap.Logger
	now           func() time.Time
}

// NeighborhoodServiceOption is a functional option for NeighborhoodService
type NeighborhoodServiceOption func(*NeighborhoodService)

// NeighborhoodWithSource sets the neighborhood source
func NeighborhoodWithSource(src NeighborhoodSource) NeighborhoodServiceOption {
	return func(s *NeighborhoodService) {
		s.neighborhoods = src
	}
}

// NeighborhoodWithQuizStore sets the quiz store
func NeighborhoodWithQuizStore(store QuizStore) NeighborhoodServiceOption {
	return func(s *NeighborhoodService) {
		s.quizzes = store
	}
}

// NeighborhoodWithReviewStore sets the review store
func NeighborhoodWithReviewStore(store ReviewStore) NeighborhoodServiceOption {
	return func(s *NeighborhoodService) {
		s.reviews = store
	}
}

// NeighborhoodWithLogger sets the logger
func NeighborhoodWithLogger(logger *zap.Logger) NeighborhoodServiceOption {
	return func(s *NeighborhoodService) {
		s.logger = logger
	}
}

// NeighborhoodWithClock overrides the review timestamp source
func NeighborhoodWithClock(now func() time.Time) NeighborhoodServiceOption {
	return func(s *NeighborhoodService) {
		s.now = now
	}
}

// NewNeighborhoodService creates a new neighborhood service
func NewNeighborhoodService(opts ...NeighborhoodServiceOption) *NeighborhoodService {
	s := &NeighborhoodService{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitQuiz replaces the stored quiz answers wholesale
func (s *NeighborhoodService) SubmitQuiz(ctx context.Context, prefs *models.PreferenceVector) error {
	if prefs == nil {
		prefs = &models.PreferenceVector{}
	}
	if err := s.quizzes.SaveQuizResults(ctx, prefs); err != nil {
		return fmt.Errorf("failed to save quiz results: %w", err)
	}
	return nil
}

// QuizResults returns the stored quiz answers, or nil if none were submitted
func (s *NeighborhoodService) QuizResults(ctx context.Context) (*models.PreferenceVector, error) {
	prefs, err := s.quizzes.GetQuizResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz results: %w", err)
	}
	return prefs, nil
}

// GetDetails returns a neighborhood with its summary and score breakdown
func (s *NeighborhoodService) GetDetails(ctx context.Context, name string) (*NeighborhoodDetails, error) {
	n, err := s.neighborhoods.GetNeighborhood(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get neighborhood: %w", err)
	}
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNeighborhoodNotFound, name)
	}

	var prefs *models.PreferenceVector
	if s.quizzes != nil {
		prefs, err = s.quizzes.GetQuizResults(ctx)
		if err != nil {
			s.logger.Warn("failed to read quiz results for breakdown", zap.Error(err))
			prefs = nil
		}
	}

	return &NeighborhoodDetails{
		Neighborhood: *n,
		Summary:      MockSummary(*n),
		Breakdown:    ScoreBreakdown(prefs, *n),
	}, nil
}

// MockSummary builds the template description of a neighborhood
func MockSummary(n models.NeighborhoodProfile) models.NeighborhoodSummary {
	vibe := n.Vibe
	if vibe == "" {
		vibe = "diverse"
	}

	return models.NeighborhoodSummary{
		Overall: fmt.Sprintf("%s is a %s neighborhood with good access to amenities.", n.Name, vibe),
		Pros: []string{
			fmt.Sprintf("Walkability score: %s/100", strconv.FormatFloat(n.Walkability, 'f', -1, 64)),
			fmt.Sprintf("Food options: %s", foodDensity(n.FoodScore)),
			"Public transportation nearby",
		},
		Cons: []string{
			"Can be noisy during weekends",
			"Limited parking",
		},
		SentimentScore: defaultSentimentScore,
		Sources:        []string{"Reddit: r/nyc", "Facebook: NYC Housing Groups"},
	}
}

func foodDensity(score float64) string {
	switch {
	case score >= 8:
		return "High"
	case score >= 5:
		return "Moderate"
	default:
		return "Limited"
	}
}

// ListReviews returns the reviews of a neighborhood, newest first
func (s *NeighborhoodService) ListReviews(ctx context.Context, name string) ([]models.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// SubmitReview validates and stores a review. Validation failures are
// returned as the models review errors.
func (s *NeighborhoodService) SubmitReview(ctx context.Context, name, author string, rating interface{}, comment string) (*models.Review, error) {
	review, err := models.NewReview(name, author, rating, comment, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.reviews.AddReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.logger.Info("review submitted",
		zap.String("neighborhood", name),
		zap.String("review_id", review.ID.String()),
		zap.Int("rating", review.Rating))
	return review, nil
}

// SeedReviews stores the sample reviews when the review store is empty
func (s *NeighborhoodService) SeedReviews(ctx context.Context) error {
	count, err := s.reviews.CountReviews(ctx)
	if err != nil {
		return fmt.Errorf("failed to count reviews: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, r := range SampleReviews() {
		review := r
		if err := s.reviews.AddReview(ctx, &review); err != nil {
			return fmt.Errorf("failed to seed review for %s: %w", r.Neighborhood, err)
		}
	}
	s.logger.Info("seeded sample reviews", zap.Int("count", len(sampleReviews)))
	return nil
}

type sampleReview struct {
	neighborhood string
	author       string
	rating       int
	comment      string
	date         string
}

var sampleReviews = []sampleReview{
	{"Williamsburg", "Sarah M.", 5, "Love the artsy vibe and amazing food scene! Tons of great coffee shops and easy access to Manhattan via the L train.", "2025-10-15T14:30:00Z"},
	{"Williamsburg", "Mike T.", 4, "Great neighborhood but can get pretty crowded on weekends. Nightlife is fantastic though!", "2025-10-01T18:45:00Z"},
	{"Astoria", "Elena K.", 5, "Best Greek food in NYC! Very diverse community and more affordable than Manhattan. Love it here.", "2025-09-20T12:00:00Z"},
	{"Astoria", "David L.", 4, "Great value for money, authentic restaurants, and close to the park. Just wish the subway was closer to some parts.", "2025-09-12T09:30:00Z"},
	{"Park Slope", "Jennifer W.", 5, "Perfect for families! Beautiful brownstones, great schools, and Prospect Park is amazing. Very safe neighborhood.", "2025-10-28T16:20:00Z"},
	{"Park Slope", "Tom R.", 5, "Charming neighborhood with a real community feel. Farmers market on weekends is fantastic!", "2025-10-10T11:15:00Z"},
}

// SampleReviews returns the seed reviews with fresh IDs
func SampleReviews() []models.Review {
	reviews := make([]models.Review, 0, len(sampleReviews))
	for _, r := range sampleReviews {
		date, _ := time.Parse(time.RFC3339, r.date)
		review, err := models.NewReview(r.neighborhood, r.author, r.rating, r.comment, date)
		if err != nil {
			continue
		}
		reviews = append(reviews, *review)
	}
	return reviews
}
