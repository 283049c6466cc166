package service

import (
	"context"
	"fmt"
	"sort"

	"nychousing-backend/metrics"
	"nychousing-backend/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	greenTierThreshold  = 70.0
	yellowTierThreshold = 40.0
)

// AffordabilityScore buckets the predicted price by its ratio to the budget
func AffordabilityScore(predictedPrice, budget float64) float64 {
	if budget <= 0 {
		return 0
	}
	ratio := predictedPrice / budget
	switch {
	case ratio <= 0.8:
		return 100
	case ratio <= 1.0:
		return 80
	case ratio <= 1.2:
		return 50
	case ratio <= 1.5:
		return 20
	default:
		return 0
	}
}

// ColorTier maps a combined score to its map color
func ColorTier(score float64) models.ColorTier {
	switch {
	case score >= greenTierThreshold:
		return models.TierGreen
	case score >= yellowTierThreshold:
		return models.TierYellow
	default:
		return models.TierRed
	}
}

// CombinedScore is the even blend of affordability and lifestyle. It is not
// rounded; callers round for display and tier on the exact value.
func CombinedScore(affordability, lifestyle float64) float64 {
	return 0.5*affordability + 0.5*lifestyle
}

// RankingService prices a property across every neighborhood and ranks the
// results by combined affordability and lifestyle score.
type RankingService struct {
	predictor     *PricePredictor
	neighborhoods NeighborhoodSource
	quizzes       QuizStore
	logger        *zap.Logger
}

// RankingServiceOption is a functional option for RankingService
type RankingServiceOption func(*RankingService)

// RankingWithPredictor sets the price predictor
func RankingWithPredictor(p *PricePredictor) RankingServiceOption {
	return func(s *RankingService) {
		s.predictor = p
	}
}

// RankingWithNeighborhoods sets the neighborhood source
func RankingWithNeighborhoods(src NeighborhoodSource) RankingServiceOption {
	return func(s *RankingService) {
		s.neighborhoods = src
	}
}

// RankingWithQuizStore sets where the current quiz answers are read from
func RankingWithQuizStore(store QuizStore) RankingServiceOption {
	return func(s *RankingService) {
		s.quizzes = store
	}
}

// RankingWithLogger sets the logger
func RankingWithLogger(logger *zap.Logger) RankingServiceOption {
	return func(s *RankingService) {
		s.logger = logger
	}
}

// NewRankingService creates a new ranking service
func NewRankingService(opts ...RankingServiceOption) *RankingService {
	s := &RankingService{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.predictor == nil {
		s.predictor = NewPricePredictor(WithPredictorLogger(s.logger))
	}
	return s
}

// RankNeighborhoods scores every neighborhood for the property criteria and
// the stored quiz answers. A neighborhood whose evaluation fails is logged
// and skipped. Results are sorted by combined score, highest first.
func (s *RankingService) RankNeighborhoods(ctx context.Context, criteria models.PropertyCriteria) ([]models.ScoredPrediction, error) {
	neighborhoods, err := s.neighborhoods.ListNeighborhoods(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list neighborhoods: %w", err)
	}

	var prefs *models.PreferenceVector
	if s.quizzes != nil {
		prefs, err = s.quizzes.GetQuizResults(ctx)
		if err != nil {
			s.logger.Warn("failed to read quiz results, ranking without preferences", zap.Error(err))
			prefs = nil
		}
	}

	return s.rank(ctx, criteria, prefs, neighborhoods), nil
}

func (s *RankingService) rank(
	ctx context.Context,
	criteria models.PropertyCriteria,
	prefs *models.PreferenceVector,
	neighborhoods []models.NeighborhoodProfile,
) []models.ScoredPrediction {
	slots := make([]*models.ScoredPrediction, len(neighborhoods))

	g, _ := errgroup.WithContext(ctx)
	for i := range neighborhoods {
		g.Go(func() error {
			n := neighborhoods[i]
			prediction, err := s.evaluate(criteria, prefs, n)
			if err != nil {
				metrics.NeighborhoodPredictionFailures.Inc()
				s.logger.Warn("skipping neighborhood, prediction failed",
					zap.String("neighborhood", n.Name), zap.Error(err))
				return nil
			}
			slots[i] = prediction
			return nil
		})
	}
	_ = g.Wait()

	predictions := make([]models.ScoredPrediction, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			predictions = append(predictions, *p)
		}
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].CombinedScore > predictions[j].CombinedScore
	})
	return predictions
}

func (s *RankingService) evaluate(
	criteria models.PropertyCriteria,
	prefs *models.PreferenceVector,
	n models.NeighborhoodProfile,
) (prediction *models.ScoredPrediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			prediction, err = nil, fmt.Errorf("panic while scoring %s: %v", n.Name, r)
		}
	}()

	price, err := s.predictor.Predict(criteria, n, criteria.YearsFuture)
	if err != nil {
		return nil, err
	}

	return scorePrediction(n, price,
		AffordabilityScore(price, criteria.Budget),
		CompatibilityScore(prefs, n)), nil
}

// scorePrediction blends the raw scores and rounds each field to 2 decimals
// only when storing it.
func scorePrediction(n models.NeighborhoodProfile, price, affordability, lifestyle float64) *models.ScoredPrediction {
	combined := CombinedScore(affordability, lifestyle)

	details := n
	return &models.ScoredPrediction{
		Name:               n.Name,
		Lat:                n.Lat,
		Lng:                n.Lng,
		PredictedPrice:     round2(price),
		AffordabilityScore: round2(affordability),
		LifestyleScore:     round2(lifestyle),
		CombinedScore:      round2(combined),
		Color:              ColorTier(combined),
		Details:            &details,
	}
}
