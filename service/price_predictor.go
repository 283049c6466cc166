package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"nychousing-backend/metrics"
	"nychousing-backend/models"
	"nychousing-backend/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultAppreciationRate is the annual appreciation applied to future prices
const DefaultAppreciationRate = 0.05

var ErrInvalidPropertyInput = errors.New("invalid property input")

// PricePredictor predicts future property prices. The model is chosen once
// at construction and never mutated, so a predictor is safe for concurrent use.
type PricePredictor struct {
	model            PriceModel
	fallback         *HeuristicModel
	appreciationRate float64
	logger           *zap.Logger
	randSource       rand.Source
}

// PricePredictorOption is a functional option for PricePredictor
type PricePredictorOption func(*PricePredictor)

// WithPriceModel sets the primary price model
func WithPriceModel(model PriceModel) PricePredictorOption {
	return func(p *PricePredictor) {
		p.model = model
	}
}

// WithAppreciationRate sets the annual appreciation rate
func WithAppreciationRate(rate float64) PricePredictorOption {
	return func(p *PricePredictor) {
		p.appreciationRate = rate
	}
}

// WithRandSource pins the heuristic jitter source
func WithRandSource(src rand.Source) PricePredictorOption {
	return func(p *PricePredictor) {
		p.randSource = src
	}
}

// WithPredictorLogger sets the logger
func WithPredictorLogger(logger *zap.Logger) PricePredictorOption {
	return func(p *PricePredictor) {
		p.logger = logger
	}
}

// NewPricePredictor creates a predictor. Without WithPriceModel it runs on
// the heuristic model.
func NewPricePredictor(opts ...PricePredictorOption) *PricePredictor {
	p := &PricePredictor{
		appreciationRate: DefaultAppreciationRate,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.fallback = NewHeuristicModel(p.randSource)
	if p.model == nil {
		p.model = p.fallback
	}
	return p
}

// LoadPricePredictor loads the trained model artifact stored under key and
// builds a predictor around it. It never fails: a missing store, a missing
// or unreadable artifact, or an incompatible version all degrade to the
// heuristic model and are reported through the logger and metrics.
func LoadPricePredictor(ctx context.Context, store storage.Storage, key string, opts ...PricePredictorOption) *PricePredictor {
	p := NewPricePredictor(opts...)

	model, err := loadTrainedModel(ctx, store, key)
	if err != nil {
		metrics.PriceModelLoadFailures.Inc()
		if errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("model artifact not found, using fallback prediction method",
				zap.String("key", key))
		} else {
			p.logger.Error("failed to load model artifact, using fallback prediction method",
				zap.String("key", key), zap.Error(err))
		}
		return p
	}

	p.model = model
	p.logger.Info("price model loaded", zap.String("key", key))
	return p
}

func loadTrainedModel(ctx context.Context, store storage.Storage, key string) (*TrainedModel, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: no artifact store configured", storage.ErrNotFound)
	}

	rc, err := store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ParseModelArtifact(rc)
}

// ModelName reports which model serves predictions
func (p *PricePredictor) ModelName() string {
	return p.model.Name()
}

// Predict returns the price of the described property in the neighborhood
// yearsFuture years from now.
func (p *PricePredictor) Predict(criteria models.PropertyCriteria, n models.NeighborhoodProfile, yearsFuture int) (float64, error) {
	return p.PredictFeatures(FeaturesFor(criteria, n), yearsFuture)
}

// PredictFeatures prices a prepared feature row
func (p *PricePredictor) PredictFeatures(f PropertyFeatures, yearsFuture int) (float64, error) {
	if yearsFuture < 0 || !validQuantity(f.SqFt) || !validQuantity(f.Beds) || !validQuantity(f.Baths) {
		return 0, fmt.Errorf("%w: sqft=%v beds=%v baths=%v years=%d",
			ErrInvalidPropertyInput, f.SqFt, f.Beds, f.Baths, yearsFuture)
	}

	model := p.model
	base, err := model.BasePrice(f)
	if err != nil && model != PriceModel(p.fallback) {
		p.logger.Warn("price model inference failed, using fallback prediction method",
			zap.String("model", model.Name()), zap.Error(err))
		model = p.fallback
		base, err = model.BasePrice(f)
	}
	if err != nil {
		return 0, err
	}
	metrics.PricePredictions.WithLabelValues(model.Name()).Inc()

	price := base * math.Pow(1+p.appreciationRate, float64(yearsFuture))
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrediction, price)
	}
	return price, nil
}

func validQuantity(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// PredictBatch prices every feature row independently. Results keep the
// order of the input.
func (p *PricePredictor) PredictBatch(ctx context.Context, inputs []PropertyFeatures, yearsFuture int) ([]float64, error) {
	prices := make([]float64, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	for i := range inputs {
		g.Go(func() error {
			price, err := p.PredictFeatures(inputs[i], yearsFuture)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			prices[i] = price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return prices, nil
}
