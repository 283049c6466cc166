package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"nychousing-backend/models"
)

// Feature names of a price model input row
const (
	FeatureType        = "TYPE"
	FeatureBeds        = "BEDS"
	FeatureBath        = "BATH"
	FeatureSqFt        = "PROPERTYSQFT"
	FeatureAdminArea   = "ADMINISTRATIVE_AREA_LEVEL_2"
	FeatureLocality    = "LOCALITY"
	FeatureSublocality = "SUBLOCALITY"
	FeatureStreetName  = "STREET_NAME"
	FeatureLatitude    = "LATITUDE"
	FeatureLongitude   = "LONGITUDE"
)

// SupportedArtifactVersion is the only price model artifact version this build can read
const SupportedArtifactVersion = 1

var (
	ErrIncompatibleArtifact = errors.New("incompatible price model artifact")
	ErrInvalidPrediction    = errors.New("model produced an invalid price")
)

// PropertyFeatures is one input row for a price model
type PropertyFeatures struct {
	Type        string
	Beds        float64
	Baths       float64
	SqFt        float64
	AdminArea   string
	Locality    string
	Sublocality string
	StreetName  string
	Latitude    float64
	Longitude   float64
}

// FeaturesFor builds the model input row for a property placed in a neighborhood
func FeaturesFor(criteria models.PropertyCriteria, n models.NeighborhoodProfile) PropertyFeatures {
	return PropertyFeatures{
		Type:        criteria.Type,
		Beds:        criteria.Beds,
		Baths:       criteria.Baths,
		SqFt:        criteria.SqFt,
		AdminArea:   n.Borough,
		Locality:    n.Locality,
		Sublocality: n.Sublocality,
		StreetName:  n.StreetName,
		Latitude:    n.Lat,
		Longitude:   n.Lng,
	}
}

func (f PropertyFeatures) numeric(name string) (float64, bool) {
	switch name {
	case FeatureBeds:
		return f.Beds, true
	case FeatureBath:
		return f.Baths, true
	case FeatureSqFt:
		return f.SqFt, true
	case FeatureLatitude:
		return f.Latitude, true
	case FeatureLongitude:
		return f.Longitude, true
	}
	return 0, false
}

func (f PropertyFeatures) categorical(name string) (string, bool) {
	switch name {
	case FeatureType:
		return f.Type, true
	case FeatureAdminArea:
		return f.AdminArea, true
	case FeatureLocality:
		return f.Locality, true
	case FeatureSublocality:
		return f.Sublocality, true
	case FeatureStreetName:
		return f.StreetName, true
	}
	return "", false
}

// PriceModel predicts a present-day base price for a property
type PriceModel interface {
	Name() string
	BasePrice(f PropertyFeatures) (float64, error)
}

// ModelArtifact is the serialized form of a trained linear price model
type ModelArtifact struct {
	Version     int                           `json:"version"`
	Intercept   float64                       `json:"intercept"`
	Numeric     map[string]float64            `json:"numeric"`
	Categorical map[string]map[string]float64 `json:"categorical"`
}

// TrainedModel is a price model backed by a loaded artifact. It is
// immutable after construction and safe for concurrent use.
type TrainedModel struct {
	artifact ModelArtifact
}

// ParseModelArtifact decodes and validates a price model artifact
func ParseModelArtifact(r io.Reader) (*TrainedModel, error) {
	var artifact ModelArtifact
	if err := json.NewDecoder(r).Decode(&artifact); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	if artifact.Version != SupportedArtifactVersion {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrIncompatibleArtifact, artifact.Version, SupportedArtifactVersion)
	}
	for name := range artifact.Numeric {
		if _, ok := (PropertyFeatures{}).numeric(name); !ok {
			return nil, fmt.Errorf("%w: unknown numeric feature %q", ErrIncompatibleArtifact, name)
		}
	}
	for name := range artifact.Categorical {
		if _, ok := (PropertyFeatures{}).categorical(name); !ok {
			return nil, fmt.Errorf("%w: unknown categorical feature %q", ErrIncompatibleArtifact, name)
		}
	}
	return &TrainedModel{artifact: artifact}, nil
}

// Name implements PriceModel
func (m *TrainedModel) Name() string { return "trained" }

// BasePrice implements PriceModel
func (m *TrainedModel) BasePrice(f PropertyFeatures) (float64, error) {
	price := m.artifact.Intercept
	for name, coef := range m.artifact.Numeric {
		v, _ := f.numeric(name)
		price += coef * v
	}
	for name, levels := range m.artifact.Categorical {
		v, _ := f.categorical(name)
		price += levels[v]
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrediction, price)
	}
	return price, nil
}

// pricePerSqFt is the heuristic base price per square foot by borough
var pricePerSqFt = map[string]float64{
	"Manhattan":     1500,
	"Brooklyn":      1000,
	"Queens":        800,
	"Staten Island": 700,
	"Bronx":         600,
}

const (
	defaultPricePerSqFt = 900
	jitterMin           = 0.9
	jitterSpan          = 0.2
)

// HeuristicModel prices a property from borough, size and layout, with a
// uniform ±10% jitter. Safe for concurrent use.
type HeuristicModel struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHeuristicModel creates a heuristic model drawing jitter from src.
// A nil src uses a time-seeded source.
func NewHeuristicModel(src rand.Source) *HeuristicModel {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &HeuristicModel{rng: rand.New(src)}
}

// Name implements PriceModel
func (m *HeuristicModel) Name() string { return "heuristic" }

// BasePrice implements PriceModel
func (m *HeuristicModel) BasePrice(f PropertyFeatures) (float64, error) {
	return HeuristicBasePrice(f) * m.jitter(), nil
}

func (m *HeuristicModel) jitter() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return jitterMin + jitterSpan*m.rng.Float64()
}

// HeuristicBasePrice is the heuristic price before jitter
func HeuristicBasePrice(f PropertyFeatures) float64 {
	rate, ok := pricePerSqFt[f.AdminArea]
	if !ok {
		rate = defaultPricePerSqFt
	}

	price := f.SqFt * rate
	price *= 1 + f.Beds*0.1
	price *= 1 + f.Baths*0.05
	return price
}
