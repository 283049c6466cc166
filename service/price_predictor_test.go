package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"

	"nychousing-backend/models"
	"nychousing-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const linearArtifact = `{
  "version": 1,
  "intercept": 100000,
  "numeric": {"PROPERTYSQFT": 500, "BEDS": 20000},
  "categorical": {"ADMINISTRATIVE_AREA_LEVEL_2": {"Manhattan": 250000}, "TYPE": {"CONDO": 10000}}
}`

type memoryStore struct {
	objects map[string][]byte
	err     error
}

func (m *memoryStore) Upload(ctx context.Context, key string, data io.Reader) (string, error) {
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.objects[key] = b
	return key, nil
}

func (m *memoryStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func manhattan() models.NeighborhoodProfile {
	n := balancedNeighborhood("Midtown", "Manhattan")
	n.Lat, n.Lng = 40.7549, -73.9840
	return n
}

func TestPredict_HeuristicManhattan(t *testing.T) {
	p := NewPricePredictor(WithRandSource(rand.NewSource(42)))
	require.Equal(t, "heuristic", p.ModelName())

	criteria := models.PropertyCriteria{Type: "CONDO", Beds: 2, Baths: 1, SqFt: 1000}
	base := 1000 * 1500 * 1.2 * 1.05

	for i := 0; i < 50; i++ {
		price, err := p.Predict(criteria, manhattan(), 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, price, base*0.9)
		assert.LessOrEqual(t, price, base*1.1)
	}
}

func TestPredict_PinnedSourceIsReproducible(t *testing.T) {
	criteria := models.PropertyCriteria{Type: "CONDO", Beds: 2, Baths: 1, SqFt: 1000}

	a, err := NewPricePredictor(WithRandSource(rand.NewSource(7))).Predict(criteria, manhattan(), 0)
	require.NoError(t, err)
	b, err := NewPricePredictor(WithRandSource(rand.NewSource(7))).Predict(criteria, manhattan(), 0)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestHeuristicBasePrice(t *testing.T) {
	tests := []struct {
		name    string
		borough string
		want    float64
	}{
		{"manhattan", "Manhattan", 1500},
		{"brooklyn", "Brooklyn", 1000},
		{"queens", "Queens", 800},
		{"staten island", "Staten Island", 700},
		{"bronx", "Bronx", 600},
		{"unknown borough", "Westchester", 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := PropertyFeatures{AdminArea: tt.borough, SqFt: 100}
			assert.InDelta(t, tt.want*100, HeuristicBasePrice(f), 1e-6)
		})
	}
}

func TestPredict_AppreciationCompounds(t *testing.T) {
	model, err := ParseModelArtifact(strings.NewReader(`{"version":1,"intercept":1000000}`))
	require.NoError(t, err)
	p := NewPricePredictor(WithPriceModel(model), WithAppreciationRate(0.05))

	criteria := models.PropertyCriteria{Type: "CONDO", Beds: 1, Baths: 1, SqFt: 500}
	now, err := p.Predict(criteria, manhattan(), 0)
	require.NoError(t, err)
	later, err := p.Predict(criteria, manhattan(), 10)
	require.NoError(t, err)

	assert.InDelta(t, 1000000, now, 1e-6)
	assert.InDelta(t, 1000000*math.Pow(1.05, 10), later, 1e-3)
}

func TestPredict_RejectsInvalidInput(t *testing.T) {
	p := NewPricePredictor()

	_, err := p.Predict(models.PropertyCriteria{SqFt: 500}, manhattan(), -1)
	assert.True(t, errors.Is(err, ErrInvalidPropertyInput))

	tests := []struct {
		name     string
		criteria models.PropertyCriteria
	}{
		{"negative sqft", models.PropertyCriteria{SqFt: -10}},
		{"negative beds", models.PropertyCriteria{SqFt: 800, Beds: -11, Baths: 1}},
		{"negative baths", models.PropertyCriteria{SqFt: 800, Beds: 2, Baths: -3}},
		{"nan beds", models.PropertyCriteria{SqFt: 800, Beds: math.NaN()}},
		{"infinite sqft", models.PropertyCriteria{SqFt: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := p.Predict(tt.criteria, manhattan(), 0)
			assert.True(t, errors.Is(err, ErrInvalidPropertyInput))
			assert.Zero(t, price)
		})
	}
}

func TestTrainedModel_BasePrice(t *testing.T) {
	model, err := ParseModelArtifact(strings.NewReader(linearArtifact))
	require.NoError(t, err)

	f := PropertyFeatures{Type: "CONDO", Beds: 2, SqFt: 1000, AdminArea: "Manhattan"}
	price, err := model.BasePrice(f)
	require.NoError(t, err)
	assert.InDelta(t, 100000+500*1000+20000*2+250000+10000, price, 1e-6)

	// unseen categories contribute nothing
	f.AdminArea = "Bronx"
	f.Type = "TOWNHOUSE"
	price, err = model.BasePrice(f)
	require.NoError(t, err)
	assert.InDelta(t, 100000+500*1000+20000*2, price, 1e-6)
}

func TestParseModelArtifact_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"wrong version", `{"version":2,"intercept":1}`, ErrIncompatibleArtifact},
		{"unknown numeric feature", `{"version":1,"numeric":{"FLOORS":1}}`, ErrIncompatibleArtifact},
		{"unknown categorical feature", `{"version":1,"categorical":{"ZIP":{"10001":1}}}`, ErrIncompatibleArtifact},
		{"not json", `pickle`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelArtifact(strings.NewReader(tt.payload))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestPredict_FallsBackWhenTrainedModelFails(t *testing.T) {
	model, err := ParseModelArtifact(strings.NewReader(`{"version":1,"intercept":-5}`))
	require.NoError(t, err)
	p := NewPricePredictor(WithPriceModel(model), WithRandSource(rand.NewSource(1)))

	criteria := models.PropertyCriteria{Type: "CONDO", Beds: 2, Baths: 1, SqFt: 1000}
	price, err := p.Predict(criteria, manhattan(), 0)
	require.NoError(t, err)

	base := 1000 * 1500 * 1.2 * 1.05
	assert.GreaterOrEqual(t, price, base*0.9)
	assert.LessOrEqual(t, price, base*1.1)
}

func TestLoadPricePredictor(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	t.Run("loads a valid artifact", func(t *testing.T) {
		store := &memoryStore{objects: map[string][]byte{"model.json": []byte(linearArtifact)}}
		p := LoadPricePredictor(ctx, store, "model.json", WithPredictorLogger(logger))
		assert.Equal(t, "trained", p.ModelName())
	})

	tests := []struct {
		name  string
		store storage.Storage
	}{
		{"missing artifact", &memoryStore{objects: map[string][]byte{}}},
		{"incompatible artifact", &memoryStore{objects: map[string][]byte{"model.json": []byte(`{"version":9}`)}}},
		{"store error", &memoryStore{objects: map[string][]byte{}, err: errors.New("access denied")}},
		{"no store", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := LoadPricePredictor(ctx, tt.store, "model.json", WithPredictorLogger(logger))
			assert.Equal(t, "heuristic", p.ModelName())
		})
	}
}

func TestPredictBatch_PreservesOrder(t *testing.T) {
	model, err := ParseModelArtifact(strings.NewReader(`{"version":1,"numeric":{"PROPERTYSQFT":1}}`))
	require.NoError(t, err)
	p := NewPricePredictor(WithPriceModel(model))

	inputs := make([]PropertyFeatures, 20)
	for i := range inputs {
		inputs[i] = PropertyFeatures{SqFt: float64(i * 100)}
	}

	prices, err := p.PredictBatch(context.Background(), inputs, 0)
	require.NoError(t, err)
	require.Len(t, prices, len(inputs))
	for i, price := range prices {
		assert.InDelta(t, float64(i*100), price, 1e-9)
	}
}

func TestPredictBatch_ReportsInvalidInput(t *testing.T) {
	p := NewPricePredictor()
	_, err := p.PredictBatch(context.Background(), []PropertyFeatures{{SqFt: 100}, {SqFt: -1}}, 0)
	assert.True(t, errors.Is(err, ErrInvalidPropertyInput))
}
