package repository

import (
	"context"

	"nychousing-backend/models"
)

// StaticNeighborhoodRepository serves the built-in NYC neighborhood profiles
type StaticNeighborhoodRepository struct {
	neighborhoods []models.NeighborhoodProfile
	byName        map[string]int
}

// NewStaticNeighborhoodRepository creates a repository over the given
// profiles, or over the built-in NYC set when none are given.
func NewStaticNeighborhoodRepository(neighborhoods ...models.NeighborhoodProfile) *StaticNeighborhoodRepository {
	if len(neighborhoods) == 0 {
		neighborhoods = nycNeighborhoods
	}

	r := &StaticNeighborhoodRepository{
		neighborhoods: make([]models.NeighborhoodProfile, len(neighborhoods)),
		byName:        make(map[string]int, len(neighborhoods)),
	}
	copy(r.neighborhoods, neighborhoods)
	for i, n := range r.neighborhoods {
		r.byName[n.Name] = i
	}
	return r
}

// ListNeighborhoods returns a copy of every profile in catalog order
func (r *StaticNeighborhoodRepository) ListNeighborhoods(ctx context.Context) ([]models.NeighborhoodProfile, error) {
	out := make([]models.NeighborhoodProfile, len(r.neighborhoods))
	copy(out, r.neighborhoods)
	return out, nil
}

// GetNeighborhood looks a profile up by exact name. It returns nil for an
// unknown name.
func (r *StaticNeighborhoodRepository) GetNeighborhood(ctx context.Context, name string) (*models.NeighborhoodProfile, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	n := r.neighborhoods[i]
	return &n, nil
}

var nycNeighborhoods = []models.NeighborhoodProfile{
	{
		Name: "Williamsburg", Borough: "Brooklyn", Locality: "New York", Sublocality: "Kings County", StreetName: "Bedford Avenue",
		Lat: 40.7081, Lng: -73.9571,
		Walkability: 92, FoodScore: 9, NightlifeScore: 9, TransitScore: 8, ParksScore: 6, DiversityScore: 7, SafetyScore: 7,
		PrimaryDemographic: "young professionals", Vibe: "artsy and trendy",
	},
	{
		Name: "Astoria", Borough: "Queens", Locality: "New York", Sublocality: "Queens County", StreetName: "30th Avenue",
		Lat: 40.7722, Lng: -73.9300,
		Walkability: 88, FoodScore: 9, NightlifeScore: 7, TransitScore: 7, ParksScore: 7, DiversityScore: 9, SafetyScore: 8,
		PrimaryDemographic: "mixed", Vibe: "diverse and welcoming",
	},
	{
		Name: "Upper West Side", Borough: "Manhattan", Locality: "New York", Sublocality: "New York County", StreetName: "Broadway",
		Lat: 40.7870, Lng: -73.9754,
		Walkability: 97, FoodScore: 8, NightlifeScore: 6, TransitScore: 9, ParksScore: 10, DiversityScore: 6, SafetyScore: 9,
		PrimaryDemographic: "families", Vibe: "classic and residential",
	},
	{
		Name: "Park Slope", Borough: "Brooklyn", Locality: "New York", Sublocality: "Kings County", StreetName: "7th Avenue",
		Lat: 40.6710, Lng: -73.9778,
		Walkability: 94, FoodScore: 8, NightlifeScore: 5, TransitScore: 8, ParksScore: 10, DiversityScore: 6, SafetyScore: 9,
		PrimaryDemographic: "families", Vibe: "family-friendly brownstone",
	},
	{
		Name: "Long Island City", Borough: "Queens", Locality: "New York", Sublocality: "Queens County", StreetName: "Jackson Avenue",
		Lat: 40.7447, Lng: -73.9485,
		Walkability: 89, FoodScore: 7, NightlifeScore: 6, TransitScore: 9, ParksScore: 7, DiversityScore: 7, SafetyScore: 8,
		PrimaryDemographic: "young professionals", Vibe: "modern waterfront",
	},
	{
		Name: "Greenwich Village", Borough: "Manhattan", Locality: "New York", Sublocality: "New York County", StreetName: "Bleecker Street",
		Lat: 40.7336, Lng: -73.9974,
		Walkability: 99, FoodScore: 10, NightlifeScore: 9, TransitScore: 10, ParksScore: 6, DiversityScore: 7, SafetyScore: 8,
		PrimaryDemographic: "students", Vibe: "bohemian and historic",
	},
	{
		Name: "Bushwick", Borough: "Brooklyn", Locality: "New York", Sublocality: "Kings County", StreetName: "Wyckoff Avenue",
		Lat: 40.6942, Lng: -73.9194,
		Walkability: 90, FoodScore: 8, NightlifeScore: 9, TransitScore: 7, ParksScore: 5, DiversityScore: 8, SafetyScore: 6,
		PrimaryDemographic: "students", Vibe: "creative and gritty",
	},
	{
		Name: "Harlem", Borough: "Manhattan", Locality: "New York", Sublocality: "New York County", StreetName: "Malcolm X Boulevard",
		Lat: 40.8116, Lng: -73.9465,
		Walkability: 93, FoodScore: 8, NightlifeScore: 7, TransitScore: 9, ParksScore: 8, DiversityScore: 8, SafetyScore: 6,
		PrimaryDemographic: "mixed", Vibe: "cultural and historic",
	},
	{
		Name: "Flushing", Borough: "Queens", Locality: "New York", Sublocality: "Queens County", StreetName: "Main Street",
		Lat: 40.7678, Lng: -73.8330,
		Walkability: 91, FoodScore: 10, NightlifeScore: 5, TransitScore: 7, ParksScore: 8, DiversityScore: 10, SafetyScore: 8,
		PrimaryDemographic: "families", Vibe: "bustling multicultural",
	},
	{
		Name: "Tribeca", Borough: "Manhattan", Locality: "New York", Sublocality: "New York County", StreetName: "Hudson Street",
		Lat: 40.7163, Lng: -74.0086,
		Walkability: 96, FoodScore: 9, NightlifeScore: 7, TransitScore: 9, ParksScore: 7, DiversityScore: 5, SafetyScore: 10,
		PrimaryDemographic: "professionals", Vibe: "upscale and quiet",
	},
	{
		Name: "Bedford-Stuyvesant", Borough: "Brooklyn", Locality: "New York", Sublocality: "Kings County", StreetName: "Fulton Street",
		Lat: 40.6872, Lng: -73.9418,
		Walkability: 91, FoodScore: 7, NightlifeScore: 7, TransitScore: 8, ParksScore: 6, DiversityScore: 8, SafetyScore: 6,
		PrimaryDemographic: "young professionals", Vibe: "historic brownstone",
	},
	{
		Name: "Forest Hills", Borough: "Queens", Locality: "New York", Sublocality: "Queens County", StreetName: "Austin Street",
		Lat: 40.7185, Lng: -73.8448,
		Walkability: 85, FoodScore: 7, NightlifeScore: 4, TransitScore: 8, ParksScore: 9, DiversityScore: 7, SafetyScore: 9,
		PrimaryDemographic: "families", Vibe: "suburban and leafy",
	},
}
