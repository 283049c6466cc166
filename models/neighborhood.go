package models

// Coordinate is a latitude/longitude pair in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NeighborhoodProfile is a static reference record for one neighborhood.
// Walkability is on a 0-100 scale, the remaining attribute scores on 0-10.
type NeighborhoodProfile struct {
	Name               string  `json:"name"`
	Borough            string  `json:"admin_area"`
	Locality           string  `json:"locality"`
	Sublocality        string  `json:"sublocality"`
	StreetName         string  `json:"street_name"`
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	Walkability        float64 `json:"walkability"`
	FoodScore          float64 `json:"food_score"`
	NightlifeScore     float64 `json:"nightlife_score"`
	TransitScore       float64 `json:"transit_score"`
	ParksScore         float64 `json:"parks_score"`
	DiversityScore     float64 `json:"diversity_score"`
	SafetyScore        float64 `json:"safety_score"`
	PrimaryDemographic string  `json:"primary_demographic"`
	Vibe               string  `json:"vibe"`
}

// Location returns the neighborhood centroid
func (n NeighborhoodProfile) Location() Coordinate {
	return Coordinate{Lat: n.Lat, Lng: n.Lng}
}

// NeighborhoodSummary is the template-based description shown on the details page
type NeighborhoodSummary struct {
	Overall        string   `json:"overall"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	SentimentScore float64  `json:"sentiment_score"`
	Sources        []string `json:"sources"`
}

// ScoreBreakdown holds the unweighted, unclamped per-criterion match values.
// Criteria the user did not answer stay at 0.
type ScoreBreakdown struct {
	Walkability  float64 `json:"walkability"`
	Food         float64 `json:"food"`
	Nightlife    float64 `json:"nightlife"`
	Transit      float64 `json:"transit"`
	Parks        float64 `json:"parks"`
	Diversity    float64 `json:"diversity"`
	Safety       float64 `json:"safety"`
	Commute      float64 `json:"commute"`
	Demographics float64 `json:"demographics"`
}
