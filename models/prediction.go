package models

// DefaultPropertyType is used when a ranking request omits the property type
const DefaultPropertyType = "CONDO"

// PropertyCriteria describes the property a user wants priced across neighborhoods
type PropertyCriteria struct {
	Type        string  `json:"propertyType"`
	Beds        float64 `json:"beds"`
	Baths       float64 `json:"baths"`
	SqFt        float64 `json:"propertySqft"`
	Budget      float64 `json:"budget"`
	YearsFuture int     `json:"yearsFuture"`
}

// ColorTier buckets a combined score for map display
type ColorTier string

const (
	TierGreen  ColorTier = "green"
	TierYellow ColorTier = "yellow"
	TierRed    ColorTier = "red"
)

// ScoredPrediction is one ranked neighborhood in a price ranking response
type ScoredPrediction struct {
	Name               string               `json:"name"`
	Lat                float64              `json:"lat"`
	Lng                float64              `json:"lng"`
	PredictedPrice     float64              `json:"predicted_price"`
	AffordabilityScore float64              `json:"affordability_score"`
	LifestyleScore     float64              `json:"lifestyle_score"`
	CombinedScore      float64              `json:"combined_score"`
	Color              ColorTier            `json:"color"`
	Details            *NeighborhoodProfile `json:"details"`
}
