package models

// PreferenceWeight is the derived importance (0-100) of one quiz criterion
type PreferenceWeight struct {
	Key       PreferenceKey `json:"key"`
	Label     string        `json:"label"`
	Weight    float64       `json:"weight"`
	Narrative string        `json:"narrative"`
}

// Persona is the archetype derived from the user's dominant preference
type Persona struct {
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Priorities  []string `json:"priorities"`
	NYCFocus    string   `json:"nyc_focus"`
}

// SourceSnippet is a piece of local news used as narrative context
type SourceSnippet struct {
	Source   string `json:"source"`
	Borough  string `json:"borough"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
}

// NeighborhoodHighlights are the attribute values surfaced on portfolio cards
type NeighborhoodHighlights struct {
	Walkability float64 `json:"walkability"`
	Nightlife   float64 `json:"nightlife"`
	Parks       float64 `json:"parks"`
	Transit     float64 `json:"transit"`
}

// NeighborhoodMatch is a neighborhood ranked by lifestyle compatibility
type NeighborhoodMatch struct {
	Name       string                 `json:"name"`
	Borough    string                 `json:"borough"`
	Score      float64                `json:"score"`
	Summary    string                 `json:"summary"`
	Tags       []string               `json:"tags"`
	Highlights NeighborhoodHighlights `json:"highlights"`
}

// GeneratedBy tags where a narrative summary came from
type GeneratedBy string

const (
	GeneratedByExternal GeneratedBy = "external"
	GeneratedByFallback GeneratedBy = "fallback"
)

// AISummary is the narrative part of a portfolio
type AISummary struct {
	Headline     string      `json:"headline"`
	Insights     []string    `json:"insights"`
	CallToAction string      `json:"call_to_action"`
	GeneratedBy  GeneratedBy `json:"generated_by"`
}

// PortfolioArtifact is the full recommendation bundle returned to the user
type PortfolioArtifact struct {
	Persona           Persona             `json:"persona"`
	PreferenceWeights []PreferenceWeight  `json:"preference_weights"`
	TopNeighborhoods  []NeighborhoodMatch `json:"top_neighborhoods"`
	Sources           []SourceSnippet     `json:"sources"`
	AISummary         AISummary           `json:"ai_summary"`
}
