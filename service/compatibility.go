package service

import (
	"math"

	"nychousing-backend/models"
)

const (
	// NeutralCompatibilityScore is returned when no preferences are known
	NeutralCompatibilityScore = 50.0

	defaultSliderPreference = 5.0
	defaultMaxCommuteMiles  = 10.0
	defaultAgePreference    = "mixed"
	defaultDemographic      = "mixed"

	commuteWeight     = 10.0
	demographicWeight = 10.0
)

// sliderCriterion compares a 0-10 preference with a 0-10 neighborhood attribute
type sliderCriterion struct {
	key       models.PreferenceKey
	weight    float64
	attribute func(n models.NeighborhoodProfile) float64
}

var sliderCriteria = []sliderCriterion{
	{models.PrefWalkability, 15, func(n models.NeighborhoodProfile) float64 { return n.Walkability / 10 }},
	{models.PrefFoodImportance, 12, func(n models.NeighborhoodProfile) float64 { return n.FoodScore }},
	{models.PrefNightlife, 10, func(n models.NeighborhoodProfile) float64 { return n.NightlifeScore }},
	{models.PrefPublicTransit, 13, func(n models.NeighborhoodProfile) float64 { return n.TransitScore }},
	{models.PrefParks, 8, func(n models.NeighborhoodProfile) float64 { return n.ParksScore }},
	{models.PrefDiversity, 7, func(n models.NeighborhoodProfile) float64 { return n.DiversityScore }},
	{models.PrefSafety, 15, func(n models.NeighborhoodProfile) float64 { return n.SafetyScore }},
}

// sliderMatch is 100 minus ten points per unit of difference. It is not
// clamped and goes negative for large gaps.
func sliderMatch(pref, value float64) float64 {
	return 100 - math.Abs(pref-value)*10
}

// commuteMatch falls linearly from 100 at the target to 0 at the commute limit
func commuteMatch(prefs *models.PreferenceVector, n models.NeighborhoodProfile) float64 {
	maxMiles := prefs.NumericOr(models.PrefMaxCommuteMiles, defaultMaxCommuteMiles)
	if maxMiles <= 0 {
		return 0
	}
	distance := Distance(*prefs.TargetLocation, n.Location())
	if distance > maxMiles {
		return 0
	}
	return 100 - distance/maxMiles*100
}

func demographicMatch(prefs *models.PreferenceVector, n models.NeighborhoodProfile) float64 {
	pref := defaultAgePreference
	if prefs.AgeGroupPreference != nil {
		pref = *prefs.AgeGroupPreference
	}
	demo := n.PrimaryDemographic
	if demo == "" {
		demo = defaultDemographic
	}
	if pref == demo || pref == models.NoAgePreference {
		return 100
	}
	return 50
}

// CompatibilityScore returns the 0-100 lifestyle match between the quiz
// answers and a neighborhood. Unanswered sliders count as 5; the commute
// criterion only participates when a target location is set.
func CompatibilityScore(prefs *models.PreferenceVector, n models.NeighborhoodProfile) float64 {
	if prefs.IsEmpty() {
		return NeutralCompatibilityScore
	}

	var total, weights float64
	for _, c := range sliderCriteria {
		pref := prefs.NumericOr(c.key, defaultSliderPreference)
		total += sliderMatch(pref, c.attribute(n)) * c.weight
		weights += c.weight
	}

	if prefs.TargetLocation != nil {
		total += commuteMatch(prefs, n) * commuteWeight
		weights += commuteWeight
	}

	total += demographicMatch(prefs, n) * demographicWeight
	weights += demographicWeight

	if weights == 0 {
		return NeutralCompatibilityScore
	}
	return clampScore(total / weights)
}

// ScoreBreakdown returns the unweighted match of every criterion the user
// answered. Unanswered criteria are reported as 0.
func ScoreBreakdown(prefs *models.PreferenceVector, n models.NeighborhoodProfile) models.ScoreBreakdown {
	var b models.ScoreBreakdown
	if prefs.IsEmpty() {
		return b
	}

	slots := map[models.PreferenceKey]*float64{
		models.PrefWalkability:    &b.Walkability,
		models.PrefFoodImportance: &b.Food,
		models.PrefNightlife:      &b.Nightlife,
		models.PrefPublicTransit:  &b.Transit,
		models.PrefParks:          &b.Parks,
		models.PrefDiversity:      &b.Diversity,
		models.PrefSafety:         &b.Safety,
	}
	for _, c := range sliderCriteria {
		if pref, ok := prefs.Numeric(c.key); ok {
			*slots[c.key] = sliderMatch(pref, c.attribute(n))
		}
	}

	if prefs.TargetLocation != nil {
		b.Commute = commuteMatch(prefs, n)
	}
	if prefs.AgeGroupPreference != nil {
		b.Demographics = demographicMatch(prefs, n)
	}

	return b
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
