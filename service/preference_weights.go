package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"nychousing-backend/models"
)

// PreferenceLabels are the display names of the quiz criteria
var PreferenceLabels = map[models.PreferenceKey]string{
	models.PrefWalkability:        "Walkability",
	models.PrefNightlife:          "Nightlife & Culture",
	models.PrefParks:              "Parks & Greenery",
	models.PrefPublicTransit:      "Transit Access",
	models.PrefFoodImportance:     "Food Scene",
	models.PrefDiversity:          "Diversity",
	models.PrefSafety:             "Safety & Calm",
	models.PrefMaxCommuteMiles:    "Commute Tolerance",
	models.PrefAgeGroupPreference: "Community Vibe",
}

const (
	minCommuteMiles = 1.0
	maxCommuteMiles = 20.0
)

// DerivePreferenceWeights turns quiz answers into importance weights, highest
// first. Equal weights keep the quiz declaration order. Unanswered criteria
// are omitted.
func DerivePreferenceWeights(prefs *models.PreferenceVector) []models.PreferenceWeight {
	weights := make([]models.PreferenceWeight, 0, len(models.PreferenceKeys))
	if prefs == nil {
		return weights
	}

	for _, key := range models.PreferenceKeys {
		var weight float64
		var descriptor string

		switch key {
		case models.PrefAgeGroupPreference:
			if prefs.AgeGroupPreference == nil {
				continue
			}
			raw := *prefs.AgeGroupPreference
			weight = 80
			if raw == models.NoAgePreference {
				weight = 45
			}
			descriptor = fmt.Sprintf("(%s)", raw)

		case models.PrefMaxCommuteMiles:
			raw, ok := prefs.Numeric(key)
			if !ok {
				continue
			}
			// a tight commute radius signals a high priority
			miles := clamp(raw, minCommuteMiles, maxCommuteMiles)
			weight = 100 - (miles-minCommuteMiles)/(maxCommuteMiles-minCommuteMiles)*100
			descriptor = numericDescriptor(raw)

		default:
			raw, ok := prefs.Numeric(key)
			if !ok {
				continue
			}
			weight = clamp(raw, 0, 10) / 10 * 100
			descriptor = numericDescriptor(raw)
		}

		label := PreferenceLabels[key]
		weights = append(weights, models.PreferenceWeight{
			Key:       key,
			Label:     label,
			Weight:    round2(weight),
			Narrative: describeWeight(label, weight, descriptor),
		})
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Weight > weights[j].Weight
	})
	return weights
}

func describeWeight(label string, weight float64, descriptor string) string {
	qualifier := "supporting"
	switch {
	case weight >= 75:
		qualifier = "crucial"
	case weight >= 50:
		qualifier = "important"
	}
	return strings.TrimSpace(fmt.Sprintf("%s is %s %s", label, qualifier, descriptor))
}

func numericDescriptor(raw float64) string {
	value := strconv.FormatFloat(raw, 'f', -1, 64)
	if raw <= 10 {
		return fmt.Sprintf("(%s/10)", value)
	}
	return fmt.Sprintf("(~%s mi)", value)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
