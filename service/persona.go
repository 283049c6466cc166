package service

import (
	"fmt"
	"sort"
	"strings"

	"nychousing-backend/models"
)

type personaTemplate struct {
	Title   string
	Tagline string
	Focus   string
}

var personaTemplates = map[models.PreferenceKey]personaTemplate{
	models.PrefWalkability: {
		Title:   "Transit-First Urbanist",
		Tagline: "Loves strolling and subway access",
		Focus:   "Manhattan core & waterfront Brooklyn",
	},
	models.PrefNightlife: {
		Title:   "After-Hours Creative",
		Tagline: "Wants late-night energy with local culture",
		Focus:   "Downtown Manhattan & North Brooklyn",
	},
	models.PrefParks: {
		Title:   "Greenway Seeker",
		Tagline: "Needs tree-lined blocks and quick park escapes",
		Focus:   "Brooklyn brownstones & Queens waterfront",
	},
	models.PrefPublicTransit: {
		Title:   "Car-Free Commuter",
		Tagline: "Optimizes for express lines and short transfers",
		Focus:   "Express corridors across all five boroughs",
	},
	models.PrefFoodImportance: {
		Title:   "Culinary Explorer",
		Tagline: "Hunts for diverse bites and market culture",
		Focus:   "Queens corridors & downtown Manhattan",
	},
	models.PrefDiversity: {
		Title:   "Global Citizen",
		Tagline: "Thrives in multicultural hubs",
		Focus:   "Queens, Brooklyn, and Northern Manhattan",
	},
	models.PrefSafety: {
		Title:   "Calm Community Builder",
		Tagline: "Wants peaceful streets with local staples",
		Focus:   "Park Slope, Riverdale & Bay Ridge pockets",
	},
	models.PrefMaxCommuteMiles: {
		Title:   "Hyper-Local Weekday",
		Tagline: "Aims to stay close to office or campus",
		Focus:   "Neighborhoods within 30 minutes of Midtown",
	},
	models.PrefAgeGroupPreference: {
		Title:   "Community Curator",
		Tagline: "Looks for neighbors in a similar life stage",
		Focus:   "Clustered micro-neighborhoods citywide",
	},
}

var genericPersonaTemplate = personaTemplate{
	Title:   "NYC Explorer",
	Tagline: "Balances cost, culture, and commute",
	Focus:   "Citywide",
}

// DefaultPersona is returned before the user has any derived preferences
func DefaultPersona() models.Persona {
	return models.Persona{
		Title:       "NYC Explorer",
		Tagline:     "Balanced preferences across the five boroughs",
		Description: "Take the lifestyle quiz to unlock a personalized portrait.",
		Priorities:  []string{},
		NYCFocus:    "Citywide",
	}
}

// SynthesizePersona picks the persona of the dominant preference and focuses
// it on the boroughs of the top matches.
func SynthesizePersona(weights []models.PreferenceWeight, top []models.NeighborhoodMatch) models.Persona {
	if len(weights) == 0 {
		return DefaultPersona()
	}

	dominant := weights[0]
	secondary := weights[0]
	if len(weights) > 1 {
		secondary = weights[1]
	}

	tmpl, ok := personaTemplates[dominant.Key]
	if !ok {
		tmpl = genericPersonaTemplate
	}

	focus := tmpl.Focus
	if len(top) > 0 {
		focus = strings.Join(boroughsOf(top), ", ")
	}

	description := fmt.Sprintf(
		"You put %s at the center of your NYC search while also caring about %s. "+
			"We'll keep recommendations inside the five boroughs and lean into neighborhoods that fit those traits.",
		strings.ToLower(dominant.Label), strings.ToLower(secondary.Label))

	return models.Persona{
		Title:       tmpl.Title,
		Tagline:     tmpl.Tagline,
		Description: description,
		Priorities:  []string{dominant.Label, secondary.Label},
		NYCFocus:    focus,
	}
}

// boroughsOf returns the sorted, distinct boroughs of the matches
func boroughsOf(matches []models.NeighborhoodMatch) []string {
	seen := make(map[string]struct{}, len(matches))
	boroughs := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m.Borough]; ok {
			continue
		}
		seen[m.Borough] = struct{}{}
		boroughs = append(boroughs, m.Borough)
	}
	sort.Strings(boroughs)
	return boroughs
}
