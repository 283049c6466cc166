package models

import (
	"database/sql/driver"
	"encoding/json"
)

// PreferenceKey identifies one quiz criterion
type PreferenceKey string

const (
	PrefWalkability        PreferenceKey = "walkability"
	PrefNightlife          PreferenceKey = "nightlife"
	PrefParks              PreferenceKey = "parks"
	PrefPublicTransit      PreferenceKey = "public_transit"
	PrefFoodImportance     PreferenceKey = "food_importance"
	PrefDiversity          PreferenceKey = "diversity"
	PrefSafety             PreferenceKey = "safety"
	PrefMaxCommuteMiles    PreferenceKey = "max_commute_miles"
	PrefAgeGroupPreference PreferenceKey = "age_group_preference"
)

// NoAgePreference is the age_group_preference answer that matches any demographic
const NoAgePreference = "no_preference"

// PreferenceKeys lists the quiz criteria in declaration order. Ties in
// derived preference weights keep this order.
var PreferenceKeys = []PreferenceKey{
	PrefWalkability,
	PrefNightlife,
	PrefParks,
	PrefPublicTransit,
	PrefFoodImportance,
	PrefDiversity,
	PrefSafety,
	PrefMaxCommuteMiles,
	PrefAgeGroupPreference,
}

// PreferenceVector holds the raw quiz answers. Every field is optional;
// nil means the user did not answer that question.
type PreferenceVector struct {
	Walkability        *float64    `json:"walkability,omitempty"`
	FoodImportance     *float64    `json:"food_importance,omitempty"`
	Nightlife          *float64    `json:"nightlife,omitempty"`
	PublicTransit      *float64    `json:"public_transit,omitempty"`
	Parks              *float64    `json:"parks,omitempty"`
	Diversity          *float64    `json:"diversity,omitempty"`
	Safety             *float64    `json:"safety,omitempty"`
	MaxCommuteMiles    *float64    `json:"max_commute_miles,omitempty"`
	AgeGroupPreference *string     `json:"age_group_preference,omitempty"`
	TargetLocation     *Coordinate `json:"target_location,omitempty"`
}

// IsEmpty reports whether no answer at all was recorded
func (p *PreferenceVector) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, key := range PreferenceKeys {
		if p.Has(key) {
			return false
		}
	}
	return p.TargetLocation == nil
}

// Clone returns a deep copy that shares no pointers with p
func (p *PreferenceVector) Clone() *PreferenceVector {
	if p == nil {
		return nil
	}
	return &PreferenceVector{
		Walkability:        clonePtr(p.Walkability),
		FoodImportance:     clonePtr(p.FoodImportance),
		Nightlife:          clonePtr(p.Nightlife),
		PublicTransit:      clonePtr(p.PublicTransit),
		Parks:              clonePtr(p.Parks),
		Diversity:          clonePtr(p.Diversity),
		Safety:             clonePtr(p.Safety),
		MaxCommuteMiles:    clonePtr(p.MaxCommuteMiles),
		AgeGroupPreference: clonePtr(p.AgeGroupPreference),
		TargetLocation:     clonePtr(p.TargetLocation),
	}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Has reports whether the given criterion was answered
func (p *PreferenceVector) Has(key PreferenceKey) bool {
	if p == nil {
		return false
	}
	if key == PrefAgeGroupPreference {
		return p.AgeGroupPreference != nil
	}
	_, ok := p.Numeric(key)
	return ok
}

// Numeric returns the raw value of a numeric criterion
func (p *PreferenceVector) Numeric(key PreferenceKey) (float64, bool) {
	if p == nil {
		return 0, false
	}
	var v *float64
	switch key {
	case PrefWalkability:
		v = p.Walkability
	case PrefFoodImportance:
		v = p.FoodImportance
	case PrefNightlife:
		v = p.Nightlife
	case PrefPublicTransit:
		v = p.PublicTransit
	case PrefParks:
		v = p.Parks
	case PrefDiversity:
		v = p.Diversity
	case PrefSafety:
		v = p.Safety
	case PrefMaxCommuteMiles:
		v = p.MaxCommuteMiles
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// NumericOr returns the raw value of a numeric criterion or def when unanswered
func (p *PreferenceVector) NumericOr(key PreferenceKey, def float64) float64 {
	if v, ok := p.Numeric(key); ok {
		return v
	}
	return def
}

// Value implements driver.Valuer for JSONB
func (p PreferenceVector) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *PreferenceVector) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, p)
}
