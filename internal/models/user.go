package models

// ActivityLevel describes weekly exercise volume, used to scale BMR into a
// daily maintenance figure.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLightly    ActivityLevel = "lightly"
	ActivityModerately ActivityLevel = "moderately"
	ActivityActive     ActivityLevel = "active"
	ActivityVery       ActivityLevel = "very"
)

// activityMultipliers is the single source of truth for valid activity
// levels and their TDEE multipliers.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLightly:    1.375,
	ActivityModerately: 1.55,
	ActivityActive:     1.725,
	ActivityVery:       1.9,
}

// Multiplier returns the TDEE multiplier for the level and whether the level
// is recognized.
func (a ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[a]
	return m, ok
}

// Sex as used by the Mifflin-St Jeor formula. "other" uses the male constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// UserPreferences holds the dietary flags and dining hall selection that
// filter the swipe queue. Changing any of these resets the session.
type UserPreferences struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
	Keto       bool `json:"keto"`

	DiningHalls   []string      `json:"dining_halls"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// AllowsHall reports whether foods from the given dining hall pass the
// filter. An empty selection admits everything.
func (p UserPreferences) AllowsHall(location string) bool {
	if len(p.DiningHalls) == 0 {
		return true
	}
	for _, hall := range p.DiningHalls {
		if hall == location {
			return true
		}
	}
	return false
}

// UserProfile carries body metrics for the caloric target calculator. All
// fields are optional until onboarding completes.
type UserProfile struct {
	WeightLbs    float64 `json:"weight_lbs"`
	HeightInches float64 `json:"height_inches"`
	AgeYears     int     `json:"age_years"`
	Sex          Sex     `json:"sex"`
}

// Complete reports whether every metric the calculator needs is present.
func (u UserProfile) Complete() bool {
	return u.WeightLbs > 0 && u.HeightInches > 0 && u.AgeYears > 0 && u.Sex != ""
}
