package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Nutrient is a single nutrition fact that may be unknown. Catalog data is
// scraped and frequently ships null, empty or non-numeric values; those all
// map to an unknown Nutrient, which aggregates as zero but still renders as
// empty rather than a misleading "0".
type Nutrient struct {
	Value float64
	Known bool
}

// KnownNutrient builds a nutrient with a present value.
func KnownNutrient(v float64) Nutrient {
	return Nutrient{Value: v, Known: true}
}

// Or returns the nutrient value, or fallback when the value is unknown.
func (n Nutrient) Or(fallback float64) float64 {
	if !n.Known {
		return fallback
	}
	return n.Value
}

// Grams returns the value usable for aggregation: unknown counts as zero.
func (n Nutrient) Grams() float64 { return n.Or(0) }

// String renders the nutrient for display. Unknown renders as the empty
// string so the UI can distinguish "no data" from an actual zero.
func (n Nutrient) String() string {
	if !n.Known {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON serializes known values as strings and unknown as "".
func (n Nutrient) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON accepts numbers, numeric strings, empty strings, "N/A" and
// null. Anything that does not parse to a finite number becomes unknown;
// malformed catalog rows must never be fatal.
func (n *Nutrient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Nutrient{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = Nutrient{}
			return nil
		}
		*n = ParseNutrient(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*n = Nutrient{}
		return nil
	}
	*n = KnownNutrient(v)
	return nil
}

// ParseNutrient converts a raw string field into a Nutrient. Empty strings
// and unparseable values (including "N/A" placeholders and NaN) are unknown.
func ParseNutrient(raw string) Nutrient {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "n/a") {
		return Nutrient{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		return Nutrient{}
	}
	return KnownNutrient(v)
}

// FoodItem is a single catalog entry: one dish served at one dining hall.
type FoodItem struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Category  string `json:"category"`
	MealType  string `json:"meal_type"`
	DietTypes string `json:"diet_types"`
	Allergens string `json:"allergens"`

	Calories        Nutrient `json:"calories"`
	CaloriesFromFat Nutrient `json:"calories_from_fat"`
	TotalFatG       Nutrient `json:"total_fat_g"`
	SaturatedFatG   Nutrient `json:"saturated_fat_g"`
	TransFatG       Nutrient `json:"trans_fat_g"`
	CholesterolMg   Nutrient `json:"cholesterol_mg"`
	SodiumMg        Nutrient `json:"sodium_mg"`
	TotalCarbG      Nutrient `json:"total_carb_g"`
	DietaryFiberG   Nutrient `json:"dietary_fiber_g"`
	SugarsG         Nutrient `json:"sugars_g"`
	ProteinG        Nutrient `json:"protein_g"`
}

// FoodKey identifies a food for matching purposes: the same dish name at the
// same location is the same food. Names compare case-insensitively, trimmed.
type FoodKey struct {
	Name     string
	Location string
}

// NormalizeName canonicalizes a dish name for identity comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Key returns the (name, location) identity of the food.
func (f FoodItem) Key() FoodKey {
	return FoodKey{Name: NormalizeName(f.Name), Location: f.Location}
}

// SameDish reports whether two foods share a dish name, regardless of where
// they are served. This is the looser identity behind auto-like propagation.
func (f FoodItem) SameDish(other FoodItem) bool {
	return NormalizeName(f.Name) == NormalizeName(other.Name)
}

// MacroSums aggregates the four macros the planner and trackers care about.
// Values are rounded to whole units for presentation.
type MacroSums struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}
