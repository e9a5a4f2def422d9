package models

import "math"

// Macro split used to derive gram targets from a caloric target:
// 30% protein, 40% carbs, 30% fat, at 4/4/9 kcal per gram.
const (
	proteinCalorieShare = 0.30
	carbCalorieShare    = 0.40
	fatCalorieShare     = 0.30

	caloriesPerGramProtein = 4
	caloriesPerGramCarb    = 4
	caloriesPerGramFat     = 9
)

// MacroTargets is a daily calorie target with its derived gram sub-targets.
type MacroTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// TargetsFor splits a caloric target into macro gram targets, rounded to the
// nearest gram.
func TargetsFor(calories int) MacroTargets {
	c := float64(calories)
	return MacroTargets{
		Calories: calories,
		ProteinG: int(math.Round(c * proteinCalorieShare / caloriesPerGramProtein)),
		CarbsG:   int(math.Round(c * carbCalorieShare / caloriesPerGramCarb)),
		FatG:     int(math.Round(c * fatCalorieShare / caloriesPerGramFat)),
	}
}

// Plan entry provenance.
const (
	ReasonLiked       = "liked"
	ReasonRecommended = "recommended"
)

// PlanEntry is one selected food in a meal plan, tagged with why it was
// chosen.
type PlanEntry struct {
	Food   FoodItem `json:"food"`
	Reason string   `json:"reason"`
}

// MealPlan is the output of the greedy assembler. It has no lifecycle of its
// own: it is recomputed from the liked pool, the catalog and the targets
// whenever any of them change.
type MealPlan struct {
	Foods   []PlanEntry  `json:"foods"`
	Totals  MacroSums    `json:"totals"`
	Targets MacroTargets `json:"targets"`
}
