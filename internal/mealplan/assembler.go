// Package mealplan assembles a day of foods from the user's liked pool,
// aiming at their macro targets. The assembler is a bounded greedy
// heuristic with a single repair pass, not an optimizer: with a small or
// low-calorie liked pool the plan may legitimately land short of target.
package mealplan

import (
	"math"
	"sort"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// Selection tuning.
const (
	// maxPerName caps how many times one dish name can appear in a plan,
	// regardless of location. Earlier builds allowed 3; current behavior is
	// 1 and the tests lock it in.
	maxPerName = 1

	// calorieCeilingSlack and calorieFloorSlack bound the acceptance window
	// around the target: totals should land in [target-300, target+200].
	calorieCeilingSlack = 200
	calorieFloorSlack   = 300

	// repairOvershoot lets the repair pass accept a single food that pushes
	// the total up to 100 kcal past the normal ceiling.
	repairOvershoot = 100

	// proteinStopRatio is the share of the protein target that must be met
	// before the greedy loop may stop early.
	proteinStopRatio = 0.8

	// proteinTieWindowG treats foods within this many grams of protein as
	// equals, letting calorie fit break the tie.
	proteinTieWindowG = 5

	// mealsPerDay drives the ideal per-food calorie value used for
	// tie-breaking: targetCalories / mealsPerDay.
	mealsPerDay = 4

	// maxRepairAttempts bounds the repair loop.
	maxRepairAttempts = 200

	// Repair pass blend: how much a candidate closes the calorie gap vs the
	// protein gap.
	repairCalorieWeight = 0.6
	repairProteinWeight = 0.4
)

// running tracks the in-progress plan totals.
type running struct {
	calories float64
	protein  float64
	carbs    float64
	fat      float64
}

func (r *running) add(f models.FoodItem) {
	r.calories += f.Calories.Grams()
	r.protein += f.ProteinG.Grams()
	r.carbs += f.TotalCarbG.Grams()
	r.fat += f.TotalFatG.Grams()
}

// Assemble builds a meal plan from the liked pool. Liked foods are resolved
// against the catalog by (name, location); anything that no longer exists
// there is dropped silently. An empty or unresolvable pool produces an
// empty plan, never an error.
func Assemble(liked, catalog []models.FoodItem, targets models.MacroTargets) models.MealPlan {
	plan := models.MealPlan{
		Foods:   []models.PlanEntry{},
		Targets: targets,
	}

	pool := resolve(liked, catalog)
	if len(pool) == 0 {
		return plan
	}

	target := float64(targets.Calories)
	idealPerFood := target / mealsPerDay

	// Primary ordering: protein density first, calorie fit second.
	sorted := make([]models.FoodItem, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := sorted[i].ProteinG.Grams(), sorted[j].ProteinG.Grams()
		if math.Abs(pi-pj) >= proteinTieWindowG {
			return pi > pj
		}
		di := math.Abs(sorted[i].Calories.Grams() - idealPerFood)
		dj := math.Abs(sorted[j].Calories.Grams() - idealPerFood)
		return di < dj
	})

	var totals running
	nameCounts := make(map[string]int)

	shouldStop := func() bool {
		return totals.calories >= target-calorieFloorSlack &&
			totals.calories <= target+calorieCeilingSlack &&
			totals.protein >= float64(targets.ProteinG)*proteinStopRatio
	}

	tryAdd := func(f models.FoodItem, ceiling float64) bool {
		name := models.NormalizeName(f.Name)
		if nameCounts[name] >= maxPerName {
			return false
		}
		if totals.calories+f.Calories.Grams() > ceiling {
			return false
		}
		totals.add(f)
		nameCounts[name]++
		plan.Foods = append(plan.Foods, models.PlanEntry{Food: f, Reason: models.ReasonLiked})
		return true
	}

	for _, f := range sorted {
		if shouldStop() {
			break
		}
		tryAdd(f, target+calorieCeilingSlack)
	}

	// Repair pass: still more than 300 kcal short, re-rank by how well each
	// food fills the remaining calorie and protein gaps and keep adding.
	// The per-name cap still applies, so with cap 1 this pass only finds
	// foods the primary pass skipped for calorie fit.
	if totals.calories < target-calorieFloorSlack {
		for attempts := 0; attempts < maxRepairAttempts && !shouldStop(); attempts++ {
			calGap := target - totals.calories
			proteinGap := float64(targets.ProteinG) - totals.protein

			repair := make([]models.FoodItem, len(pool))
			copy(repair, pool)
			sort.SliceStable(repair, func(i, j int) bool {
				return repairScore(repair[i], calGap, proteinGap) > repairScore(repair[j], calGap, proteinGap)
			})

			added := false
			for _, f := range repair {
				if tryAdd(f, target+calorieCeilingSlack+repairOvershoot) {
					added = true
					break
				}
			}
			if !added {
				break
			}
		}
	}

	plan.Totals = models.MacroSums{
		Calories: int(math.Round(totals.calories)),
		ProteinG: int(math.Round(totals.protein)),
		CarbsG:   int(math.Round(totals.carbs)),
		FatG:     int(math.Round(totals.fat)),
	}
	return plan
}

// repairScore blends how much of the remaining calorie and protein gaps a
// food would fill, each capped at 1 so oversized foods don't dominate.
func repairScore(f models.FoodItem, calGap, proteinGap float64) float64 {
	var calFill, proteinFill float64
	if calGap > 0 {
		calFill = math.Min(1, f.Calories.Grams()/calGap)
	}
	if proteinGap > 0 {
		proteinFill = math.Min(1, f.ProteinG.Grams()/proteinGap)
	}
	return repairCalorieWeight*calFill + repairProteinWeight*proteinFill
}

// resolve matches liked foods back into the catalog by (name, location),
// taking the catalog's record as authoritative. Unmatched likes drop out.
func resolve(liked, catalog []models.FoodItem) []models.FoodItem {
	byKey := make(map[models.FoodKey]models.FoodItem, len(catalog))
	for _, f := range catalog {
		key := f.Key()
		if _, ok := byKey[key]; !ok {
			byKey[key] = f
		}
	}

	out := make([]models.FoodItem, 0, len(liked))
	seen := make(map[models.FoodKey]struct{}, len(liked))
	for _, l := range liked {
		key := l.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if f, ok := byKey[key]; ok {
			out = append(out, f)
		}
	}
	return out
}
