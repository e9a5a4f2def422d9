package mealplan

import (
	"testing"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

func planFood(name, location string, calories, protein float64) models.FoodItem {
	return models.FoodItem{
		Name:     name,
		Location: location,
		Calories: models.KnownNutrient(calories),
		ProteinG: models.KnownNutrient(protein),
	}
}

func TestAssemble_EmptyLikedPool(t *testing.T) {
	catalog := []models.FoodItem{planFood("Rice", "Worcester", 200, 4)}
	plan := Assemble(nil, catalog, models.TargetsFor(2000))

	if len(plan.Foods) != 0 {
		t.Errorf("Expected empty plan for empty liked pool, got %d foods", len(plan.Foods))
	}
	if plan.Totals.Calories != 0 {
		t.Errorf("Expected zero calorie total, got %d", plan.Totals.Calories)
	}
}

func TestAssemble_UnresolvableLikesDropOut(t *testing.T) {
	liked := []models.FoodItem{planFood("Ghost Dish", "Worcester", 500, 30)}
	catalog := []models.FoodItem{planFood("Rice", "Worcester", 200, 4)}

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	if len(plan.Foods) != 0 {
		t.Errorf("Expected likes missing from catalog to be dropped, got %d foods", len(plan.Foods))
	}
}

func TestAssemble_PerNameCap(t *testing.T) {
	liked := []models.FoodItem{
		planFood("Grilled Chicken Breast", "Worcester", 250, 35),
		planFood("Grilled Chicken Breast", "Franklin", 250, 35),
		planFood("Grilled Chicken Breast", "Berkshire", 250, 35),
	}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	count := 0
	for _, entry := range plan.Foods {
		if models.NormalizeName(entry.Food.Name) == "grilled chicken breast" {
			count++
		}
	}
	if count > 1 {
		t.Errorf("Expected at most 1 instance per dish name, got %d", count)
	}
}

func TestAssemble_CalorieCeiling(t *testing.T) {
	target := 2000
	liked := []models.FoodItem{
		planFood("Chicken", "Worcester", 600, 40),
		planFood("Pasta", "Worcester", 700, 15),
		planFood("Burger", "Worcester", 800, 30),
		planFood("Pizza Slice", "Worcester", 500, 20),
		planFood("Burrito", "Worcester", 750, 25),
		planFood("Salmon", "Worcester", 450, 35),
	}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(target))

	if plan.Totals.Calories > target+300 {
		t.Errorf("Plan total %d exceeds target %d by more than 300", plan.Totals.Calories, target)
	}
}

func TestAssemble_ReachesCalorieWindow(t *testing.T) {
	target := 2000
	liked := []models.FoodItem{
		planFood("Grilled Chicken", "Worcester", 300, 40),
		planFood("Pasta Marinara", "Worcester", 450, 30),
		planFood("Cheeseburger", "Worcester", 600, 25),
		planFood("Side Salad", "Worcester", 200, 10),
		planFood("Salmon Fillet", "Worcester", 500, 45),
	}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(target))

	if plan.Totals.Calories < target-300 {
		t.Errorf("Plan total %d fell short of the calorie window [%d, %d]", plan.Totals.Calories, target-300, target+200)
	}
	if plan.Totals.Calories > target+300 {
		t.Errorf("Plan total %d exceeds the repair ceiling %d", plan.Totals.Calories, target+300)
	}

	targets := models.TargetsFor(target)
	if float64(plan.Totals.ProteinG) < float64(targets.ProteinG)*0.8 {
		t.Errorf("Plan protein %dg is below 80%% of the %dg target", plan.Totals.ProteinG, targets.ProteinG)
	}
}

func TestAssemble_PrefersProteinDense(t *testing.T) {
	// Two foods with very different protein. The high-protein one should be
	// picked first.
	liked := []models.FoodItem{
		planFood("White Rice", "Worcester", 300, 4),
		planFood("Chicken Breast", "Worcester", 300, 35),
	}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	if len(plan.Foods) == 0 {
		t.Fatal("Expected a non-empty plan")
	}
	if plan.Foods[0].Food.Name != "Chicken Breast" {
		t.Errorf("Expected Chicken Breast first, got %s", plan.Foods[0].Food.Name)
	}
}

func TestAssemble_CatalogRecordWins(t *testing.T) {
	// The liked copy carries stale macros; the catalog's record is
	// authoritative on resolution.
	liked := []models.FoodItem{planFood("Chicken Breast", "Worcester", 900, 1)}
	catalog := []models.FoodItem{planFood("Chicken Breast", "Worcester", 250, 35)}

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	if len(plan.Foods) != 1 {
		t.Fatalf("Expected 1 food, got %d", len(plan.Foods))
	}
	if got := plan.Foods[0].Food.Calories.Grams(); got != 250 {
		t.Errorf("Expected catalog calories 250, got %v", got)
	}
}

func TestAssemble_UnknownNutrientsCountAsZero(t *testing.T) {
	unknown := models.FoodItem{Name: "Mystery Casserole", Location: "Worcester"}
	liked := []models.FoodItem{unknown, planFood("Chicken Breast", "Worcester", 250, 35)}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	// The unknown food aggregates as zero rather than poisoning the totals.
	for _, entry := range plan.Foods {
		if entry.Food.Name == "Mystery Casserole" && plan.Totals.Calories < 0 {
			t.Errorf("Unknown nutrients corrupted totals: %+v", plan.Totals)
		}
	}
}

func TestAssemble_EntriesTagged(t *testing.T) {
	liked := []models.FoodItem{planFood("Chicken Breast", "Worcester", 250, 35)}
	catalog := append([]models.FoodItem{}, liked...)

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	for _, entry := range plan.Foods {
		if entry.Reason != models.ReasonLiked && entry.Reason != models.ReasonRecommended {
			t.Errorf("Entry %s has unexpected reason %q", entry.Food.Name, entry.Reason)
		}
	}
}

func TestAssemble_DuplicateLikesCollapse(t *testing.T) {
	chicken := planFood("Chicken Breast", "Worcester", 250, 35)
	liked := []models.FoodItem{chicken, chicken, chicken}
	catalog := []models.FoodItem{chicken}

	plan := Assemble(liked, catalog, models.TargetsFor(2000))

	if len(plan.Foods) > 1 {
		t.Errorf("Expected duplicate likes to collapse, got %d entries", len(plan.Foods))
	}
}
