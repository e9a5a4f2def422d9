package fitness

import (
	"strings"
	"time"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// ExerciseStats summarizes lift progress for a single exercise.
type ExerciseStats struct {
	MaxWeightLbs    float64 `json:"max_weight_lbs"`
	RecentWeightLbs float64 `json:"recent_weight_lbs"`
}

// Stats is the derived fitness/nutrition snapshot the metrics view renders.
// All of it is a pure function of the two logs.
type Stats struct {
	TotalWorkouts    int `json:"total_workouts"`
	WorkoutsThisWeek int `json:"workouts_this_week"`
	WorkoutStreak    int `json:"workout_streak"`
	// NutritionStreak is capped at one day: 1 when food was logged today,
	// 0 otherwise. It is not a multi-day run.
	NutritionStreak int `json:"nutrition_streak"`

	Exercises map[string]ExerciseStats `json:"exercises"`
}

// trackedLifts are the exercises whose personal records surface on the
// metrics page.
var trackedLifts = []string{"bench press", "squat"}

// ComputeStats derives streaks, weekly counts and per-lift records as of
// now.
func ComputeStats(workouts []models.Workout, consumed []models.ConsumedFood, now time.Time) Stats {
	stats := Stats{
		TotalWorkouts: len(workouts),
		Exercises:     make(map[string]ExerciseStats),
	}

	weekAgo := now.AddDate(0, 0, -7)
	days := make(map[string]struct{})
	for _, w := range workouts {
		if w.Date.After(weekAgo) {
			stats.WorkoutsThisWeek++
		}
		days[dayKey(w.Date)] = struct{}{}
	}

	// Workout streak: consecutive days with a session, ending today.
	if _, today := days[dayKey(now)]; today {
		stats.WorkoutStreak = 1
		check := now.AddDate(0, 0, -1)
		for {
			if _, ok := days[dayKey(check)]; !ok {
				break
			}
			stats.WorkoutStreak++
			check = check.AddDate(0, 0, -1)
		}
	}

	// Nutrition streak: simplified to "logged food today".
	for _, c := range consumed {
		if dayKey(c.ConsumedAt) == dayKey(now) {
			stats.NutritionStreak = 1
			break
		}
	}

	for _, lift := range trackedLifts {
		if s, ok := liftStats(workouts, lift); ok {
			stats.Exercises[lift] = s
		}
	}

	return stats
}

// liftStats scans the log for an exercise by name (case-insensitive) and
// reports its heaviest set ever and in the most recent workout containing
// it.
func liftStats(workouts []models.Workout, name string) (ExerciseStats, bool) {
	var stats ExerciseStats
	found := false
	var recentDate time.Time

	for _, w := range workouts {
		for _, e := range w.Exercises {
			if !strings.EqualFold(strings.TrimSpace(e.Name), name) {
				continue
			}
			for _, set := range e.Sets {
				found = true
				if set.WeightLbs > stats.MaxWeightLbs {
					stats.MaxWeightLbs = set.WeightLbs
				}
				if w.Date.After(recentDate) {
					recentDate = w.Date
					stats.RecentWeightLbs = set.WeightLbs
				} else if w.Date.Equal(recentDate) && set.WeightLbs > stats.RecentWeightLbs {
					stats.RecentWeightLbs = set.WeightLbs
				}
			}
		}
	}
	return stats, found
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
