package fitness

import (
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajkangr/MealSwipeRight/internal/models"
	"github.com/rajkangr/MealSwipeRight/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.Migrate(db))
	return NewService(db)
}

func TestStartWorkout(t *testing.T) {
	s := newTestService(t)

	w, err := s.StartWorkout("Push Day")
	require.NoError(t, err)
	assert.NotZero(t, w.ID)
	assert.Equal(t, "Push Day", w.Title)
	assert.False(t, w.Date.IsZero())

	_, err = s.StartWorkout("")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestAddExercise(t *testing.T) {
	s := newTestService(t)
	w, err := s.StartWorkout("Push Day")
	require.NoError(t, err)

	e, err := s.AddExercise(w.ID, "Bench Press", "Chest", 185, 5)
	require.NoError(t, err)
	assert.Equal(t, w.ID, e.WorkoutID)
	require.Len(t, e.Sets, 1)
	assert.Equal(t, 185.0, e.Sets[0].WeightLbs)

	_, err = s.AddExercise(w.ID, "", "Chest", 185, 5)
	assert.Error(t, err)
	_, err = s.AddExercise(w.ID, "Bench Press", "Chest", 0, 5)
	assert.ErrorIs(t, err, ErrInvalidSet)
	_, err = s.AddExercise(w.ID, "Bench Press", "Chest", 185, -1)
	assert.ErrorIs(t, err, ErrInvalidSet)
	_, err = s.AddExercise(99999, "Bench Press", "Chest", 185, 5)
	assert.Error(t, err, "unknown workout should be rejected")
}

func TestAddSet(t *testing.T) {
	s := newTestService(t)
	w, _ := s.StartWorkout("Push Day")
	e, _ := s.AddExercise(w.ID, "Bench Press", "Chest", 185, 5)

	set, err := s.AddSet(e.ID, 190, 3)
	require.NoError(t, err)
	assert.Equal(t, e.ID, set.ExerciseID)

	_, err = s.AddSet(e.ID, -10, 3)
	assert.ErrorIs(t, err, ErrInvalidSet)
}

func TestListWorkouts_PreloadsNested(t *testing.T) {
	s := newTestService(t)
	w, _ := s.StartWorkout("Push Day")
	e, _ := s.AddExercise(w.ID, "Bench Press", "Chest", 185, 5)
	_, err := s.AddSet(e.ID, 190, 3)
	require.NoError(t, err)

	workouts, err := s.ListWorkouts()
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	require.Len(t, workouts[0].Exercises, 1)
	assert.Len(t, workouts[0].Exercises[0].Sets, 2)
}

func TestDeleteWorkout_Cascades(t *testing.T) {
	s := newTestService(t)
	w, _ := s.StartWorkout("Push Day")
	_, err := s.AddExercise(w.ID, "Bench Press", "Chest", 185, 5)
	require.NoError(t, err)

	require.NoError(t, s.DeleteWorkout(w.ID))

	workouts, err := s.ListWorkouts()
	require.NoError(t, err)
	assert.Empty(t, workouts)

	assert.Error(t, s.DeleteWorkout(w.ID), "second delete should not find the workout")
}

func TestLogConsumed(t *testing.T) {
	s := newTestService(t)

	food := models.FoodItem{
		Name:     "Grilled Chicken",
		Location: "Worcester",
		Calories: models.KnownNutrient(250),
		ProteinG: models.KnownNutrient(35),
		// carbs and fat left unknown on purpose
	}

	entry, err := s.LogConsumed(food)
	require.NoError(t, err)
	assert.Equal(t, 250.0, entry.Calories)
	assert.Equal(t, 35.0, entry.ProteinG)
	assert.Equal(t, 0.0, entry.CarbsG, "unknown nutrients flatten to zero")

	_, err = s.LogConsumed(models.FoodItem{})
	assert.Error(t, err)
}

func TestRecentConsumed(t *testing.T) {
	s := newTestService(t)

	for _, name := range []string{"Oatmeal", "Chicken", "Pizza"} {
		_, err := s.LogConsumed(models.FoodItem{Name: name, Location: "Worcester"})
		require.NoError(t, err)
	}

	recent, err := s.RecentConsumed(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	all, err := s.AllConsumed()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
