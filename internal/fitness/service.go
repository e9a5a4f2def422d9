// Package fitness keeps the training log and consumed-food log, and derives
// the simple progress metrics shown alongside the meal plan.
package fitness

import (
	"errors"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// ErrInvalidSet rejects non-positive weight or reps at the input boundary.
var ErrInvalidSet = errors.New("weight and reps must be positive")

// ErrEmptyTitle rejects workouts without a title.
var ErrEmptyTitle = errors.New("workout title must not be empty")

// Service persists workouts and consumed foods.
type Service struct {
	db *gorm.DB
}

// NewService creates a fitness service over the given database.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// StartWorkout opens a new workout session with the given title.
func (s *Service) StartWorkout(title string) (*models.Workout, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	w := &models.Workout{Title: title, Date: time.Now()}
	if err := s.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// AddExercise appends an exercise with its first set to a workout.
func (s *Service) AddExercise(workoutID uint, name, bodyPart string, weightLbs float64, reps int) (*models.Exercise, error) {
	if name == "" || bodyPart == "" {
		return nil, errors.New("exercise name and body part must not be empty")
	}
	if weightLbs <= 0 || reps <= 0 {
		return nil, ErrInvalidSet
	}

	var w models.Workout
	if err := s.db.First(&w, workoutID).Error; err != nil {
		return nil, err
	}

	e := &models.Exercise{
		WorkoutID: w.ID,
		Name:      name,
		BodyPart:  bodyPart,
		Sets:      []models.ExerciseSet{{WeightLbs: weightLbs, Reps: reps}},
	}
	if err := s.db.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// AddSet appends a set to an exercise.
func (s *Service) AddSet(exerciseID uint, weightLbs float64, reps int) (*models.ExerciseSet, error) {
	if weightLbs <= 0 || reps <= 0 {
		return nil, ErrInvalidSet
	}

	var e models.Exercise
	if err := s.db.First(&e, exerciseID).Error; err != nil {
		return nil, err
	}

	set := &models.ExerciseSet{ExerciseID: e.ID, WeightLbs: weightLbs, Reps: reps}
	if err := s.db.Create(set).Error; err != nil {
		return nil, err
	}
	return set, nil
}

// DeleteWorkout removes a workout and its exercises and sets.
func (s *Service) DeleteWorkout(workoutID uint) error {
	var w models.Workout
	if err := s.db.First(&w, workoutID).Error; err != nil {
		return err
	}

	var exercises []models.Exercise
	if err := s.db.Where("workout_id = ?", w.ID).Find(&exercises).Error; err != nil {
		return err
	}
	for _, e := range exercises {
		if err := s.db.Where("exercise_id = ?", e.ID).Delete(&models.ExerciseSet{}).Error; err != nil {
			return err
		}
	}
	if err := s.db.Where("workout_id = ?", w.ID).Delete(&models.Exercise{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&w).Error
}

// ListWorkouts returns all workouts with exercises and sets, newest first.
func (s *Service) ListWorkouts() ([]models.Workout, error) {
	var workouts []models.Workout
	err := s.db.
		Preload("Exercises").
		Preload("Exercises.Sets").
		Order("date desc").
		Find(&workouts).Error
	return workouts, err
}

// LogConsumed records a food as eaten now. Unknown nutrients aggregate as
// zero.
func (s *Service) LogConsumed(food models.FoodItem) (*models.ConsumedFood, error) {
	if food.Name == "" {
		return nil, errors.New("food name must not be empty")
	}
	c := &models.ConsumedFood{
		Name:       food.Name,
		Location:   food.Location,
		Calories:   food.Calories.Grams(),
		ProteinG:   food.ProteinG.Grams(),
		CarbsG:     food.TotalCarbG.Grams(),
		FatG:       food.TotalFatG.Grams(),
		ConsumedAt: time.Now(),
	}
	if err := s.db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// RecentConsumed returns the last n consumed foods, newest first.
func (s *Service) RecentConsumed(n int) ([]models.ConsumedFood, error) {
	var foods []models.ConsumedFood
	err := s.db.Order("consumed_at desc").Limit(n).Find(&foods).Error
	return foods, err
}

// AllConsumed returns the full consumed log in logging order.
func (s *Service) AllConsumed() ([]models.ConsumedFood, error) {
	var foods []models.ConsumedFood
	err := s.db.Order("consumed_at asc").Find(&foods).Error
	return foods, err
}
