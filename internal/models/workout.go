package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Workout is a logged gym session.
type Workout struct {
	gorm.Model
	Title     string     `json:"title"`
	Date      time.Time  `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

// TableName sets the table name for Workout
func (Workout) TableName() string {
	return "workouts"
}

// Exercise is a movement performed within a workout, grouped by body part.
type Exercise struct {
	gorm.Model
	WorkoutID uint          `json:"workout_id"`
	Name      string        `json:"name"`
	BodyPart  string        `json:"body_part"`
	Sets      []ExerciseSet `json:"sets"`
}

// TableName sets the table name for Exercise
func (Exercise) TableName() string {
	return "exercises"
}

// ExerciseSet is one set of an exercise: weight and rep count.
type ExerciseSet struct {
	gorm.Model
	ExerciseID uint    `json:"exercise_id"`
	WeightLbs  float64 `json:"weight_lbs"`
	Reps       int     `json:"reps"`
}

// TableName sets the table name for ExerciseSet
func (ExerciseSet) TableName() string {
	return "exercise_sets"
}

// ConsumedFood is a catalog item (or a custom entry) the user logged as
// eaten. Macro fields are flattened to plain numbers; unknown nutrients were
// already collapsed to zero at logging time.
type ConsumedFood struct {
	gorm.Model
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Calories   float64   `json:"calories"`
	ProteinG   float64   `json:"protein_g"`
	CarbsG     float64   `json:"carbs_g"`
	FatG       float64   `json:"fat_g"`
	ConsumedAt time.Time `json:"consumed_at"`
}

// TableName sets the table name for ConsumedFood
func (ConsumedFood) TableName() string {
	return "consumed_foods"
}
