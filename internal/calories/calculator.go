// Package calories derives daily energy targets from body metrics using the
// Mifflin-St Jeor equation.
package calories

import (
	"errors"
	"fmt"
	"math"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// Accepted range for a daily caloric target, whether entered by hand or
// produced by the calculator.
const (
	MinDailyCalories = 1000
	MaxDailyCalories = 10000
)

// Unit conversions: the app collects imperial, the formula wants metric.
const (
	lbsToKg    = 0.453592
	inchesToCm = 2.54
)

var (
	// ErrInvalidMetrics signals non-positive weight, height or age.
	ErrInvalidMetrics = errors.New("weight, height and age must be positive")
	// ErrUnknownActivityLevel signals an unrecognized activity level.
	ErrUnknownActivityLevel = errors.New("unknown activity level")
)

// Maintenance computes daily caloric maintenance via Mifflin-St Jeor.
// Weight is in pounds, height in inches. Sex "other" uses the male
// constant. The result is rounded to the nearest calorie; callers must
// still run it through ValidateTarget before adopting it.
func Maintenance(weightLbs, heightInches float64, ageYears int, sex models.Sex, level models.ActivityLevel) (int, error) {
	if weightLbs <= 0 || heightInches <= 0 || ageYears <= 0 {
		return 0, ErrInvalidMetrics
	}

	multiplier, ok := level.Multiplier()
	if !ok {
		return 0, ErrUnknownActivityLevel
	}

	weightKg := weightLbs * lbsToKg
	heightCm := heightInches * inchesToCm

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == models.SexFemale {
		bmr -= 161
	} else {
		bmr += 5
	}

	return int(math.Round(bmr * multiplier)), nil
}

// ValidateTarget rejects caloric targets outside the accepted daily range.
func ValidateTarget(calories int) error {
	if calories < MinDailyCalories || calories > MaxDailyCalories {
		return fmt.Errorf("caloric target must be between %d and %d", MinDailyCalories, MaxDailyCalories)
	}
	return nil
}

// BMI computes body mass index from imperial inputs. Implausible inputs are
// rejected rather than producing garbage.
func BMI(weightLbs, heightInches float64) (float64, error) {
	if weightLbs <= 0 || heightInches <= 0 {
		return 0, ErrInvalidMetrics
	}
	heightCm := heightInches * inchesToCm
	weightKg := weightLbs * lbsToKg
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}
	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory labels a BMI value with its standard classification.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
