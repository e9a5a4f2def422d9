package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

func TestNewCollector(t *testing.T) {
	collector := NewCollector()

	assert.NotNil(t, collector)
	assert.NotNil(t, collector.Registry())
}

func TestRecordSwipe(t *testing.T) {
	collector := NewCollector()

	collector.RecordSwipe("like", 2, 40)
	collector.RecordSwipe("dislike", 0, 39)
	collector.RecordSwipe("like", 0, 38)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.swipes.WithLabelValues("like")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.swipes.WithLabelValues("dislike")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.autoLikes))
	assert.Equal(t, 38.0, testutil.ToFloat64(collector.queueRemaining))
}

func TestRecordPlan(t *testing.T) {
	collector := NewCollector()

	plan := models.MealPlan{
		Foods: []models.PlanEntry{
			{Food: models.FoodItem{Name: "Chicken"}},
			{Food: models.FoodItem{Name: "Rice"}},
		},
		Totals:  models.MacroSums{Calories: 1900},
		Targets: models.TargetsFor(2000),
	}

	collector.RecordPlan(plan)

	// Histogram values are verified through the registry gather path.
	families, err := collector.Registry().Gather()
	assert.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "meal_plan_calorie_gap" {
			found = true
			assert.Equal(t, uint64(1), f.GetMetric()[0].GetHistogram().GetSampleCount())
			assert.Equal(t, 100.0, f.GetMetric()[0].GetHistogram().GetSampleSum())
		}
	}
	assert.True(t, found, "meal_plan_calorie_gap should be registered")
}

func TestRecordAssistantFallback(t *testing.T) {
	collector := NewCollector()

	collector.RecordAssistantFallback()
	collector.RecordAssistantFallback()

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.assistantFallbacks))
}
