package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// Collector registers and records the app's prometheus metrics.
type Collector struct {
	registry *prometheus.Registry

	swipes             *prometheus.CounterVec
	autoLikes          prometheus.Counter
	queueRemaining     prometheus.Gauge
	planCalorieGap     prometheus.Histogram
	planFoods          prometheus.Histogram
	assistantFallbacks prometheus.Counter
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		swipes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "swipes_total",
				Help: "Swipes recorded, by direction",
			},
			[]string{"direction"},
		),
		autoLikes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "auto_likes_total",
				Help: "Foods auto-liked at other dining halls",
			},
		),
		queueRemaining: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "swipe_queue_remaining",
				Help: "Cards left in the current swipe queue",
			},
		),
		planCalorieGap: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meal_plan_calorie_gap",
				Help:    "Absolute distance of assembled plan calories from target",
				Buckets: prometheus.LinearBuckets(0, 100, 10),
			},
		),
		planFoods: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "meal_plan_foods",
				Help:    "Number of foods selected per assembled plan",
				Buckets: prometheus.LinearBuckets(0, 2, 10),
			},
		),
		assistantFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_fallbacks_total",
				Help: "Assistant requests answered from the static fallback",
			},
		),
	}

	c.registry.MustRegister(
		c.swipes,
		c.autoLikes,
		c.queueRemaining,
		c.planCalorieGap,
		c.planFoods,
		c.assistantFallbacks,
	)
	return c
}

// Registry exposes the prometheus registry for the metrics endpoint.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordSwipe records a swipe and its auto-like fan-out.
func (c *Collector) RecordSwipe(direction string, autoLiked, remaining int) {
	c.swipes.WithLabelValues(direction).Inc()
	c.autoLikes.Add(float64(autoLiked))
	c.queueRemaining.Set(float64(remaining))
}

// RecordPlan records how close an assembled plan landed to its target.
func (c *Collector) RecordPlan(plan models.MealPlan) {
	c.planCalorieGap.Observe(math.Abs(float64(plan.Totals.Calories - plan.Targets.Calories)))
	c.planFoods.Observe(float64(len(plan.Foods)))
}

// RecordAssistantFallback counts a request answered without the provider.
func (c *Collector) RecordAssistantFallback() {
	c.assistantFallbacks.Inc()
}
