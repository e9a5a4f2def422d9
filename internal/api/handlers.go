package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rajkangr/MealSwipeRight/internal/assistant"
	"github.com/rajkangr/MealSwipeRight/internal/calories"
	"github.com/rajkangr/MealSwipeRight/internal/fitness"
	"github.com/rajkangr/MealSwipeRight/internal/mealplan"
	"github.com/rajkangr/MealSwipeRight/internal/models"
	"github.com/rajkangr/MealSwipeRight/internal/session"
	"github.com/rajkangr/MealSwipeRight/internal/storage"
)

// User state handlers

func (s *Server) GetPreferences(c *gin.Context) {
	s.mu.Lock()
	prefs := s.prefs
	s.mu.Unlock()

	c.JSON(http.StatusOK, prefs)
}

func (s *Server) UpdatePreferences(c *gin.Context) {
	var prefs models.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.prefs = prefs
	s.session.SetPreferences(prefs)
	remaining := s.session.Remaining()
	s.saveState(storage.KeyPreferences, prefs)
	s.mu.Unlock()

	s.monitor.IncrMetric("preference_updates")
	s.hub.Broadcast(Event{Type: "session_reset", Remaining: remaining})

	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated, session reset", "remaining": remaining})
}

func (s *Server) GetProfile(c *gin.Context) {
	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()

	c.JSON(http.StatusOK, profile)
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.profile = profile
	s.saveState(storage.KeyProfile, profile)
	s.mu.Unlock()

	c.JSON(http.StatusOK, profile)
}

func (s *Server) GetTarget(c *gin.Context) {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()

	resp := gin.H{"caloric_target": target}
	if target > 0 {
		resp["macro_targets"] = models.TargetsFor(target)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateTarget(c *gin.Context) {
	var req struct {
		CaloricTarget int `json:"caloric_target"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := calories.ValidateTarget(req.CaloricTarget); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.target = req.CaloricTarget
	s.saveState(storage.KeyCaloricTarget, req.CaloricTarget)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"caloric_target": req.CaloricTarget,
		"macro_targets":  models.TargetsFor(req.CaloricTarget),
	})
}

// CalculateTarget derives a maintenance target from the stored profile and
// activity level and saves it as the current target.
func (s *Server) CalculateTarget(c *gin.Context) {
	s.mu.Lock()
	profile := s.profile
	level := s.prefs.ActivityLevel
	s.mu.Unlock()

	if !profile.Complete() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile is incomplete; weight, height, age and sex are required"})
		return
	}
	if level == "" {
		level = models.ActivitySedentary
	}

	target, err := calories.Maintenance(profile.WeightLbs, profile.HeightInches, profile.AgeYears, profile.Sex, level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.target = target
	s.saveState(storage.KeyCaloricTarget, target)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"caloric_target": target,
		"macro_targets":  models.TargetsFor(target),
	})
}

// Swipe session handlers

func (s *Server) ListFoods(c *gin.Context) {
	foods := s.catalog.All()
	c.JSON(http.StatusOK, gin.H{"count": len(foods), "foods": foods})
}

func (s *Server) GetQueue(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	s.mu.Lock()
	state := s.session.State()
	upcoming := s.session.Upcoming(limit)
	remaining := s.session.Remaining()
	liked := s.session.Liked()
	profileReady := s.session.ProfileComplete()
	s.mu.Unlock()

	reasons := make([]string, len(upcoming))
	for i, f := range upcoming {
		reasons[i] = s.scorer.RecommendationReason(f, liked)
	}

	c.JSON(http.StatusOK, gin.H{
		"state":            state,
		"upcoming":         upcoming,
		"reasons":          reasons,
		"remaining":        remaining,
		"liked_count":      len(liked),
		"profile_complete": profileReady,
	})
}

func (s *Server) Swipe(c *gin.Context) {
	var req struct {
		Direction session.Direction `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Direction != session.Like && req.Direction != session.Dislike {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be \"like\" or \"dislike\""})
		return
	}

	s.mu.Lock()
	result, err := s.session.Swipe(req.Direction)
	remaining := s.session.Remaining()
	s.mu.Unlock()

	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	s.collector.RecordSwipe(string(result.Direction), len(result.AutoLiked), remaining)
	s.monitor.IncrMetric("swipes_total")
	s.hub.Broadcast(Event{
		Type:      "swipe",
		Food:      result.Swiped.Name,
		Direction: string(result.Direction),
		AutoLiked: len(result.AutoLiked),
		Remaining: remaining,
		State:     string(result.State),
	})

	c.JSON(http.StatusOK, result)
}

func (s *Server) ResetSession(c *gin.Context) {
	s.mu.Lock()
	s.session.Reset()
	remaining := s.session.Remaining()
	s.mu.Unlock()

	s.hub.Broadcast(Event{Type: "session_reset", Remaining: remaining})
	c.JSON(http.StatusOK, gin.H{"message": "Session reset", "remaining": remaining})
}

// Meal plan handlers

// assemblePlan builds a plan from the current liked set against the
// filtered catalog. Caller holds mu.
func (s *Server) assemblePlan() models.MealPlan {
	targets := models.TargetsFor(s.target)
	candidates := s.catalog.Filtered(s.prefs)
	return mealplan.Assemble(s.session.Liked(), candidates, targets)
}

func (s *Server) GetPlan(c *gin.Context) {
	s.mu.Lock()
	target := s.target
	likedCount := len(s.session.Liked())
	var plan models.MealPlan
	if target > 0 {
		plan = s.assemblePlan()
	}
	s.mu.Unlock()

	if target <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No caloric target set; PUT /api/v1/target or POST /api/v1/target/calculate first"})
		return
	}
	if likedCount == 0 {
		c.JSON(http.StatusOK, gin.H{"plan": plan, "message": "Like some foods to seed the plan"})
		return
	}

	s.collector.RecordPlan(plan)
	s.monitor.IncrMetric("plans_assembled")
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// Fitness log handlers

func (s *Server) CreateWorkout(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	workout, err := s.fitness.StartWorkout(req.Title)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, workout)
}

func (s *Server) ListWorkouts(c *gin.Context) {
	workouts, err := s.fitness.ListWorkouts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(workouts), "workouts": workouts})
}

func (s *Server) DeleteWorkout(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	if err := s.fitness.DeleteWorkout(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workout not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
}

func (s *Server) AddExercise(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	var req struct {
		Name      string  `json:"name"`
		BodyPart  string  `json:"body_part"`
		WeightLbs float64 `json:"weight_lbs"`
		Reps      int     `json:"reps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exercise, err := s.fitness.AddExercise(uint(id), req.Name, req.BodyPart, req.WeightLbs, req.Reps)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

func (s *Server) AddSet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise id"})
		return
	}

	var req struct {
		WeightLbs float64 `json:"weight_lbs"`
		Reps      int     `json:"reps"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := s.fitness.AddSet(uint(id), req.WeightLbs, req.Reps)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, set)
}

// LogConsumed records a food that was actually eaten. If the body names a
// catalog item the catalog's macros win over whatever the client sent.
func (s *Server) LogConsumed(c *gin.Context) {
	var food models.FoodItem
	if err := c.ShouldBindJSON(&food); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if food.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food name is required"})
		return
	}

	key := food.Key()
	for _, item := range s.catalog.All() {
		if item.Key() == key {
			food = item
			break
		}
	}

	entry, err := s.fitness.LogConsumed(food)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.monitor.IncrMetric("foods_logged")
	c.JSON(http.StatusCreated, entry)
}

func (s *Server) ListConsumed(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	consumed, err := s.fitness.RecentConsumed(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(consumed), "consumed": consumed})
}

func (s *Server) GetStats(c *gin.Context) {
	workouts, err := s.fitness.ListWorkouts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	consumed, err := s.fitness.AllConsumed()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := fitness.ComputeStats(workouts, consumed, time.Now())
	resp := gin.H{"stats": stats}

	s.mu.Lock()
	profile := s.profile
	s.mu.Unlock()
	if profile.Complete() {
		if bmi, err := calories.BMI(profile.WeightLbs, profile.HeightInches); err == nil {
			resp["bmi"] = bmi
			resp["bmi_category"] = calories.BMICategory(bmi)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Assistant handlers

func (s *Server) Chat(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	s.mu.Lock()
	bundle := s.contextBundle(true)
	configured := s.assistant.Configured()
	s.mu.Unlock()

	reply := s.assistant.Chat(c.Request.Context(), req.Message, bundle)
	if !configured {
		s.collector.RecordAssistantFallback()
	}

	s.mu.Lock()
	s.history = append(s.history,
		assistant.Message{Role: "user", Content: req.Message},
		assistant.Message{Role: "assistant", Content: reply},
	)
	if len(s.history) > maxStoredHistory {
		s.history = s.history[len(s.history)-maxStoredHistory:]
	}
	s.saveState(storage.KeyConversation, s.history)
	s.mu.Unlock()

	s.monitor.IncrMetric("chat_messages")
	c.JSON(http.StatusOK, gin.H{"reply": reply, "configured": configured})
}

func (s *Server) GetBrief(c *gin.Context) {
	s.mu.Lock()
	bundle := s.contextBundle(true)
	configured := s.assistant.Configured()
	s.mu.Unlock()

	bullets := s.assistant.DiningBrief(c.Request.Context(), bundle)
	if !configured {
		s.collector.RecordAssistantFallback()
	}

	c.JSON(http.StatusOK, gin.H{"brief": bullets})
}

// GetMonitorMetrics exposes the in-process counters. Prometheus scraping
// happens on the separate metrics port.
func (s *Server) GetMonitorMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}
