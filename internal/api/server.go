// Package api exposes the swipe session, meal planning, fitness log, and
// assistant over HTTP. A single Server owns the one user session; handlers
// serialize through its mutex.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/rajkangr/MealSwipeRight/internal/assistant"
	"github.com/rajkangr/MealSwipeRight/internal/catalog"
	"github.com/rajkangr/MealSwipeRight/internal/fitness"
	"github.com/rajkangr/MealSwipeRight/internal/metrics"
	"github.com/rajkangr/MealSwipeRight/internal/models"
	"github.com/rajkangr/MealSwipeRight/internal/session"
	"github.com/rajkangr/MealSwipeRight/internal/similarity"
	"github.com/rajkangr/MealSwipeRight/internal/storage"
)

// maxStoredHistory bounds the persisted chat transcript.
const maxStoredHistory = 40

// Server is the HTTP front for the app. It owns the swipe session and the
// stored user state; mu guards everything below it.
type Server struct {
	Router *gin.Engine

	catalog   *catalog.Store
	scorer    *similarity.Scorer
	fitness   *fitness.Service
	assistant *assistant.Assistant
	state     storage.Store
	collector *metrics.Collector
	monitor   *metrics.Monitor
	hub       *Hub

	mu      sync.Mutex
	session *session.Controller
	prefs   models.UserPreferences
	profile models.UserProfile
	target  int
	history []assistant.Message
}

// NewServer wires the server from its dependencies and restores any stored
// user state. The catalog store may be empty; the session reports Loading
// until foods arrive.
func NewServer(cat *catalog.Store, fit *fitness.Service, ast *assistant.Assistant, state storage.Store, collector *metrics.Collector) *Server {
	scorer := similarity.NewScorer(similarity.DefaultWeights())

	s := &Server{
		Router:    gin.Default(),
		catalog:   cat,
		scorer:    scorer,
		fitness:   fit,
		assistant: ast,
		state:     state,
		collector: collector,
		monitor:   metrics.NewMonitor(),
		hub:       NewHub(),
		session:   session.NewController(scorer, state),
	}

	s.restoreState()
	s.session.SetPreferences(s.prefs)
	s.session.SetCatalog(cat)

	go s.hub.Run()
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "MealSwipeRight API is running"})
	})

	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// User state
		v1.GET("/preferences", s.GetPreferences)
		v1.PUT("/preferences", s.UpdatePreferences)
		v1.GET("/profile", s.GetProfile)
		v1.PUT("/profile", s.UpdateProfile)
		v1.GET("/target", s.GetTarget)
		v1.PUT("/target", s.UpdateTarget)
		v1.POST("/target/calculate", s.CalculateTarget)

		// Swipe session
		v1.GET("/foods", s.ListFoods)
		v1.GET("/queue", s.GetQueue)
		v1.POST("/swipe", s.Swipe)
		v1.POST("/session/reset", s.ResetSession)

		// Meal plan
		v1.GET("/plan", s.GetPlan)

		// Fitness log
		v1.POST("/workouts", s.CreateWorkout)
		v1.GET("/workouts", s.ListWorkouts)
		v1.DELETE("/workouts/:id", s.DeleteWorkout)
		v1.POST("/workouts/:id/exercises", s.AddExercise)
		v1.POST("/exercises/:id/sets", s.AddSet)
		v1.POST("/consumed", s.LogConsumed)
		v1.GET("/consumed", s.ListConsumed)
		v1.GET("/stats", s.GetStats)

		// Assistant
		v1.POST("/chat", s.Chat)
		v1.GET("/brief", s.GetBrief)

		// Operational counters alongside the Prometheus registry
		v1.GET("/metrics", s.GetMonitorMetrics)
	}
}

// restoreState rehydrates preferences, profile, target and conversation
// history from the state store. Any missing key starts empty.
func (s *Server) restoreState() {
	if s.state == nil {
		return
	}
	if raw, ok, err := s.state.Get(storage.KeyPreferences); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &s.prefs); err != nil {
			log.Printf("Failed to restore preferences: %v", err)
		}
	}
	if raw, ok, err := s.state.Get(storage.KeyProfile); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &s.profile); err != nil {
			log.Printf("Failed to restore profile: %v", err)
		}
	}
	if raw, ok, err := s.state.Get(storage.KeyCaloricTarget); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &s.target); err != nil {
			log.Printf("Failed to restore caloric target: %v", err)
		}
	}
	if raw, ok, err := s.state.Get(storage.KeyConversation); err == nil && ok {
		if err := json.Unmarshal([]byte(raw), &s.history); err != nil {
			log.Printf("Failed to restore conversation: %v", err)
		}
	}
}

// saveState writes one value back to the store under key. Failures are
// logged; the in-memory copy stays authoritative.
func (s *Server) saveState(key string, value interface{}) {
	if s.state == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal %s: %v", key, err)
		return
	}
	if err := s.state.Set(key, string(data)); err != nil {
		log.Printf("Failed to persist %s: %v", key, err)
	}
}

// contextBundle assembles what the assistant sees. Caller holds mu.
func (s *Server) contextBundle(includePlan bool) assistant.ContextBundle {
	bundle := assistant.ContextBundle{
		LikedFoods:    s.session.Liked(),
		CaloricTarget: s.target,
		History:       s.history,
	}
	prefs := s.prefs
	bundle.Preferences = &prefs
	if s.profile.Complete() {
		profile := s.profile
		bundle.Profile = &profile
	}
	if includePlan && s.target > 0 {
		plan := s.assemblePlan()
		if len(plan.Foods) > 0 {
			bundle.Plan = &plan
		}
	}
	return bundle
}
