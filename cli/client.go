package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the MealSwipeRight API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
	UseMock    bool
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("MEALSWIPE_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	client := &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
		UseMock: false, // Default to trying the real server first
	}

	// Verify connectivity - if server is not available, use mock data
	if !client.ping() {
		fmt.Printf("Warning: API server at %s is not available. Using mock data.\n", baseURL)
		client.UseMock = true
	}

	return client
}

// ping checks if the API server is available
func (c *ApiClient) ping() bool {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Food mirrors the API's catalog item shape
type Food struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Category  string `json:"category"`
	MealType  string `json:"meal_type"`
	Calories  string `json:"calories"`
	Protein   string `json:"protein_g"`
	Carbs     string `json:"total_carb_g"`
	Fat       string `json:"total_fat_g"`
	DietTypes string `json:"diet_types"`
}

// Queue is the swipe queue snapshot
type Queue struct {
	State           string `json:"state"`
	Upcoming        []Food `json:"upcoming"`
	Remaining       int    `json:"remaining"`
	LikedCount      int    `json:"liked_count"`
	ProfileComplete bool   `json:"profile_complete"`
}

// SwipeResult reports what one swipe did
type SwipeResult struct {
	Swiped    Food   `json:"swiped"`
	Direction string `json:"direction"`
	AutoLiked []Food `json:"auto_liked"`
	Skipped   int    `json:"skipped"`
	State     string `json:"state"`
}

// PlanEntry is one recommended food in the meal plan
type PlanEntry struct {
	Food   Food   `json:"food"`
	Reason string `json:"reason"`
}

// Macros mirrors the API's rounded macro aggregate
type Macros struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein"`
	CarbsG   int `json:"carbs"`
	FatG     int `json:"fat"`
}

// Plan is the assembled daily meal plan
type Plan struct {
	Foods   []PlanEntry `json:"foods"`
	Totals  Macros      `json:"totals"`
	Targets Macros      `json:"targets"`
}

// Target is the caloric target response
type Target struct {
	CaloricTarget int `json:"caloric_target"`
}

// GetQueue retrieves the current swipe queue
func (c *ApiClient) GetQueue() (*Queue, error) {
	if c.UseMock {
		return c.getMockQueue(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/queue?limit=5")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get queue with status code: %d", resp.StatusCode)
	}

	var queue Queue
	if err := json.NewDecoder(resp.Body).Decode(&queue); err != nil {
		return nil, err
	}

	return &queue, nil
}

// Swipe records a like or dislike on the current food
func (c *ApiClient) Swipe(direction string) (*SwipeResult, error) {
	if c.UseMock {
		return c.mockSwipe(direction), nil
	}

	data, err := json.Marshal(map[string]string{"direction": direction})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/swipe", bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("swipe failed: %s", string(body))
	}

	var result SwipeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetPlan retrieves the assembled meal plan
func (c *ApiClient) GetPlan() (*Plan, error) {
	if c.UseMock {
		return c.getMockPlan(), nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/plan")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get plan: %s", string(body))
	}

	var wrapper struct {
		Plan Plan `json:"plan"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}

	return &wrapper.Plan, nil
}

// GetTarget retrieves the stored caloric target
func (c *ApiClient) GetTarget() (*Target, error) {
	if c.UseMock {
		return &Target{CaloricTarget: 2000}, nil
	}

	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/target")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var target Target
	if err := json.NewDecoder(resp.Body).Decode(&target); err != nil {
		return nil, err
	}

	return &target, nil
}

// SetTarget stores a caloric target
func (c *ApiClient) SetTarget(calories int) error {
	if c.UseMock {
		return nil
	}

	data, err := json.Marshal(map[string]int{"caloric_target": calories})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", c.BaseURL+"/api/v1/target", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to set target: %s", string(body))
	}

	return nil
}

// ResetSession clears swipe state on the server
func (c *ApiClient) ResetSession() error {
	if c.UseMock {
		return nil
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/session/reset", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

// Chat sends a message to the nutrition assistant
func (c *ApiClient) Chat(message string) (string, error) {
	if c.UseMock {
		return "Stay hydrated and aim for protein at every meal.", nil
	}

	data, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/chat", bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat failed: %s", string(body))
	}

	var reply struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", err
	}

	return reply.Reply, nil
}

// Mock data generators

func (c *ApiClient) getMockQueue() *Queue {
	return &Queue{
		State: "active",
		Upcoming: []Food{
			{Name: "Grilled Chicken Breast", Location: "Worcester", Category: "Entrees", MealType: "Lunch", Calories: "250", Protein: "35"},
			{Name: "Penne Pasta Marinara", Location: "Franklin", Category: "Pasta", MealType: "Dinner", Calories: "380", Protein: "12"},
			{Name: "Garden Salad", Location: "Berkshire", Category: "Salads", MealType: "Lunch", Calories: "90", Protein: "3"},
		},
		Remaining:  42,
		LikedCount: 3,
	}
}

func (c *ApiClient) mockSwipe(direction string) *SwipeResult {
	queue := c.getMockQueue()
	return &SwipeResult{
		Swiped:    queue.Upcoming[0],
		Direction: direction,
		State:     "active",
	}
}

func (c *ApiClient) getMockPlan() *Plan {
	plan := &Plan{
		Foods: []PlanEntry{
			{Food: Food{Name: "Grilled Chicken Breast", Location: "Worcester", Calories: "250", Protein: "35"}, Reason: "liked"},
			{Food: Food{Name: "Brown Rice", Location: "Worcester", Calories: "215", Protein: "5"}, Reason: "recommended"},
			{Food: Food{Name: "Steamed Broccoli", Location: "Franklin", Calories: "55", Protein: "4"}, Reason: "recommended"},
		},
	}
	plan.Totals = Macros{Calories: 520, ProteinG: 44, CarbsG: 35, FatG: 12}
	plan.Targets = Macros{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 67}
	return plan
}
