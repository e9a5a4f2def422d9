package catalog

import (
	"strings"
	"sync"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// Filter narrows the catalog to foods matching the user's dining halls and
// dietary flags. Dietary matching is substring-based over the free-text
// diet_types/allergens fields, mirroring how the catalog tags foods.
func Filter(foods []models.FoodItem, prefs models.UserPreferences) []models.FoodItem {
	out := make([]models.FoodItem, 0, len(foods))
	for _, f := range foods {
		if !prefs.AllowsHall(f.Location) {
			continue
		}

		diet := strings.ToLower(f.DietTypes)
		if (prefs.Vegetarian || prefs.Vegan) &&
			!strings.Contains(diet, "vegetarian") && !strings.Contains(diet, "vegan") {
			continue
		}
		if prefs.GlutenFree && !strings.Contains(diet, "gluten free") {
			continue
		}
		if prefs.Keto && !strings.Contains(diet, "keto") {
			continue
		}
		if prefs.DairyFree {
			allergens := strings.ToLower(f.Allergens)
			if strings.Contains(allergens, "milk") || strings.Contains(allergens, "dairy") {
				continue
			}
		}

		out = append(out, f)
	}
	return out
}

// Store holds the loaded catalog and caches filtered views per preference
// set. The catalog is read-only after startup; swipes and plan rebuilds hit
// the same filtered slice repeatedly.
type Store struct {
	mu    sync.RWMutex
	foods []models.FoodItem
	cache sync.Map // filter cache key -> []models.FoodItem
}

// NewStore creates a catalog store over the given foods.
func NewStore(foods []models.FoodItem) *Store {
	return &Store{foods: foods}
}

// All returns every loaded food.
func (s *Store) All() []models.FoodItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foods
}

// Len returns the catalog size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods)
}

// Replace swaps the catalog, dropping any cached filtered views.
func (s *Store) Replace(foods []models.FoodItem) {
	s.mu.Lock()
	s.foods = foods
	s.mu.Unlock()
	s.cache.Range(func(k, _ interface{}) bool {
		s.cache.Delete(k)
		return true
	})
}

// Filtered returns the foods passing the preference filter, cached per
// preference fingerprint.
func (s *Store) Filtered(prefs models.UserPreferences) []models.FoodItem {
	key := filterKey(prefs)
	if cached, ok := s.cache.Load(key); ok {
		return cached.([]models.FoodItem)
	}
	filtered := Filter(s.All(), prefs)
	s.cache.Store(key, filtered)
	return filtered
}

func filterKey(p models.UserPreferences) string {
	var b strings.Builder
	for _, flag := range []bool{p.Vegetarian, p.Vegan, p.GlutenFree, p.DairyFree, p.Keto} {
		if flag {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	b.WriteString(strings.Join(p.DiningHalls, ","))
	return b.String()
}
