// Package similarity scores how alike two catalog foods are and drives the
// two recommendation behaviors built on that score: auto-liking the same
// dish at other dining halls, and re-ranking the unseen swipe queue toward
// foods resembling what the user already liked.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// Weights holds the tunable components of the similarity score. The four
// primary weights sum to 1.0; the defaults are empirically chosen, not
// derived, so they live here rather than being baked into the scorer.
type Weights struct {
	Name      float64 // keyword overlap between dish names
	Category  float64 // catalog category match
	MealType  float64 // breakfast/lunch/dinner match
	FoodGroup float64 // shared food-group word in both names

	KeywordBonus    float64 // per shared keyword
	KeywordBonusCap float64 // ceiling on the shared-keyword bonus
	SubstringBonus  float64 // one name contains the other
	CategoryPartial float64 // one category contains the other
}

// DefaultWeights returns the tuning the app ships with.
func DefaultWeights() Weights {
	return Weights{
		Name:      0.6,
		Category:  0.15,
		MealType:  0.1,
		FoodGroup: 0.15,

		KeywordBonus:    0.05,
		KeywordBonusCap: 0.1,
		SubstringBonus:  0.3,
		CategoryPartial: 0.08,
	}
}

// total returns the normalization denominator for the primary weights.
func (w Weights) total() float64 {
	return w.Name + w.Category + w.MealType + w.FoodGroup
}

// Scorer computes pairwise food similarity with a fixed set of weights.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer. Zero-value weights fall back to the defaults.
func NewScorer(w Weights) *Scorer {
	if w.total() == 0 {
		w = DefaultWeights()
	}
	return &Scorer{weights: w}
}

// Score returns a similarity in [0,1]. Two foods with the same dish name
// score 1.0 outright: that is the same food served somewhere else, and it
// dominates every weaker signal.
func (s *Scorer) Score(a, b models.FoodItem) float64 {
	nameA := models.NormalizeName(a.Name)
	nameB := models.NormalizeName(b.Name)

	if nameA == nameB {
		return 1.0
	}

	w := s.weights
	var score float64

	// Name keyword overlap: Jaccard over extracted keywords, plus a small
	// bonus for any overlap at all and a flat bonus when one full name
	// contains the other ("cheese pizza" contains "pizza").
	keysA := ExtractKeywords(nameA)
	keysB := ExtractKeywords(nameB)
	if len(keysA) > 0 && len(keysB) > 0 {
		shared := 0
		for k := range keysA {
			if _, ok := keysB[k]; ok {
				shared++
			}
		}
		union := len(keysA) + len(keysB) - shared
		score += float64(shared) / float64(union) * w.Name
		if shared > 0 {
			score += math.Min(w.KeywordBonusCap, float64(shared)*w.KeywordBonus)
		}
	}
	if strings.Contains(nameA, nameB) || strings.Contains(nameB, nameA) {
		score += w.SubstringBonus
	}

	// Category match.
	catA := strings.ToLower(a.Category)
	catB := strings.ToLower(b.Category)
	if catA != "" && catB != "" {
		switch {
		case catA == catB:
			score += w.Category
		case strings.Contains(catA, catB) || strings.Contains(catB, catA):
			score += w.CategoryPartial
		}
	}

	// Meal type match. "unknown" is the default for unscraped rows and
	// carries no signal.
	mealA := strings.ToLower(a.MealType)
	mealB := strings.ToLower(b.MealType)
	if mealA != "" && mealA == mealB && mealA != "unknown" {
		score += w.MealType
	}

	// Shared food group word: first match wins, no stacking.
	for _, group := range foodGroups {
		if strings.Contains(nameA, group) && strings.Contains(nameB, group) {
			score += w.FoodGroup
			break
		}
	}

	return math.Min(1, score/w.total())
}

// FindAutoLikeFoods returns the foods that should be liked automatically
// when justLiked is liked: every catalog entry with the same dish name at a
// different location, minus anything already liked. This is exact name
// propagation, not a similarity threshold.
func FindAutoLikeFoods(justLiked models.FoodItem, allFoods, alreadyLiked []models.FoodItem) []models.FoodItem {
	if len(allFoods) == 0 {
		return nil
	}

	likedKeys := make(map[models.FoodKey]struct{}, len(alreadyLiked))
	for _, f := range alreadyLiked {
		likedKeys[f.Key()] = struct{}{}
	}

	var out []models.FoodItem
	for _, f := range allFoods {
		if _, seen := likedKeys[f.Key()]; seen {
			continue
		}
		if f.SameDish(justLiked) && f.Location != justLiked.Location {
			out = append(out, f)
		}
	}
	return out
}

// scoreEpsilon is the tie window when sorting ranked candidates; scores
// closer than this fall back to alphabetical order.
const scoreEpsilon = 0.01

// Rank reorders candidates by their best similarity to any liked food,
// highest first, alphabetical on ties. Candidates are deduplicated by
// (name, location) keeping the first occurrence; foods already liked sink
// to the end. Nothing is dropped beyond duplicates: the result is a
// permutation of the distinct input.
func (s *Scorer) Rank(liked, candidates []models.FoodItem) []models.FoodItem {
	if len(liked) == 0 || len(candidates) == 0 {
		return candidates
	}

	seen := make(map[models.FoodKey]struct{}, len(candidates))
	distinct := make([]models.FoodItem, 0, len(candidates))
	for _, c := range candidates {
		key := c.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, c)
	}

	likedKeys := make(map[models.FoodKey]struct{}, len(liked))
	for _, f := range liked {
		likedKeys[f.Key()] = struct{}{}
	}

	type scored struct {
		food  models.FoodItem
		score float64
	}
	ranked := make([]scored, 0, len(distinct))
	for _, c := range distinct {
		if _, already := likedKeys[c.Key()]; already {
			ranked = append(ranked, scored{food: c, score: -1})
			continue
		}
		best := 0.0
		for _, l := range liked {
			if sim := s.Score(l, c); sim > best {
				best = sim
			}
		}
		ranked = append(ranked, scored{food: c, score: best})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].score-ranked[j].score) > scoreEpsilon {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].food.Name < ranked[j].food.Name
	})

	out := make([]models.FoodItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.food
	}
	return out
}

// RecommendationReason explains, in UI copy, why a food ranks near the top
// for this user. Empty when nothing liked resembles it.
func (s *Scorer) RecommendationReason(food models.FoodItem, liked []models.FoodItem) string {
	if len(liked) == 0 {
		return ""
	}

	var best models.FoodItem
	bestScore := 0.0
	for _, l := range liked {
		if sim := s.Score(l, food); sim > bestScore {
			bestScore = sim
			best = l
		}
	}
	if bestScore < 0.3 {
		return ""
	}

	foodKeys := ExtractKeywords(models.NormalizeName(food.Name))
	likedKeys := ExtractKeywords(models.NormalizeName(best.Name))
	for k := range foodKeys {
		if _, ok := likedKeys[k]; ok {
			return "Similar to " + best.Name + " (" + k + ")"
		}
	}

	nameA := models.NormalizeName(food.Name)
	nameB := models.NormalizeName(best.Name)
	if strings.Contains(nameA, nameB) || strings.Contains(nameB, nameA) {
		return "Similar to " + best.Name
	}
	return "You liked " + best.Name
}
