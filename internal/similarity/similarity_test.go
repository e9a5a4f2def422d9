package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

func food(name, location, category, mealType string) models.FoodItem {
	return models.FoodItem{
		Name:     name,
		Location: location,
		Category: category,
		MealType: mealType,
	}
}

func TestScore_SameNameIsPerfect(t *testing.T) {
	s := NewScorer(DefaultWeights())

	a := food("Grilled Chicken Breast", "Worcester", "Entrees", "Lunch")
	b := food("grilled chicken breast", "Franklin", "Grill", "Dinner")

	assert.Equal(t, 1.0, s.Score(a, b), "same dish name should score 1.0 regardless of other fields")
}

func TestScore_Range(t *testing.T) {
	s := NewScorer(DefaultWeights())

	pairs := [][2]models.FoodItem{
		{food("Cheese Pizza", "Worcester", "Pizza", "Lunch"), food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch")},
		{food("Garden Salad", "Berkshire", "Salads", "Lunch"), food("Beef Stew", "Franklin", "Entrees", "Dinner")},
		{food("Chicken Noodle Soup", "Worcester", "Soups", "Lunch"), food("Chicken Caesar Wrap", "Worcester", "Wraps", "Lunch")},
	}

	for _, p := range pairs {
		score := s.Score(p[0], p[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestScore_RelatedBeatsUnrelated(t *testing.T) {
	s := NewScorer(DefaultWeights())

	liked := food("Cheese Pizza", "Worcester", "Pizza", "Lunch")
	related := food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch")
	unrelated := food("Fruit Cup", "Berkshire", "Desserts", "Breakfast")

	assert.Greater(t, s.Score(liked, related), s.Score(liked, unrelated))
}

func TestScore_SubstringBonus(t *testing.T) {
	s := NewScorer(DefaultWeights())

	whole := food("Pizza", "Worcester", "", "")
	contained := food("Cheese Pizza", "Worcester", "", "")
	disjoint := food("Tacos", "Worcester", "", "")

	assert.Greater(t, s.Score(whole, contained), s.Score(whole, disjoint))
}

func TestScore_UnknownMealTypeCarriesNoSignal(t *testing.T) {
	s := NewScorer(DefaultWeights())

	a := food("Beef Stew", "Worcester", "", "unknown")
	b := food("Lamb Stew", "Worcester", "", "unknown")
	c := food("Lamb Stew", "Worcester", "", "Dinner")

	// a/b share meal type "unknown", a/c do not share one at all; neither
	// pair should get the meal type weight.
	assert.InDelta(t, s.Score(a, b), s.Score(a, c), 0.001)
}

func TestFindAutoLikeFoods(t *testing.T) {
	justLiked := food("Grilled Chicken Breast", "Worcester", "Entrees", "Lunch")
	catalog := []models.FoodItem{
		justLiked,
		food("Grilled Chicken Breast", "Franklin", "Grill", "Dinner"),
		food("Grilled Chicken Breast", "Berkshire", "Entrees", "Lunch"),
		food("Fried Chicken", "Franklin", "Entrees", "Dinner"),
	}

	matches := FindAutoLikeFoods(justLiked, catalog, nil)

	assert.Len(t, matches, 2)
	for _, m := range matches {
		assert.True(t, m.SameDish(justLiked))
		assert.NotEqual(t, justLiked.Location, m.Location)
	}
}

func TestFindAutoLikeFoods_SkipsAlreadyLiked(t *testing.T) {
	justLiked := food("Grilled Chicken Breast", "Worcester", "Entrees", "Lunch")
	franklin := food("Grilled Chicken Breast", "Franklin", "Grill", "Dinner")
	catalog := []models.FoodItem{justLiked, franklin,
		food("Grilled Chicken Breast", "Berkshire", "Entrees", "Lunch"),
	}

	matches := FindAutoLikeFoods(justLiked, catalog, []models.FoodItem{franklin})

	assert.Len(t, matches, 1)
	assert.Equal(t, "Berkshire", matches[0].Location)
}

func TestRank_IsPermutation(t *testing.T) {
	s := NewScorer(DefaultWeights())

	liked := []models.FoodItem{food("Cheese Pizza", "Worcester", "Pizza", "Lunch")}
	candidates := []models.FoodItem{
		food("Garden Salad", "Berkshire", "Salads", "Lunch"),
		food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch"),
		food("Beef Stew", "Franklin", "Entrees", "Dinner"),
		food("Veggie Pizza", "Franklin", "Pizza", "Dinner"),
	}

	ranked := s.Rank(liked, candidates)

	assert.Len(t, ranked, len(candidates))
	want := make(map[models.FoodKey]struct{})
	for _, c := range candidates {
		want[c.Key()] = struct{}{}
	}
	for _, r := range ranked {
		_, ok := want[r.Key()]
		assert.True(t, ok, "ranked output contains food not in input: %s", r.Name)
	}
}

func TestRank_SimilarFoodsFirst(t *testing.T) {
	s := NewScorer(DefaultWeights())

	liked := []models.FoodItem{food("Cheese Pizza", "Worcester", "Pizza", "Lunch")}
	candidates := []models.FoodItem{
		food("Beef Stew", "Franklin", "Entrees", "Dinner"),
		food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch"),
	}

	ranked := s.Rank(liked, candidates)

	assert.Equal(t, "Pepperoni Pizza", ranked[0].Name)
}

func TestRank_DeduplicatesKeepingFirst(t *testing.T) {
	s := NewScorer(DefaultWeights())

	liked := []models.FoodItem{food("Cheese Pizza", "Worcester", "Pizza", "Lunch")}
	dup := food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch")
	candidates := []models.FoodItem{dup, dup, food("Beef Stew", "Franklin", "Entrees", "Dinner")}

	ranked := s.Rank(liked, candidates)

	assert.Len(t, ranked, 2)
}

func TestRank_AlreadyLikedSinkToEnd(t *testing.T) {
	s := NewScorer(DefaultWeights())

	pizza := food("Cheese Pizza", "Worcester", "Pizza", "Lunch")
	liked := []models.FoodItem{pizza}
	candidates := []models.FoodItem{
		pizza,
		food("Beef Stew", "Franklin", "Entrees", "Dinner"),
	}

	ranked := s.Rank(liked, candidates)

	assert.Equal(t, pizza.Key(), ranked[len(ranked)-1].Key())
}

func TestRank_NoLikedIsIdentity(t *testing.T) {
	s := NewScorer(DefaultWeights())

	candidates := []models.FoodItem{
		food("Beef Stew", "Franklin", "Entrees", "Dinner"),
		food("Garden Salad", "Berkshire", "Salads", "Lunch"),
	}

	ranked := s.Rank(nil, candidates)

	assert.Equal(t, candidates, ranked)
}

func TestExtractKeywords(t *testing.T) {
	keys := ExtractKeywords("grilled chicken breast with the rice")

	assert.Contains(t, keys, "grilled")
	assert.Contains(t, keys, "chicken")
	assert.Contains(t, keys, "breast")
	assert.Contains(t, keys, "rice")
	assert.NotContains(t, keys, "with", "stop words should be dropped")
	assert.NotContains(t, keys, "the", "stop words should be dropped")
}

func TestRecommendationReason(t *testing.T) {
	s := NewScorer(DefaultWeights())

	liked := []models.FoodItem{food("Cheese Pizza", "Worcester", "Pizza", "Lunch")}

	reason := s.RecommendationReason(food("Pepperoni Pizza", "Worcester", "Pizza", "Lunch"), liked)
	assert.NotEmpty(t, reason)
	assert.Contains(t, reason, "Cheese Pizza")

	assert.Empty(t, s.RecommendationReason(food("Fruit Cup", "Berkshire", "Desserts", "Breakfast"), nil))
}
