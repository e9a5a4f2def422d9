package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// stubProvider returns a canned reply or error and records what it was
// asked.
type stubProvider struct {
	reply    string
	err      error
	messages []Message
}

func (s *stubProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	s.messages = messages
	return s.reply, s.err
}

func testBundle() ContextBundle {
	prefs := models.UserPreferences{
		Vegetarian:  true,
		DiningHalls: []string{"Worcester", "Franklin"},
	}
	return ContextBundle{
		Preferences:   &prefs,
		CaloricTarget: 2000,
		LikedFoods: []models.FoodItem{
			{Name: "Cheese Pizza", Location: "Worcester", Calories: models.KnownNutrient(300)},
		},
	}
}

func TestChat_NilProviderFallsBack(t *testing.T) {
	a := New(nil)

	reply := a.Chat(context.Background(), "what should I eat?", testBundle())

	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "2000 calories")
	assert.False(t, a.Configured())
}

func TestChat_ProviderErrorFallsBack(t *testing.T) {
	a := New(&stubProvider{err: errors.New("rate limited")})

	reply := a.Chat(context.Background(), "hello", testBundle())

	assert.NotEmpty(t, reply)
	assert.Contains(t, reply, "can't reach the assistant service")
}

func TestChat_UsesProviderReply(t *testing.T) {
	stub := &stubProvider{reply: "Try the tofu stir fry at Worcester."}
	a := New(stub)

	reply := a.Chat(context.Background(), "dinner ideas?", testBundle())

	assert.Equal(t, "Try the tofu stir fry at Worcester.", reply)
	assert.True(t, a.Configured())

	// System prompt first, user message last.
	assert.Equal(t, "system", stub.messages[0].Role)
	assert.Equal(t, "user", stub.messages[len(stub.messages)-1].Role)
	assert.Equal(t, "dinner ideas?", stub.messages[len(stub.messages)-1].Content)
}

func TestChat_TrimsHistory(t *testing.T) {
	stub := &stubProvider{reply: "ok"}
	a := New(stub)

	bundle := testBundle()
	for i := 0; i < 30; i++ {
		bundle.History = append(bundle.History, Message{Role: "user", Content: "older"})
	}

	a.Chat(context.Background(), "latest", bundle)

	// system + capped history + the new user message.
	assert.Len(t, stub.messages, 1+maxHistoryTurns+1)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(testBundle())

	assert.Contains(t, prompt, "Vegetarian")
	assert.Contains(t, prompt, "Worcester, Franklin")
	assert.Contains(t, prompt, "Daily Caloric Maintenance: 2000 calories")
	assert.Contains(t, prompt, "Cheese Pizza")
	assert.Contains(t, prompt, "300 cal")
}

func TestBuildSystemPrompt_CapsLikedFoods(t *testing.T) {
	bundle := testBundle()
	bundle.LikedFoods = nil
	for i := 0; i < maxLikedFoodsInPrompt+5; i++ {
		bundle.LikedFoods = append(bundle.LikedFoods, models.FoodItem{Name: "Food", Location: "Worcester"})
	}

	prompt := BuildSystemPrompt(bundle)

	assert.Contains(t, prompt, "and 5 more liked foods")
	assert.Equal(t, maxLikedFoodsInPrompt, strings.Count(prompt, ". Food (Worcester)"))
}

func TestBuildSystemPrompt_EmptyBundle(t *testing.T) {
	prompt := BuildSystemPrompt(ContextBundle{})

	assert.Contains(t, prompt, "nutrition and meal planning assistant")
	assert.NotContains(t, prompt, "Liked Foods")
	assert.NotContains(t, prompt, "Current Meal Plan")
}

func TestDiningBrief_Fallback(t *testing.T) {
	a := New(nil)

	bullets := a.DiningBrief(context.Background(), testBundle())

	assert.Len(t, bullets, 3)
	assert.Contains(t, bullets[2], "2000 calories")
}

func TestDiningBrief_ParsesProviderBullets(t *testing.T) {
	stub := &stubProvider{reply: "- Eat more protein\n* Hydrate well\n• Go easy on dessert\n"}
	a := New(stub)

	bullets := a.DiningBrief(context.Background(), testBundle())

	assert.Equal(t, []string{"Eat more protein", "Hydrate well", "Go easy on dessert"}, bullets)
}

func TestDiningBrief_EmptyReplyFallsBack(t *testing.T) {
	a := New(&stubProvider{reply: "   \n  \n"})

	bullets := a.DiningBrief(context.Background(), testBundle())

	assert.Len(t, bullets, 3)
}
