// Package assistant wraps the generative-text service behind a
// request/response interface with deterministic fallbacks. The core
// recommendation and planning code never depends on this service; every
// failure path here returns fixed copy instead of an error.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rajkangr/MealSwipeRight/internal/models"
)

// ContextBundle is everything the assistant knows about the user when
// answering: it is assembled fresh per request from session and stored
// state.
type ContextBundle struct {
	Preferences   *models.UserPreferences `json:"preferences,omitempty"`
	Profile       *models.UserProfile     `json:"profile,omitempty"`
	LikedFoods    []models.FoodItem       `json:"liked_foods,omitempty"`
	CaloricTarget int                     `json:"caloric_target,omitempty"`
	Plan          *models.MealPlan        `json:"plan,omitempty"`
	History       []Message               `json:"history,omitempty"`
}

// Prompt construction limits.
const (
	maxLikedFoodsInPrompt = 20
	maxHistoryTurns       = 10
)

var activityDescriptions = map[models.ActivityLevel]string{
	models.ActivitySedentary:  "Sedentary (little/no exercise)",
	models.ActivityLightly:    "Lightly Active (1-3 days/week)",
	models.ActivityModerately: "Moderately Active (3-5 days/week)",
	models.ActivityActive:     "Active (6-7 days/week)",
	models.ActivityVery:       "Very Active (2x per day)",
}

// Assistant answers nutrition questions with the user's context attached.
type Assistant struct {
	provider Provider
}

// New creates an assistant. A nil provider is valid and means every answer
// comes from the static fallbacks.
func New(provider Provider) *Assistant {
	return &Assistant{provider: provider}
}

// Configured reports whether a live provider is attached.
func (a *Assistant) Configured() bool { return a.provider != nil }

// Chat answers a user message. It never fails: provider errors and missing
// credentials both degrade to the fixed fallback reply.
func (a *Assistant) Chat(ctx context.Context, userMessage string, bundle ContextBundle) string {
	if a.provider == nil {
		return a.fallbackReply(bundle)
	}

	messages := []Message{{Role: "system", Content: BuildSystemPrompt(bundle)}}
	history := bundle.History
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	reply, err := a.provider.Complete(ctx, messages)
	if err != nil || reply == "" {
		log.Printf("Assistant call failed, using fallback: %v", err)
		return a.fallbackReply(bundle)
	}
	return reply
}

// DiningBrief produces short micro-copy bullets about the user's current
// plan. On any failure the fixed bullet set is returned.
func (a *Assistant) DiningBrief(ctx context.Context, bundle ContextBundle) []string {
	if a.provider == nil {
		return fallbackBrief(bundle)
	}

	prompt := BuildSystemPrompt(bundle) +
		"\nWrite exactly 3 short bullet points (one line each, no numbering) summarizing what this user should eat today. Plain text, one bullet per line."

	reply, err := a.provider.Complete(ctx, []Message{{Role: "user", Content: prompt}})
	if err != nil || reply == "" {
		log.Printf("Dining brief call failed, using fallback: %v", err)
		return fallbackBrief(bundle)
	}

	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• "))
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		return fallbackBrief(bundle)
	}
	return bullets
}

// BuildSystemPrompt renders the user's context into the system prompt the
// provider sees.
func BuildSystemPrompt(bundle ContextBundle) string {
	var b strings.Builder
	b.WriteString(`You are a helpful nutrition and meal planning assistant for MealSwipeRight, a dining hall food recommendation app.

Your role is to:
- Provide personalized meal suggestions based on user preferences
- Answer questions about nutrition, calories, and macros
- Help users make informed food choices
- Suggest meal combinations that fit their dietary goals

USER CONTEXT:
`)

	if p := bundle.Preferences; p != nil {
		b.WriteString("\nDietary Preferences:\n")
		if len(p.DiningHalls) > 0 {
			b.WriteString("- Dining Halls: " + strings.Join(p.DiningHalls, ", ") + "\n")
		} else {
			b.WriteString("- Dining Halls: None\n")
		}
		if p.Vegetarian {
			b.WriteString("- Vegetarian\n")
		}
		if p.Vegan {
			b.WriteString("- Vegan\n")
		}
		if p.GlutenFree {
			b.WriteString("- Gluten-Free\n")
		}
		if p.DairyFree {
			b.WriteString("- Dairy-Free\n")
		}
		if p.Keto {
			b.WriteString("- Keto\n")
		}
		if p.ActivityLevel != "" {
			desc, ok := activityDescriptions[p.ActivityLevel]
			if !ok {
				desc = string(p.ActivityLevel)
			}
			b.WriteString("- Activity Level: " + desc + "\n")
		}
	}

	if u := bundle.Profile; u != nil {
		b.WriteString("\nUser Information:\n")
		if u.WeightLbs > 0 {
			fmt.Fprintf(&b, "- Weight: %.0f lbs\n", u.WeightLbs)
		}
		if u.HeightInches > 0 {
			fmt.Fprintf(&b, "- Height: %.0f inches\n", u.HeightInches)
		}
		if u.Sex != "" {
			fmt.Fprintf(&b, "- Sex: %s\n", u.Sex)
		}
		if u.AgeYears > 0 {
			fmt.Fprintf(&b, "- Age: %d years\n", u.AgeYears)
		}
	}

	if bundle.CaloricTarget > 0 {
		fmt.Fprintf(&b, "\nDaily Caloric Maintenance: %d calories\n", bundle.CaloricTarget)
	}

	if len(bundle.LikedFoods) > 0 {
		fmt.Fprintf(&b, "\nLiked Foods (%d items):\n", len(bundle.LikedFoods))
		for i, food := range bundle.LikedFoods {
			if i >= maxLikedFoodsInPrompt {
				fmt.Fprintf(&b, "... and %d more liked foods\n", len(bundle.LikedFoods)-maxLikedFoodsInPrompt)
				break
			}
			fmt.Fprintf(&b, "%d. %s", i+1, food.Name)
			if food.Location != "" {
				fmt.Fprintf(&b, " (%s)", food.Location)
			}
			if food.Calories.Known {
				fmt.Fprintf(&b, " - %s cal", food.Calories.String())
			}
			b.WriteByte('\n')
		}
	}

	if plan := bundle.Plan; plan != nil {
		b.WriteString("\nCurrent Meal Plan:\n")
		fmt.Fprintf(&b, "- Total Calories: %d\n", plan.Totals.Calories)
		fmt.Fprintf(&b, "- Protein: %dg\n", plan.Totals.ProteinG)
		fmt.Fprintf(&b, "- Carbs: %dg\n", plan.Totals.CarbsG)
		fmt.Fprintf(&b, "- Fat: %dg\n", plan.Totals.FatG)
	}

	b.WriteString(`
INSTRUCTIONS:
- Always consider the user's dietary preferences and restrictions when making suggestions
- Reference their liked foods when suggesting meal combinations
- Be conversational, friendly, and helpful
- Suggest meal combinations that help them reach their caloric and macro goals
- Keep responses concise but informative
- If you don't have information about a specific food item, say so honestly
`)
	return b.String()
}

// fallbackReply is the deterministic answer used when no provider is
// reachable.
func (a *Assistant) fallbackReply(bundle ContextBundle) string {
	var b strings.Builder
	b.WriteString("I can't reach the assistant service right now, but here's what I know from your profile: ")
	if bundle.CaloricTarget > 0 {
		t := models.TargetsFor(bundle.CaloricTarget)
		fmt.Fprintf(&b, "your daily target is %d calories (about %dg protein, %dg carbs, %dg fat). ",
			t.Calories, t.ProteinG, t.CarbsG, t.FatG)
	} else {
		b.WriteString("set a caloric target in Settings to get macro guidance. ")
	}
	if n := len(bundle.LikedFoods); n > 0 {
		fmt.Fprintf(&b, "You have %d liked foods; check the Meal Plan tab for today's picks built from them.", n)
	} else {
		b.WriteString("Swipe on some foods first so I can learn what you like.")
	}
	return b.String()
}

// fallbackBrief is the fixed bullet set used when the service is down.
func fallbackBrief(bundle ContextBundle) []string {
	bullets := []string{
		"Build meals around your liked foods with the highest protein per calorie.",
		"Keep each plate near a quarter of your daily calorie target.",
	}
	if bundle.CaloricTarget > 0 {
		t := models.TargetsFor(bundle.CaloricTarget)
		bullets = append(bullets, fmt.Sprintf("Aim for roughly %d calories and %dg of protein today.", t.Calories, t.ProteinG))
	} else {
		bullets = append(bullets, "Set a caloric target to get personalized daily numbers.")
	}
	return bullets
}
