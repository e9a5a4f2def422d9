// Package session owns the swipe queue state machine: one cursor walking a
// filtered, similarity-ranked sequence of foods, accumulating liked and
// disliked sets. The controller is the only writer of session state; every
// transition is synchronous and completes before the next user action.
package session

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/rajkangr/MealSwipeRight/internal/catalog"
	"github.com/rajkangr/MealSwipeRight/internal/models"
	"github.com/rajkangr/MealSwipeRight/internal/similarity"
)

// State of a swipe session.
type State string

const (
	StateLoading   State = "loading"   // catalog not yet available
	StateActive    State = "active"    // cursor < queue length
	StateExhausted State = "exhausted" // cursor ran off the end
)

// Direction of a swipe.
type Direction string

const (
	Like    Direction = "like"
	Dislike Direction = "dislike"
)

// MinSwipesForProfile is how many swipes build a usable taste profile;
// onboarding treats the session as complete once this many cards are judged.
const MinSwipesForProfile = 10

// ErrNotActive is returned when a swipe arrives outside the Active state.
var ErrNotActive = errors.New("session is not active")

// StateStore is the persistence sink the controller writes snapshots to
// after each transition. Absence of the key means a fresh session; the
// store is never a second source of truth.
type StateStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// sessionStateKey is the store key snapshots are written under.
const sessionStateKey = "swipe_session"

// SwipeResult reports what one swipe did.
type SwipeResult struct {
	Swiped    models.FoodItem   `json:"swiped"`
	Direction Direction         `json:"direction"`
	AutoLiked []models.FoodItem `json:"auto_liked,omitempty"`
	Skipped   int               `json:"skipped"`
	State     State             `json:"state"`
}

// Controller orchestrates per-swipe transitions over a ranked queue.
type Controller struct {
	scorer *similarity.Scorer
	store  StateStore // optional

	catalog *catalog.Store
	prefs   models.UserPreferences

	queue     []models.FoodItem
	cursor    int
	liked     []models.FoodItem
	disliked  []models.FoodItem
	likedKeys map[models.FoodKey]struct{}
	loaded    bool
}

// NewController creates a controller. The store may be nil for an ephemeral
// session; the scorer must not be.
func NewController(scorer *similarity.Scorer, store StateStore) *Controller {
	return &Controller{
		scorer:    scorer,
		store:     store,
		likedKeys: make(map[models.FoodKey]struct{}),
	}
}

// SetCatalog supplies the food catalog, moving the session out of Loading.
// The queue is rebuilt from the current preferences.
func (c *Controller) SetCatalog(store *catalog.Store) {
	c.catalog = store
	c.loaded = store != nil
	c.rebuild()
}

// SetPreferences applies a new filter set. This is a hard reset: cursor,
// liked and disliked all clear and the queue rebuilds from the full
// catalog. The newest preference set always wins; there is no merging with
// the superseded session.
func (c *Controller) SetPreferences(prefs models.UserPreferences) {
	c.prefs = prefs
	c.rebuild()
}

// Reset clears all swipe state while keeping preferences and catalog.
func (c *Controller) Reset() {
	c.rebuild()
}

// State reports where the session is in its lifecycle.
func (c *Controller) State() State {
	switch {
	case !c.loaded:
		return StateLoading
	case c.cursor < len(c.queue):
		return StateActive
	default:
		return StateExhausted
	}
}

// Current returns the food under the cursor, if the session is active.
func (c *Controller) Current() (models.FoodItem, bool) {
	if c.State() != StateActive {
		return models.FoodItem{}, false
	}
	return c.queue[c.cursor], true
}

// Upcoming returns the next n foods from the cursor onward.
func (c *Controller) Upcoming(n int) []models.FoodItem {
	if c.State() != StateActive {
		return nil
	}
	end := c.cursor + n
	if end > len(c.queue) {
		end = len(c.queue)
	}
	out := make([]models.FoodItem, end-c.cursor)
	copy(out, c.queue[c.cursor:end])
	return out
}

// Liked returns the liked foods in insertion order.
func (c *Controller) Liked() []models.FoodItem {
	out := make([]models.FoodItem, len(c.liked))
	copy(out, c.liked)
	return out
}

// Disliked returns the disliked foods in insertion order.
func (c *Controller) Disliked() []models.FoodItem {
	out := make([]models.FoodItem, len(c.disliked))
	copy(out, c.disliked)
	return out
}

// Remaining is the number of queue entries the cursor has not passed.
func (c *Controller) Remaining() int {
	if c.cursor >= len(c.queue) {
		return 0
	}
	return len(c.queue) - c.cursor
}

// QueueLen is the size of the current filtered queue.
func (c *Controller) QueueLen() int { return len(c.queue) }

// ProfileComplete reports whether enough cards have been judged to form a
// taste profile.
func (c *Controller) ProfileComplete() bool {
	return len(c.liked)+len(c.disliked) >= MinSwipesForProfile
}

// Swipe records a judgment on the current card and advances the cursor.
// Liking a food auto-likes the same dish at other dining halls and removes
// every liked dish from the unseen queue, wherever it sits, so none of them
// ever demands a swipe of its own. Whenever the liked set grows, the unseen
// remainder of the queue is re-ranked toward it; seen cards never reorder.
func (c *Controller) Swipe(dir Direction) (SwipeResult, error) {
	current, ok := c.Current()
	if !ok {
		return SwipeResult{State: c.State()}, ErrNotActive
	}

	result := SwipeResult{Swiped: current, Direction: dir}

	switch dir {
	case Dislike:
		c.disliked = append(c.disliked, current)
		c.cursor++
	case Like:
		c.appendLiked(current)
		auto := similarity.FindAutoLikeFoods(current, c.catalog.All(), c.liked)
		for _, f := range auto {
			c.appendLiked(f)
		}
		result.AutoLiked = auto

		c.cursor++
		result.Skipped = c.dropLikedUnseen()
		c.rerank()
	default:
		return SwipeResult{State: c.State()}, errors.New("invalid swipe direction")
	}

	c.persist()
	result.State = c.State()
	return result, nil
}

func (c *Controller) appendLiked(f models.FoodItem) {
	key := f.Key()
	if _, dup := c.likedKeys[key]; dup {
		return
	}
	c.likedKeys[key] = struct{}{}
	c.liked = append(c.liked, f)
}

// dropLikedUnseen removes every already-liked food from the unseen part of
// the queue, so no liked dish ever occupies a cursor slot, adjacent to the
// cursor or not. Returns how many were removed.
func (c *Controller) dropLikedUnseen() int {
	kept := c.queue[:c.cursor]
	dropped := 0
	for _, f := range c.queue[c.cursor:] {
		if _, liked := c.likedKeys[f.Key()]; liked {
			dropped++
			continue
		}
		kept = append(kept, f)
	}
	c.queue = kept
	return dropped
}

// rerank re-passes the unseen slice of the queue through the similarity
// ranking against the updated liked set. The ranked result replaces the
// unseen window outright rather than being copied over it, so the queue
// stays consistent even if Rank collapses duplicates.
func (c *Controller) rerank() {
	if c.cursor >= len(c.queue) || len(c.liked) == 0 {
		return
	}
	ranked := c.scorer.Rank(c.liked, c.queue[c.cursor:])
	c.queue = append(c.queue[:c.cursor], ranked...)
}

// rebuild refilters the catalog and starts the session over. Duplicate
// (name, location) rows collapse here: the scraper lists the same dish
// under multiple meal periods, and one card per dish is enough.
func (c *Controller) rebuild() {
	c.cursor = 0
	c.liked = nil
	c.disliked = nil
	c.likedKeys = make(map[models.FoodKey]struct{})
	c.queue = nil
	if c.catalog != nil {
		filtered := c.catalog.Filtered(c.prefs)
		seen := make(map[models.FoodKey]struct{}, len(filtered))
		c.queue = make([]models.FoodItem, 0, len(filtered))
		for _, f := range filtered {
			key := f.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			c.queue = append(c.queue, f)
		}
	}
	c.persist()
}

// snapshot is the persisted shape of a session. Foods are stored by key;
// the catalog is authoritative for everything else about them.
type snapshot struct {
	Cursor   int                    `json:"cursor"`
	Liked    []models.FoodKey       `json:"liked"`
	Disliked []models.FoodKey       `json:"disliked"`
	Prefs    models.UserPreferences `json:"preferences"`
}

// persist writes the session snapshot after a transition. Persistence is a
// sink: a write failure is logged and the in-memory session stays valid.
func (c *Controller) persist() {
	if c.store == nil {
		return
	}
	snap := snapshot{
		Cursor:   c.cursor,
		Liked:    foodKeys(c.liked),
		Disliked: foodKeys(c.disliked),
		Prefs:    c.prefs,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("Failed to encode session snapshot: %v", err)
		return
	}
	if err := c.store.Set(sessionStateKey, string(data)); err != nil {
		log.Printf("Failed to persist session snapshot: %v", err)
	}
}

func foodKeys(foods []models.FoodItem) []models.FoodKey {
	keys := make([]models.FoodKey, len(foods))
	for i, f := range foods {
		keys[i] = f.Key()
	}
	return keys
}
