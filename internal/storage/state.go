package storage

import (
	"sync"

	"github.com/jinzhu/gorm"
)

// Well-known user-state keys. Everything round-trips through a JSON string;
// an absent key means "unset", never an error.
const (
	KeyPreferences   = "preferences"
	KeyProfile       = "profile"
	KeyCaloricTarget = "caloric_target"
	KeyConversation  = "conversation"
)

// Store is the persistent key->string interface the app keeps user state
// behind. Implementations must treat a missing key as unset.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// UserState is one persisted key/value pair.
type UserState struct {
	Key   string `gorm:"primary_key" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// TableName sets the table name for UserState
func (UserState) TableName() string {
	return "user_states"
}

// DBStore persists user state in the database.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a store over the given database.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Get returns the value for key, reporting absence separately from errors.
func (s *DBStore) Get(key string) (string, bool, error) {
	var state UserState
	err := s.db.Where("key = ?", key).First(&state).Error
	if gorm.IsRecordNotFoundError(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return state.Value, true, nil
}

// Set writes the value for key, replacing any existing value.
func (s *DBStore) Set(key, value string) error {
	var state UserState
	err := s.db.Where("key = ?", key).First(&state).Error
	if gorm.IsRecordNotFoundError(err) {
		return s.db.Create(&UserState{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	state.Value = value
	return s.db.Save(&state).Error
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *DBStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&UserState{}).Error
}

// MemoryStore is an in-process Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set writes the value for key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Delete removes a key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
