package repositories

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"resumepro/resume-analyzer/internal/models"
)

type PreferenceRepository interface {
	Get(key string) (*models.Preference, error)
	Set(key, value string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get implements PreferenceRepository.
func (r *preferenceRepository) Get(key string) (*models.Preference, error) {
	var pref models.Preference
	if err := r.db.Where("key = ?", key).First(&pref).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("preference not found: %s", key)
		}
		return nil, fmt.Errorf("failed to find preference: %w", err)
	}

	return &pref, nil
}

// Set implements PreferenceRepository.
func (r *preferenceRepository) Set(key, value string) error {
	pref := models.Preference{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	if err := r.db.Save(&pref).Error; err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}

// memoryPreferenceRepository backs the preferences endpoint when no database
// is configured.
type memoryPreferenceRepository struct {
	mu     sync.RWMutex
	values map[string]models.Preference
}

func NewMemoryPreferenceRepository() PreferenceRepository {
	return &memoryPreferenceRepository{
		values: make(map[string]models.Preference),
	}
}

// Get implements PreferenceRepository.
func (r *memoryPreferenceRepository) Get(key string) (*models.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pref, ok := r.values[key]
	if !ok {
		return nil, fmt.Errorf("preference not found: %s", key)
	}
	return &pref, nil
}

// Set implements PreferenceRepository.
func (r *memoryPreferenceRepository) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = models.Preference{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return nil
}
