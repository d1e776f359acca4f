package definitions

import (
	"errors"
	"fmt"

	models "finboard/database/models_pkg"

	"gorm.io/gorm"
)

// Repository handles database operations for indicator definitions
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new definitions repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all definitions ordered by name
func (r *Repository) List() ([]models.IndicatorDefinition, error) {
	var defs []models.IndicatorDefinition
	if err := r.db.Order("name ASC").Find(&defs).Error; err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return defs, nil
}

// Get returns a definition by ID, or nil when it does not exist
func (r *Repository) Get(id string) (*models.IndicatorDefinition, error) {
	var def models.IndicatorDefinition
	err := r.db.Where("id = ?", id).First(&def).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &def, nil
}

// Create inserts a definition
func (r *Repository) Create(def *models.IndicatorDefinition) error {
	if err := r.db.Create(def).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update saves every column of an existing definition. It reports whether a row was updated.
func (r *Repository) Update(def *models.IndicatorDefinition) (bool, error) {
	result := r.db.Model(&models.IndicatorDefinition{}).
		Where("id = ?", def.ID).
		Select("name", "field_name", "category", "unit", "description", "sql_column", "categoria", "updated_at").
		Updates(def)
	if result.Error != nil {
		return false, fmt.Errorf("Update: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a definition. It reports whether a row was deleted.
func (r *Repository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.IndicatorDefinition{})
	if result.Error != nil {
		return false, fmt.Errorf("Delete: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SeedDefaults inserts defs when the table is empty and returns how many rows were written
func (r *Repository) SeedDefaults(defs []models.IndicatorDefinition) (int, error) {
	var count int64
	if err := r.db.Model(&models.IndicatorDefinition{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("SeedDefaults: %w", err)
	}
	if count > 0 || len(defs) == 0 {
		return 0, nil
	}
	if err := r.db.CreateInBatches(defs, 50).Error; err != nil {
		return 0, fmt.Errorf("SeedDefaults: %w", err)
	}
	return len(defs), nil
}
