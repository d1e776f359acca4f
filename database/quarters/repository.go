package quarters

import (
	"errors"
	"fmt"

	models "finboard/database/models_pkg"

	"gorm.io/gorm"
)

// Repository handles database operations for quarterly financial records
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new quarters repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByCompany returns the history of a company, most recent quarter first
func (r *Repository) ListByCompany(companyID string) ([]models.FinancialIndicator, error) {
	var records []models.FinancialIndicator
	err := r.db.Where("company_id = ?", companyID).
		Order("year DESC").
		Order("quarter_number DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("ListByCompany: %w", err)
	}
	return records, nil
}

// Get returns a quarterly record by ID, or nil when it does not exist
func (r *Repository) Get(id string) (*models.FinancialIndicator, error) {
	var record models.FinancialIndicator
	err := r.db.Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &record, nil
}

// FindByQuarter probes for the record of a company in a quarter ("2024TRI1").
// A missing record is not an error: it returns nil, nil.
func (r *Repository) FindByQuarter(companyID, quarter string) (*models.FinancialIndicator, error) {
	var record models.FinancialIndicator
	err := r.db.Where("company_id = ? AND quarter = ?", companyID, quarter).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByQuarter: %w", err)
	}
	return &record, nil
}

// Create inserts a quarterly record
func (r *Repository) Create(record *models.FinancialIndicator) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update saves every column of an existing record, metrics set to nil included.
// It reports whether a row was updated.
func (r *Repository) Update(record *models.FinancialIndicator) (bool, error) {
	result := r.db.Model(&models.FinancialIndicator{}).
		Where("id = ?", record.ID).
		Select("*").
		Omit("id", "company_id", "created_at", "Company").
		Updates(record)
	if result.Error != nil {
		return false, fmt.Errorf("Update: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a quarterly record. It reports whether a row was deleted.
func (r *Repository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.FinancialIndicator{})
	if result.Error != nil {
		return false, fmt.Errorf("Delete: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
