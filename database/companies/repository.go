package companies

import (
	"errors"
	"fmt"
	"strings"

	models "finboard/database/models_pkg"

	"gorm.io/gorm"
)

// Repository handles database operations for companies
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new companies repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all companies ordered by name.
// A non-empty search term filters by name or ticker, case-insensitive.
func (r *Repository) List(search string) ([]models.Company, error) {
	var companies []models.Company
	query := r.db.Order("nome ASC")

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(nome) LIKE ? OR LOWER(ticker) LIKE ?", like, like)
	}

	if err := query.Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return companies, nil
}

// Get returns a company by ID, or nil when it does not exist
func (r *Repository) Get(id string) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &company, nil
}

// Create inserts a company
func (r *Repository) Create(company *models.Company) error {
	if err := r.db.Create(company).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Update saves every column of an existing company. It reports whether a row was updated.
func (r *Repository) Update(company *models.Company) (bool, error) {
	result := r.db.Model(&models.Company{}).
		Where("id = ?", company.ID).
		Select("nome", "ticker", "link_ri", "categoria", "updated_at").
		Updates(company)
	if result.Error != nil {
		return false, fmt.Errorf("Update: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a company; its quarterly records go with it. It reports whether a row was deleted.
func (r *Repository) Delete(id string) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&models.FinancialIndicator{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Company{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return deleted, nil
}
