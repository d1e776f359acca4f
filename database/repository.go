package database

import (
	"fmt"

	"finboard/database/companies"
	"finboard/database/definitions"
	models "finboard/database/models_pkg"
	"finboard/database/quarters"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Repository is the persistence facade used by the API and the import pipeline.
// It delegates to the per-table sub-repositories and turns their results into
// typed errors: NotFoundError, ValidationError and DuplicateError.
type Repository struct {
	db          *Database
	companies   *companies.Repository
	quarters    *quarters.Repository
	definitions *definitions.Repository
}

// NewRepository creates a new repository
func NewRepository(db *Database) *Repository {
	return &Repository{
		db:          db,
		companies:   companies.NewRepository(db.db),
		quarters:    quarters.NewRepository(db.db),
		definitions: definitions.NewRepository(db.db),
	}
}

// InitSchema performs auto-migration and creates lookup indexes
func (r *Repository) InitSchema() error {
	log.Info().Msg("🔄 Starting database schema initialization...")

	if err := r.db.db.AutoMigrate(
		&models.Company{},
		&models.FinancialIndicator{},
		&models.IndicatorDefinition{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// lookup indexes only: uniqueness of a quarter is checked before insert
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS ` + IndexQuarterLookup + `
			ON financial_indicators (company_id, year DESC, quarter_number DESC)`,
		`CREATE INDEX IF NOT EXISTS ` + IndexQuarterKey + `
			ON financial_indicators (company_id, quarter)`,
	}
	for _, stmt := range indexes {
		if err := r.db.db.Exec(stmt).Error; err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to create index")
		}
	}

	log.Info().Msg("✅ Database schema initialized")
	return nil
}

// ============================================================================
// Companies
// ============================================================================

// ListCompanies returns companies ordered by name, optionally filtered by name or ticker
func (r *Repository) ListCompanies(search string) ([]Company, error) {
	list, err := r.companies.List(search)
	return list, WrapDBError("ListCompanies", err)
}

// GetCompany returns a company or a NotFoundError
func (r *Repository) GetCompany(id string) (*Company, error) {
	if !validID(id) {
		return nil, NewNotFoundErrorWithID("company", id)
	}
	company, err := r.companies.Get(id)
	if err != nil {
		return nil, WrapDBError("GetCompany", err)
	}
	if company == nil {
		return nil, NewNotFoundErrorWithID("company", id)
	}
	return company, nil
}

// CreateCompany inserts a company
func (r *Repository) CreateCompany(company *Company) error {
	if err := validateCompany(company); err != nil {
		return err
	}
	return WrapDBError("CreateCompany", r.companies.Create(company))
}

// UpdateCompany saves a company or returns a NotFoundError
func (r *Repository) UpdateCompany(company *Company) error {
	if err := validateCompany(company); err != nil {
		return err
	}
	if !validID(company.ID) {
		return NewNotFoundErrorWithID("company", company.ID)
	}
	ok, err := r.companies.Update(company)
	if err != nil {
		return WrapDBError("UpdateCompany", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("company", company.ID)
	}
	return nil
}

// DeleteCompany removes a company and its quarterly records
func (r *Repository) DeleteCompany(id string) error {
	if !validID(id) {
		return NewNotFoundErrorWithID("company", id)
	}
	ok, err := r.companies.Delete(id)
	if err != nil {
		return WrapDBError("DeleteCompany", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("company", id)
	}
	return nil
}

// validID reports whether id can name a row. Primary keys are uuid columns,
// so anything else cannot exist.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func validateCompany(c *Company) error {
	if c.Categoria != nil && *c.Categoria != models.CategoriaIndustria && *c.Categoria != models.CategoriaFinancas {
		return NewValidationErrorWithValue("categoria", "must be Industria or Financas", *c.Categoria)
	}
	return nil
}

// ============================================================================
// Quarterly records
// ============================================================================

// ListQuarters returns the history of a company, most recent first
func (r *Repository) ListQuarters(companyID string) ([]FinancialIndicator, error) {
	if !validID(companyID) {
		return []FinancialIndicator{}, nil
	}
	list, err := r.quarters.ListByCompany(companyID)
	return list, WrapDBError("ListQuarters", err)
}

// GetQuarter returns a quarterly record or a NotFoundError
func (r *Repository) GetQuarter(id string) (*FinancialIndicator, error) {
	if !validID(id) {
		return nil, NewNotFoundErrorWithID("quarter", id)
	}
	record, err := r.quarters.Get(id)
	if err != nil {
		return nil, WrapDBError("GetQuarter", err)
	}
	if record == nil {
		return nil, NewNotFoundErrorWithID("quarter", id)
	}
	return record, nil
}

// FindQuarter probes for the record of a company in a quarter. Not found is nil, nil.
func (r *Repository) FindQuarter(companyID, quarter string) (*FinancialIndicator, error) {
	if !validID(companyID) {
		return nil, nil
	}
	record, err := r.quarters.FindByQuarter(companyID, quarter)
	return record, WrapDBError("FindQuarter", err)
}

// CreateQuarter inserts a quarterly record after checking that the company
// has no record for that quarter yet. The check and the insert are not atomic.
func (r *Repository) CreateQuarter(record *FinancialIndicator) error {
	if err := normalizeQuarter(record); err != nil {
		return err
	}

	existing, err := r.FindQuarter(record.CompanyID, record.Quarter)
	if err != nil {
		return err
	}
	if existing != nil {
		return &DuplicateError{CompanyID: record.CompanyID, Quarter: record.Quarter, Existing: existing}
	}

	return WrapDBError("CreateQuarter", r.quarters.Create(record))
}

// UpdateQuarter saves a quarterly record. Moving it onto a quarter that the
// company already reported is rejected with a DuplicateError.
func (r *Repository) UpdateQuarter(record *FinancialIndicator) error {
	if err := normalizeQuarter(record); err != nil {
		return err
	}

	current, err := r.GetQuarter(record.ID)
	if err != nil {
		return err
	}
	record.CompanyID = current.CompanyID

	existing, err := r.FindQuarter(record.CompanyID, record.Quarter)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != record.ID {
		return &DuplicateError{CompanyID: record.CompanyID, Quarter: record.Quarter, Existing: existing}
	}

	ok, err := r.quarters.Update(record)
	if err != nil {
		return WrapDBError("UpdateQuarter", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("quarter", record.ID)
	}
	return nil
}

// DeleteQuarter removes a quarterly record
func (r *Repository) DeleteQuarter(id string) error {
	if !validID(id) {
		return NewNotFoundErrorWithID("quarter", id)
	}
	ok, err := r.quarters.Delete(id)
	if err != nil {
		return WrapDBError("DeleteQuarter", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("quarter", id)
	}
	return nil
}

// normalizeQuarter checks the period and fills the quarter key
func normalizeQuarter(record *FinancialIndicator) error {
	if record.QuarterNumber < 1 || record.QuarterNumber > 4 {
		return NewValidationErrorWithValue("quarter_number", "must be between 1 and 4", record.QuarterNumber)
	}
	if record.Year < 1900 || record.Year > 2999 {
		return NewValidationErrorWithValue("year", "out of range", record.Year)
	}
	key := models.QuarterKey(record.Year, record.QuarterNumber)
	if record.Quarter != "" && record.Quarter != key {
		return NewValidationErrorWithValue("quarter", "does not match year and quarter_number", record.Quarter)
	}
	record.Quarter = key
	return nil
}

// ============================================================================
// Indicator definitions
// ============================================================================

// ListDefinitions returns every indicator definition ordered by name
func (r *Repository) ListDefinitions() ([]IndicatorDefinition, error) {
	list, err := r.definitions.List()
	return list, WrapDBError("ListDefinitions", err)
}

// GetDefinition returns a definition or a NotFoundError
func (r *Repository) GetDefinition(id string) (*IndicatorDefinition, error) {
	if !validID(id) {
		return nil, NewNotFoundErrorWithID("indicator definition", id)
	}
	def, err := r.definitions.Get(id)
	if err != nil {
		return nil, WrapDBError("GetDefinition", err)
	}
	if def == nil {
		return nil, NewNotFoundErrorWithID("indicator definition", id)
	}
	return def, nil
}

// CreateDefinition inserts a definition
func (r *Repository) CreateDefinition(def *IndicatorDefinition) error {
	return WrapDBError("CreateDefinition", r.definitions.Create(def))
}

// UpdateDefinition saves a definition or returns a NotFoundError
func (r *Repository) UpdateDefinition(def *IndicatorDefinition) error {
	if !validID(def.ID) {
		return NewNotFoundErrorWithID("indicator definition", def.ID)
	}
	ok, err := r.definitions.Update(def)
	if err != nil {
		return WrapDBError("UpdateDefinition", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("indicator definition", def.ID)
	}
	return nil
}

// DeleteDefinition removes a definition
func (r *Repository) DeleteDefinition(id string) error {
	if !validID(id) {
		return NewNotFoundErrorWithID("indicator definition", id)
	}
	ok, err := r.definitions.Delete(id)
	if err != nil {
		return WrapDBError("DeleteDefinition", err)
	}
	if !ok {
		return NewNotFoundErrorWithID("indicator definition", id)
	}
	return nil
}

// SeedDefinitions writes defs when the definitions table is empty
func (r *Repository) SeedDefinitions(defs []IndicatorDefinition) (int, error) {
	n, err := r.definitions.SeedDefaults(defs)
	return n, WrapDBError("SeedDefinitions", err)
}
