// Package database provides database connection management for the finboard
// financial-indicators service.
//
// This package includes:
//   - Database connection management using GORM and PostgreSQL
//   - Schema initialization for companies, quarterly records and indicator definitions
//   - Typed errors for not-found, validation and duplicate-quarter outcomes
//
// Data Models:
//
//	All data models (Company, FinancialIndicator, IndicatorDefinition) are defined in the
//	models_pkg package so that sub-repositories can share them without import cycles.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "finboard/database/models_pkg"
)

// Database holds the GORM database connection
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configurePool(db); err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Type aliases so callers can use database.Company and friends directly.
type Company = models.Company
type FinancialIndicator = models.FinancialIndicator
type IndicatorDefinition = models.IndicatorDefinition
