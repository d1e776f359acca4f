package quarters

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	models "finboard/database/models_pkg"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/callbacks"
	"gorm.io/gorm/logger"
)

var errOffline = errors.New("database offline")

// offlineConn is a connection pool that never reaches a server
type offlineConn struct{}

func (offlineConn) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errOffline
}

func (offlineConn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errOffline
}

func (offlineConn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errOffline
}

func (offlineConn) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

// queryCapture records the SELECT built by gorm and answers it with rows or err
type queryCapture struct {
	sql  string
	vars []interface{}
	row  *models.FinancialIndicator
	err  error
}

func (q *queryCapture) run(tx *gorm.DB) {
	callbacks.BuildQuerySQL(tx)
	q.sql = tx.Statement.SQL.String()
	q.vars = tx.Statement.Vars

	switch {
	case q.err != nil:
		tx.AddError(q.err)
	case q.row != nil:
		if dest, ok := tx.Statement.Dest.(*models.FinancialIndicator); ok {
			*dest = *q.row
			tx.RowsAffected = 1
		}
	case tx.Statement.RaiseErrorOnNotFound:
		tx.AddError(gorm.ErrRecordNotFound)
	}
}

func newTestRepository(t *testing.T, q *queryCapture) *Repository {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: offlineConn{}}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Callback().Query().Replace("gorm:query", q.run); err != nil {
		t.Fatalf("replace query callback: %v", err)
	}
	return NewRepository(db)
}

func TestFindByQuarter(t *testing.T) {
	stored := &models.FinancialIndicator{ID: "q1", CompanyID: "c1", Year: 2024, QuarterNumber: 1, Quarter: "2024TRI1"}

	tests := []struct {
		name    string
		row     *models.FinancialIndicator
		err     error
		wantRow bool
		wantErr bool
	}{
		{"missing record is not an error", nil, nil, false, false},
		{"existing record", stored, nil, true, false},
		{"query failure", nil, errors.New("connection refused"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &queryCapture{row: tt.row, err: tt.err}
			repo := newTestRepository(t, q)

			got, err := repo.FindByQuarter("c1", "2024TRI1")
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "FindByQuarter") {
					t.Fatalf("expected wrapped error, got %v", err)
				}
				if errors.Is(err, gorm.ErrRecordNotFound) {
					t.Error("a query failure must not look like a missing record")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got != nil) != tt.wantRow {
				t.Fatalf("expected record present=%v, got %+v", tt.wantRow, got)
			}
			if got != nil && got.ID != "q1" {
				t.Errorf("expected record q1, got %s", got.ID)
			}

			if !strings.Contains(q.sql, "company_id = $1 AND quarter = $2") {
				t.Errorf("unexpected query %q", q.sql)
			}
			if len(q.vars) < 2 || q.vars[0] != "c1" || q.vars[1] != "2024TRI1" {
				t.Errorf("unexpected query args %v", q.vars)
			}
		})
	}
}

func TestGetMissingRecord(t *testing.T) {
	repo := newTestRepository(t, &queryCapture{})

	got, err := repo.Get("7d9f0c1e-3c1a-4d8e-9f57-2a4c1b6e8d10")
	if err != nil || got != nil {
		t.Errorf("expected nil, nil for a missing record, got %+v, %v", got, err)
	}
}
