// Package dbtest wires GORM to go-sqlmock for package tests.
package dbtest

import (
	"testing"

	"travel_booking/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewMockDB returns a GORM handle speaking the postgres dialect over sqlmock.
// Unmet expectations fail the test on cleanup.
func NewMockDB(t testing.TB) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), db.GormConfig())
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening gorm database", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %s", err)
		}
		sqlDB.Close()
	})
	return gormDB, mock
}
