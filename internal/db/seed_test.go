package db_test

import (
	"context"
	"testing"

	"travel_booking/internal/db"
	"travel_booking/internal/db/dbtest"
	"travel_booking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSamplePackages(t *testing.T) {
	pkgs := db.SamplePackages()
	assert.Len(t, pkgs, 10)

	slugs := map[string]bool{}
	var buzios *domain.Package
	for i := range pkgs {
		p := pkgs[i]
		assert.True(t, p.Category.Valid(), p.Title)
		assert.Greater(t, p.Price, 0.0, p.Title)
		assert.Greater(t, p.Duration, 0, p.Title)
		assert.NotEmpty(t, p.Slug, p.Title)
		assert.False(t, slugs[p.Slug], "duplicate slug %s", p.Slug)
		slugs[p.Slug] = true
		if p.Title == "Búzios Relax" {
			buzios = &pkgs[i]
		}
	}
	if assert.NotNil(t, buzios) {
		assert.Equal(t, domain.CategoryBeach, buzios.Category)
		assert.Equal(t, 899.99, buzios.Price)
	}
}

func TestSeedFirstRun(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	ids := sqlmock.NewRows([]string{"id"})
	for i := 1; i <= 10; i++ {
		ids.AddRow(i)
	}
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "packages"`).WillReturnRows(ids)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs(db.AdminEmail).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	assert.NoError(t, db.Seed(context.Background(), gdb))
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs(db.AdminEmail).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectCommit()

	assert.NoError(t, db.Seed(context.Background(), gdb))
}
