package service

import (
	"context"
	"testing"
	"time"

	"travel_booking/internal/db/dbtest"
	"travel_booking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = domain.Principal{UserID: 2, Email: "ana@example.com", Name: "Ana"}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCartItemValidate(t *testing.T) {
	valid := CartItem{PackageID: 1, Travelers: 2, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-15")}
	today := day("2029-12-31")
	assert.NoError(t, valid.Validate(today))
	assert.NoError(t, valid.Validate(day("2030-01-10")), "check-in today is allowed")

	cases := map[string]CartItem{
		"no package":       {Travelers: 1, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-15")},
		"no dates":         {PackageID: 1, Travelers: 1},
		"same day":         {PackageID: 1, Travelers: 1, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-10")},
		"reversed":         {PackageID: 1, Travelers: 1, CheckIn: day("2030-01-15"), CheckOut: day("2030-01-10")},
		"zero travelers":   {PackageID: 1, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-15")},
		"negative persons": {PackageID: 1, Travelers: -3, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-15")},
		"past check-in":    {PackageID: 1, Travelers: 1, CheckIn: day("2029-12-30"), CheckOut: day("2030-01-02")},
	}
	for name, item := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, item.Validate(today), domain.ErrValidation)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("check_in", "2030-02-01")
	require.NoError(t, err)
	assert.Equal(t, day("2030-02-01"), got)

	got, err = ParseDate("check_in", "")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseDate("check_out", "01/02/2030")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpsertRejectsInvalidItemWithoutSQL(t *testing.T) {
	gdb, _ := dbtest.NewMockDB(t)
	cart := NewCartService(gdb)

	err := cart.Upsert(context.Background(), ana, CartItem{PackageID: 1, Travelers: 1, CheckIn: day("2030-01-15"), CheckOut: day("2030-01-10")})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpsertUnknownPackage(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages" WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := NewCartService(gdb).Upsert(context.Background(), ana, CartItem{PackageID: 99, Travelers: 1, CheckIn: day("2030-01-10"), CheckOut: day("2030-01-12")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertOverwritesExistingEntry(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "packages" WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "cart" .* ON CONFLICT \("user_id","package_id"\) DO UPDATE SET "travelers"="excluded"."travelers","check_in"="excluded"."check_in","check_out"="excluded"."check_out"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	err := NewCartService(gdb).Upsert(context.Background(), ana, CartItem{PackageID: 3, Travelers: 4, CheckIn: day("2030-03-01"), CheckOut: day("2030-03-05")})

	assert.NoError(t, err)
}

func TestRemoveIsScopedToOwner(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectExec(`DELETE FROM "cart" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(5, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, NewCartService(gdb).Remove(context.Background(), ana, 5))
}

func TestCartTotal(t *testing.T) {
	entries := []domain.CartEntry{
		{Travelers: 2, Package: &domain.Package{Price: 899.99}},
		{Travelers: 1, Package: &domain.Package{Price: 100}},
	}
	assert.Equal(t, 1899.98, CartTotal(entries))
	assert.Equal(t, 0.0, CartTotal(nil))
}

func TestTotalLoadsPackages(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "cart" WHERE user_id = \$1 ORDER BY id`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "package_id", "travelers"}).
			AddRow(1, 2, 3, 2).AddRow(2, 2, 4, 1))
	mock.ExpectQuery(`SELECT \* FROM "packages" WHERE "packages"."id" IN \(\$1,\$2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(3, 899.99).AddRow(4, 2499.99))

	total, err := NewCartService(gdb).Total(context.Background(), ana)

	require.NoError(t, err)
	assert.Equal(t, 4299.97, total)
}

func TestCount(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "cart" WHERE user_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := NewCartService(gdb).Count(context.Background(), ana)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestPurgeExpired(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectExec(`DELETE FROM "cart" WHERE check_in < \$1`).
		WithArgs(day("2030-06-01")).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := NewCartService(gdb).PurgeExpired(context.Background(), time.Date(2030, 6, 1, 18, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUpsertRejectsPastCheckIn(t *testing.T) {
	gdb, _ := dbtest.NewMockDB(t)
	cart := NewCartService(gdb)
	cart.now = func() time.Time { return time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC) }

	// Would be removed by the next PurgeExpired run, so it never reaches the database
	err := cart.Upsert(context.Background(), ana, CartItem{PackageID: 3, Travelers: 1, CheckIn: day("2030-05-31"), CheckOut: day("2030-06-04")})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "check_in", verr.Field)
}
