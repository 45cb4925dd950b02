package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel_booking/internal/db/dbtest"
	"travel_booking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier chan []domain.Booking

func (r recordingNotifier) BookingsConfirmed(_ context.Context, _ domain.Principal, bookings []domain.Booking) error {
	r <- bookings
	return nil
}

var card = Payment{Method: "credit_card", Installments: 3}

func expectCart(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart" WHERE user_id = \$1 ORDER BY id FOR UPDATE`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "package_id", "travelers", "check_in", "check_out"}).
			AddRow(1, 2, 9, 2, day("2030-01-10"), day("2030-01-14")).
			AddRow(2, 2, 7, 1, day("2030-02-01"), day("2030-02-06")))
	mock.ExpectQuery(`SELECT \* FROM "packages" WHERE id IN \(\$1,\$2\)`).
		WithArgs(9, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price"}).
			AddRow(9, "Búzios Relax", 899.99).
			AddRow(7, "Fernando de Noronha", 2499.99))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21).AddRow(22))
}

func TestCheckoutConfirmsAndEmptiesCart(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	expectCart(mock)
	mock.ExpectExec(`DELETE FROM "cart" WHERE id IN \(\$1,\$2\)$`).
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	notified := make(recordingNotifier, 1)
	bookings, err := NewBookingService(gdb, notified).Checkout(context.Background(), ana, card)

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, 1799.98, bookings[0].TotalPrice)
	assert.Equal(t, 2499.99, bookings[1].TotalPrice)
	for _, b := range bookings {
		assert.Equal(t, domain.BookingConfirmed, b.Status)
		assert.Equal(t, "credit_card", b.PaymentMethod)
		assert.Equal(t, 3, b.PaymentInstallments)
		assert.Equal(t, ana.UserID, b.UserID)
	}
	assert.Equal(t, "Búzios Relax", bookings[0].PackageTitle)
	require.NotNil(t, bookings[0].PackageID)
	assert.Equal(t, uint(9), *bookings[0].PackageID)
	assert.Equal(t, day("2030-01-10"), bookings[0].CheckIn)

	select {
	case got := <-notified:
		assert.Len(t, got, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestCheckoutRollsBackWhenCartCannotBeCleared(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	expectCart(mock)
	mock.ExpectExec(`DELETE FROM "cart" WHERE id IN \(\$1,\$2\)`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	bookings, err := NewBookingService(gdb, nil).Checkout(context.Background(), ana, card)

	require.Error(t, err)
	assert.Nil(t, bookings)
}

func TestCheckoutEmptyCart(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "cart" WHERE user_id = \$1 ORDER BY id FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := NewBookingService(gdb, nil).Checkout(context.Background(), ana, card)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutValidatesPaymentFirst(t *testing.T) {
	gdb, _ := dbtest.NewMockDB(t)
	svc := NewBookingService(gdb, nil)

	_, err := svc.Checkout(context.Background(), ana, Payment{Installments: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Checkout(context.Background(), ana, Payment{Method: "pix"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancelOnlyOnce(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	for _, affected := range []int64{1, 0} {
		mock.ExpectExec(`UPDATE "bookings" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND user_id = \$4 AND status = \$5`).
			WithArgs("cancelled", sqlmock.AnyArg(), 21, 2, "confirmed").
			WillReturnResult(sqlmock.NewResult(0, affected))
	}
	svc := NewBookingService(gdb, nil)

	ok, err := svc.Cancel(context.Background(), ana, 21)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Cancel(context.Background(), ana, 21)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListForUserNewestFirst(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE user_id = \$1 ORDER BY created_at DESC,id DESC`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "package_id", "status"}).
			AddRow(22, 2, nil, "cancelled").
			AddRow(21, 2, 9, "confirmed"))
	mock.ExpectQuery(`SELECT \* FROM "packages" WHERE "packages"."id" = \$1`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(9, "Búzios Relax"))

	list, err := NewBookingService(gdb, nil).ListForUser(context.Background(), ana)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].PackageID)
	assert.Nil(t, list[0].Package)
	require.NotNil(t, list[1].Package)
	assert.Equal(t, "Búzios Relax", list[1].Package.Title)
	assert.True(t, list[1].Cancellable())
	assert.False(t, list[0].Cancellable())
}

func TestStats(t *testing.T) {
	gdb, mock := dbtest.NewMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE status = \$1`).
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE is_admin = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_price\), 0\) FROM "bookings" WHERE status = \$1`).
		WithArgs("confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(5299.971))

	st, err := NewBookingService(gdb, nil).Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Stats{ConfirmedBookings: 4, Customers: 3, Revenue: 5299.97}, st)
}
