package service

import (
	"context"
	"testing"

	"travel_booking/internal/db/dbtest"
	"travel_booking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newIdentity(t *testing.T) (*IdentityService, sqlmock.Sqlmock) {
	gdb, mock := dbtest.NewMockDB(t)
	svc := NewIdentityService(gdb)
	svc.cost = bcrypt.MinCost
	return svc, mock
}

func userRow(t *testing.T, password string) *sqlmock.Rows {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "is_admin"}).
		AddRow(2, "ana@example.com", string(hash), "Ana", false)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestRegister(t *testing.T) {
	svc, mock := newIdentity(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	user, err := svc.Register(context.Background(), Registration{
		Name: " Ana ", Email: "Ana@Example.com", Password: "segredo1", Phone: "21 99999-0000",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(2), user.ID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "Ana", user.Name)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "segredo1", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("segredo1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock := newIdentity(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.Register(context.Background(), Registration{Name: "Ana", Email: "ANA@example.com", Password: "segredo1"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newIdentity(t)
	cases := map[string]Registration{
		"bad email":      {Name: "Ana", Email: "ana", Password: "segredo1"},
		"short password": {Name: "Ana", Email: "ana@example.com", Password: "123"},
		"missing name":   {Email: "ana@example.com", Password: "segredo1"},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), r)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, mock := newIdentity(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(userRow(t, "segredo1"))

	user, err := svc.Authenticate(context.Background(), "ANA@example.com", "segredo1")

	require.NoError(t, err)
	assert.Equal(t, domain.Principal{UserID: 2, Email: "ana@example.com", Name: "Ana"}, user.Principal())
}

func TestAuthenticateFailuresLookAlike(t *testing.T) {
	svc, mock := newIdentity(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(userRow(t, "segredo1"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, wrongPassword := svc.Authenticate(context.Background(), "ana@example.com", "errado")
	_, unknownEmail := svc.Authenticate(context.Background(), "ghost@example.com", "segredo1")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLookup(t *testing.T) {
	svc, mock := newIdentity(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(userRow(t, "x"))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := svc.Lookup(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)

	_, err = svc.Lookup(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
