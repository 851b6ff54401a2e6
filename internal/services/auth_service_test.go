package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		AdminSecretKey: "letmein",
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func userRow(id uuid.UUID, username, passwordHash, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "role"}).
		AddRow(id.String(), username, passwordHash, username+"@x.com", role)
}

func TestRegister_AdminWithWrongSecret(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username:  "root-admin",
		Password:  "password1",
		Email:     "root@x.com",
		Role:      "admin",
		SecretKey: "wrong",
	})
	require.ErrorIs(t, err, ErrAdminSecret)

	// The store must never be touched on a secret mismatch
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(uuid.New(), "alice01", hashOf(t, "password1"), "user"))

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice01",
		Password: "password1",
		Email:    "a@x.com",
		Role:     "user",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_UnknownUsername(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "email", "role"}))

	_, err := svc.Login(&dto.LoginRequest{Username: "nobody1", Password: "password1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(uuid.New(), "alice01", hashOf(t, "password1"), "user"))

	_, err := svc.Login(&dto.LoginRequest{Username: "alice01", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(userID, "alice01", hashOf(t, "password1"), "user"))

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice01", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "User login successful", resp.Message)
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "alice01", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_AdminSecretMismatchReadsAsBadCredentials(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(uuid.New(), "root-admin", hashOf(t, "password1"), "admin"))

	_, err := svc.Login(&dto.LoginRequest{
		Username:  "root-admin",
		Password:  "password1",
		SecretKey: "wrong",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_AdminWithSecret(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRow(uuid.New(), "root-admin", hashOf(t, "password1"), "admin"))

	resp, err := svc.Login(&dto.LoginRequest{
		Username:  "root-admin",
		Password:  "password1",
		SecretKey: "letmein",
	})
	require.NoError(t, err)
	assert.Equal(t, "Admin login successful", resp.Message)
}

func TestUsernameExists(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAuthService(db, testConfig())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := svc.UsernameExists("alice01")
	require.NoError(t, err)
	assert.True(t, exists)
}
