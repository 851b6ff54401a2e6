package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"github.com/vamsidadi/playstore-backend/internal/models"
)

func ratingsJSON(t *testing.T, reviews []models.Review) []byte {
	t.Helper()
	b, err := json.Marshal(reviews)
	require.NoError(t, err)
	return b
}

func appRow(t *testing.T, id uuid.UUID, reviews []models.Review) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "release_date", "version", "genre",
		"visibility", "owner_id", "ratings",
	}).AddRow(
		id.String(), "My App", "Does things", time.Now(), "1.0.0", "tools",
		"public", uuid.New().String(), ratingsJSON(t, reviews),
	)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(uuid.New())
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestListReviews_ReturnsSequenceInOrder(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	appID := uuid.New()
	stored := []models.Review{
		{UUID: uuid.NewString(), UserID: uuid.New(), Comment: "first", Rating: 4},
		{UUID: uuid.NewString(), UserID: uuid.New(), Comment: "second", Rating: 1},
	}
	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(appRow(t, appID, stored))

	reviews, err := svc.ListReviews(appID)
	require.NoError(t, err)
	assert.Equal(t, stored, reviews)
}

func TestAddReview_AppendsWithFreshUUID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	appID := uuid.New()
	existing := models.Review{UUID: uuid.NewString(), UserID: uuid.New(), Comment: "first", Rating: 4}

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(appRow(t, appID, []models.Review{existing}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reviewUUID, err := svc.AddReview(appID, uuid.New(), &dto.ReviewRequest{Comment: "nice", Rating: 5})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = uuid.Parse(reviewUUID)
	require.NoError(t, err)
	assert.NotEqual(t, existing.UUID, reviewUUID)
}

func TestAddReview_ApplicationMissing(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.AddReview(uuid.New(), uuid.New(), &dto.ReviewRequest{Comment: "nice", Rating: 5})
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestDeleteReview_OtherUsersReviewNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	appID := uuid.New()
	owner := uuid.New()
	review := models.Review{UUID: uuid.NewString(), UserID: owner, Comment: "mine", Rating: 3}

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(appRow(t, appID, []models.Review{review}))

	// The review exists but belongs to a different user
	err := svc.DeleteReview(appID, uuid.New(), review.UUID)
	require.ErrorIs(t, err, ErrReviewNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReview_RemovesMatchingEntry(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	appID := uuid.New()
	author := uuid.New()
	review := models.Review{UUID: uuid.NewString(), UserID: author, Comment: "mine", Rating: 3}

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(appRow(t, appID, []models.Review{review}))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteReview(appID, author, review.UUID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReview_UnknownUUID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewApplicationService(db)

	appID := uuid.New()
	author := uuid.New()
	review := models.Review{UUID: uuid.NewString(), UserID: author, Comment: "mine", Rating: 3}

	mock.ExpectQuery(`SELECT \* FROM "applications"`).
		WillReturnRows(appRow(t, appID, []models.Review{review}))

	err := svc.DeleteReview(appID, author, uuid.NewString())
	require.ErrorIs(t, err, ErrReviewNotFound)
}
