package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestReviews_EmptyColumn(t *testing.T) {
	t.Parallel()

	app := Application{}
	reviews, err := app.Reviews()
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.NotNil(t, reviews)
}

func TestReviews_NullLiteral(t *testing.T) {
	t.Parallel()

	app := Application{Ratings: datatypes.JSON("null")}
	reviews, err := app.Reviews()
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.NotNil(t, reviews)
}

func TestSetReviews_Roundtrip(t *testing.T) {
	t.Parallel()

	original := []Review{
		{UUID: uuid.NewString(), UserID: uuid.New(), Comment: "great app", Rating: 5},
		{UUID: uuid.NewString(), UserID: uuid.New(), Comment: "meh", Rating: 2.5},
	}

	var app Application
	require.NoError(t, app.SetReviews(original))

	decoded, err := app.Reviews()
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestSetReviews_NilBecomesEmptyArray(t *testing.T) {
	t.Parallel()

	var app Application
	require.NoError(t, app.SetReviews(nil))
	assert.JSONEq(t, "[]", string(app.Ratings))
}

func TestValidRole(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("guest"))
	assert.False(t, ValidRole(""))
}
