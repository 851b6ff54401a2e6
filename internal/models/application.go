package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Application is a store listing. The review sequence lives inside the
// record as an ordered JSONB array, mirroring the document shape the
// frontend consumes: a review has no lifecycle outside its application.
type Application struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	ReleaseDate time.Time      `json:"release_date"`
	Version     string         `gorm:"size:50;not null" json:"version"`
	Genre       string         `gorm:"size:100;not null" json:"genre"`
	Visibility  string         `gorm:"size:50;not null" json:"visibility"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;index" json:"owner_id"`
	Ratings     datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"ratings"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Review is a single comment+rating entry embedded in an application.
// Rating is stored as received; no range is enforced.
type Review struct {
	UUID    string    `json:"uuid"`
	UserID  uuid.UUID `json:"user_id"`
	Comment string    `json:"comment"`
	Rating  float64   `json:"rating"`
}

// Reviews decodes the embedded review sequence. An empty or NULL column
// decodes to an empty slice.
func (a *Application) Reviews() ([]Review, error) {
	if len(a.Ratings) == 0 {
		return []Review{}, nil
	}
	var reviews []Review
	if err := json.Unmarshal(a.Ratings, &reviews); err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []Review{}
	}
	return reviews, nil
}

// SetReviews encodes the review sequence back into the JSONB column.
func (a *Application) SetReviews(reviews []Review) error {
	if reviews == nil {
		reviews = []Review{}
	}
	b, err := json.Marshal(reviews)
	if err != nil {
		return err
	}
	a.Ratings = datatypes.JSON(b)
	return nil
}
