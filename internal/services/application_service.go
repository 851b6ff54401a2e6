package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"github.com/vamsidadi/playstore-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrReviewNotFound      = errors.New("review not found")
)

// ApplicationService implements the resource store operations for
// listings and their embedded reviews.
type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Create stamps the release date server-side and starts with an empty
// review sequence.
func (s *ApplicationService) Create(req *dto.ApplicationRequest, ownerID uuid.UUID) (*models.Application, error) {
	app := models.Application{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: time.Now(),
		Version:     req.Version,
		Genre:       req.Genre,
		Visibility:  req.Visibility,
		OwnerID:     ownerID,
	}
	if err := app.SetReviews(nil); err != nil {
		return nil, fmt.Errorf("failed to encode ratings: %w", err)
	}

	if err := s.db.Create(&app).Error; err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// List returns every application regardless of visibility or ownership.
func (s *ApplicationService) List() ([]models.Application, error) {
	var apps []models.Application
	if err := s.db.Order("created_at").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *ApplicationService) Get(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := s.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return &app, nil
}

// Update resets the release date and reassigns ownership to the acting
// principal; any authenticated mutator becomes the owner.
func (s *ApplicationService) Update(id uuid.UUID, req *dto.ApplicationRequest, actingOwnerID uuid.UUID) (*models.Application, error) {
	app, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	app.Name = req.Name
	app.Description = req.Description
	app.ReleaseDate = time.Now()
	app.Version = req.Version
	app.Genre = req.Genre
	app.Visibility = req.Visibility
	app.OwnerID = actingOwnerID

	if err := s.db.Save(app).Error; err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return app, nil
}

// Delete removes the application, returning the deleted record so
// callers can name it in notifications.
func (s *ApplicationService) Delete(id uuid.UUID) (*models.Application, error) {
	app, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(app).Error; err != nil {
		return nil, fmt.Errorf("failed to delete application: %w", err)
	}
	return app, nil
}

// AddReview appends a review with a fresh UUID to the application's
// sequence. The read-modify-write is not transactionally isolated;
// concurrent writers to the same application can lose an update.
func (s *ApplicationService) AddReview(appID, userID uuid.UUID, req *dto.ReviewRequest) (string, error) {
	app, err := s.Get(appID)
	if err != nil {
		return "", err
	}

	reviews, err := app.Reviews()
	if err != nil {
		return "", fmt.Errorf("failed to decode ratings: %w", err)
	}

	review := models.Review{
		UUID:    uuid.NewString(),
		UserID:  userID,
		Comment: req.Comment,
		Rating:  req.Rating,
	}
	if err := app.SetReviews(append(reviews, review)); err != nil {
		return "", fmt.Errorf("failed to encode ratings: %w", err)
	}

	if err := s.db.Model(app).Update("ratings", app.Ratings).Error; err != nil {
		return "", fmt.Errorf("failed to store review: %w", err)
	}
	return review.UUID, nil
}

func (s *ApplicationService) ListReviews(appID uuid.UUID) ([]models.Review, error) {
	app, err := s.Get(appID)
	if err != nil {
		return nil, err
	}

	reviews, err := app.Reviews()
	if err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes the review matching both the UUID and the acting
// user. A review that exists but belongs to someone else reads as not
// found.
func (s *ApplicationService) DeleteReview(appID, userID uuid.UUID, reviewUUID string) error {
	app, err := s.Get(appID)
	if err != nil {
		return err
	}

	reviews, err := app.Reviews()
	if err != nil {
		return fmt.Errorf("failed to decode ratings: %w", err)
	}

	index := -1
	for i, r := range reviews {
		if r.UserID == userID && r.UUID == reviewUUID {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrReviewNotFound
	}

	if err := app.SetReviews(append(reviews[:index], reviews[index+1:]...)); err != nil {
		return fmt.Errorf("failed to encode ratings: %w", err)
	}

	if err := s.db.Model(app).Update("ratings", app.Ratings).Error; err != nil {
		return fmt.Errorf("failed to store ratings: %w", err)
	}
	return nil
}
