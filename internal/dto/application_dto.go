package dto

import "github.com/google/uuid"

// ApplicationRequest is shared by create and update; every field must be
// present and not whitespace-only.
type ApplicationRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Version     string `json:"version" validate:"required,notblank"`
	Genre       string `json:"genre" validate:"required,notblank"`
	Visibility  string `json:"visibility" validate:"required,notblank"`
}

type CreateApplicationResponse struct {
	Message       string    `json:"message"`
	ApplicationID uuid.UUID `json:"applicationId"`
}

// ReviewRequest is intentionally unvalidated: comment and rating are
// stored exactly as received.
type ReviewRequest struct {
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

type AddReviewResponse struct {
	Message string `json:"message"`
	UUID    string `json:"uuid"`
}
