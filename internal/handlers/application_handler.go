package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"github.com/vamsidadi/playstore-backend/internal/middleware"
	"github.com/vamsidadi/playstore-backend/internal/notify"
	"github.com/vamsidadi/playstore-backend/internal/services"
	"github.com/vamsidadi/playstore-backend/internal/validation"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
	dispatcher *notify.Dispatcher
	recipients []string
	validate   *validation.Validator
}

func NewApplicationHandler(appService *services.ApplicationService, dispatcher *notify.Dispatcher, cfg *config.Config, validate *validation.Validator) *ApplicationHandler {
	return &ApplicationHandler{
		appService: appService,
		dispatcher: dispatcher,
		recipients: cfg.Recipients(),
		validate:   validate,
	}
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "All fields are required",
		})
	}

	app, err := h.appService.Create(&req, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error creating application",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "create",
		ItemName:   app.Name,
		ItemType:   "app",
		Extra:      "Please check the new App",
	})

	return c.Status(fiber.StatusCreated).JSON(dto.CreateApplicationResponse{
		Message:       "Application created successfully",
		ApplicationID: app.ID,
	})
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	apps, err := h.appService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error retrieving applications",
			Error:   err.Error(),
		})
	}
	return c.JSON(apps)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}

	app, err := h.appService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error retrieving application",
			Error:   err.Error(),
		})
	}
	return c.JSON(app)
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}

	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "All fields are required",
		})
	}

	app, err := h.appService.Update(id, &req, claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error updating application",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "update",
		ItemName:   app.Name,
		ItemType:   "app",
		Extra:      "Look into updated app",
	})

	return c.JSON(dto.MessageResponse{Message: "Application updated successfully"})
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}

	app, err := h.appService.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error deleting application",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "delete",
		ItemName:   app.Name,
		ItemType:   "app",
	})

	return c.JSON(dto.MessageResponse{Message: "Application deleted successfully"})
}

func (h *ApplicationHandler) AddReview(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	reviewUUID, err := h.appService.AddReview(id, claims.UserID, &req)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error adding comment and rating",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AddReviewResponse{
		Message: "Comment and rating added successfully",
		UUID:    reviewUUID,
	})
}

func (h *ApplicationHandler) ListReviews(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}

	reviews, err := h.appService.ListReviews(id)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error retrieving comments and ratings",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

func (h *ApplicationHandler) DeleteReview(c *fiber.Ctx) error {
	claims, err := middleware.CurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Message: "Unauthorized",
		})
	}

	appID, err := uuid.Parse(c.Params("appId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid application id",
		})
	}
	reviewUUID := c.Params("commentUUID")

	if err := h.appService.DeleteReview(appID, claims.UserID, reviewUUID); err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Application not found",
			})
		}
		if errors.Is(err, services.ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "Comment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error deleting comment",
			Error:   err.Error(),
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Comment deleted successfully"})
}
