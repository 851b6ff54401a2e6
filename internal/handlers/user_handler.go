package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/vamsidadi/playstore-backend/internal/config"
	"github.com/vamsidadi/playstore-backend/internal/dto"
	"github.com/vamsidadi/playstore-backend/internal/notify"
	"github.com/vamsidadi/playstore-backend/internal/services"
	"github.com/vamsidadi/playstore-backend/internal/validation"
)

// UserHandler serves the admin user CRUD panel. Every mutation fires a
// best-effort notification; delivery never affects the response.
type UserHandler struct {
	userService *services.UserService
	dispatcher  *notify.Dispatcher
	recipients  []string
	validate    *validation.Validator
}

func NewUserHandler(userService *services.UserService, dispatcher *notify.Dispatcher, cfg *config.Config, validate *validation.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		dispatcher:  dispatcher,
		recipients:  cfg.Recipients(),
		validate:    validate,
	}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error retrieving users",
			Error:   err.Error(),
		})
	}
	return c.JSON(users)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
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

	user, err := h.userService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Username already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error adding user",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "create",
		ItemName:   user.Username,
		ItemType:   "user",
	})

	return c.Status(fiber.StatusCreated).JSON(dto.CreateUserResponse{
		Message: "User added successfully",
		UserID:  user.ID,
	})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid user id",
		})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Message: "Invalid role",
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error updating user",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "update",
		ItemName:   user.Username,
		ItemType:   "user",
	})

	return c.JSON(dto.MessageResponse{Message: "User updated successfully"})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Message: "Invalid user id",
		})
	}

	user, err := h.userService.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: "Error deleting user",
			Error:   err.Error(),
		})
	}

	h.dispatcher.Notify(notify.Notification{
		Recipients: h.recipients,
		Action:     "delete",
		ItemName:   user.Username,
		ItemType:   "user",
	})

	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}
