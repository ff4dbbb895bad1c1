package handlers

import (
	"errors"

	"veridesk/internal/models"
	"veridesk/internal/services/user"
	"veridesk/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterUser creates a merchant account
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Register(&input)
	if err != nil {
		var regErr *user.RegistrationError
		if errors.As(err, &regErr) {
			return utils.ValidationFailed(c, regErr.Fields)
		}
		return utils.BadRequest(c, err.Error())
	}

	return utils.Created(c, fiber.Map{
		"user": fiber.Map{
			"id":    created.ID,
			"name":  created.Name,
			"email": created.Email,
			"role":  created.Role,
		},
	})
}

// GetCurrentUser returns the authenticated account
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	account, err := h.userService.GetByID(claims.UserID)
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	return utils.Success(c, fiber.Map{
		"id":    account.ID,
		"name":  account.Name,
		"email": account.Email,
		"phone": account.Phone,
		"role":  account.Role,
	})
}
