package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/api/validation"
	"github.com/spec-kit/shop-service/internal/service"
)

// UsersHandler exposes profile endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Get handles GET /users/:userId.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	user, err := h.users.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return dataResponse(c, dto.NewUserResponse(user))
}

// Update handles PUT /users/:userId.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := validation.ParseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.UserContext(), userID, req.Name, req.Email)
	if err != nil {
		return err
	}
	return dataResponse(c, dto.NewUserResponse(user))
}
