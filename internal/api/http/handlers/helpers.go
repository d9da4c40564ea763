package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid path parameter", map[string]any{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

func dataResponse(c *fiber.Ctx, payload any) error {
	return c.JSON(fiber.Map{"data": payload})
}

func createdResponse(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": payload})
}
