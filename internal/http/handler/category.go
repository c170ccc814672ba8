package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medidocs/internal/service"
)

// ListCategories returns the category vocabulary, readable by any actor.
//
//	@Summary      List categories
//	@Tags         categories
//	@Produce      json
//	@Success      200 {array} model.Category
//	@Router       /api/categories [get]
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := actorFromCtx(c); err != nil {
			return err
		}
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// GetCategory returns one category by id.
//
//	@Summary      Get a category
//	@Tags         categories
//	@Produce      json
//	@Param        id path string true "category id"
//	@Success      200 {object} model.Category
//	@Router       /api/categories/{id} [get]
func GetCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := actorFromCtx(c); err != nil {
			return err
		}
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid id format")
		}
		cat, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cat)
	}
}

// CreateCategory adds a category to the vocabulary. Admin only.
//
//	@Summary      Create a category
//	@Tags         categories
//	@Accept       json
//	@Produce      json
//	@Success      201 {object} model.Category
//	@Router       /api/categories [post]
func CreateCategory(svc service.CategoryService) fiber.Handler {
	type createRequest struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}

		var req createRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		}

		cat, err := svc.Create(c.UserContext(), actor, req.Name, req.Description)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// DeleteCategory removes an unreferenced category. Admin only.
//
//	@Summary      Delete a category
//	@Tags         categories
//	@Param        id path string true "category id"
//	@Success      204
//	@Router       /api/categories/{id} [delete]
func DeleteCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), actor, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
