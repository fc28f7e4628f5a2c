package api

import (
	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/gofiber/fiber/v2"
)

// ListCategories handles GET /categories.
func (h *Handlers) ListCategories(c *fiber.Ctx) error {
	cats, err := h.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

// GetCategory handles GET /categories/:id.
func (h *Handlers) GetCategory(c *fiber.Ctx) error {
	cat, err := h.catalog.GetCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// CreateCategory handles POST /categories.
func (h *Handlers) CreateCategory(c *fiber.Ctx) error {
	var in catalog.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}
	cat, err := h.catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// UpdateCategory handles PUT /categories/:id.
func (h *Handlers) UpdateCategory(c *fiber.Ctx) error {
	var in catalog.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest("Invalid request body")
	}
	cat, err := h.catalog.UpdateCategory(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *Handlers) DeleteCategory(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(DeleteResponse{Success: true, Message: "The category is deleted successfully"})
}

// CountCategories handles GET /categories/get/count.
func (h *Handlers) CountCategories(c *fiber.Ctx) error {
	n, err := h.catalog.CountCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(CategoryCountResponse{Count: n})
}
