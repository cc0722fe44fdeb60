package handlers

import (
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.Catalog.ListCategories()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	cat, err := h.Catalog.GetCategory(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

// POST /api/v1/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.CreateCategory(in)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.UpdateCategory(c.Params("id"), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": cat.ID})
	return c.JSON(cat)
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Catalog.DeleteCategory(id); err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
