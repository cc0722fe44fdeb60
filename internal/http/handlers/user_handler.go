package handlers

import (
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

// GET /api/v1/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.Users.List()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/users/:id
func (h *UserHandler) Get(c *fiber.Ctx) error {
	u, err := h.Users.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// POST /api/v1/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	u, err := h.Users.Create(in)
	if err != nil {
		return err
	}
	applog.Audit(c, "user.create", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.Status(fiber.StatusCreated).JSON(u)
}

// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	u, err := h.Users.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "user.update", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

// DELETE /api/v1/users/:id — self-deletion is always denied.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Users.Delete(currentUser(c), id); err != nil {
		return err
	}
	applog.Audit(c, "user.delete", map[string]any{"user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
