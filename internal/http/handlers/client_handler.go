package handlers

import (
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Clients *services.ClientService
}

// GET /api/v1/clients
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.Clients.List()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/clients/:id
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	cl, err := h.Clients.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(cl)
}

// POST /api/v1/clients
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	cl, err := h.Clients.Create(in)
	if err != nil {
		return err
	}
	applog.Audit(c, "client.create", map[string]any{"client_id": cl.ID})
	return c.Status(fiber.StatusCreated).JSON(cl)
}

// PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in services.ClientInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	cl, err := h.Clients.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "client.update", map[string]any{"client_id": cl.ID})
	return c.JSON(cl)
}

// DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Clients.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "client.delete", map[string]any{"client_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
