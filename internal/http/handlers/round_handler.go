package handlers

import (
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

type RoundHandler struct {
	Rounds *services.RoundService
}

// GET /api/v1/rounds
func (h *RoundHandler) List(c *fiber.Ctx) error {
	out, err := h.Rounds.List()
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/rounds/:id
func (h *RoundHandler) Get(c *fiber.Ctx) error {
	d, err := h.Rounds.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// POST /api/v1/rounds
func (h *RoundHandler) Create(c *fiber.Ctx) error {
	var in services.RoundInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	d, absorbed, err := h.Rounds.Create(in)
	if err != nil {
		return err
	}
	applog.Audit(c, "round.create", map[string]any{
		"round_id": d.ID, "zone": d.Zone, "date": d.Date, "absorbed": absorbed,
	})
	return c.Status(fiber.StatusCreated).JSON(d)
}

// PUT /api/v1/rounds/:id
func (h *RoundHandler) Update(c *fiber.Ctx) error {
	var in services.RoundInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	d, err := h.Rounds.Update(c.Params("id"), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "round.update", map[string]any{"round_id": d.ID, "zone": d.Zone, "date": d.Date})
	return c.JSON(d)
}

// DELETE /api/v1/rounds/:id
func (h *RoundHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Rounds.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "round.delete", map[string]any{"round_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
