package handlers

import (
	"strings"

	"milkrun/internal/apperr"
	applog "milkrun/internal/log"
	"milkrun/internal/services"
	"milkrun/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PriceHandler struct {
	Pricing *services.PricingService
}

// GET /api/v1/prices?categoryId=
func (h *PriceHandler) List(c *fiber.Ctx) error {
	out, err := h.Pricing.List(strings.TrimSpace(c.Query("categoryId")))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/prices/active?categoryId=&tier=
func (h *PriceHandler) Resolve(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Query("categoryId"))
	if !ok {
		return apperr.Invalid("categoryId", "required")
	}
	tier, ok := validate.Tier(c.Query("tier"))
	if !ok {
		return apperr.Invalid("tier", "must be FACTORY, WHOLESALE or RETAIL")
	}
	p, err := h.Pricing.Resolve(catID, tier)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// GET /api/v1/prices/:id
func (h *PriceHandler) Get(c *fiber.Ctx) error {
	p, err := h.Pricing.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// POST /api/v1/prices — activates the price, closing out the previous one.
func (h *PriceHandler) Create(c *fiber.Ctx) error {
	var in services.PriceInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	p, err := h.Pricing.Activate(in)
	if err != nil {
		return err
	}
	applog.Audit(c, "price.activate", map[string]any{
		"price_id": p.ID, "category_id": p.CategoryID, "tier": p.Tier, "value": p.Value,
	})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// DELETE /api/v1/prices/:id
func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Pricing.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "price.delete", map[string]any{"price_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
