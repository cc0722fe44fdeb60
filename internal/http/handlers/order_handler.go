package handlers

import (
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /api/v1/orders — all for admins, own client's otherwise.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.Orders.List(currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	d, err := h.Orders.Get(currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := parseBody(c, &in); err != nil {
		return err
	}
	d, err := h.Orders.Create(currentUser(c), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "order.create", map[string]any{
		"order_id": d.Order.ID, "client_id": d.Order.ClientID,
		"round_id": d.Order.RoundID, "total": d.Order.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(d)
}

// PUT /api/v1/orders/:id — partial {status, paid, note, roundId}.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in services.OrderUpdate
	if err := parseBody(c, &in); err != nil {
		return err
	}
	d, err := h.Orders.Update(currentUser(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "order.update", map[string]any{"order_id": d.Order.ID, "status": d.Order.Status})
	return c.JSON(d)
}

// DELETE /api/v1/orders/:id — cancels the order.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	d, err := h.Orders.Cancel(currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": d.Order.ID})
	return c.JSON(d)
}

// POST /api/v1/orders/:id/paid — toggles the paid flag.
func (h *OrderHandler) TogglePaid(c *fiber.Ctx) error {
	d, err := h.Orders.TogglePaid(currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}
	applog.Audit(c, "order.paid.toggle", map[string]any{"order_id": d.Order.ID, "paid": d.Order.Paid})
	return c.JSON(d)
}
