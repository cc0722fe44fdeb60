package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Register mounts every route on the app. Auth routes sit outside /api/v1;
// everything under /api/v1 requires a session, and the admin-only groups add
// the role guard on top. loginGuard lets the caller throttle /login.
func Register(app *fiber.App, deps *Deps, loginGuard ...fiber.Handler) {
	app.Post("/login", append(loginGuard, deps.AuthHandler.Login)...)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api/v1", RequireUser())

	clients := api.Group("/clients", RequireAdmin())
	clients.Get("/", deps.ClientHandler.List)
	clients.Post("/", deps.ClientHandler.Create)
	clients.Get("/:id", deps.ClientHandler.Get)
	clients.Put("/:id", deps.ClientHandler.Update)
	clients.Delete("/:id", deps.ClientHandler.Delete)

	cats := api.Group("/categories", RequireAdmin())
	cats.Get("/", deps.CategoryHandler.List)
	cats.Post("/", deps.CategoryHandler.Create)
	cats.Get("/:id", deps.CategoryHandler.Get)
	cats.Put("/:id", deps.CategoryHandler.Update)
	cats.Delete("/:id", deps.CategoryHandler.Delete)

	prods := api.Group("/products", RequireAdmin())
	prods.Get("/", deps.ProductHandler.List)
	prods.Post("/", deps.ProductHandler.Create)
	prods.Get("/:id", deps.ProductHandler.Get)
	prods.Put("/:id", deps.ProductHandler.Update)
	prods.Delete("/:id", deps.ProductHandler.Delete)

	prices := api.Group("/prices", RequireAdmin())
	prices.Get("/", deps.PriceHandler.List)
	prices.Post("/", deps.PriceHandler.Create)
	prices.Get("/active", deps.PriceHandler.Resolve)
	prices.Get("/:id", deps.PriceHandler.Get)
	prices.Delete("/:id", deps.PriceHandler.Delete)

	rounds := api.Group("/rounds", RequireAdmin())
	rounds.Get("/", deps.RoundHandler.List)
	rounds.Post("/", deps.RoundHandler.Create)
	rounds.Get("/:id", deps.RoundHandler.Get)
	rounds.Put("/:id", deps.RoundHandler.Update)
	rounds.Delete("/:id", deps.RoundHandler.Delete)

	users := api.Group("/users", RequireAdmin())
	users.Get("/", deps.UserHandler.List)
	users.Post("/", deps.UserHandler.Create)
	users.Get("/:id", deps.UserHandler.Get)
	users.Put("/:id", deps.UserHandler.Update)
	users.Delete("/:id", deps.UserHandler.Delete)

	// Orders are client-scoped, not admin-only; the service checks ownership.
	orders := api.Group("/orders")
	orders.Get("/", deps.OrderHandler.List)
	orders.Post("/", deps.OrderHandler.Create)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id", deps.OrderHandler.Update)
	orders.Delete("/:id", deps.OrderHandler.Cancel)
	orders.Post("/:id/paid", deps.OrderHandler.TogglePaid)
}
