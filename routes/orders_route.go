package routes

import (
	"github.com/gofiber/fiber/v2"

	orderController "github.com/AdityaGupta2791/E-com/controllers/orders"
)

func OrderRoutes(app *fiber.App, ct *orderController.Controller, auth, admin fiber.Handler) {
	app.Post("/api/orders", auth, ct.PlaceOrder)

	app.Get("/api/orders/user", auth, ct.GetUserOrders)

	app.Get("/api/orders", auth, admin, ct.GetAllOrders)
}
