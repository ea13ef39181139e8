package routes

import (
	"github.com/gofiber/fiber/v2"

	cartController "github.com/AdityaGupta2791/E-com/controllers/cart"
)

func CartRoutes(app *fiber.App, ct *cartController.Controller, auth fiber.Handler) {
	app.Post("/api/cart/add", auth, ct.AddToCart)

	app.Put("/api/cart/item/:productId", auth, ct.UpdateQuantity)

	app.Delete("/api/cart/item/:productId", auth, ct.RemoveItem)

	app.Get("/api/cart", auth, ct.GetCart)

	app.Post("/api/cart/merge", auth, ct.MergeGuestCart)
}
