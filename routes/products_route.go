package routes

import (
	"github.com/gofiber/fiber/v2"

	productController "github.com/AdityaGupta2791/E-com/controllers/products"
)

func ProductsRoutes(app *fiber.App, ct *productController.Controller, auth, admin fiber.Handler) {
	app.Get("/api/products", ct.GetAllProducts)

	app.Get("/api/products/:id", ct.GetProductById)

	app.Post("/api/products/addproduct", auth, admin, ct.AddProduct)

	app.Put("/api/products/product/:id", auth, admin, ct.UpdateProduct)

	app.Delete("/api/products/product/:id", auth, admin, ct.RemoveProduct)
}
