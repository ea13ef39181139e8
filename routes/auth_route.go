package routes

import (
	"github.com/gofiber/fiber/v2"

	authController "github.com/AdityaGupta2791/E-com/controllers/auth"
)

func AuthRoutes(app *fiber.App, ct *authController.Controller, auth fiber.Handler) {
	app.Post("/api/auth/signup", ct.Signup)

	app.Post("/api/auth/signin", ct.Signin)

	app.Get("/api/auth/me", auth, ct.Me)
}
