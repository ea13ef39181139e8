package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/AdityaGupta2791/E-com/configs"
	authController "github.com/AdityaGupta2791/E-com/controllers/auth"
	cartController "github.com/AdityaGupta2791/E-com/controllers/cart"
	orderController "github.com/AdityaGupta2791/E-com/controllers/orders"
	productController "github.com/AdityaGupta2791/E-com/controllers/products"
	"github.com/AdityaGupta2791/E-com/logging"
	"github.com/AdityaGupta2791/E-com/middlewares"
	"github.com/AdityaGupta2791/E-com/routes"
	"github.com/AdityaGupta2791/E-com/services/cart"
	"github.com/AdityaGupta2791/E-com/services/catalog"
	"github.com/AdityaGupta2791/E-com/services/order"
	"github.com/AdityaGupta2791/E-com/store/mongostore"
)

func main() {
	configs.LoadEnv()
	logging.Init()

	client := configs.ConnectDB()
	db := configs.GetDatabase(client)

	products := mongostore.NewProductStore(db)
	carts := mongostore.NewCartStore(db)
	orders := mongostore.NewOrderStore(db)
	users := mongostore.NewUserStore(db)
	mergeLog := mongostore.NewMergeLogStore(db)

	var cache catalog.Cache
	if addr := configs.EnvRedisAddr(); addr != "" {
		cache = catalog.NewRedisCache(addr)
	}

	catalogSvc := catalog.NewService(products, cache)
	cartSvc := cart.NewService(carts, products, mergeLog)
	orderSvc := order.NewService(orders, carts, catalogSvc, configs.EnvTrustClientTotal())

	app := fiber.New()

	auth := middlewares.AuthMiddleware(configs.EnvJWTSecret())
	admin := middlewares.AdminOnly()

	routes.AuthRoutes(app, authController.New(users, configs.EnvJWTSecret()), auth)
	routes.ProductsRoutes(app, productController.New(catalogSvc), auth, admin)
	routes.CartRoutes(app, cartController.New(cartSvc), auth)
	routes.OrderRoutes(app, orderController.New(orderSvc), auth, admin)

	log.Fatal(app.Listen(":" + configs.EnvPort()))
}
