package orderController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/middlewares"
	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/responses"
	"github.com/AdityaGupta2791/E-com/services/order"
)

var validate = validator.New()

type Controller struct {
	svc *order.Service
}

func New(svc *order.Service) *Controller {
	return &Controller{svc: svc}
}

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size" validate:"required"`
}

type PlaceOrderRequest struct {
	// Products, when omitted, places the order from the user's cart.
	Products      []OrderItemRequest `json:"products" validate:"omitempty,dive"`
	TotalAmount   *float64           `json:"totalAmount" validate:"omitempty,gt=0"`
	Address       models.Address     `json:"address"`
	PaymentStatus string             `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
}

func (ct *Controller) PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	var req PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	items := make([]order.ItemRequest, 0, len(req.Products))
	for _, p := range req.Products {
		productID, err := primitive.ObjectIDFromHex(p.ProductID)
		if err != nil {
			return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
		}
		items = append(items, order.ItemRequest{
			ProductID: productID,
			Size:      p.Size,
			Quantity:  p.Quantity,
		})
	}

	placed, err := ct.svc.Place(ctx, user, order.PlaceRequest{
		Items:         items,
		TotalAmount:   req.TotalAmount,
		Address:       req.Address,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusCreated, "Order placed", &fiber.Map{"order": placed})
}

func (ct *Controller) GetUserOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	orders, err := ct.svc.ListForUser(ctx, user)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully fetched orders", &fiber.Map{"orders": orders})
}

func (ct *Controller) GetAllOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	orders, err := ct.svc.ListAll(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully fetched orders", &fiber.Map{"orders": orders})
}
