package cartController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/middlewares"
	"github.com/AdityaGupta2791/E-com/responses"
	"github.com/AdityaGupta2791/E-com/services/cart"
)

var validate = validator.New()

type Controller struct {
	svc *cart.Service
}

func New(svc *cart.Service) *Controller {
	return &Controller{svc: svc}
}

type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
	Size      string `json:"size" validate:"required"`
}

func (ct *Controller) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cartDoc, err := ct.svc.Add(ctx, user, productID, req.Size, quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully added to cart", &fiber.Map{"cart": cartDoc})
}

type UpdateQuantityRequest struct {
	Quantity *int   `json:"quantity" validate:"required"`
	Size     string `json:"size" validate:"required"`
}

func (ct *Controller) UpdateQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	cartDoc, err := ct.svc.UpdateQuantity(ctx, user, productID, req.Size, *req.Quantity)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Cart updated", &fiber.Map{"cart": cartDoc})
}

type RemoveItemRequest struct {
	// Size is optional: empty removes every size of the product.
	Size string `json:"size"`
}

func (ct *Controller) RemoveItem(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	productID, err := primitive.ObjectIDFromHex(c.Params("productId"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	var req RemoveItemRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	cartDoc, err := ct.svc.Remove(ctx, user, productID, req.Size)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully removed from cart", &fiber.Map{"cart": cartDoc})
}

func (ct *Controller) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	view, err := ct.svc.Get(ctx, user)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully fetched cart", &fiber.Map{"cart": view})
}

type GuestEntryRequest struct {
	EntryID   string `json:"entryId" validate:"omitempty,uuid4"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
	Size      string `json:"size" validate:"required"`
}

type MergeCartRequest struct {
	Entries []GuestEntryRequest `json:"entries" validate:"dive"`
}

// MergeGuestCart replays a client-held guest cart into the server cart. The
// client clears its local copy only when the response says cleared.
func (ct *Controller) MergeGuestCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	user, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	var req MergeCartRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	entries := make([]cart.GuestEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		productID, err := primitive.ObjectIDFromHex(e.ProductID)
		if err != nil {
			return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id in guest cart")
		}
		entries = append(entries, cart.GuestEntry{
			EntryID:   e.EntryID,
			ProductID: productID,
			Size:      e.Size,
			Quantity:  e.Quantity,
		})
	}

	result, err := ct.svc.MergeGuest(ctx, user, entries)
	if err != nil {
		if result != nil {
			return responses.ErrorWithResult(c, err, &fiber.Map{
				"entries": result.Entries,
				"cleared": result.Cleared,
			})
		}
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Guest cart merged", &fiber.Map{
		"entries": result.Entries,
		"cleared": result.Cleared,
	})
}
