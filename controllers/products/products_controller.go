package productController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/responses"
	"github.com/AdityaGupta2791/E-com/services/catalog"
)

var validate = validator.New()

type Controller struct {
	svc *catalog.Service
}

func New(svc *catalog.Service) *Controller {
	return &Controller{svc: svc}
}

type AddProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required,oneof=men women kid"`
	Sizes       []string `json:"sizes"`
	Stock       int      `json:"stock" validate:"min=0"`
	NewPrice    float64  `json:"new_price" validate:"required,gt=0"`
	OldPrice    float64  `json:"old_price" validate:"required,gt=0"`
}

func (ct *Controller) AddProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req AddProductRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	sizes := req.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	product := models.Product{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Sizes:       sizes,
		Stock:       req.Stock,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
	}
	if err := ct.svc.Create(ctx, &product); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusCreated, "Product created", &fiber.Map{"product": product})
}

func (ct *Controller) GetAllProducts(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	products, err := ct.svc.List(ctx)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully fetched products", &fiber.Map{"products": products})
}

func (ct *Controller) GetProductById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	product, err := ct.svc.Get(ctx, id)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Successfully fetched product", &fiber.Map{"product": product})
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,oneof=men women kid"`
	Sizes       []string `json:"sizes"`
	Stock       *int     `json:"stock" validate:"omitempty,min=0"`
	NewPrice    *float64 `json:"new_price" validate:"omitempty,gt=0"`
	OldPrice    *float64 `json:"old_price" validate:"omitempty,gt=0"`
	Available   *bool    `json:"available"`
}

func (ct *Controller) UpdateProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	_, err = ct.svc.Update(ctx, id, catalog.UpdateParams{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Stock:       req.Stock,
		NewPrice:    req.NewPrice,
		OldPrice:    req.OldPrice,
		Available:   req.Available,
	})
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Product updated", &fiber.Map{"id": id.Hex()})
}

func (ct *Controller) RemoveProduct(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	if err := ct.svc.Delete(ctx, id); err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "Product removed", &fiber.Map{"id": id.Hex()})
}
