package authController

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/AdityaGupta2791/E-com/middlewares"
	"github.com/AdityaGupta2791/E-com/models"
	"github.com/AdityaGupta2791/E-com/responses"
	"github.com/AdityaGupta2791/E-com/store"
)

var validate = validator.New()

type Controller struct {
	users  store.UserStore
	secret string
}

func New(users store.UserStore, secret string) *Controller {
	return &Controller{users: users, secret: secret}
}

func (ct *Controller) signToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID.Hex(),
		"role": user.Role,
		"exp":  time.Now().Add(72 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(ct.secret))
}

func userSummary(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (ct *Controller) Signup(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	existing, err := ct.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return responses.Error(c, err)
	}
	if existing != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return responses.Fail(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := ct.users.Insert(ctx, &user); err != nil {
		return responses.Error(c, err)
	}

	token, err := ct.signToken(&user)
	if err != nil {
		return responses.Fail(c, fiber.StatusInternalServerError, "Failed to sign token")
	}
	return responses.OK(c, fiber.StatusCreated, "Account created", &fiber.Map{
		"token": token,
		"user":  userSummary(&user),
	})
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ct *Controller) Signin(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	var req SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return responses.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := ct.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return responses.Error(c, err)
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return responses.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := ct.signToken(user)
	if err != nil {
		return responses.Fail(c, fiber.StatusInternalServerError, "Failed to sign token")
	}
	return responses.OK(c, fiber.StatusOK, "Signed in", &fiber.Map{
		"token": token,
		"user":  userSummary(user),
	})
}

func (ct *Controller) Me(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	id, err := middlewares.UserObjectID(c)
	if err != nil {
		return responses.Error(c, err)
	}

	user, err := ct.users.Get(ctx, id)
	if err != nil {
		return responses.Error(c, err)
	}
	return responses.OK(c, fiber.StatusOK, "", &fiber.Map{"user": userSummary(user)})
}
