package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
	"github.com/akademia-dev/akademia-backend/internal/pkg/jwt"
	"github.com/akademia-dev/akademia-backend/internal/pkg/middleware"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=9,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=9,max=20"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates a new account reachable by email or phone.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Email == "" && req.Phone == "" {
		return badRequest(c, "email or phone is required")
	}

	repos := repository.GetGlobalRepositories()
	if req.Email != "" {
		if _, err := repos.User.GetByEmail(req.Email); err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "email already registered"})
		}
	}
	if req.Phone != "" {
		if _, err := repos.User.GetByPhone(req.Phone); err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "phone already registered"})
		}
	}

	user, err := models.CreateUser(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.User.Create(user); err != nil {
		logrus.WithError(err).Error("user registration failed")
		return serverError(c)
	}

	token, expiresAt, err := jwt.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		return serverError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// HandleLogin exchanges credentials for a Bearer token. The caller identifies
// with whichever of email or phone they registered with.
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	var (
		user *models.User
		err  error
	)
	switch {
	case req.Email != "":
		user, err = repos.User.GetByEmail(req.Email)
	case req.Phone != "":
		user, err = repos.User.GetByPhone(req.Phone)
	default:
		return badRequest(c, "email or phone is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidCredentials(c)
		}
		return serverError(c)
	}

	if !user.CheckPassword(req.Password) || !user.IsActive() {
		return invalidCredentials(c)
	}

	token, expiresAt, err := jwt.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("token generation failed")
		return serverError(c)
	}

	return c.JSON(fiber.Map{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// HandleMe returns the authenticated user's profile.
func HandleMe(c *fiber.Ctx) error {
	user, err := repository.GetGlobalRepositories().User.GetByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "user not found")
		}
		return serverError(c)
	}
	return c.JSON(user)
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
}
