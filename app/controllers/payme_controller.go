package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/payme"
)

// HandlePaymeCallback is the single Payme JSON-RPC endpoint. Authentication
// failures and protocol rejections both travel inside a 200 response; only a
// storage fault becomes HTTP 500.
func HandlePaymeCallback(c *fiber.Ctx) error {
	var req payme.Request
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(payme.UnauthorizedResponse(req.ID))
	}

	svc := getPaymeService()
	if !svc.VerifyBasicAuth(c.Get(fiber.HeaderAuthorization)) {
		logrus.WithField("method", req.Method).Warn("payme: basic auth failed")
		return c.JSON(payme.UnauthorizedResponse(req.ID))
	}

	resp, err := svc.HandleRequest(c.UserContext(), &req)
	if err != nil {
		logrus.WithError(err).WithField("method", req.Method).Error("payme callback failed")
		return serverError(c)
	}
	return c.JSON(resp)
}
