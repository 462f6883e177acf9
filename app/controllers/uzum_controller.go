package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/uzum"
)

// The Uzum phases are separate endpoints sharing one request envelope; each
// handler delegates to its phase and answers HTTP 200 with the body-encoded
// outcome.

func HandleUzumCheck(c *fiber.Ctx) error {
	return handleUzumPhase(c, "check", getUzumService().Check)
}

func HandleUzumCreate(c *fiber.Ctx) error {
	return handleUzumPhase(c, "create", getUzumService().Create)
}

func HandleUzumConfirm(c *fiber.Ctx) error {
	return handleUzumPhase(c, "confirm", getUzumService().Confirm)
}

func HandleUzumReverse(c *fiber.Ctx) error {
	return handleUzumPhase(c, "reverse", getUzumService().Reverse)
}

func HandleUzumStatus(c *fiber.Ctx) error {
	return handleUzumPhase(c, "status", getUzumService().Status)
}

func handleUzumPhase(c *fiber.Ctx, phase string, fn func(context.Context, *uzum.Request) (*uzum.Response, error)) error {
	var req uzum.Request
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(&uzum.Response{
			Status:    uzum.StatusFailed,
			ErrorCode: uzum.CodeInvalidPaymentData,
		})
	}

	resp, err := fn(c.UserContext(), &req)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"phase":    phase,
			"trans_id": req.TransID,
		}).Error("uzum callback failed")
		return serverError(c)
	}
	return c.JSON(resp)
}
