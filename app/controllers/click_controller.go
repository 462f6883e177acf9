package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/akademia-dev/akademia-backend/internal/pkg/payment/click"
)

// HandleClickCallback receives both prepare and complete callbacks from
// Click. The response is always HTTP 200; only a storage fault surfaces as
// HTTP 500 so the gateway retries.
func HandleClickCallback(c *fiber.Ctx) error {
	var req click.Request
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(&click.Response{
			Error:     click.CodeBadRequest,
			ErrorNote: "Invalid request body",
		})
	}

	resp, err := getClickService().HandleRequest(c.UserContext(), &req)
	if err != nil {
		logrus.WithError(err).WithField("click_trans_id", req.ClickTransID).Error("click callback failed")
		return serverError(c)
	}
	return c.JSON(resp)
}
