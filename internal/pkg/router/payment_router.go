package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akademia-dev/akademia-backend/app/controllers"
)

// PaymentRouter mounts the gateway callback endpoints. These stay outside the
// JWT middleware: each provider authenticates its own way (Click signs the
// payload, Payme sends Basic auth, Uzum identifies by service id).
type PaymentRouter struct {
}

func NewPaymentRouter() *PaymentRouter {
	return &PaymentRouter{}
}

func (p PaymentRouter) InstallRouter(app *fiber.App) {
	payments := app.Group("/api/v1/payments")

	payments.Post("/click", controllers.HandleClickCallback)
	payments.Post("/payme", controllers.HandlePaymeCallback)

	uzum := payments.Group("/uzum")
	uzum.Post("/check", controllers.HandleUzumCheck)
	uzum.Post("/create", controllers.HandleUzumCreate)
	uzum.Post("/confirm", controllers.HandleUzumConfirm)
	uzum.Post("/reverse", controllers.HandleUzumReverse)
	uzum.Post("/status", controllers.HandleUzumStatus)
}
