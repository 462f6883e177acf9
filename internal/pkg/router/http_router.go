package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akademia-dev/akademia-backend/app/controllers"
	"github.com/akademia-dev/akademia-backend/internal/pkg/middleware"
)

type HttpRouter struct {
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api/v1")

	// auth
	api.Post("/auth/register", controllers.HandleRegister)
	api.Post("/auth/login", controllers.HandleLogin)
	api.Get("/auth/me", middleware.Protected(), controllers.HandleMe)

	// public catalog
	api.Get("/courses", controllers.HandleListCourses)
	api.Get("/courses/:id", controllers.HandleGetCourse)
	api.Get("/courses/:id/plans", controllers.HandleListPlans)
	api.Get("/articles", controllers.HandleListArticles)
	api.Get("/articles/:id", controllers.HandleGetArticle)
	api.Get("/banners", controllers.HandleListBanners)

	// purchased courses
	api.Get("/my-courses", middleware.Protected(), controllers.HandleListMyCourses)

	// admin content management
	admin := api.Group("/admin", middleware.Protected(), middleware.AdminOnly())
	admin.Post("/courses", controllers.HandleCreateCourse)
	admin.Put("/courses/:id", controllers.HandleUpdateCourse)
	admin.Delete("/courses/:id", controllers.HandleDeleteCourse)
	admin.Post("/lessons", controllers.HandleCreateLesson)
	admin.Put("/lessons/:id", controllers.HandleUpdateLesson)
	admin.Delete("/lessons/:id", controllers.HandleDeleteLesson)
	admin.Post("/articles", controllers.HandleCreateArticle)
	admin.Put("/articles/:id", controllers.HandleUpdateArticle)
	admin.Delete("/articles/:id", controllers.HandleDeleteArticle)
	admin.Post("/banners", controllers.HandleCreateBanner)
	admin.Put("/banners/:id", controllers.HandleUpdateBanner)
	admin.Delete("/banners/:id", controllers.HandleDeleteBanner)
	admin.Post("/plans", controllers.HandleCreatePlan)
	admin.Put("/plans/:id", controllers.HandleUpdatePlan)
	admin.Delete("/plans/:id", controllers.HandleDeletePlan)
}
