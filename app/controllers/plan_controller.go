package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
)

// planView is a plan plus the price that currently applies.
type planView struct {
	models.Plan
	EffectivePrice int64 `json:"effective_price"`
}

// HandleListPlans returns the active plans of a course with their current
// effective prices.
func HandleListPlans(c *fiber.Ctx) error {
	courseID, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	plans, err := repository.GetGlobalRepositories().Plan.GetByCourseID(courseID)
	if err != nil {
		logrus.WithError(err).Error("plan listing failed")
		return serverError(c)
	}

	now := time.Now()
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, planView{Plan: p, EffectivePrice: p.EffectivePrice(now)})
	}
	return c.JSON(fiber.Map{"plans": views})
}

// HandleCreatePlan creates a plan (admin).
func HandleCreatePlan(c *fiber.Ctx) error {
	var plan models.Plan
	if err := c.BodyParser(&plan); err != nil {
		return badRequest(c, "invalid request body")
	}
	plan.ID = 0
	if err := validate.Struct(&plan); err != nil {
		return badRequest(c, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Course.GetByID(plan.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c, "course not found")
		}
		return serverError(c)
	}
	if err := repos.Plan.Create(&plan); err != nil {
		logrus.WithError(err).Error("plan creation failed")
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// HandleUpdatePlan updates a plan (admin).
func HandleUpdatePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	plan, err := repos.Plan.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	if err := c.BodyParser(plan); err != nil {
		return badRequest(c, "invalid request body")
	}
	plan.ID = id
	if err := validate.Struct(plan); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Plan.Update(plan); err != nil {
		logrus.WithError(err).Error("plan update failed")
		return serverError(c)
	}
	return c.JSON(plan)
}

// HandleDeletePlan removes a plan (admin).
func HandleDeletePlan(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Plan.Delete(id); err != nil {
		logrus.WithError(err).Error("plan deletion failed")
		return serverError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
