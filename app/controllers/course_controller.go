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

// HandleListCourses returns the published course catalog.
func HandleListCourses(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	courses, err := repository.GetGlobalRepositories().Course.GetPublished(offset, limit)
	if err != nil {
		logrus.WithError(err).Error("course listing failed")
		return serverError(c)
	}
	return c.JSON(fiber.Map{"courses": courses})
}

// HandleGetCourse returns one course with its lessons and plans. Video links
// of paid lessons are withheld unless the caller holds an active entitlement
// for the course.
func HandleGetCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	course, err := repos.Course.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "course not found")
		}
		return serverError(c)
	}
	if !course.IsPublished {
		return notFound(c, "course not found")
	}

	hasAccess := false
	if userID := optionalUserID(c); userID != 0 {
		hasAccess, err = repos.MyCourse.HasActiveAccess(userID, course.ID, time.Now())
		if err != nil {
			return serverError(c)
		}
	}
	if !hasAccess {
		for i := range course.Lessons {
			if !course.Lessons[i].IsFree {
				course.Lessons[i].VideoURL = ""
			}
		}
	}

	return c.JSON(course)
}

// HandleCreateCourse creates a course (admin).
func HandleCreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return badRequest(c, "invalid request body")
	}
	course.ID = 0
	if err := course.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Course.Create(&course); err != nil {
		logrus.WithError(err).Error("course creation failed")
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

// HandleUpdateCourse updates an existing course (admin).
func HandleUpdateCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	course, err := repos.Course.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "course not found")
		}
		return serverError(c)
	}

	if err := c.BodyParser(course); err != nil {
		return badRequest(c, "invalid request body")
	}
	course.ID = id
	if err := course.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Course.Update(course); err != nil {
		logrus.WithError(err).Error("course update failed")
		return serverError(c)
	}
	return c.JSON(course)
}

// HandleDeleteCourse soft deletes a course (admin).
func HandleDeleteCourse(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Course.Delete(id); err != nil {
		logrus.WithError(err).Error("course deletion failed")
		return serverError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
