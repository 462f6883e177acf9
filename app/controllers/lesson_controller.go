package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
)

// HandleCreateLesson adds a lesson to a course (admin).
func HandleCreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return badRequest(c, "invalid request body")
	}
	lesson.ID = 0
	if err := lesson.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	repos := repository.GetGlobalRepositories()
	if _, err := repos.Course.GetByID(lesson.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c, "course not found")
		}
		return serverError(c)
	}
	if err := repos.Lesson.Create(&lesson); err != nil {
		logrus.WithError(err).Error("lesson creation failed")
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// HandleUpdateLesson updates a lesson (admin).
func HandleUpdateLesson(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	lesson, err := repos.Lesson.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "lesson not found")
		}
		return serverError(c)
	}

	if err := c.BodyParser(lesson); err != nil {
		return badRequest(c, "invalid request body")
	}
	lesson.ID = id
	if err := lesson.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Lesson.Update(lesson); err != nil {
		logrus.WithError(err).Error("lesson update failed")
		return serverError(c)
	}
	return c.JSON(lesson)
}

// HandleDeleteLesson soft deletes a lesson (admin).
func HandleDeleteLesson(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Lesson.Delete(id); err != nil {
		logrus.WithError(err).Error("lesson deletion failed")
		return serverError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
