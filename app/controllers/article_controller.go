package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
)

// HandleListArticles returns published articles.
func HandleListArticles(c *fiber.Ctx) error {
	offset, limit := pagination(c)
	articles, err := repository.GetGlobalRepositories().Article.GetPublished(offset, limit)
	if err != nil {
		logrus.WithError(err).Error("article listing failed")
		return serverError(c)
	}
	return c.JSON(fiber.Map{"articles": articles})
}

// HandleGetArticle returns one published article.
func HandleGetArticle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	article, err := repository.GetGlobalRepositories().Article.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "article not found")
		}
		return serverError(c)
	}
	if !article.IsPublished {
		return notFound(c, "article not found")
	}
	return c.JSON(article)
}

// HandleCreateArticle creates an article (admin).
func HandleCreateArticle(c *fiber.Ctx) error {
	var article models.Article
	if err := c.BodyParser(&article); err != nil {
		return badRequest(c, "invalid request body")
	}
	article.ID = 0
	if err := article.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Article.Create(&article); err != nil {
		logrus.WithError(err).Error("article creation failed")
		return serverError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleUpdateArticle updates an article (admin).
func HandleUpdateArticle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	article, err := repos.Article.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "article not found")
		}
		return serverError(c)
	}

	if err := c.BodyParser(article); err != nil {
		return badRequest(c, "invalid request body")
	}
	article.ID = id
	if err := article.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Article.Update(article); err != nil {
		logrus.WithError(err).Error("article update failed")
		return serverError(c)
	}
	return c.JSON(article)
}

// HandleDeleteArticle soft deletes an article (admin).
func HandleDeleteArticle(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Article.Delete(id); err != nil {
		logrus.WithError(err).Error("article deletion failed")
		return serverError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
