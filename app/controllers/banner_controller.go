package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
	"github.com/akademia-dev/akademia-backend/internal/pkg/cache"
)

const (
	bannerCacheKey = "banners:active"
	bannerCacheTTL = 5 * time.Minute
)

// HandleListBanners returns the active banners, served from cache when warm.
func HandleListBanners(c *fiber.Ctx) error {
	if cached, err := cache.Get(bannerCacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	banners, err := repository.GetGlobalRepositories().Banner.GetActive()
	if err != nil {
		logrus.WithError(err).Error("banner listing failed")
		return serverError(c)
	}

	payload := fiber.Map{"banners": banners}
	if raw, err := json.Marshal(payload); err == nil {
		if err := cache.Set(bannerCacheKey, string(raw), bannerCacheTTL); err != nil {
			logrus.WithError(err).Warn("banner cache write failed")
		}
	}
	return c.JSON(payload)
}

// HandleCreateBanner creates a banner (admin).
func HandleCreateBanner(c *fiber.Ctx) error {
	var banner models.Banner
	if err := c.BodyParser(&banner); err != nil {
		return badRequest(c, "invalid request body")
	}
	banner.ID = 0
	if err := banner.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repository.GetGlobalRepositories().Banner.Create(&banner); err != nil {
		logrus.WithError(err).Error("banner creation failed")
		return serverError(c)
	}
	invalidateBannerCache()
	return c.Status(fiber.StatusCreated).JSON(banner)
}

// HandleUpdateBanner updates a banner (admin).
func HandleUpdateBanner(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repos := repository.GetGlobalRepositories()
	banner, err := repos.Banner.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "banner not found")
		}
		return serverError(c)
	}

	if err := c.BodyParser(banner); err != nil {
		return badRequest(c, "invalid request body")
	}
	banner.ID = id
	if err := banner.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	if err := repos.Banner.Update(banner); err != nil {
		logrus.WithError(err).Error("banner update failed")
		return serverError(c)
	}
	invalidateBannerCache()
	return c.JSON(banner)
}

// HandleDeleteBanner removes a banner (admin).
func HandleDeleteBanner(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return badRequest(c, "invalid id")
	}
	if err := repository.GetGlobalRepositories().Banner.Delete(id); err != nil {
		logrus.WithError(err).Error("banner deletion failed")
		return serverError(c)
	}
	invalidateBannerCache()
	return c.SendStatus(fiber.StatusNoContent)
}

func invalidateBannerCache() {
	if err := cache.Delete(bannerCacheKey); err != nil {
		logrus.WithError(err).Warn("banner cache invalidation failed")
	}
}
