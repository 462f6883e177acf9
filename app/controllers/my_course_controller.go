package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/app/repository"
	"github.com/akademia-dev/akademia-backend/internal/pkg/middleware"
)

// myCourseView pairs an entitlement with its course and whether the access
// window is still open.
type myCourseView struct {
	models.MyCourse
	Course  *models.Course `json:"course,omitempty"`
	Expired bool           `json:"expired"`
}

// HandleListMyCourses returns the authenticated user's course entitlements,
// expired ones flagged rather than hidden.
func HandleListMyCourses(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	entitlements, err := repos.MyCourse.GetByUserID(middleware.UserID(c))
	if err != nil {
		logrus.WithError(err).Error("entitlement listing failed")
		return serverError(c)
	}

	now := time.Now()
	views := make([]myCourseView, 0, len(entitlements))
	for _, e := range entitlements {
		view := myCourseView{MyCourse: e, Expired: e.IsExpired(now)}
		if course, err := repos.Course.GetByID(e.CourseID); err == nil {
			course.Plans = nil
			view.Course = course
		}
		views = append(views, view)
	}
	return c.JSON(fiber.Map{"my_courses": views})
}
