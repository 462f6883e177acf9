package notifications

import (
	"context"
	"errors"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/mail"
	"github.com/akademia-dev/akademia-backend/internal/pkg/sms"
	"github.com/sirupsen/logrus"
)

// Mailer and SMSSender are satisfied by the mail package and the Eskiz
// client; tests substitute fakes.
type Mailer func(to, subject, body string) error

type SMSSender interface {
	SendSMS(ctx context.Context, phone, text string) error
}

// Service picks the delivery channel for a purchase confirmation: email when
// the user has one, SMS otherwise.
type Service struct {
	mailer Mailer
	sms    SMSSender
}

func NewService(mailer Mailer, smsSender SMSSender) *Service {
	return &Service{mailer: mailer, sms: smsSender}
}

// NewServiceFromEnv wires the SMTP mailer and the Eskiz client.
func NewServiceFromEnv() *Service {
	return NewService(mail.SendMail, sms.NewEskizClientFromEnv())
}

// SendPurchaseNotification tells the buyer their payment went through. The
// message text depends on the plan's package tier.
func (s *Service) SendPurchaseNotification(ctx context.Context, user *models.User, plan *models.Plan) error {
	switch {
	case user.Email != "":
		logrus.WithFields(logrus.Fields{
			"channel": "mail",
			"contact": user.Email,
			"package": plan.Package,
		}).Info("sending purchase notification")
		return s.mailer(user.Email, purchaseMailSubject, mailTextFor(plan.Package))
	case user.Phone != "":
		logrus.WithFields(logrus.Fields{
			"channel": "sms",
			"contact": user.Phone,
			"package": plan.Package,
		}).Info("sending purchase notification")
		return s.sms.SendSMS(ctx, user.Phone, smsTextFor(plan.Package))
	default:
		return errors.New("user has no email or phone to notify")
	}
}
