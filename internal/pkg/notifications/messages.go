package notifications

import "github.com/akademia-dev/akademia-backend/app/models"

const purchaseMailSubject = "Оплата курса прошла успешно"

// Per-tier texts. The standard and premium tiers include their private chat
// invites, the basic tier does not.
var smsMessages = map[string]string{
	models.PlanPackageBasic:    "Оплата за курс прошла успешно! Войдите в личный кабинет на сайте.",
	models.PlanPackageStandard: "Оплата за курс прошла успешно! Войдите в личный кабинет и вступите в чат вашего тарифа.",
	models.PlanPackagePremium:  "Оплата за курс прошла успешно! Войдите в личный кабинет и вступите в премиум-чат вашего тарифа.",
}

var mailMessages = map[string]string{
	models.PlanPackageBasic: `Поздравляем! Оплата за курс прошла успешно!

Войдите в личный кабинет, чтобы открыть уроки. Если что-то не получается, наша команда поддержки всегда на связи.`,
	models.PlanPackageStandard: `Поздравляем! Оплата за курс прошла успешно!

Войдите в личный кабинет, чтобы открыть уроки, и не забудьте вступить в чат вашего тарифа — ссылка в кабинете.

Если что-то не получается, наша команда поддержки всегда на связи.`,
	models.PlanPackagePremium: `Поздравляем! Оплата за курс прошла успешно!

Войдите в личный кабинет, чтобы открыть уроки, и не забудьте вступить в премиум-чат вашего тарифа — ссылка в кабинете.

Если что-то не получается, наша команда поддержки всегда на связи.`,
}

func smsTextFor(tier string) string {
	if text, ok := smsMessages[tier]; ok {
		return text
	}
	return smsMessages[models.PlanPackageBasic]
}

func mailTextFor(tier string) string {
	if text, ok := mailMessages[tier]; ok {
		return text
	}
	return mailMessages[models.PlanPackageBasic]
}
