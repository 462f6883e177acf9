package payment

import (
	"strconv"
	"strings"
	"time"

	"github.com/akademia-dev/akademia-backend/internal/pkg/env"
)

// TiyinPerSum converts between the sum prices stored on plans and the tiyin
// amounts Payme and Uzum put on the wire.
const TiyinPerSum = 100

const defaultValidityMinutes = 720

// ClickConfig carries the credentials and limits for the Click merchant API.
type ClickConfig struct {
	ServiceID      int64
	SecretKey      string
	ValidityWindow time.Duration
}

// PaymeConfig carries the Basic-auth credentials for the Payme merchant API.
type PaymeConfig struct {
	Login          string
	Password       string
	ValidityWindow time.Duration
}

// UzumConfig carries the service identity for the Uzum merchant API.
type UzumConfig struct {
	ServiceID int64
}

func LoadClickConfig() ClickConfig {
	return ClickConfig{
		ServiceID:      envInt64("CLICK_SERVICE_ID", 0),
		SecretKey:      strings.TrimSpace(env.GetEnv("CLICK_SECRET", "")),
		ValidityWindow: envMinutes("CLICK_TIMEOUT_MINUTES", defaultValidityMinutes),
	}
}

func LoadPaymeConfig() PaymeConfig {
	return PaymeConfig{
		Login:          strings.TrimSpace(env.GetEnv("PAYME_LOGIN", "Paycom")),
		Password:       strings.TrimSpace(env.GetEnv("PAYME_PASSWORD", "")),
		ValidityWindow: envMinutes("PAYME_TIMEOUT_MINUTES", defaultValidityMinutes),
	}
}

func LoadUzumConfig() UzumConfig {
	return UzumConfig{
		ServiceID: envInt64("UZUM_SERVICE_ID", 0),
	}
}

func envInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(env.GetEnv(key, ""))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func envMinutes(key string, defMinutes int64) time.Duration {
	return time.Duration(envInt64(key, defMinutes)) * time.Minute
}
