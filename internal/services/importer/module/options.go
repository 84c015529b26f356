package module

import (
	"time"

	"boardstore/internal/platform/config"
)

// Options holds configuration settings for the importer module
type Options struct {
	// remote credentials, never logged
	AccessKey  string
	SecretKey  string
	PartnerTag string

	// BaseURL overrides the marketplace endpoint; used by tests
	BaseURL string
	Timeout time.Duration

	ResetStatusOnRefresh bool
	DefaultStatus        string

	BreakerThreshold int
	BreakerCooldown  time.Duration
	BreakerCeiling   time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	az := cfg.Prefix("AMAZON_")
	im := cfg.Prefix("IMPORTER_")
	return Options{
		AccessKey:  az.MayString("ACCESS_KEY", ""),
		SecretKey:  az.MayString("SECRET_KEY", ""),
		PartnerTag: az.MayString("PARTNER_TAG", ""),
		BaseURL:    az.MayString("BASE_URL", ""),
		Timeout:    az.MayDuration("TIMEOUT", 10*time.Second),

		ResetStatusOnRefresh: im.MayBool("RESET_STATUS_ON_REFRESH", false),
		DefaultStatus:        im.MayString("DEFAULT_STATUS", "draft"),

		BreakerThreshold: im.MayInt("BREAKER_THRESHOLD", 5),
		BreakerCooldown:  im.MayDuration("BREAKER_COOLDOWN", 30*time.Second),
		BreakerCeiling:   im.MayDuration("BREAKER_COOLDOWN_CEILING", 5*time.Minute),
	}
}
