package module

import (
	"time"

	"shelfwatch/internal/adapters/social/twitter"
	"shelfwatch/internal/platform/config"
)

// Options carries the Twitter app settings, read from TWITTER_*
type Options struct {
	Twitter twitter.Options
}

// FromConfig reads options using the TWITTER_ prefix
func FromConfig(cfg config.Conf) Options {
	tw := cfg.Prefix("TWITTER_")
	return Options{Twitter: twitter.Options{
		BaseURL:        tw.MayURL("API_BASE", "https://api.twitter.com").String(),
		ConsumerKey:    tw.MayString("CONSUMER_KEY", ""),
		ConsumerSecret: tw.MayString("CONSUMER_SECRET", ""),
		Timeout:        tw.MayDuration("TIMEOUT", 15*time.Second),
		RatePerSec:     tw.MayFloat64("RPS", 1.0),
		Burst:          tw.MayInt("BURST", 3),
		MaxRetries:     tw.MayInt("MAX_RETRIES", 3),
		RetryBase:      tw.MayDuration("RETRY_BASE", 500*time.Millisecond),
		PageSize:       tw.MayInt("PAGE_SIZE", 200),
	}}
}
