package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/benedict-erwin/blog-service/config"
	"github.com/benedict-erwin/blog-service/pkg/logger"
)

var appLocation = time.UTC

// InitTimezone initializes the application timezone from config
func InitTimezone() error {
	timezone := config.Get().App.Timezone
	if timezone == "" {
		logger.Warn().Msg("No timezone configured, using UTC")
		appLocation = time.UTC
		return nil
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Error().Err(err).Str("timezone", timezone).Msg("Failed to load timezone, using UTC")
		appLocation = time.UTC
		return err
	}

	appLocation = loc
	logger.Info().Str("timezone", timezone).Msg("Timezone initialized")
	return nil
}

// Now returns current time in application timezone
func Now() time.Time {
	return time.Now().In(appLocation)
}

// NowFormatted returns current time formatted in RFC3339 with app timezone
func NowFormatted() string {
	return Now().Format(time.RFC3339)
}

// ReprBool renders a boolean the way the public API messages spell it
func ReprBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReprInt renders an optional integer, nil becomes None
func ReprInt(v *int) string {
	if v == nil {
		return "None"
	}
	return strconv.Itoa(*v)
}

// ReprString renders an optional string, nil becomes None
func ReprString(v *string) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprint(*v)
}
