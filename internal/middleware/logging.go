package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/ViewTube/viewtube-go/pkg/hash"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger zerolog.Logger

// InitLogger sets up the global zerolog logger with structured JSON output.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error").
func InitLogger(level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", service).
		Logger()
}

var pathPlaceholders = map[string]string{
	"users":    ":userId",
	"user":     ":userId",
	"channels": ":channelId",
	"channel":  ":channelId",
	"videos":   ":videoId",
	"comments": ":id",
}

var pathLiterals = map[string]bool{
	"register": true, "login": true, "logout": true,
	"channel": true, "user": true, "like": true, "dislike": true,
}

// sanitizePath replaces identifiers in resource paths with placeholders so
// logs and metric labels stay low-cardinality.
func sanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		placeholder, ok := pathPlaceholders[parts[i-1]]
		if !ok || parts[i] == "" || pathLiterals[parts[i]] {
			continue
		}
		parts[i] = placeholder
	}
	return strings.Join(parts, "/")
}

// SanitizePath is the exported form used by the metrics middleware.
func SanitizePath(path string) string {
	return sanitizePath(path)
}

// NewRequestLogger returns a Fiber middleware that logs each request as
// structured JSON. Client IPs are hashed before they are written.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		evt := Logger.Info()
		if status >= 500 {
			evt = Logger.Error()
		} else if status >= 400 {
			evt = Logger.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", sanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", duration).
			Str("ip_hash", hash.ShortIP(c.IP())).
			Int("bytes_sent", len(c.Response().Body())).
			Msg("request")

		return err
	}
}
