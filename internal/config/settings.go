package config

import (
	"os"
	"strconv"
	"time"
)

// GradingStrict reports whether an unresolvable answer entry should
// fail the whole submission instead of being skipped.
func GradingStrict() bool {
	v, err := strconv.ParseBool(os.Getenv("GRADING_STRICT"))
	if err != nil {
		return false
	}
	return v
}

func GeminiModel() string {
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		return m
	}
	return "gemini-2.0-flash"
}

// GenerationTimeout bounds a single model call so a hung provider
// cannot hold the request thread open.
func GenerationTimeout() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("GENERATION_TIMEOUT_SECONDS")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return 30 * time.Second
}

func HTTPPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
