// Package config centralizes environment-driven configuration so main stays lean.
package config

import (
	"os"
	"strconv"
)

// Server captures service level configuration.
type Server struct {
	// Addr is the listen address for the HTTP server.
	Addr string
	// Env selects runtime behavior: "dev" or "prod".
	Env string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// StoreBackend selects the photo store: "memory" or "postgres".
	StoreBackend string
	// PostgresDSN is required when StoreBackend is "postgres".
	PostgresDSN string

	// WatermarkCaption is the text stamped on every disclosed photo.
	WatermarkCaption string
	// WatermarkPosition is one of top-left, top-right, bottom-left, bottom-right.
	WatermarkPosition string
	// WatermarkJPEGQuality is the JPEG encode quality for stamped photos, 1-100.
	WatermarkJPEGQuality int
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:                 envOr("FOTOGATE_ADDR", ":8080"),
		Env:                  envOr("FOTOGATE_ENV", "dev"),
		LogLevel:             envOr("FOTOGATE_LOG_LEVEL", "info"),
		StoreBackend:         envOr("FOTOGATE_STORE", "memory"),
		PostgresDSN:          os.Getenv("FOTOGATE_POSTGRES_DSN"),
		WatermarkCaption:     envOr("FOTOGATE_WATERMARK_CAPTION", "FOTOGATE AUDIT"),
		WatermarkPosition:    envOr("FOTOGATE_WATERMARK_POSITION", "bottom-right"),
		WatermarkJPEGQuality: envIntOr("FOTOGATE_WATERMARK_JPEG_QUALITY", 95),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
