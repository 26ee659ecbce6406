package config

import (
	"testing"
	"time"
)

// clearEnv resets every variable Load reads so tests see pure defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY", "SWAGGER_ENABLED",
		"API_BASE_PATH", "DB_PATH",
		"GEMINI_API_KEY", "GEMINI_VISION_MODEL", "GEMINI_STYLIST_MODEL", "GEMINI_MAX_OUTPUT_TOKENS",
		"S3_BUCKET", "AWS_REGION", "S3_KEY_PREFIX", "S3_PUBLIC_BASE_URL", "MAX_UPLOAD_BYTES",
		"RATE_RPS", "RATE_BURST", "CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "HSTS_MAX_AGE",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("mode/level = %q/%q", cfg.GinMode, cfg.LogLevel)
	}
	if cfg.DBPath != "wardrobe.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.APIBasePath != "/" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.Gemini.VisionModel != "gemini-1.5-flash" || cfg.Gemini.MaxOutputTokens != 500 {
		t.Fatalf("gemini defaults: %+v", cfg.Gemini)
	}
	if cfg.Storage.KeyPrefix != "wardrobe" || cfg.Storage.MaxUploadBytes != 10<<20 {
		t.Fatalf("storage defaults: %+v", cfg.Storage)
	}
	if cfg.RateRPS != 0 || cfg.RateBurst != 10 {
		t.Fatalf("rate defaults: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.WriteTimeout != 60*time.Second {
		t.Fatalf("WriteTimeout = %v", cfg.WriteTimeout)
	}
	if cfg.OTEL.Enabled || cfg.OTEL.SampleRatio != 1.0 {
		t.Fatalf("otel defaults: %+v", cfg.OTEL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "warning") // normalized to warn
	t.Setenv("GIN_MODE", "bogus")    // coerced to release
	t.Setenv("API_BASE_PATH", "api/v1/")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MAX_OUTPUT_TOKENS", "750")
	t.Setenv("S3_KEY_PREFIX", "/photos/")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/")
	t.Setenv("RATE_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q", cfg.GinMode)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.Gemini.MaxOutputTokens != 750 {
		t.Fatalf("MaxOutputTokens = %d", cfg.Gemini.MaxOutputTokens)
	}
	if cfg.Storage.KeyPrefix != "photos" {
		t.Fatalf("KeyPrefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Storage.PublicBaseURL != "https://cdn.example.com" {
		t.Fatalf("PublicBaseURL = %q", cfg.Storage.PublicBaseURL)
	}
	if cfg.RateRPS != 2.5 {
		t.Fatalf("RateRPS = %v", cfg.RateRPS)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"negative rate", "RATE_RPS", "-1"},
		{"zero burst", "RATE_BURST", "0"},
		{"bad sample ratio", "OTEL_TRACES_SAMPLER_ARG", "2"},
		{"zero max tokens", "GEMINI_MAX_OUTPUT_TOKENS", "-5"},
		{"zero upload cap", "MAX_UPLOAD_BYTES", "-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "/",
		"/":       "/",
		"api":     "/api",
		"/api/":   "/api",
		"/api/v1": "/api/v1",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetbool(t *testing.T) {
	t.Setenv("X_BOOL", "YES")
	if !getbool("X_BOOL", false) {
		t.Fatalf("YES should be true")
	}
	t.Setenv("X_BOOL", "off")
	if getbool("X_BOOL", true) {
		t.Fatalf("off should be false")
	}
	t.Setenv("X_BOOL", "banana")
	if !getbool("X_BOOL", true) {
		t.Fatalf("unparsable should keep default")
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "nope")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = MustLoad()
}
