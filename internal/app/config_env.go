package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. It runs after the config file layer so env wins over the file, and
// before explicit flags so flags stay highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("LANGUAGE"); v != "" {
		cfg.LanguageHint = v
	}
	if v := os.Getenv("OUTPUT_FORMAT"); v != "" {
		cfg.Format = v
	}

	if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.CacheMaxAge = d
		}
	}

	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
	setBool(&cfg.CacheStrictPerms, "CACHE_STRICT_PERMS")
	setBool(&cfg.LLMCacheOnly, "LLM_CACHE_ONLY")
	setBool(&cfg.Structured, "STRUCTURED_PROMPT")
}

// setBool overrides dst when envKey holds a recognised truthy or falsey value.
func setBool(dst *bool, envKey string) {
	if v, ok := envBool(envKey); ok {
		*dst = v
	}
}

// envBool parses a boolean environment variable. ok is false when the
// variable is unset or unrecognised.
func envBool(key string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}

// EnvBool reports whether key is set to a truthy value. The CLI uses it for
// flag defaults.
func EnvBool(key string) bool {
	v, _ := envBool(key)
	return v
}
