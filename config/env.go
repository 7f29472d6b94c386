package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvSize     = "FOCUS_SIZE"
	EnvBorder   = "FOCUS_BORDER"
	EnvHistory  = "FOCUS_HISTORY"
	EnvTickMS   = "FOCUS_TICK_MS"
	EnvBackend  = "FOCUS_BACKEND"
	EnvChart    = "FOCUS_CHART"
	EnvHeadless = "FOCUS_HEADLESS"
	EnvDebug    = "FOCUS_DEBUG"
	EnvLogLevel = "FOCUS_LOG_LEVEL"
)

// LoadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FOCUS_* variables looked up through getenv.
// Malformed numbers and booleans are reported and leave the field unchanged.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	var errs []error
	setInt := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
	setBool := func(key string, dst *bool) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = b
	}
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt(EnvSize, &c.Size)
	setInt(EnvBorder, &c.Border)
	setInt(EnvHistory, &c.HistoryLength)
	setInt(EnvTickMS, &c.TickDelayMS)
	setString(EnvBackend, &c.Backend)
	setString(EnvChart, &c.Chart)
	setBool(EnvHeadless, &c.Headless)
	setBool(EnvDebug, &c.Debug)
	setString(EnvLogLevel, &c.LogLevel)
	_ = c.Validate()
	return errors.Join(errs...)
}
