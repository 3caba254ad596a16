package config

import "os"

// EnvOr reads an environment variable with a fallback. Used as the
// default source for CLI flags.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
