package config

import (
	"fmt"
	"os"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if len(c.Lexicon.LanguageList()) == 0 {
		return fmt.Errorf("lexicon.languages must name at least one language")
	}
	if c.Lexicon.Dir != "" {
		info, err := os.Stat(c.Lexicon.Dir)
		if err != nil {
			return fmt.Errorf("lexicon.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("lexicon.dir %s is not a directory", c.Lexicon.Dir)
		}
	}

	if !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}
	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must be >= 0 (got %d)", c.CORS.MaxAge)
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(v), a) {
			return true
		}
	}
	return false
}
