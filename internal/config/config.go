package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LexiconConfig selects the lexicons loaded at startup.
type LexiconConfig struct {
	// Dir overrides the embedded lexicon sources when set; it must hold
	// <language>-lexicon.xml files.
	Dir                     string `yaml:"dir"                       env:"LEXICON_DIR"`
	Languages               string `yaml:"languages"                 env:"LEXICON_LANGUAGES"                 env-default:"english,french"`
	RandomDefaultInflection bool   `yaml:"random_default_inflection" env:"LEXICON_RANDOM_DEFAULT_INFLECTION" env-default:"false"`
}

// LanguageList returns the configured languages, trimmed, without empties.
func (l LexiconConfig) LanguageList() []string {
	return splitList(l.Languages)
}

// StoreConfig holds the ad-hoc word store settings. An empty path disables
// persistence.
type StoreConfig struct {
	Path string `yaml:"path" env:"STORE_PATH"`
}

// Enabled reports whether ad-hoc words are persisted.
func (s StoreConfig) Enabled() bool { return s.Path != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins returns AllowedOrigins as a list.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods returns AllowedMethods as a list.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers returns AllowedHeaders as a list.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
