package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// EnvPrefix prefixes every environment override, e.g. BOARD_CMS__REPOSITORY
const EnvPrefix = "BOARD_"

// LoadEnvFile loads a .env file outside production
// Values in the file override the process environment
func LoadEnvFile(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		log.Debug().Msgf("⚠️  .env file not found at %s, using system environment variables", path)
		return
	}
	log.Info().Msgf("✓ Loaded environment variables from %s", path)
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (BOARD_*)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// BOARD_CMS__ACCESS_TOKEN -> cms.access_token
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Hosting platforms inject PORT without our prefix
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"SERVER__PORT") == "" {
		cfg.Server.Port = port
	}
	cfg.Server.Port = strings.TrimPrefix(cfg.Server.Port, ":")
	if envName := os.Getenv("ENV"); envName != "" && os.Getenv(EnvPrefix+"ENV") == "" {
		cfg.Env = envName
	}

	return cfg, nil
}

// validSources is the set of recognized content sources
var validSources = map[ContentSource]bool{
	SourceCMS:      true,
	SourceDatabase: true,
}

// Validate checks that the configuration contains valid values
func (c *Config) Validate() error {
	if !validSources[c.Content.Source] {
		return fmt.Errorf("invalid content.source %q: must be one of cms, database", c.Content.Source)
	}
	if c.CMS.Repository == "" && c.CMS.APIURL == "" {
		return fmt.Errorf("cms.repository or cms.api_url is required")
	}
	if c.Content.Source == SourceDatabase && c.Database.URL == "" {
		return fmt.Errorf("database.url is required when content.source is database")
	}
	if c.CMS.DocumentType == "" {
		return fmt.Errorf("cms.document_type is required")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("sessions.ttl must be positive")
	}
	if c.Textures.WarmupLimit < 0 {
		return fmt.Errorf("textures.warmup_limit must be non-negative")
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Endpoint returns the CMS API endpoint
func (c CMSConfig) Endpoint() string {
	if c.APIURL != "" {
		return strings.TrimRight(c.APIURL, "/")
	}
	return fmt.Sprintf("https://%s.cdn.prismic.io/api/v2", c.Repository)
}
