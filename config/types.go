package config

import "time"

// ContentSource selects where option lists come from
type ContentSource string

const (
	SourceCMS      ContentSource = "cms"
	SourceDatabase ContentSource = "database"
)

// Config is the top-level service configuration, corresponding to config.yaml
type Config struct {
	Env      string         `yaml:"env" koanf:"env"`
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	CMS      CMSConfig      `yaml:"cms" koanf:"cms"`
	Content  ContentConfig  `yaml:"content" koanf:"content"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Textures TexturesConfig `yaml:"textures" koanf:"textures"`
	Drive    DriveConfig    `yaml:"drive" koanf:"drive"`
	Snapshot SnapshotConfig `yaml:"snapshot" koanf:"snapshot"`
	Sessions SessionsConfig `yaml:"sessions" koanf:"sessions"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Port            string `yaml:"port" koanf:"port"`
	BaseURL         string `yaml:"base_url" koanf:"base_url"` // used by headless Chrome to reach the page
	StaticDir       string `yaml:"static_dir" koanf:"static_dir"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// CMSConfig holds the headless CMS (Prismic) settings
type CMSConfig struct {
	Repository   string        `yaml:"repository" koanf:"repository"`
	APIURL       string        `yaml:"api_url" koanf:"api_url"` // overrides https://{repository}.cdn.prismic.io/api/v2
	AccessToken  string        `yaml:"access_token" koanf:"access_token"`
	DocumentType string        `yaml:"document_type" koanf:"document_type"`
	Timeout      time.Duration `yaml:"timeout" koanf:"timeout"`
}

// ContentConfig selects the content provider
type ContentConfig struct {
	Source ContentSource `yaml:"source" koanf:"source"`
}

// DatabaseConfig holds the Postgres connection string
// Empty URL disables the CMS mirror
type DatabaseConfig struct {
	URL string `yaml:"url" koanf:"url"`
}

// TexturesConfig controls the texture proxy
type TexturesConfig struct {
	Proxy        bool     `yaml:"proxy" koanf:"proxy"`
	CacheDir     string   `yaml:"cache_dir" koanf:"cache_dir"`
	AllowedHosts []string `yaml:"allowed_hosts" koanf:"allowed_hosts"`
	WarmupLimit  int      `yaml:"warmup_limit" koanf:"warmup_limit"`
}

// DriveConfig enables drive:// texture references
type DriveConfig struct {
	CredentialsFile string `yaml:"credentials_file" koanf:"credentials_file"`
}

// SnapshotConfig controls headless Chrome snapshots
type SnapshotConfig struct {
	Enabled    bool          `yaml:"enabled" koanf:"enabled"`
	ChromePath string        `yaml:"chrome_path" koanf:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout" koanf:"timeout"`
	Width      int64         `yaml:"width" koanf:"width"`
	Height     int64         `yaml:"height" koanf:"height"`
	CacheTTL   time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
}

// SessionsConfig controls customizer session lifetime
type SessionsConfig struct {
	TTL time.Duration `yaml:"ttl" koanf:"ttl"`
}

// LogConfig controls zerolog output
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Pretty bool   `yaml:"pretty" koanf:"pretty"`
}
