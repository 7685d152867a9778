package config

import "time"

// Default returns the configuration used when no file or env override is present
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:      "8080",
			BaseURL:   "http://localhost:8080",
			StaticDir: "static",
		},
		CMS: CMSConfig{
			DocumentType: "board_customizer",
			Timeout:      10 * time.Second,
		},
		Content: ContentConfig{Source: SourceCMS},
		Textures: TexturesConfig{
			CacheDir:     "cache/textures",
			AllowedHosts: []string{"images.prismic.io"},
			WarmupLimit:  4,
		},
		Snapshot: SnapshotConfig{
			Enabled:  true,
			Timeout:  30 * time.Second,
			Width:    1200,
			Height:   630,
			CacheTTL: 10 * time.Minute,
		},
		Sessions: SessionsConfig{TTL: 30 * time.Minute},
		Log:      LogConfig{Level: "info", Pretty: true},
	}
}
