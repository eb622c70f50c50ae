package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	DataDir     string `yaml:"dataDir" validate:"required|unixPath"`
	KeepBackups bool   `yaml:"keepBackups"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AuthConfig struct {
	SigningKey  string        `yaml:"signingKey" validate:"required|minLen:16"`
	Issuer      string        `yaml:"issuer" validate:"required"`
	TokenExpiry time.Duration `yaml:"tokenExpiry" validate:"required|min:1"`
}

type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Auth      AuthConfig    `yaml:"auth"`
	Archive   ArchiveConfig `yaml:"archive"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
