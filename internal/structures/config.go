package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type StorageConfig struct {
	DBPath string `yaml:"dbPath" validate:"required|unixPath"`
}

type BackupConfig struct {
	Dir      string        `yaml:"dir" validate:"required|unixPath"`
	Retain   int           `yaml:"retain" validate:"required|min:1"`
	Interval time.Duration `yaml:"interval"`
	Compress bool          `yaml:"compress"`
}

type UploadConfig struct {
	Dir         string `yaml:"dir" validate:"required|unixPath"`
	MaxFileSize int64  `yaml:"maxFileSize"`
	MaxWidth    int    `yaml:"maxWidth"`
	ThumbSize   int    `yaml:"thumbSize"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
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
	Backup    BackupConfig  `yaml:"backup"`
	Upload    UploadConfig  `yaml:"upload"`
	Logger    LoggerConfig  `yaml:"logger"`
	Cache     CacheConfig   `yaml:"cache"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
