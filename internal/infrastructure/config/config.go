package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// BaseURL is used for share links when the inbound request's
	// scheme/host cannot be trusted (e.g. behind a proxy). Empty means
	// derive from the request.
	BaseURL string `yaml:"base_url"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Database string `yaml:"database"`
}

type StorageConfig struct {
	// Backend selects the blob store: "local" or "s3".
	Backend     string `yaml:"backend"`
	LocalDir    string `yaml:"local_dir"`
	S3Bucket    string `yaml:"s3_bucket"`
	S3Region    string `yaml:"s3_region"`
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`
}

type SecurityConfig struct {
	// JWTSecret verifies inbound bearer tokens. Token issuance is an
	// external concern.
	JWTSecret    string `yaml:"jwt_secret"`
	CasbinModel  string `yaml:"casbin_model"`
	CasbinPolicy string `yaml:"casbin_policy"`
}

type ApplicationConfig struct {
	Version string `yaml:"version"`
}

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Storage     StorageConfig     `yaml:"storage"`
	Security    SecurityConfig    `yaml:"security"`
	Application ApplicationConfig `yaml:"application"`
}

// Default returns a config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Database: "data/filevault.db",
		},
		Storage: StorageConfig{
			Backend:  "local",
			LocalDir: "data/blobs",
		},
		Security: SecurityConfig{
			CasbinModel:  "configs/casbin_model.conf",
			CasbinPolicy: "configs/casbin_policy.csv",
		},
		Application: ApplicationConfig{
			Version: "v1.0.0",
		},
	}
}

// Load reads configs/app.yaml when present, then applies environment
// overrides. Missing file falls back to defaults.
func Load() *Config {
	cfg := Default()
	path := filepath.Join("configs", "app.yaml")
	if b, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(b, cfg)
	}

	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		cfg.Storage.LocalDir = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		cfg.Storage.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.Storage.S3Region = v
	}
	if v := os.Getenv("S3_ENDPOINT"); v != "" {
		cfg.Storage.S3Endpoint = v
	}
	if v := os.Getenv("S3_ACCESS_KEY"); v != "" {
		cfg.Storage.S3AccessKey = v
	}
	if v := os.Getenv("S3_SECRET_KEY"); v != "" {
		cfg.Storage.S3SecretKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Security.JWTSecret = v
	}
	return cfg
}
