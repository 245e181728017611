package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"Barnframe/internal/calc/frame"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    string
	AllowOrigin string
	RateLimit   float64
	RateBurst   int
	// StorePath is the SQLite file of the local CLI store.
	StorePath string
	Frame     frame.Settings
}

// Load reads .env when present, then the environment, then the layout
// settings file named by FRAME_SETTINGS.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg := &Config{
		Addr:        getEnv("ADDR", ":8080"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: getEnv("DATABASE_URL", "user=postgres dbname=postgres password=password sslmode=disable"),
		TokenKey:    os.Getenv("TOKEN_KEY"),
		AllowOrigin: getEnv("ALLOW_ORIGIN", "*"),
		RateLimit:   getEnvAsFloat("RATE_LIMIT", 5),
		RateBurst:   getEnvAsInt("RATE_BURST", 10),
		StorePath:   getEnv("FRAMECTL_STORE", defaultStorePath()),
		Frame:       frame.DefaultSettings(),
	}
	if path := os.Getenv("FRAME_SETTINGS"); path != "" {
		s, err := LoadSettings(path)
		if err != nil {
			return nil, err
		}
		cfg.Frame = s
	}
	return cfg, nil
}

// LoadSettings reads layout settings from a TOML, YAML or JSON file. Fields
// left out keep their defaults.
func LoadSettings(path string) (frame.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return frame.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data, filepath.Ext(path))
}

func ParseSettings(data []byte, ext string) (frame.Settings, error) {
	var s frame.Settings
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return frame.Settings{}, fmt.Errorf("unsupported settings format %q", ext)
	}
	if err != nil {
		return frame.Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s.WithDefaults(), nil
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "framectl.db"
	}
	return filepath.Join(dir, "framectl", "designs.db")
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultVal
}
