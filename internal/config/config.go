package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const rawBaseName = "eu_life_expectancy_raw"

type Config struct {
	DataDir   string `yaml:"data_dir"`
	OutputDir string `yaml:"output_dir"`
	DBPath    string `yaml:"db_path"`

	DefaultRegion string `yaml:"default_region"`
	DefaultFormat string `yaml:"default_format"`
	OutputFormat  string `yaml:"output_format"`

	HistoryLimit int `yaml:"history_limit"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	file := Config{
		DataDir:       filepath.Join(cwd, "data"),
		OutputDir:     filepath.Join(cwd, "data"),
		DBPath:        filepath.Join(cwd, "data", "lifeexp.db"),
		DefaultRegion: "PT",
		DefaultFormat: "tsv",
		OutputFormat:  "csv",
		HistoryLimit:  20,
		LogLevel:      "info",
		LogFormat:     "text",
	}
	if path := getEnv("LIFEEXP_CONFIG", ""); path != "" {
		if err := readFile(path, &file); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		DataDir:   getEnv("LIFEEXP_DATA_DIR", file.DataDir),
		OutputDir: getEnv("LIFEEXP_OUTPUT_DIR", file.OutputDir),
		DBPath:    getEnv("LIFEEXP_DB_PATH", file.DBPath),

		DefaultRegion: getEnv("LIFEEXP_DEFAULT_REGION", file.DefaultRegion),
		DefaultFormat: getEnv("LIFEEXP_DEFAULT_FORMAT", file.DefaultFormat),
		OutputFormat:  getEnv("LIFEEXP_OUTPUT_FORMAT", file.OutputFormat),

		HistoryLimit: getEnvInt("LIFEEXP_HISTORY_LIMIT", file.HistoryLimit),

		LogLevel:  getEnv("LOG_LEVEL", file.LogLevel),
		LogFormat: getEnv("LOG_FORMAT", file.LogFormat),
	}

	return cfg, nil
}

// readFile overlays the keys present in a YAML file onto cfg.
func readFile(path string, cfg *Config) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(blob, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// RawPath is the default location of the raw feed for a source format.
func (c Config) RawPath(format string) string {
	return filepath.Join(c.DataDir, rawBaseName+"."+strings.ToLower(format))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
