package config

import (
	_ "embed"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Photo  PhotoConfig
	Tags   TagsConfig
	Output OutputConfig
	Web    WebConfig
}

type PhotoConfig struct {
	Extensions []string `yaml:"extensions"`
}

// IsImage reports whether a file extension (with leading dot, any case)
// belongs to a photograph.
func (c *PhotoConfig) IsImage(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

type TagsConfig struct {
	Sentinel     string `yaml:"sentinel"`
	PersonPrefix string `yaml:"person_prefix"`
}

type OutputConfig struct {
	ReservedDir string `yaml:"reserved_dir"`
}

type WebConfig struct {
	Host string
	Port int
}

type defaults struct {
	Photo  PhotoConfig  `yaml:"photo"`
	Tags   TagsConfig   `yaml:"tags"`
	Output OutputConfig `yaml:"output"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var d defaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Photo:  d.Photo,
		Tags:   d.Tags,
		Output: d.Output,
		Web: WebConfig{
			Host: envString("WEB_HOST", "127.0.0.1"),
			Port: envInt("WEB_PORT", 8080),
		},
	}
}
