// Package config loads the xgserver YAML configuration and the embedded
// locale files.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/OliveiraNt/xgserver/internal/core"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when neither the request nor the config names one.
const DefaultLanguage = "en"

// ServerConfig holds HTTP listener and content directory settings.
type ServerConfig struct {
	Port         string        `yaml:"port" json:"port"`
	PublicDir    string        `yaml:"public_html" json:"public_html"`
	PrivateDir   string        `yaml:"private_html" json:"private_html"`
	StaticMaxAge time.Duration `yaml:"static_max_age" json:"static_max_age"`
}

// LangConfig lists the languages the server answers in.
type LangConfig struct {
	Default    string   `yaml:"default" json:"default"`
	Availables []string `yaml:"availables" json:"availables"`
}

// FileConfig is the on-disk configuration. Tree keeps the raw document so
// templates can reach arbitrary keys through {[@conf:...]}.
type FileConfig struct {
	Server ServerConfig   `yaml:"server" json:"server"`
	Lang   LangConfig     `yaml:"lang" json:"lang"`
	Tree   map[string]any `yaml:"-" json:"-"`
}

// Default returns the configuration used when no file provides a value.
func Default() FileConfig {
	return FileConfig{
		Server: ServerConfig{
			Port:         "8080",
			PublicDir:    "./public_html",
			PrivateDir:   "./private_html",
			StaticMaxAge: 7 * 24 * time.Hour,
		},
		Lang: LangConfig{
			Default:    DefaultLanguage,
			Availables: []string{"en", "ru"},
		},
		Tree: map[string]any{},
	}
}

// ReadConfig reads path on top of Default.
func ReadConfig(path string) (FileConfig, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return ParseConfig(b)
}

// ParseConfig decodes a YAML document on top of Default.
func ParseConfig(b []byte) (FileConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return cfg, fmt.Errorf("decode config tree: %w", err)
	}
	if tree != nil {
		cfg.Tree = tree
	}
	cfg.Server.Port = strings.TrimSpace(cfg.Server.Port)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// WriteConfig persists cfg as YAML.
func WriteConfig(path string, cfg FileConfig) error {
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports settings the server cannot start with.
func (c FileConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	if c.Server.StaticMaxAge < 0 {
		return fmt.Errorf("invalid server.static_max_age %s", c.Server.StaticMaxAge)
	}
	return nil
}

// Lookup resolves a slash separated path against the raw configuration.
func (c FileConfig) Lookup(path string) (any, bool) {
	return core.Binds(c.Tree).Get(path)
}

// IsAvailable reports whether lang is one of the configured languages.
func (l LangConfig) IsAvailable(lang string) bool {
	return lang != "" && slices.Contains(l.Availables, lang)
}

// DefaultLanguage returns the configured default, falling back to the first
// available language and finally to DefaultLanguage.
func (l LangConfig) DefaultLanguage() string {
	if l.IsAvailable(l.Default) {
		return l.Default
	}
	if len(l.Availables) > 0 && l.Availables[0] != "" {
		return l.Availables[0]
	}
	return DefaultLanguage
}

// Select returns lang when it is available and the default otherwise.
func (l LangConfig) Select(lang string) string {
	if l.IsAvailable(lang) {
		return lang
	}
	return l.DefaultLanguage()
}
