// Package config loads toastkit.yaml or toastkit.toml and keeps a scheduler
// in sync with it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/toastkit/pkg/toast"
)

// File names looked up by Find, in order.
const (
	YAMLFile = "toastkit.yaml"
	TOMLFile = "toastkit.toml"
)

// Config represents the optional toastkit configuration file.
type Config struct {
	App    AppConfig    `yaml:"app" koanf:"app"`
	Toasts toast.Config `yaml:"toasts" koanf:"toasts"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty" koanf:"name"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string
	File       string
	ModulePath string
	AppName    string
	Toasts     toast.Config
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Toasts: toast.DefaultConfig()}
}

// Find returns the path of the configuration file in dir, or "" if there
// is none. YAML wins over TOML.
func Find(dir string) string {
	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a configuration file. The format follows the extension; keys
// missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	case ".toml":
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Toasts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// LoadOptional loads the configuration file in dir if there is one. The
// returned path is empty when defaults were used.
func LoadOptional(dir string) (*Config, string, error) {
	path := Find(dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Resolve loads the configuration in dir (if present) and resolves
// defaults. A go.mod in dir supplies the default app name.
func Resolve(dir string) (*Resolved, error) {
	cfg, path, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	modulePath, err := modulePath(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	return &Resolved{
		Root:       dir,
		File:       path,
		ModulePath: modulePath,
		AppName:    appName,
		Toasts:     cfg.Toasts,
	}, nil
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if prefix, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "toastkit"
	}
	return base
}
