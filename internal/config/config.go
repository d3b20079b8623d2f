// Package config manages the per-project yamlembed configuration file
// (yamlembed.toml, or yamlembed.yaml for projects that prefer YAML).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yamlembed/yamlembed/internal/render"
)

var (
	// ErrNotFound is returned when an explicitly named config file is missing.
	ErrNotFound = errors.New("config file not found")
	// ErrInvalid is returned by Validate and for undecodable config files.
	ErrInvalid = errors.New("invalid config")
)

// FileNames lists the config files searched for, in order.
var FileNames = []string{"yamlembed.toml", "yamlembed.yaml", "yamlembed.yml"}

// Config holds everything needed for one embed run.
type Config struct {
	Input             string    `toml:"input" yaml:"input"`
	Output            string    `toml:"output" yaml:"output"`
	Identifier        string    `toml:"identifier" yaml:"identifier"`
	Language          string    `toml:"language" yaml:"language"`
	Package           string    `toml:"package,omitempty" yaml:"package,omitempty"`
	EscapeBackslashes bool      `toml:"escape_backslashes" yaml:"escape_backslashes"`
	Log               LogConfig `toml:"log" yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns the settings used when no config file exists. They
// reproduce the historical lots.yaml -> src/lots.h generator.
func Default() Config {
	return Config{
		Input:      "lots.yaml",
		Output:     "src/lots.h",
		Identifier: "LOTS_YAML",
		Language:   render.DefaultLanguage,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Locate returns the first config file present in dir, or "" if none is.
func Locate(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads the config file at path over the defaults. Keys that do not
// map to a Config field are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config: %w: %s", ErrNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("config: %w: %s: %v", ErrInvalid, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, fmt.Errorf("config: %w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("config: %w: %s: %v", ErrInvalid, path, err)
		}
	default:
		return cfg, fmt.Errorf("config: %w: unsupported file extension %q", ErrInvalid, ext)
	}
	return cfg, nil
}

// LoadDir loads the first config file found in dir. Without one it returns
// the defaults and an empty path.
func LoadDir(dir string) (Config, string, error) {
	path := Locate(dir)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Save writes cfg to path, choosing the encoding from the extension.
func Save(path string, cfg Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("config: encode %s: %w", path, err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("config: write %s: %w", path, err)
		}
		return nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("config: encode %s: %w", path, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("config: write %s: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("config: %w: unsupported file extension %q", ErrInvalid, ext)
	}
}

// Overrides holds values from command-line flags. Empty strings and nil
// pointers are treated as "not set".
type Overrides struct {
	Input             string
	Output            string
	Identifier        string
	Language          string
	Package           string
	EscapeBackslashes *bool
}

// Apply copies every set override onto cfg.
func (o Overrides) Apply(cfg *Config) {
	if o.Input != "" {
		cfg.Input = o.Input
	}
	if o.Output != "" {
		cfg.Output = o.Output
	}
	if o.Identifier != "" {
		cfg.Identifier = o.Identifier
	}
	if o.Language != "" {
		cfg.Language = o.Language
	}
	if o.Package != "" {
		cfg.Package = o.Package
	}
	if o.EscapeBackslashes != nil {
		cfg.EscapeBackslashes = *o.EscapeBackslashes
	}
}

// Validate checks that cfg describes a runnable embed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("config: %w: input path is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("config: %w: output path is required", ErrInvalid)
	}
	if !render.ValidIdentifier(c.Identifier) {
		return fmt.Errorf("config: %w: identifier %q is not a valid identifier", ErrInvalid, c.Identifier)
	}
	if _, ok := render.Get(c.Language); !ok {
		return fmt.Errorf("config: %w: unknown language %q; valid: %s",
			ErrInvalid, c.Language, strings.Join(render.Languages(), ", "))
	}
	if c.Package != "" && !render.ValidIdentifier(c.Package) {
		return fmt.Errorf("config: %w: package %q is not a valid identifier", ErrInvalid, c.Package)
	}
	return nil
}

// Resolve returns the input and output paths joined onto base when relative.
func (c Config) Resolve(base string) (input, output string) {
	return ResolvePath(base, c.Input), ResolvePath(base, c.Output)
}

// ResolvePath joins p onto base unless p is absolute or base is empty.
func ResolvePath(base, p string) string {
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
