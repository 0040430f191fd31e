package boundary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the conventional location of the boundary configuration.
const DefaultPath = ".phase0/boundaries.toml"

// Format is a configuration file encoding.
type Format string

// Supported encodings.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension. Unknown extensions
// are treated as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Decode parses data in the given format. Unknown keys are rejected so a
// misspelled section cannot silently drop rules.
func Decode(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, &ConfigError{Index: -1, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, &ConfigError{Index: -1, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
		}
	}
	return cfg, nil
}

// Encode serializes cfg in the given format.
func Encode(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return toml.Marshal(cfg)
	}
}

// LoadFile reads a configuration file without validating it.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading boundary config: %w", err)
	}
	cfg, err := Decode(data, FormatFor(path))
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Source = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and compiles the configuration at path.
func Load(path string) (*Policy, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := Compile(cfg)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Source = path
		}
		return nil, err
	}
	return p, nil
}

// WriteFile writes cfg to path, creating parent directories as needed.
func WriteFile(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	data, err := Encode(cfg, FormatFor(path))
	if err != nil {
		return fmt.Errorf("encoding boundary config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing boundary config: %w", err)
	}
	return nil
}
