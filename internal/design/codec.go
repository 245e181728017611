package design

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

func (f Format) Ext() string {
	if f == YAML {
		return ".yaml"
	}
	return "." + string(f)
}

// Decode reads a design and validates it. Missing names, IDs and defaults are
// filled in as on import.
func Decode(r io.Reader, f Format) (Design, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Design{}, fmt.Errorf("read design: %w", err)
	}
	d := Design{}
	switch f {
	case JSON:
		err = json.Unmarshal(data, &d)
	case YAML:
		err = yaml.Unmarshal(data, &d)
	case TOML:
		err = toml.Unmarshal(data, &d)
	default:
		return Design{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return Design{}, fmt.Errorf("parse %s design: %w", f, err)
	}
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return Design{}, err
	}
	return d, nil
}

func Encode(w io.Writer, d Design, f Format) error {
	var buf bytes.Buffer
	switch f {
	case JSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return err
		}
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	case TOML:
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Load reads a design file, choosing the format by extension.
func Load(path string) (Design, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Design{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return Design{}, err
	}
	defer file.Close()
	return Decode(file, f)
}

func Save(path string, d Design) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, d, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
