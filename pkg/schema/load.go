package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath guesses the format from the file extension. Unknown
// extensions default to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parse decodes and validates a definition document.
func Parse(data []byte, format Format) (Definition, error) {
	raw := make(map[string]any)

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return Definition{}, fmt.Errorf("failed to parse json definition: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Definition{}, fmt.Errorf("failed to parse toml definition: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Definition{}, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	default:
		return Definition{}, fmt.Errorf("unsupported definition format: %q", format)
	}

	def, err := Decode(raw)
	if err != nil {
		return Definition{}, err
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Load reads a definition file. When the document has no name, the file name
// without its extension is used.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}

	def, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// LoadDir loads every .yaml, .yml, .json and .toml file in dir, sorted by name.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json", ".toml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	defs := make([]Definition, 0, len(paths))
	for _, p := range paths {
		def, err := Load(p)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Marshal encodes a definition in the given format.
func Marshal(def Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(def); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return yaml.Marshal(def)
	}
}
