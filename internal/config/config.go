// Package config loads the configuration file of the tincontour command.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"honnef.co/go/contour"
	"honnef.co/go/contour/tinio"
)

// File is the content of a configuration file. Paths are relative to the
// working directory.
type File struct {
	Input    string `toml:"input" yaml:"input"`
	Output   string `toml:"output" yaml:"output"`
	Plot     string `toml:"plot" yaml:"plot"`
	LogLevel string `toml:"log_level" yaml:"log_level"`

	Contour contour.Config `toml:"contour" yaml:"contour"`
	Fields  tinio.Fields   `toml:"fields" yaml:"fields"`
}

// Default returns the configuration used for options a file doesn't set.
func Default() File {
	return File{
		LogLevel: "info",
		Contour:  contour.DefaultConfig(),
		Fields:   tinio.DefaultFields(),
	}
}

// Load reads the configuration file at path, which is decoded as TOML or
// YAML depending on its extension. Options missing from the file keep their
// values from [Default].
func Load(path string) (File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(b)).Decode(&f)
		if err != nil {
			return File{}, fmt.Errorf("%s: %w", path, err)
		}
		if un := md.Undecoded(); len(un) > 0 {
			return File{}, fmt.Errorf("%s: unknown option %q", path, un[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return File{}, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return File{}, fmt.Errorf("%s: unsupported configuration format %q", path, ext)
	}
	return f, nil
}
