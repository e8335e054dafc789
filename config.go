package countryset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// configValidate is the validator instance for Config.
var configValidate = validator.New()

// Config is the deploy-time configuration of a catalog.
//
// Example YAML:
//
//	chunk_width: 64
//	extension: [XK, null, null, null, null, null, null]
//
// A null or "" extension entry reserves a slot.
type Config struct {
	// ChunkWidth is the number of bits per chunk; 0 selects the default.
	ChunkWidth int `yaml:"chunk_width" validate:"gte=0,lte=64"`

	// Extension is appended to the base codes. Nil and "" entries are reserved slots.
	Extension []*string `yaml:"extension" validate:"dive,omitempty,len=0|alphanum"`
}

// Validate checks the struct constraints of the config. Length reconciliation
// against the base list happens when the catalog is built.
func (c Config) Validate() error {
	return configValidate.Struct(c)
}

// ExtensionCodes returns the extension with reserved slots as "".
func (c Config) ExtensionCodes() []string {
	if c.Extension == nil {
		return nil
	}
	out := make([]string, len(c.Extension))
	for i, code := range c.Extension {
		if code != nil {
			out[i] = *code
		}
	}
	return out
}

// LoadConfig decodes and validates a YAML config. Unknown keys are rejected.
// An empty document yields the zero Config.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, translateError(err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from path.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadConfig(bytes.NewReader(data))
}
