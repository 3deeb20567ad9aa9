package generation

import (
	"encoding/json"

	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/pkg/errors"
)

// GeneratorConfig describes the configuration options used to generate contract bindings.
type GeneratorConfig struct {
	// Platform references an identifier indicating which generator platform to use.
	// PlatformConfig is a structure dependent on the defined Platform.
	Platform string `json:"platform"`

	// PlatformConfig describes the Platform-specific configuration needed to generate bindings.
	PlatformConfig *json.RawMessage `json:"platformConfig"`
}

// NewGeneratorConfig returns a GeneratorConfig with default values for a given platform identifier.
// If an error occurs, it is returned instead.
func NewGeneratorConfig(platform string) (*GeneratorConfig, error) {
	// Verify the platform is valid
	if !IsSupportedGeneratorPlatform(platform) {
		return nil, errors.Errorf("could not get default generator configs: platform '%s' is unsupported", platform)
	}

	platformConfig := GetDefaultPlatformConfig(platform)
	return NewGeneratorConfigFromPlatformConfig(platformConfig)
}

// NewGeneratorConfigFromPlatformConfig takes a platforms.GeneratorConfig and wraps it in a generic GeneratorConfig, so
// that every platform config type can be serialized and deserialized to its appropriate type.
func NewGeneratorConfigFromPlatformConfig(platformConfig platforms.GeneratorConfig) (*GeneratorConfig, error) {
	b, err := json.Marshal(platformConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	platformConfigMsg := (*json.RawMessage)(&b)

	return &GeneratorConfig{Platform: platformConfig.Platform(), PlatformConfig: platformConfigMsg}, nil
}

// GetPlatformConfig deserializes the inner platforms.GeneratorConfig. Fields missing from the raw config keep the
// platform's default values.
func (c *GeneratorConfig) GetPlatformConfig() (platforms.GeneratorConfig, error) {
	// Verify the platform is valid
	if !IsSupportedGeneratorPlatform(c.Platform) {
		return nil, errors.Errorf("could not read generator configs: platform '%s' is unsupported", c.Platform)
	}

	// json.Unmarshal needs a concrete structure to populate, so we start from the platform defaults
	platformConfig := GetDefaultPlatformConfig(c.Platform)
	if c.PlatformConfig != nil {
		if err := json.Unmarshal(*c.PlatformConfig, platformConfig); err != nil {
			return nil, errors.Wrapf(err, "could not parse '%s' platform config", c.Platform)
		}
	}
	return platformConfig, nil
}

// SetPlatformConfig replaces the inner platform config, updating the platform identifier to match.
func (c *GeneratorConfig) SetPlatformConfig(platformConfig platforms.GeneratorConfig) error {
	updated, err := NewGeneratorConfigFromPlatformConfig(platformConfig)
	if err != nil {
		return err
	}
	*c = *updated
	return nil
}
