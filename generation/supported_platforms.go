package generation

import (
	"fmt"

	"github.com/flarenetwork/bindgen/generation/platforms"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// defaultPlatformConfigGenerator is a mapping of platform identifier to generator functions which can be used to create
// a default configuration for the given platform. Each platform which provides a generator in this mapping will be
// considered a supported generator platform for a GeneratorConfig. Items are populated in the init method.
var defaultPlatformConfigGenerator map[string]func() platforms.GeneratorConfig

// init populates defaultPlatformConfigGenerator with the supported platforms.
func init() {
	generators := []func() platforms.GeneratorConfig{
		func() platforms.GeneratorConfig { return platforms.NewWagmiGeneratorConfig() },
		func() platforms.GeneratorConfig { return platforms.NewAbigenGeneratorConfig("") },
	}

	defaultPlatformConfigGenerator = make(map[string]func() platforms.GeneratorConfig)
	for _, generator := range generators {
		platformId := generator().Platform()

		// Each platform should have a unique identifier.
		if _, platformIdExists := defaultPlatformConfigGenerator[platformId]; platformIdExists {
			panic(fmt.Errorf("the generator platform '%s' is registered with more than one provider", platformId))
		}
		defaultPlatformConfigGenerator[platformId] = generator
	}
}

// GetSupportedGeneratorPlatforms obtains a sorted list of the platform identifiers supported by this package.
func GetSupportedGeneratorPlatforms() []string {
	keys := maps.Keys(defaultPlatformConfigGenerator)
	slices.Sort(keys)
	return keys
}

// IsSupportedGeneratorPlatform returns a boolean status indicating if a platform identifier is supported within this
// package.
func IsSupportedGeneratorPlatform(platform string) bool {
	_, ok := defaultPlatformConfigGenerator[platform]
	return ok
}

// GetDefaultPlatformConfig obtains a GeneratorConfig from the default generator for the provided platform.
func GetDefaultPlatformConfig(platform string) platforms.GeneratorConfig {
	return defaultPlatformConfigGenerator[platform]()
}
