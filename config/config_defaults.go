package config

import (
	"github.com/flarenetwork/bindgen/generation"
	"github.com/rs/zerolog"
)

// DefaultPlatform is the generator platform used when none is specified.
const DefaultPlatform = "wagmi"

// GetDefaultProjectConfig obtains a default configuration for a project. It populates a default generator config
// based on the provided platform, or a nil one if an empty string is provided.
func GetDefaultProjectConfig(platform string) (*ProjectConfig, error) {
	var (
		generatorConfig *generation.GeneratorConfig
		err             error
	)
	if platform != "" {
		generatorConfig, err = generation.NewGeneratorConfig(platform)
		if err != nil {
			return nil, err
		}
	}

	projectConfig := &ProjectConfig{
		Artifacts: ArtifactsConfig{
			BundleDirectory:       "node_modules/@flarenetwork/flare-periphery-contract-artifacts",
			Networks:              []string{"flare", "songbird", "coston", "coston2"},
			ArtifactsSubdirectory: "artifacts",
			FileExtension:         ".json",
			ValidateABI:           false,
		},
		Output: OutputConfig{
			Directory:        "contracts",
			IndexFileName:    "index",
			DuplicatePolicy:  generation.DuplicatePolicyFail,
			FailOnError:      false,
			SingleNetwork:    "coston2",
			SingleOutputPath: "",
		},
		Generator: generatorConfig,
		Logging: LoggingConfig{
			Level:        zerolog.InfoLevel,
			NoColor:      false,
			LogDirectory: "",
		},
	}

	return projectConfig, nil
}
