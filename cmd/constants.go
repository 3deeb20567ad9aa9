package cmd

import "github.com/flarenetwork/bindgen/config"

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "bindgen.json"

// DefaultGeneratorPlatform describes the default generator platform to use if one is not provided
const DefaultGeneratorPlatform = config.DefaultPlatform
