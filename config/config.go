package config

import (
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/flarenetwork/bindgen/generation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// networkRegex matches network identifiers. Networks name output directories, TypeScript namespaces and Go packages,
// so they must be valid identifiers in each.
var networkRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ProjectConfig describes the configuration of a binding generation project.
type ProjectConfig struct {
	// Artifacts describes where contract artifacts are read from.
	Artifacts ArtifactsConfig `json:"artifacts"`

	// Output describes where and how generated files are written.
	Output OutputConfig `json:"output"`

	// Generator describes the generator platform used to produce bindings.
	Generator *generation.GeneratorConfig `json:"generator"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// ArtifactsConfig describes where contract artifacts are read from.
type ArtifactsConfig struct {
	// BundleDirectory is the root of the artifact bundle, containing one directory per network.
	BundleDirectory string `json:"bundleDirectory"`

	// Networks lists the networks to process, in order.
	Networks []string `json:"networks"`

	// ArtifactsSubdirectory is the directory beneath each network directory that is walked for artifacts.
	ArtifactsSubdirectory string `json:"artifactsSubdirectory"`

	// FileExtension is the file name suffix of candidate artifact files.
	FileExtension string `json:"fileExtension"`

	// ValidateABI describes whether extracted ABIs are parsed before generation. Artifacts with ABIs that fail to
	// parse are reported as malformed.
	ValidateABI bool `json:"validateAbi"`
}

// OutputConfig describes where and how generated files are written.
type OutputConfig struct {
	// Directory is the directory beneath which one directory per network is written.
	Directory string `json:"directory"`

	// IndexFileName is the name of index files, without extension.
	IndexFileName string `json:"indexFileName"`

	// DuplicatePolicy describes how contracts sharing a name within a network are handled.
	DuplicatePolicy string `json:"duplicatePolicy"`

	// FailOnError describes whether a run with failed items exits with a failure exit code.
	FailOnError bool `json:"failOnError"`

	// SingleNetwork is the network generated by single-network mode.
	SingleNetwork string `json:"singleNetwork"`

	// SingleOutputPath is the file written by single-network mode. If empty, "generated" with the generator's
	// source extension is used.
	SingleOutputPath string `json:"singleOutputPath"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level"`

	// NoColor describes whether console output is printed without colors.
	NoColor bool `json:"noColor"`

	// LogDirectory describes what directory structured log files are written to. If empty, no log file is written.
	LogDirectory string `json:"logDirectory"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path. Fields missing from the
// file keep their default values.
func ReadProjectConfigFromFile(path string, platform string) (*ProjectConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	projectConfig, err := GetDefaultProjectConfig(platform)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse project config %s", path)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
func (p *ProjectConfig) WriteToFile(path string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// GetSingleOutputPath returns the file written by single-network mode for a generator emitting the given extension.
func (o *OutputConfig) GetSingleOutputPath(extension string) string {
	if o.SingleOutputPath != "" {
		return o.SingleOutputPath
	}
	return "generated" + extension
}

// Validate validates that the ProjectConfig meets certain requirements.
func (p *ProjectConfig) Validate() error {
	// Verify the artifact inputs
	if p.Artifacts.BundleDirectory == "" {
		return errors.Errorf("artifact bundle directory must be set")
	}
	if len(p.Artifacts.Networks) == 0 {
		return errors.Errorf("at least one network must be specified")
	}
	for i, network := range p.Artifacts.Networks {
		if !networkRegex.MatchString(network) {
			return errors.Errorf("network '%s' is not a valid identifier", network)
		}
		if slices.Contains(p.Artifacts.Networks[:i], network) {
			return errors.Errorf("network '%s' is specified more than once", network)
		}
	}
	if p.Artifacts.FileExtension == "" {
		return errors.Errorf("artifact file extension must be set")
	}

	// Verify the outputs
	if p.Output.Directory == "" {
		return errors.Errorf("output directory must be set")
	}
	if p.Output.IndexFileName == "" || strings.ContainsAny(p.Output.IndexFileName, `/\`) {
		return errors.Errorf("index file name '%s' must be a plain file name", p.Output.IndexFileName)
	}
	if !slices.Contains(generation.SupportedDuplicatePolicies, p.Output.DuplicatePolicy) {
		return errors.Errorf("duplicate policy '%s' is unsupported, expected one of %v",
			p.Output.DuplicatePolicy, generation.SupportedDuplicatePolicies)
	}
	if !networkRegex.MatchString(p.Output.SingleNetwork) {
		return errors.Errorf("single network '%s' is not a valid identifier", p.Output.SingleNetwork)
	}

	// Verify the generator
	if p.Generator == nil {
		return errors.Errorf("a generator must be configured")
	}
	platformConfig, err := p.Generator.GetPlatformConfig()
	if err != nil {
		return err
	}
	return platformConfig.Validate()
}
