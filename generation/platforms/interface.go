package platforms

import (
	"encoding/json"

	"github.com/Masterminds/semver"
)

// GeneratorConfig describes the interface all binding generator platform configs must implement.
type GeneratorConfig interface {
	// Platform returns the identifier of the generator platform.
	Platform() string

	// SourceExtension returns the file extension of the source files the generator emits, including the dot.
	SourceExtension() string

	// Generate invokes the external generator for the job and blocks until it exits. Returns the generator's
	// combined output, which is never forwarded to the parent's standard streams.
	Generate(job Job) ([]byte, error)

	// GetVersion invokes the external generator to obtain its version.
	GetVersion() (*semver.Version, error)

	// GetMinimumVersion returns the minimum generator version required, or an empty string if there is none.
	GetMinimumVersion() string

	// NetworkIndex renders the index file of a network directory, aggregating every module in the provided order.
	NetworkIndex(network string, modules []string) ([]byte, error)

	// RootIndex renders the top-level index file, aggregating each network's index under a namespace named after
	// the network.
	RootIndex(networks []string) ([]byte, error)

	// Validate returns an error if the platform config cannot be used.
	Validate() error
}

// Job describes a single invocation of the external generator.
type Job struct {
	// OutputPath is the path of the file the generator should write.
	OutputPath string

	// Package is the namespace of the generated code. Generators that have no notion of packages ignore it.
	Package string

	// Contracts lists the contracts to generate bindings for.
	Contracts []JobContract
}

// JobContract describes one contract handed to the external generator.
type JobContract struct {
	// Name is the contract name.
	Name string `json:"name"`

	// ABI is the contract's interface description, passed through verbatim.
	ABI json.RawMessage `json:"abi"`
}
