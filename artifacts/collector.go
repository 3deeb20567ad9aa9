package artifacts

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flarenetwork/bindgen/logging"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/pkg/errors"
)

// DefaultArtifactExtension is the file name suffix of candidate artifact files.
const DefaultArtifactExtension = ".json"

// CollectionResult describes everything found while walking one or more artifact directories.
type CollectionResult struct {
	// Contracts lists every contract artifact found, in traversal order.
	Contracts []ContractArtifact

	// Failures lists the artifact files that could not be read or parsed.
	Failures []*ArtifactError

	// MissingNetworks lists the networks whose artifact directory did not exist.
	MissingNetworks []string
}

// merge appends the contents of other to the result.
func (r *CollectionResult) merge(other *CollectionResult) {
	r.Contracts = append(r.Contracts, other.Contracts...)
	r.Failures = append(r.Failures, other.Failures...)
	r.MissingNetworks = append(r.MissingNetworks, other.MissingNetworks...)
}

// Collector walks artifact directories and extracts contract artifacts from the JSON files it finds.
type Collector struct {
	// Extension is the file name suffix of candidate artifact files.
	Extension string

	// ValidateABI, if true, additionally requires every extracted ABI to be accepted by go-ethereum's ABI parser.
	// ABIs that are rejected are treated as malformed artifacts.
	ValidateABI bool

	// logger describes the Collector's log object that can be used to log important events
	logger *logging.Logger
}

// NewCollector creates a Collector using the default artifact extension.
func NewCollector(validateABI bool) *Collector {
	return &Collector{
		Extension:   DefaultArtifactExtension,
		ValidateABI: validateABI,
		logger:      logging.GlobalLogger.NewSubLogger("module", logging.COLLECTOR_SERVICE),
	}
}

// CollectNetworks collects contract artifacts for each network, rooted at <bundleDirectory>/<network>/<subdirectory>.
// A network whose directory does not exist is skipped with a warning and recorded in MissingNetworks.
func (c *Collector) CollectNetworks(bundleDirectory string, networks []string, subdirectory string) *CollectionResult {
	result := &CollectionResult{}
	for _, network := range networks {
		networkDirectory := filepath.Join(bundleDirectory, network, subdirectory)
		if !utils.DirectoryExists(networkDirectory) {
			c.logger.Warn("Network artifacts not found: ", colors.Bold, network, colors.Reset, " (", networkDirectory, ")")
			result.MissingNetworks = append(result.MissingNetworks, network)
			continue
		}
		result.merge(c.Collect(networkDirectory, network))
	}
	return result
}

// Collect walks root depth-first and returns every contract artifact found beneath it, labeled with network.
// Malformed files are logged and recorded as failures, files of any other JSON shape are skipped silently. The walk
// never stops early because of a single file.
func (c *Collector) Collect(root string, network string) *CollectionResult {
	result := &CollectionResult{}

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable directory is reported like a malformed file and its subtree is skipped
			c.recordFailure(result, path, network, err)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), c.Extension) {
			return nil
		}

		artifact, ok, err := c.parseArtifactFile(root, path, network)
		if err != nil {
			c.recordFailure(result, path, network, err)
			return nil
		}
		if ok {
			result.Contracts = append(result.Contracts, *artifact)
			c.logger.Info("Found contract: ", colors.Bold, artifact.Name, colors.Reset, " (", network, ")")
		}
		return nil
	})
	if walkErr != nil {
		c.recordFailure(result, root, network, walkErr)
	}

	return result
}

// parseArtifactFile reads and parses a single artifact file. Returns false with a nil error if the file is valid JSON
// that matches neither accepted shape.
func (c *Collector) parseArtifactFile(root string, path string, network string) (*ContractArtifact, bool, error) {
	name := strings.TrimSuffix(filepath.Base(path), c.Extension)
	if name == "" {
		return nil, false, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	contractABI, ok, err := ExtractABI(content)
	if err != nil || !ok {
		return nil, false, err
	}

	if c.ValidateABI {
		if _, err = ParseABI(contractABI); err != nil {
			return nil, false, err
		}
	}

	relativePath, err := filepath.Rel(root, path)
	if err != nil {
		relativePath = path
	}

	return &ContractArtifact{
		Name:       name,
		ABI:        contractABI,
		Network:    network,
		SourcePath: relativePath,
	}, true, nil
}

// recordFailure logs a warning for the failed path and adds it to the result.
func (c *Collector) recordFailure(result *CollectionResult, path string, network string, err error) {
	c.logger.Warn("Failed to parse ", colors.Bold, path, colors.Reset, err)
	result.Failures = append(result.Failures, &ArtifactError{Path: path, Network: network, Err: err})
}
