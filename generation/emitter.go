package generation

import (
	"path/filepath"
	"strings"

	"github.com/flarenetwork/bindgen/artifacts"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/flarenetwork/bindgen/logging"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/pkg/errors"
)

const (
	// DuplicatePolicyFail generates the first occurrence of a contract name within a network and fails the rest.
	DuplicatePolicyFail = "fail"

	// DuplicatePolicyOverride generates the last occurrence of a contract name within a network and skips the rest.
	DuplicatePolicyOverride = "override"
)

// SupportedDuplicatePolicies lists every supported duplicate policy.
var SupportedDuplicatePolicies = []string{DuplicatePolicyFail, DuplicatePolicyOverride}

// Emitter invokes a generator platform for contract artifacts and writes the index files aggregating its output.
type Emitter struct {
	// platform is the generator platform used to render bindings and indexes
	platform platforms.GeneratorConfig

	// outputDirectory is the directory beneath which network directories are created
	outputDirectory string

	// indexFileName is the name of index files, without the platform's source extension
	indexFileName string

	// duplicatePolicy describes how contracts sharing a name within a network are handled
	duplicatePolicy string

	// logger describes the Emitter's log object that can be used to log important events
	logger *logging.Logger
}

// NewEmitter creates an Emitter writing beneath outputDirectory.
func NewEmitter(platform platforms.GeneratorConfig, outputDirectory string, indexFileName string, duplicatePolicy string) *Emitter {
	return &Emitter{
		platform:        platform,
		outputDirectory: outputDirectory,
		indexFileName:   indexFileName,
		duplicatePolicy: duplicatePolicy,
		logger:          logging.GlobalLogger.NewSubLogger("module", logging.GENERATION_SERVICE),
	}
}

// EmitNetworks generates every contract of every network in the group, then writes each network's index and finally
// the root index. Failures are recorded in the report and never stop the run.
func (e *Emitter) EmitNetworks(group *artifacts.NetworkGroup, report *Report) {
	networks := group.Networks()
	for _, network := range networks {
		contracts := e.SelectContracts(network, group.Contracts(network), report)
		e.logger.Info("Generating ", colors.Bold, len(contracts), colors.Reset, " contract(s) for ",
			colors.CyanBold, network, colors.Reset)

		networkDirectory := filepath.Join(e.outputDirectory, network)
		if err := utils.MakeDirectory(networkDirectory); err != nil {
			e.logger.Error("Failed to create output directory for ", colors.Bold, network, colors.Reset, err)
			for _, contract := range contracts {
				report.Add(Result{Kind: ResultKindContract, Network: network, Contract: contract.Name, Status: StatusFailed, Err: err})
			}
			continue
		}

		for i, contract := range contracts {
			e.logger.Info("Generating ", colors.Bold, contract.Name, colors.Reset, " (", i+1, "/", len(contracts), ")")
			report.Add(e.EmitContract(contract, networkDirectory))
		}

		report.Add(e.WriteNetworkIndex(network, networkDirectory))
	}

	report.Add(e.WriteRootIndex(networks))
}

// EmitContract generates bindings for a single contract into <networkDirectory>/<Name><ext>.
func (e *Emitter) EmitContract(contract artifacts.ContractArtifact, networkDirectory string) Result {
	result := Result{
		Kind:     ResultKindContract,
		Network:  contract.Network,
		Contract: contract.Name,
		Path:     filepath.Join(networkDirectory, contract.Name+e.platform.SourceExtension()),
	}

	output, err := e.platform.Generate(platforms.Job{
		OutputPath: result.Path,
		Package:    contract.Network,
		Contracts:  []platforms.JobContract{{Name: contract.Name, ABI: contract.ABI}},
	})
	if err != nil {
		e.logger.Error("Failed to generate ", colors.Bold, contract.Name, colors.Reset, err)
		result.Status = StatusFailed
		result.Err = errors.Wrapf(err, "failed to generate %s", contract.Name)
		return result
	}

	if len(output) > 0 {
		e.logger.Debug(e.platform.Platform(), " output for ", contract.Name, ":\n", string(output))
	}
	result.Status = StatusGenerated
	return result
}

// SelectContracts applies the duplicate policy to the contracts of a network. Returns the contracts to generate, in
// their original relative order, and records every contract excluded by the policy in the report.
func (e *Emitter) SelectContracts(network string, contracts []artifacts.ContractArtifact, report *Report) []artifacts.ContractArtifact {
	duplicates := artifacts.DuplicateNames(contracts)
	if len(duplicates) == 0 {
		return append([]artifacts.ContractArtifact{}, contracts...)
	}
	e.logger.Warn("Found duplicate contract names in ", colors.Bold, network, colors.Reset, ": ",
		strings.Join(duplicates, ", "), " (policy: ", e.duplicatePolicy, ")")

	selected := make([]artifacts.ContractArtifact, 0, len(contracts))
	if e.duplicatePolicy == DuplicatePolicyOverride {
		last := make(map[string]int)
		for i, contract := range contracts {
			last[contract.Name] = i
		}
		for i, contract := range contracts {
			if last[contract.Name] == i {
				selected = append(selected, contract)
				continue
			}
			winner := contracts[last[contract.Name]]
			e.logger.Warn("Contract ", colors.Bold, contract.Name, colors.Reset, " from ", contract.SourcePath,
				" is overridden by ", winner.SourcePath, " (", network, ")")
			report.Add(Result{
				Kind:     ResultKindContract,
				Network:  network,
				Contract: contract.Name,
				Path:     contract.SourcePath,
				Status:   StatusSkipped,
				Err:      errors.Wrapf(ErrContractOverridden, "%s is overridden by %s", contract.SourcePath, winner.SourcePath),
			})
		}
		return selected
	}

	first := make(map[string]artifacts.ContractArtifact)
	for _, contract := range contracts {
		original, seen := first[contract.Name]
		if !seen {
			first[contract.Name] = contract
			selected = append(selected, contract)
			continue
		}
		e.logger.Error("Duplicate contract ", colors.Bold, contract.Name, colors.Reset, " in ", contract.SourcePath,
			" conflicts with ", original.SourcePath, " (", network, ")")
		report.Add(Result{
			Kind:     ResultKindContract,
			Network:  network,
			Contract: contract.Name,
			Path:     contract.SourcePath,
			Status:   StatusFailed,
			Err:      errors.Wrapf(ErrDuplicateContract, "%s conflicts with %s", contract.SourcePath, original.SourcePath),
		})
	}
	return selected
}
