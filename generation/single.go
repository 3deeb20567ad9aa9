package generation

import (
	"github.com/flarenetwork/bindgen/artifacts"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/pkg/errors"
)

// EmitSingle generates bindings for every contract of one network with a single generator invocation, writing them
// to outputPath. No index files are written. If there are no contracts after the duplicate policy is applied, the
// generator is not invoked.
func (e *Emitter) EmitSingle(network string, contracts []artifacts.ContractArtifact, outputPath string, report *Report) {
	selected := e.SelectContracts(network, contracts, report)
	if len(selected) == 0 {
		e.logger.Warn("No contracts found for ", colors.CyanBold, network, colors.Reset, ", nothing to generate")
		return
	}

	jobContracts := utils.SliceSelect(selected, func(contract artifacts.ContractArtifact) platforms.JobContract {
		return platforms.JobContract{Name: contract.Name, ABI: contract.ABI}
	})

	e.logger.Info("Generating ", colors.Bold, len(selected), colors.Reset, " contract(s) for ",
		colors.CyanBold, network, colors.Reset, " into ", outputPath)
	output, err := e.platform.Generate(platforms.Job{
		OutputPath: outputPath,
		Package:    network,
		Contracts:  jobContracts,
	})
	if err != nil {
		e.logger.Error("Failed to generate ", colors.Bold, outputPath, colors.Reset, err)
	} else if len(output) > 0 {
		e.logger.Debug(e.platform.Platform(), " output:\n", string(output))
	}

	// Every contract shares the outcome of the single invocation
	for _, contract := range selected {
		result := Result{Kind: ResultKindContract, Network: network, Contract: contract.Name, Path: outputPath, Status: StatusGenerated}
		if err != nil {
			result.Status = StatusFailed
			result.Err = errors.Wrapf(err, "failed to generate %s", outputPath)
		}
		report.Add(result)
	}
}
