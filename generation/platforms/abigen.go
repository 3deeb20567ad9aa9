package platforms

import (
	"encoding/json"
	"fmt"
	"go/format"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// bindImportPath is the import path of the package declaring bind.MetaData in generated code.
const bindImportPath = "github.com/ethereum/go-ethereum/accounts/abi/bind"

// AbigenGeneratorConfig describes the configuration for generating Go bindings with go-ethereum's abigen.
type AbigenGeneratorConfig struct {
	// Command overrides the base command used to invoke the generator.
	Command string `json:"command,omitempty"`

	// ImportPath is the Go import path of the output directory. Network packages are imported from beneath it by the
	// root index.
	ImportPath string `json:"importPath"`

	// MinimumVersion is the minimum abigen version required, if any.
	MinimumVersion string `json:"minimumVersion,omitempty"`
}

// NewAbigenGeneratorConfig returns an AbigenGeneratorConfig for bindings imported from importPath.
func NewAbigenGeneratorConfig(importPath string) *AbigenGeneratorConfig {
	return &AbigenGeneratorConfig{
		ImportPath: importPath,
	}
}

// Platform returns the platform identifier.
func (a *AbigenGeneratorConfig) Platform() string {
	return "abigen"
}

// SourceExtension returns the extension of Go source files.
func (a *AbigenGeneratorConfig) SourceExtension() string {
	return ".go"
}

// GetMinimumVersion returns the minimum abigen version required.
func (a *AbigenGeneratorConfig) GetMinimumVersion() string {
	return a.MinimumVersion
}

// Validate verifies an import path is configured for the root index.
func (a *AbigenGeneratorConfig) Validate() error {
	if a.ImportPath == "" {
		return errors.New("abigen import path must be set")
	}
	return nil
}

// command builds the command used to invoke the generator with the provided arguments.
func (a *AbigenGeneratorConfig) command(args ...string) *exec.Cmd {
	baseCommandStr := "abigen"
	if a.Command != "" {
		baseCommandStr = a.Command
	}
	return exec.Command(baseCommandStr, args...)
}

// Generate writes the job's ABIs to a uniquely named temporary file and invokes abigen with it. A job with a single
// contract passes a bare ABI, a job with several contracts passes them all in combined-json form. The temporary file
// is removed once the generator exits.
func (a *AbigenGeneratorConfig) Generate(job Job) ([]byte, error) {
	if len(job.Contracts) == 0 {
		return nil, errors.New("abigen requires at least one contract")
	}

	var (
		input     []byte
		inputPath string
		args      []string
		err       error
	)
	if len(job.Contracts) == 1 {
		input = job.Contracts[0].ABI
		inputPath = filepath.Join(os.TempDir(), fmt.Sprintf("bindgen-%s.abi.json", uuid.NewString()))
		args = []string{"--abi", inputPath, "--type", abi.ToCamelCase(job.Contracts[0].Name)}
	} else {
		input, err = renderCombinedJSON(job.Contracts)
		if err != nil {
			return nil, err
		}
		inputPath = filepath.Join(os.TempDir(), fmt.Sprintf("bindgen-%s.combined.json", uuid.NewString()))
		args = []string{"--combined-json", inputPath}
	}
	args = append(args, "--pkg", job.Package, "--out", job.OutputPath)

	if err = utils.WriteFile(inputPath, input); err != nil {
		return nil, err
	}
	defer utils.DeleteFile(inputPath)

	_, _, combinedOutput, err := utils.RunCommandWithOutputAndError(a.command(args...))
	if err != nil {
		return combinedOutput, errors.Errorf("error while executing abigen:\nOUTPUT:\n%s\nERROR: %s\n", string(combinedOutput), err.Error())
	}
	return combinedOutput, nil
}

// GetVersion obtains the installed abigen version.
func (a *AbigenGeneratorConfig) GetVersion() (*semver.Version, error) {
	_, _, combinedOutput, err := utils.RunCommandWithOutputAndError(a.command("--version"))
	if err != nil {
		return nil, errors.Errorf("error while executing abigen:\nOUTPUT:\n%s\nERROR: %s\n", string(combinedOutput), err.Error())
	}
	return parseVersionOutput("abigen", combinedOutput)
}

// NetworkIndex renders a Go file declaring a Contracts map over the binding metadata of every module of a network.
// Module names are mapped to type names the same way abigen derives them.
func (a *AbigenGeneratorConfig) NetworkIndex(network string, modules []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by bindgen. DO NOT EDIT.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", network))
	b.WriteString(fmt.Sprintf("import %q\n\n", bindImportPath))
	b.WriteString(fmt.Sprintf("// Contracts maps each contract generated for the %s network to its binding metadata.\n", network))
	b.WriteString("var Contracts = map[string]*bind.MetaData{\n")
	for _, module := range modules {
		b.WriteString(fmt.Sprintf("%q: %sMetaData,\n", module, abi.ToCamelCase(module)))
	}
	b.WriteString("}\n")
	return formatGoSource(b.String())
}

// RootIndex renders a Go file importing every network package under its network name and declaring a Networks map
// over their Contracts maps.
func (a *AbigenGeneratorConfig) RootIndex(networks []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Code generated by bindgen. DO NOT EDIT.\n\n")
	b.WriteString(fmt.Sprintf("package %s\n\n", path.Base(a.ImportPath)))
	b.WriteString("import (\n")
	b.WriteString(fmt.Sprintf("%q\n", bindImportPath))
	if len(networks) > 0 {
		b.WriteString("\n")
	}
	for _, network := range networks {
		b.WriteString(fmt.Sprintf("%s %q\n", network, path.Join(a.ImportPath, network)))
	}
	b.WriteString(")\n\n")
	b.WriteString("// Networks maps each network identifier to the contract bindings generated for it.\n")
	b.WriteString("var Networks = map[string]map[string]*bind.MetaData{\n")
	for _, network := range networks {
		b.WriteString(fmt.Sprintf("%q: %s.Contracts,\n", network, network))
	}
	b.WriteString("}\n")
	return formatGoSource(b.String())
}

// renderCombinedJSON renders the contracts in the solc --combined-json layout accepted by abigen. No bytecode is
// provided, so only the interface bindings are of use.
func renderCombinedJSON(contracts []JobContract) ([]byte, error) {
	type combinedContract struct {
		Abi json.RawMessage `json:"abi"`
		Bin string          `json:"bin"`
	}
	combined := struct {
		Contracts map[string]combinedContract `json:"contracts"`
		Version   string                      `json:"version"`
	}{
		Contracts: make(map[string]combinedContract, len(contracts)),
	}
	for _, contract := range contracts {
		combined.Contracts[contract.Name] = combinedContract{Abi: contract.ABI}
	}

	b, err := json.Marshal(combined)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// formatGoSource formats rendered Go source, failing if it does not parse.
func formatGoSource(source string) ([]byte, error) {
	formatted, err := format.Source([]byte(source))
	if err != nil {
		return nil, errors.Wrap(err, "generated Go source is invalid")
	}
	return formatted, nil
}
