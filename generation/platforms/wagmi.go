package platforms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// pluginRegex matches the export names of @wagmi/cli plugins, which are spliced into the rendered config as code.
var pluginRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// WagmiGeneratorConfig describes the configuration for generating TypeScript bindings with the @wagmi/cli.
type WagmiGeneratorConfig struct {
	// UseNpx describes whether the generator is invoked through npx.
	UseNpx bool `json:"useNpx"`

	// Command overrides the base command used to invoke the generator.
	Command string `json:"command,omitempty"`

	// Plugins lists the @wagmi/cli plugins applied to every generated file.
	Plugins []string `json:"plugins"`

	// WorkingDirectory is the directory the generator runs in and where temporary configs are placed. It must be
	// a directory from which @wagmi/cli resolves. Defaults to the current working directory.
	WorkingDirectory string `json:"workingDirectory,omitempty"`

	// MinimumVersion is the minimum @wagmi/cli version required, if any.
	MinimumVersion string `json:"minimumVersion,omitempty"`
}

// NewWagmiGeneratorConfig returns a WagmiGeneratorConfig that generates React hooks through npx.
func NewWagmiGeneratorConfig() *WagmiGeneratorConfig {
	return &WagmiGeneratorConfig{
		UseNpx:  true,
		Plugins: []string{"react"},
	}
}

// Platform returns the platform identifier.
func (w *WagmiGeneratorConfig) Platform() string {
	return "wagmi"
}

// SourceExtension returns the extension of TypeScript source files.
func (w *WagmiGeneratorConfig) SourceExtension() string {
	return ".ts"
}

// GetMinimumVersion returns the minimum @wagmi/cli version required.
func (w *WagmiGeneratorConfig) GetMinimumVersion() string {
	return w.MinimumVersion
}

// Validate verifies the configured plugins can be rendered into a config module.
func (w *WagmiGeneratorConfig) Validate() error {
	for _, plugin := range w.Plugins {
		if !pluginRegex.MatchString(plugin) {
			return errors.Errorf("wagmi plugin '%s' is not a valid export name", plugin)
		}
	}
	return nil
}

// command builds the command used to invoke the generator with the provided arguments.
func (w *WagmiGeneratorConfig) command(args ...string) *exec.Cmd {
	baseCommandStr := "wagmi"
	if w.Command != "" {
		baseCommandStr = w.Command
	}

	var cmd *exec.Cmd
	if w.UseNpx {
		cmd = exec.Command("npx", append([]string{baseCommandStr}, args...)...)
	} else {
		cmd = exec.Command(baseCommandStr, args...)
	}
	cmd.Dir = w.WorkingDirectory
	return cmd
}

// Generate renders a config module for the job into a uniquely named temporary file and invokes
// `wagmi generate` with it. The temporary file is removed once the generator exits.
func (w *WagmiGeneratorConfig) Generate(job Job) ([]byte, error) {
	outputPath, err := filepath.Abs(job.OutputPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	content, err := renderWagmiConfig(outputPath, job.Contracts, w.Plugins)
	if err != nil {
		return nil, err
	}

	workingDirectory := w.WorkingDirectory
	if workingDirectory == "" {
		workingDirectory = "."
	}
	configPath := filepath.Join(workingDirectory, fmt.Sprintf(".bindgen-%s.config.ts", uuid.NewString()))
	if err = utils.WriteFile(configPath, content); err != nil {
		return nil, err
	}
	defer utils.DeleteFile(configPath)

	// The config path is handed over relative to the working directory the generator runs in
	cmd := w.command("generate", "--config", filepath.Base(configPath))
	_, _, combinedOutput, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return combinedOutput, errors.Errorf("error while executing wagmi:\nOUTPUT:\n%s\nERROR: %s\n", string(combinedOutput), err.Error())
	}
	return combinedOutput, nil
}

// GetVersion obtains the installed @wagmi/cli version.
func (w *WagmiGeneratorConfig) GetVersion() (*semver.Version, error) {
	cmd := w.command("--version")
	_, _, combinedOutput, err := utils.RunCommandWithOutputAndError(cmd)
	if err != nil {
		return nil, errors.Errorf("error while executing wagmi:\nOUTPUT:\n%s\nERROR: %s\n", string(combinedOutput), err.Error())
	}
	return parseVersionOutput("wagmi", combinedOutput)
}

// NetworkIndex renders a TypeScript module re-exporting every module of a network.
func (w *WagmiGeneratorConfig) NetworkIndex(network string, modules []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("// Auto-generated index file for %s network\n", network))
	b.WriteString("// Export all contract ABIs and hooks\n")
	for _, module := range modules {
		b.WriteString(fmt.Sprintf("export * from %s\n", relativeSpecifier(module)))
	}
	return []byte(b.String()), nil
}

// specifierEscaper escapes the characters that cannot appear verbatim in a single-quoted TypeScript string.
var specifierEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// relativeSpecifier returns a single-quoted TypeScript module specifier for a module in the same directory.
func relativeSpecifier(module string) string {
	return "'./" + specifierEscaper.Replace(module) + "'"
}

// RootIndex renders a TypeScript module re-exporting each network index as a namespace.
func (w *WagmiGeneratorConfig) RootIndex(networks []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString("// Auto-generated main index file\n")
	b.WriteString("// Export all networks as namespaced exports\n\n")
	for _, network := range networks {
		b.WriteString(fmt.Sprintf("export * as %s from './%s'\n", network, network))
	}
	return []byte(b.String()), nil
}

// renderWagmiConfig renders a @wagmi/cli config module which writes the provided contracts to outputPath. ABIs are
// embedded verbatim, only their indentation is normalized.
func renderWagmiConfig(outputPath string, contracts []JobContract, plugins []string) ([]byte, error) {
	out, err := json.Marshal(filepath.ToSlash(outputPath))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var b strings.Builder
	b.WriteString("import { defineConfig } from '@wagmi/cli'\n")
	if len(plugins) > 0 {
		b.WriteString(fmt.Sprintf("import { %s } from '@wagmi/cli/plugins'\n", strings.Join(plugins, ", ")))
	}
	b.WriteString("\nexport default defineConfig({\n")
	b.WriteString(fmt.Sprintf("  out: %s,\n", out))
	b.WriteString("  contracts: [\n")
	for _, contract := range contracts {
		name, err := json.Marshal(contract.Name)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		var abi bytes.Buffer
		if err = json.Indent(&abi, contract.ABI, "      ", "  "); err != nil {
			return nil, errors.Wrapf(err, "invalid ABI for contract '%s'", contract.Name)
		}
		b.WriteString("    {\n")
		b.WriteString(fmt.Sprintf("      name: %s,\n", name))
		b.WriteString(fmt.Sprintf("      abi: %s,\n", abi.String()))
		b.WriteString("    },\n")
	}
	b.WriteString("  ],\n")

	calls := make([]string, len(plugins))
	for i, plugin := range plugins {
		calls[i] = plugin + "()"
	}
	b.WriteString(fmt.Sprintf("  plugins: [%s],\n", strings.Join(calls, ", ")))
	b.WriteString("})\n")
	return []byte(b.String()), nil
}
