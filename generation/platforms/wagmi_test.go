package platforms

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script to dir and returns its path. Tests using it are skipped on Windows.
func writeScript(t *testing.T, dir string, name string, body string) string {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	scriptPath := filepath.Join(dir, name)
	err := os.WriteFile(scriptPath, []byte("#!/bin/sh\n"+body+"\n"), 0755)
	require.NoError(t, err)
	return scriptPath
}

// TestRenderWagmiConfig verifies the rendered config module embeds the contract and plugins.
func TestRenderWagmiConfig(t *testing.T) {
	contracts := []JobContract{{Name: "Token", ABI: json.RawMessage(`[{"type":"fallback"}]`)}}
	content, err := renderWagmiConfig("/out/coston2/Token.ts", contracts, []string{"react"})
	require.NoError(t, err)

	expected := `import { defineConfig } from '@wagmi/cli'
import { react } from '@wagmi/cli/plugins'

export default defineConfig({
  out: "/out/coston2/Token.ts",
  contracts: [
    {
      name: "Token",
      abi: [
        {
          "type": "fallback"
        }
      ],
    },
  ],
  plugins: [react()],
})
`
	assert.Equal(t, expected, string(content))
}

// TestRenderWagmiConfigWithoutPlugins verifies that no plugin import is rendered when no plugins are configured.
func TestRenderWagmiConfigWithoutPlugins(t *testing.T) {
	content, err := renderWagmiConfig("generated.ts", []JobContract{{Name: "A", ABI: json.RawMessage(`[]`)}}, nil)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "@wagmi/cli/plugins")
	assert.Contains(t, string(content), "plugins: [],")
}

// TestRenderWagmiConfigRejectsInvalidABI verifies that an ABI which is not JSON is never spliced into the module.
func TestRenderWagmiConfigRejectsInvalidABI(t *testing.T) {
	_, err := renderWagmiConfig("generated.ts", []JobContract{{Name: "A", ABI: json.RawMessage(`[`)}}, nil)
	assert.Error(t, err)
}

// TestWagmiValidate verifies plugin names are checked before they are rendered as code.
func TestWagmiValidate(t *testing.T) {
	config := NewWagmiGeneratorConfig()
	assert.NoError(t, config.Validate())

	config.Plugins = []string{"react", "actions"}
	assert.NoError(t, config.Validate())

	config.Plugins = []string{"react()"}
	assert.Error(t, config.Validate())
}

// TestWagmiIndexes verifies the network and root index modules.
func TestWagmiIndexes(t *testing.T) {
	config := NewWagmiGeneratorConfig()

	networkIndex, err := config.NetworkIndex("flare", []string{"Bar", "Foo"})
	require.NoError(t, err)
	assert.Equal(t, "// Auto-generated index file for flare network\n"+
		"// Export all contract ABIs and hooks\n"+
		"export * from './Bar'\n"+
		"export * from './Foo'\n", string(networkIndex))

	rootIndex, err := config.RootIndex([]string{"flare", "coston2"})
	require.NoError(t, err)
	assert.Equal(t, "// Auto-generated main index file\n"+
		"// Export all networks as namespaced exports\n\n"+
		"export * as flare from './flare'\n"+
		"export * as coston2 from './coston2'\n", string(rootIndex))
}

// TestWagmiNetworkIndexEscapesModuleNames verifies that module names containing quotes or backslashes still produce
// well-formed specifiers.
func TestWagmiNetworkIndexEscapesModuleNames(t *testing.T) {
	networkIndex, err := NewWagmiGeneratorConfig().NetworkIndex("flare", []string{"Bob's Token", `Odd\Name`})
	require.NoError(t, err)
	assert.Equal(t, "// Auto-generated index file for flare network\n"+
		"// Export all contract ABIs and hooks\n"+
		"export * from './Bob\\'s Token'\n"+
		"export * from './Odd\\\\Name'\n", string(networkIndex))
}

// TestWagmiGenerateRemovesTemporaryConfig verifies the generator receives a temporary config which is removed after
// the generator exits, on success and on failure.
func TestWagmiGenerateRemovesTemporaryConfig(t *testing.T) {
	workingDirectory := t.TempDir()
	scriptDirectory := t.TempDir()
	job := Job{
		OutputPath: filepath.Join(workingDirectory, "contracts", "flare", "Token.ts"),
		Package:    "flare",
		Contracts:  []JobContract{{Name: "Token", ABI: json.RawMessage(`[]`)}},
	}

	// The script records the config it was handed
	argsPath := filepath.Join(scriptDirectory, "args.txt")
	config := NewWagmiGeneratorConfig()
	config.UseNpx = false
	config.WorkingDirectory = workingDirectory
	config.Command = writeScript(t, scriptDirectory, "wagmi", `echo "$@" > `+argsPath+`; cat "$3" >> `+argsPath)

	_, err := config.Generate(job)
	require.NoError(t, err)

	recorded, err := os.ReadFile(argsPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(recorded), "generate --config .bindgen-"))
	assert.Contains(t, string(recorded), `name: "Token"`)

	entries, err := os.ReadDir(workingDirectory)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// A failing generator returns its output in the error and still cleans up
	config.Command = writeScript(t, scriptDirectory, "failing-wagmi", `echo "no contracts"; exit 1`)
	output, err := config.Generate(job)
	require.Error(t, err)
	assert.Contains(t, string(output), "no contracts")
	assert.Contains(t, err.Error(), "no contracts")

	entries, err = os.ReadDir(workingDirectory)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestWagmiGenerateMissingCommand verifies that a generator which cannot be started is reported as an error.
func TestWagmiGenerateMissingCommand(t *testing.T) {
	config := NewWagmiGeneratorConfig()
	config.UseNpx = false
	config.WorkingDirectory = t.TempDir()
	config.Command = "bindgen-generator-that-does-not-exist"

	_, err := config.Generate(Job{
		OutputPath: filepath.Join(config.WorkingDirectory, "Token.ts"),
		Contracts:  []JobContract{{Name: "Token", ABI: json.RawMessage(`[]`)}},
	})
	assert.Error(t, err)
}
