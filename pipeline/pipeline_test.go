package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/flarenetwork/bindgen/utils/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform renders indexes like the wagmi platform but writes each job's contract names to its output path instead
// of invoking a generator. Jobs containing a contract listed in failFor fail.
type fakePlatform struct {
	*platforms.WagmiGeneratorConfig
	failFor map[string]bool
	jobs    []platforms.Job
}

// Generate records the job and writes its contract names to the output path.
func (f *fakePlatform) Generate(job platforms.Job) ([]byte, error) {
	f.jobs = append(f.jobs, job)
	content := ""
	for _, contract := range job.Contracts {
		if f.failFor[contract.Name] {
			return nil, errors.Errorf("generator failed on %s", contract.Name)
		}
		content += contract.Name + "\n"
	}
	return nil, os.WriteFile(job.OutputPath, []byte(content), 0644)
}

// newTestProject copies the fixture bundle into a temporary project directory and returns the directory along with
// a default config pointing at it.
func newTestProject(t *testing.T, networks ...string) (string, *config.ProjectConfig) {
	bundle := testutils.CopyToTestDirectory(t, "../artifacts/testdata/bundle")
	projectConfig, err := config.GetDefaultProjectConfig(config.DefaultPlatform)
	require.NoError(t, err)
	projectConfig.Artifacts.BundleDirectory = bundle
	projectConfig.Artifacts.Networks = networks
	return filepath.Dir(bundle), projectConfig
}

// readOutput reads a file the test requires to exist.
func readOutput(t *testing.T, path string) string {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// TestRun verifies a full run over one network produces a binding per contract, the network index and the root index,
// with output paths relative to the working directory.
func TestRun(t *testing.T) {
	projectDirectory, projectConfig := newTestProject(t, "coston2")
	platform := &fakePlatform{WagmiGeneratorConfig: platforms.NewWagmiGeneratorConfig()}

	testutils.ExecuteInDirectory(t, projectDirectory, func() {
		p, err := NewPipelineWithPlatform(projectConfig, platform)
		require.NoError(t, err)
		report := p.Run()

		assert.Equal(t, "Token\n", readOutput(t, filepath.Join("contracts", "coston2", "Token.ts")))
		assert.Equal(t, "Vault\n", readOutput(t, filepath.Join("contracts", "coston2", "Vault.ts")))
		assert.Equal(t, "// Auto-generated index file for coston2 network\n"+
			"// Export all contract ABIs and hooks\n"+
			"export * from './Token'\n"+
			"export * from './Vault'\n", readOutput(t, filepath.Join("contracts", "coston2", "index.ts")))
		assert.Equal(t, "// Auto-generated main index file\n"+
			"// Export all networks as namespaced exports\n\n"+
			"export * as coston2 from './coston2'\n", readOutput(t, filepath.Join("contracts", "index.ts")))

		// The malformed fixture is the only failure
		assert.Equal(t, 2, report.Count(generation.ResultKindContract, generation.StatusGenerated))
		require.Len(t, report.Failures(), 1)
		assert.Equal(t, generation.ResultKindArtifact, report.Failures()[0].Kind)
		assert.Equal(t, "Broken.json", filepath.Base(report.Failures()[0].Path))
	})
}

// TestRunContinuesAfterFailures verifies missing networks are skipped and a failing contract does not stop the rest.
func TestRunContinuesAfterFailures(t *testing.T) {
	_, projectConfig := newTestProject(t, "flare", "songbird", "coston2")
	projectConfig.Output.Directory = filepath.Join(t.TempDir(), "out")
	platform := &fakePlatform{
		WagmiGeneratorConfig: platforms.NewWagmiGeneratorConfig(),
		failFor:              map[string]bool{"Token": true},
	}

	p, err := NewPipelineWithPlatform(projectConfig, platform)
	require.NoError(t, err)
	report := p.Run()

	assert.Len(t, platform.jobs, 3)
	assert.FileExists(t, filepath.Join(projectConfig.Output.Directory, "flare", "IFtsoRegistry.ts"))
	assert.FileExists(t, filepath.Join(projectConfig.Output.Directory, "coston2", "Vault.ts"))
	assert.NoFileExists(t, filepath.Join(projectConfig.Output.Directory, "coston2", "Token.ts"))
	assert.NotContains(t, readOutput(t, filepath.Join(projectConfig.Output.Directory, "coston2", "index.ts")), "Token")

	require.Equal(t, 1, report.Count(generation.ResultKindNetwork, generation.StatusSkipped))
	for _, result := range report.Results {
		if result.Kind == generation.ResultKindNetwork {
			assert.Equal(t, "songbird", result.Network)
			assert.True(t, errors.Is(result.Err, generation.ErrNetworkNotFound))
		}
	}
	assert.Equal(t, 1, report.Count(generation.ResultKindContract, generation.StatusFailed))
	assert.Error(t, report.Err())
}

// TestRunSingle verifies single-network mode invokes the generator once for the whole network.
func TestRunSingle(t *testing.T) {
	projectDirectory, projectConfig := newTestProject(t, "flare")
	platform := &fakePlatform{WagmiGeneratorConfig: platforms.NewWagmiGeneratorConfig()}

	testutils.ExecuteInDirectory(t, projectDirectory, func() {
		p, err := NewPipelineWithPlatform(projectConfig, platform)
		require.NoError(t, err)
		report := p.RunSingle()

		require.Len(t, platform.jobs, 1)
		assert.Equal(t, "coston2", platform.jobs[0].Package)
		assert.Equal(t, "Token\nVault\n", readOutput(t, "generated.ts"))
		assert.NoDirExists(t, "contracts")
		assert.Equal(t, 2, report.Count(generation.ResultKindContract, generation.StatusGenerated))
	})
}

// TestRunSingleMissingNetwork verifies a missing single network generates nothing.
func TestRunSingleMissingNetwork(t *testing.T) {
	_, projectConfig := newTestProject(t, "flare")
	projectConfig.Output.SingleNetwork = "songbird"
	projectConfig.Output.SingleOutputPath = filepath.Join(t.TempDir(), "generated.ts")
	platform := &fakePlatform{WagmiGeneratorConfig: platforms.NewWagmiGeneratorConfig()}

	p, err := NewPipelineWithPlatform(projectConfig, platform)
	require.NoError(t, err)
	report := p.RunSingle()

	assert.Empty(t, platform.jobs)
	assert.NoFileExists(t, projectConfig.Output.SingleOutputPath)
	assert.Equal(t, 1, report.Count(generation.ResultKindNetwork, generation.StatusSkipped))
	assert.False(t, report.HasFailures())
}

// TestNewPipelineRejectsInvalidConfig verifies the config is validated before anything runs.
func TestNewPipelineRejectsInvalidConfig(t *testing.T) {
	_, err := NewPipeline(nil)
	assert.Error(t, err)

	projectConfig, err := config.GetDefaultProjectConfig("abigen")
	require.NoError(t, err)
	_, err = NewPipeline(projectConfig)
	assert.ErrorContains(t, err, "invalid project config")

	raw := json.RawMessage(`{"importPath":"example.com/contracts","command":"bindgen-generator-that-does-not-exist","minimumVersion":"1.0.0"}`)
	projectConfig.Generator.PlatformConfig = &raw
	_, err = NewPipeline(projectConfig)
	assert.Error(t, err)
}
