package generation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flarenetwork/bindgen/artifacts"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/flarenetwork/bindgen/utils/testutils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform renders indexes like the wagmi platform but replaces the generator subprocess. It writes one line per
// contract to the output file and fails for any job containing a contract listed in failFor.
type fakePlatform struct {
	*platforms.WagmiGeneratorConfig
	failFor map[string]bool
	jobs    []platforms.Job
}

// newFakePlatform returns a fakePlatform failing for the provided contract names.
func newFakePlatform(failFor ...string) *fakePlatform {
	fake := &fakePlatform{WagmiGeneratorConfig: platforms.NewWagmiGeneratorConfig(), failFor: make(map[string]bool)}
	for _, name := range failFor {
		fake.failFor[name] = true
	}
	return fake
}

// Generate records the job and writes its contracts to the output path.
func (f *fakePlatform) Generate(job platforms.Job) ([]byte, error) {
	f.jobs = append(f.jobs, job)
	lines := make([]string, 0, len(job.Contracts))
	for _, contract := range job.Contracts {
		if f.failFor[contract.Name] {
			return []byte("generator exploded"), errors.Errorf("generator exploded on %s", contract.Name)
		}
		lines = append(lines, contract.Name+" "+string(contract.ABI))
	}
	return nil, os.WriteFile(job.OutputPath, []byte(strings.Join(lines, "\n")), 0644)
}

// jobNames returns the contract names of every recorded job, flattened in order.
func (f *fakePlatform) jobNames() []string {
	names := make([]string, 0)
	for _, job := range f.jobs {
		for _, contract := range job.Contracts {
			names = append(names, contract.Name)
		}
	}
	return names
}

// readOutput reads a file the test requires to exist.
func readOutput(t *testing.T, path string) string {
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// TestEmitNetworks runs collection, grouping and emission over the fixture bundle with a generator failing for Vault.
func TestEmitNetworks(t *testing.T) {
	bundle := testutils.CopyToTestDirectory(t, "../artifacts/testdata/bundle")
	outputDirectory := filepath.Join(t.TempDir(), "contracts")

	collected := artifacts.NewCollector(false).CollectNetworks(bundle, []string{"flare", "songbird", "coston", "coston2"}, "artifacts")
	group := artifacts.GroupByNetwork(collected.Contracts)

	platform := newFakePlatform("Vault")
	report := NewReport()
	NewEmitter(platform, outputDirectory, "index", DuplicatePolicyFail).EmitNetworks(group, report)

	// Vault's failure does not stop Token
	assert.Equal(t, []string{"IFtsoRegistry", "Token", "Vault"}, platform.jobNames())
	assert.FileExists(t, filepath.Join(outputDirectory, "coston2", "Token.ts"))
	assert.NoFileExists(t, filepath.Join(outputDirectory, "coston2", "Vault.ts"))
	assert.Equal(t, "coston2", platform.jobs[1].Package)

	// Network indexes list the files that exist
	assert.Equal(t, "// Auto-generated index file for coston2 network\n"+
		"// Export all contract ABIs and hooks\n"+
		"export * from './Token'\n", readOutput(t, filepath.Join(outputDirectory, "coston2", "index.ts")))
	assert.Contains(t, readOutput(t, filepath.Join(outputDirectory, "flare", "index.ts")), "export * from './IFtsoRegistry'\n")

	// The root index lists processed networks in encounter order
	assert.Equal(t, "// Auto-generated main index file\n"+
		"// Export all networks as namespaced exports\n\n"+
		"export * as flare from './flare'\n"+
		"export * as coston2 from './coston2'\n", readOutput(t, filepath.Join(outputDirectory, "index.ts")))

	assert.Equal(t, 2, report.Count(ResultKindContract, StatusGenerated))
	assert.Equal(t, 1, report.Count(ResultKindContract, StatusFailed))
	assert.Equal(t, 3, report.Count(ResultKindIndex, StatusGenerated))
	require.True(t, report.HasFailures())
	failure := report.Failures()[0]
	assert.Equal(t, "Vault", failure.Contract)
	assert.Contains(t, failure.Err.Error(), "generator exploded")
}

// TestEmitNetworksEmbedsABIVerbatim verifies the ABI handed to the generator is the artifact's ABI.
func TestEmitNetworksEmbedsABIVerbatim(t *testing.T) {
	abi := json.RawMessage(`[{"name":"z","type":"function","inputs":[],"outputs":[]}]`)
	group := artifacts.GroupByNetwork([]artifacts.ContractArtifact{{Name: "Z", Network: "flare", ABI: abi}})

	platform := newFakePlatform()
	NewEmitter(platform, t.TempDir(), "index", DuplicatePolicyFail).EmitNetworks(group, NewReport())

	require.Len(t, platform.jobs, 1)
	assert.Equal(t, string(abi), string(platform.jobs[0].Contracts[0].ABI))
}

// TestWriteNetworkIndexExcludesIndex verifies only source files other than the index itself are aggregated.
func TestWriteNetworkIndexExcludesIndex(t *testing.T) {
	networkDirectory := t.TempDir()
	testutils.WriteTestFiles(t, networkDirectory, map[string]string{
		"Foo.ts":          "",
		"Bar.ts":          "",
		"index.ts":        "stale",
		"README.md":       "",
		"nested/Inner.ts": "",
	})

	emitter := NewEmitter(newFakePlatform(), filepath.Dir(networkDirectory), "index", DuplicatePolicyFail)
	result := emitter.WriteNetworkIndex("songbird", networkDirectory)
	require.NoError(t, result.Err)
	assert.Equal(t, StatusGenerated, result.Status)

	assert.Equal(t, "// Auto-generated index file for songbird network\n"+
		"// Export all contract ABIs and hooks\n"+
		"export * from './Bar'\n"+
		"export * from './Foo'\n", readOutput(t, filepath.Join(networkDirectory, "index.ts")))
}

// TestWriteNetworkIndexMissingDirectory verifies an unreadable network directory is a failed result.
func TestWriteNetworkIndexMissingDirectory(t *testing.T) {
	emitter := NewEmitter(newFakePlatform(), t.TempDir(), "index", DuplicatePolicyFail)
	result := emitter.WriteNetworkIndex("flare", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, StatusFailed, result.Status)
	assert.Error(t, result.Err)
}

// TestWriteRootIndexWithoutNetworks verifies the root index is still written when nothing was generated.
func TestWriteRootIndexWithoutNetworks(t *testing.T) {
	outputDirectory := filepath.Join(t.TempDir(), "contracts")
	report := NewReport()
	NewEmitter(newFakePlatform(), outputDirectory, "index", DuplicatePolicyFail).EmitNetworks(artifacts.NewNetworkGroup(), report)

	assert.Equal(t, "// Auto-generated main index file\n// Export all networks as namespaced exports\n\n",
		readOutput(t, filepath.Join(outputDirectory, "index.ts")))
	assert.False(t, report.HasFailures())
}

// duplicateContracts returns two flare contracts named Token with distinct ABIs, around a Vault.
func duplicateContracts() []artifacts.ContractArtifact {
	return []artifacts.ContractArtifact{
		{Name: "Token", Network: "flare", SourcePath: "a/Token.json", ABI: json.RawMessage(`["first"]`)},
		{Name: "Vault", Network: "flare", SourcePath: "Vault.json", ABI: json.RawMessage(`[]`)},
		{Name: "Token", Network: "flare", SourcePath: "b/Token.json", ABI: json.RawMessage(`["last"]`)},
	}
}

// TestDuplicatePolicyFail verifies the first occurrence of a name is generated and the later ones fail.
func TestDuplicatePolicyFail(t *testing.T) {
	outputDirectory := t.TempDir()
	platform := newFakePlatform()
	report := NewReport()
	NewEmitter(platform, outputDirectory, "index", DuplicatePolicyFail).
		EmitNetworks(artifacts.GroupByNetwork(duplicateContracts()), report)

	assert.Equal(t, []string{"Token", "Vault"}, platform.jobNames())
	assert.Equal(t, `Token ["first"]`, readOutput(t, filepath.Join(outputDirectory, "flare", "Token.ts")))

	failures := report.Failures()
	require.Len(t, failures, 1)
	assert.True(t, errors.Is(failures[0].Err, ErrDuplicateContract))
	assert.Equal(t, "b/Token.json", failures[0].Path)
}

// TestDuplicatePolicyOverride verifies the last occurrence of a name is generated and earlier ones are skipped.
func TestDuplicatePolicyOverride(t *testing.T) {
	outputDirectory := t.TempDir()
	platform := newFakePlatform()
	report := NewReport()
	NewEmitter(platform, outputDirectory, "index", DuplicatePolicyOverride).
		EmitNetworks(artifacts.GroupByNetwork(duplicateContracts()), report)

	assert.Equal(t, []string{"Vault", "Token"}, platform.jobNames())
	assert.Equal(t, `Token ["last"]`, readOutput(t, filepath.Join(outputDirectory, "flare", "Token.ts")))
	assert.False(t, report.HasFailures())

	require.Equal(t, 1, report.Count(ResultKindContract, StatusSkipped))
	skipped := report.Results[0]
	assert.Equal(t, StatusSkipped, skipped.Status)
	assert.True(t, errors.Is(skipped.Err, ErrContractOverridden))
	assert.Equal(t, "a/Token.json", skipped.Path)
}

// TestSelectContractsWithoutDuplicates verifies that a network without duplicate names is selected unchanged and
// records nothing in the report, under either policy.
func TestSelectContractsWithoutDuplicates(t *testing.T) {
	contracts := []artifacts.ContractArtifact{{Name: "Token", Network: "flare"}, {Name: "Vault", Network: "flare"}}
	for _, policy := range SupportedDuplicatePolicies {
		report := NewReport()
		selected := NewEmitter(newFakePlatform(), t.TempDir(), "index", policy).SelectContracts("flare", contracts, report)

		assert.Equal(t, contracts, selected, policy)
		assert.Empty(t, report.Results, policy)

		// The selection is a copy of the input
		selected[0].Name = "mutated"
		assert.Equal(t, "Token", contracts[0].Name, policy)
	}
}

// TestDuplicatesAcrossNetworksAreIndependent verifies the same name in different networks is not a duplicate.
func TestDuplicatesAcrossNetworksAreIndependent(t *testing.T) {
	platform := newFakePlatform()
	report := NewReport()
	group := artifacts.GroupByNetwork([]artifacts.ContractArtifact{
		{Name: "Token", Network: "flare", ABI: json.RawMessage(`[]`)},
		{Name: "Token", Network: "coston", ABI: json.RawMessage(`[]`)},
	})
	NewEmitter(platform, t.TempDir(), "index", DuplicatePolicyFail).EmitNetworks(group, report)

	assert.Equal(t, []string{"Token", "Token"}, platform.jobNames())
	assert.False(t, report.HasFailures())
}

// TestEmitSingle verifies every contract of a network is handed to one generator invocation.
func TestEmitSingle(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "generated.ts")
	platform := newFakePlatform()
	report := NewReport()
	NewEmitter(platform, filepath.Dir(outputPath), "index", DuplicatePolicyOverride).
		EmitSingle("flare", duplicateContracts(), outputPath, report)

	require.Len(t, platform.jobs, 1)
	assert.Equal(t, []string{"Vault", "Token"}, platform.jobNames())
	assert.Equal(t, outputPath, platform.jobs[0].OutputPath)
	assert.Equal(t, "flare", platform.jobs[0].Package)
	assert.Equal(t, "Vault []\nToken [\"last\"]", readOutput(t, outputPath))
	assert.Equal(t, 2, report.Count(ResultKindContract, StatusGenerated))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(outputPath), "index.ts"))
}

// TestEmitSingleFailure verifies a failed invocation fails every contract it covered.
func TestEmitSingleFailure(t *testing.T) {
	platform := newFakePlatform("Vault")
	report := NewReport()
	outputPath := filepath.Join(t.TempDir(), "generated.ts")
	NewEmitter(platform, filepath.Dir(outputPath), "index", DuplicatePolicyOverride).
		EmitSingle("flare", duplicateContracts(), outputPath, report)

	assert.Equal(t, 2, report.Count(ResultKindContract, StatusFailed))
	assert.NoFileExists(t, outputPath)
}

// TestEmitSingleWithoutContracts verifies the generator is not invoked when there is nothing to generate.
func TestEmitSingleWithoutContracts(t *testing.T) {
	platform := newFakePlatform()
	report := NewReport()
	NewEmitter(platform, t.TempDir(), "index", DuplicatePolicyFail).EmitSingle("coston2", nil, "generated.ts", report)

	assert.Empty(t, platform.jobs)
	assert.Empty(t, report.Results)
}
