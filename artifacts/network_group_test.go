package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestGroupByNetworkIsStable verifies that grouping preserves relative order within each network and records networks
// in first-encounter order.
func TestGroupByNetworkIsStable(t *testing.T) {
	group := GroupByNetwork([]ContractArtifact{
		{Name: "A", Network: "x"},
		{Name: "B", Network: "y"},
		{Name: "C", Network: "x"},
	})

	assert.Equal(t, []string{"x", "y"}, group.Networks())
	assert.Equal(t, []string{"A", "C"}, contractNames(group.Contracts("x")))
	assert.Equal(t, []string{"B"}, contractNames(group.Contracts("y")))
	assert.Nil(t, group.Contracts("z"))
	assert.Equal(t, 3, group.Len())
}

// TestGroupByNetworkKeepsDuplicates verifies that duplicates are neither dropped nor merged, and that they are
// reported through Duplicates.
func TestGroupByNetworkKeepsDuplicates(t *testing.T) {
	group := GroupByNetwork([]ContractArtifact{
		{Name: "Token", Network: "flare", SourcePath: "a/Token.json"},
		{Name: "Vault", Network: "flare"},
		{Name: "Token", Network: "flare", SourcePath: "b/Token.json"},
		{Name: "Token", Network: "coston"},
	})

	assert.Equal(t, []string{"Token", "Vault", "Token"}, contractNames(group.Contracts("flare")))
	assert.Equal(t, []string{"Token"}, group.Duplicates("flare"))
	assert.Empty(t, group.Duplicates("coston"))
	assert.Empty(t, group.Duplicates("unknown"))
}

// TestNetworksReturnsCopy verifies that callers cannot reorder the group through the returned slice.
func TestNetworksReturnsCopy(t *testing.T) {
	group := GroupByNetwork([]ContractArtifact{{Name: "A", Network: "flare"}, {Name: "B", Network: "coston2"}})
	networks := group.Networks()
	networks[0] = "mutated"
	assert.Equal(t, []string{"flare", "coston2"}, group.Networks())
}

// TestDuplicateNames verifies that each repeated name is reported once, in first-occurrence order.
func TestDuplicateNames(t *testing.T) {
	assert.Equal(t, []string{"Vault", "Token"}, DuplicateNames([]ContractArtifact{
		{Name: "Vault"}, {Name: "Token"}, {Name: "Vault"}, {Name: "Token"}, {Name: "Token"}, {Name: "Pool"},
	}))
	assert.Empty(t, DuplicateNames([]ContractArtifact{{Name: "Token"}, {Name: "Vault"}}))
	assert.Empty(t, DuplicateNames(nil))
}
