package artifacts

// NetworkGroup maps network identifiers to the contract artifacts belonging to them. Networks are kept in the order
// they were first encountered and contracts in the order they were added.
type NetworkGroup struct {
	// networks lists the network identifiers in first-encounter order
	networks []string

	// contracts maps each network identifier to its contract artifacts
	contracts map[string][]ContractArtifact
}

// NewNetworkGroup returns an empty NetworkGroup.
func NewNetworkGroup() *NetworkGroup {
	return &NetworkGroup{
		networks:  make([]string, 0),
		contracts: make(map[string][]ContractArtifact),
	}
}

// GroupByNetwork partitions contracts by their Network field. Relative order is preserved within each network and no
// deduplication is performed.
func GroupByNetwork(contracts []ContractArtifact) *NetworkGroup {
	group := NewNetworkGroup()
	for _, contract := range contracts {
		group.Add(contract)
	}
	return group
}

// Add appends a contract artifact to its network's sequence.
func (g *NetworkGroup) Add(contract ContractArtifact) {
	if _, ok := g.contracts[contract.Network]; !ok {
		g.networks = append(g.networks, contract.Network)
	}
	g.contracts[contract.Network] = append(g.contracts[contract.Network], contract)
}

// Networks returns the network identifiers in first-encounter order.
func (g *NetworkGroup) Networks() []string {
	return append([]string{}, g.networks...)
}

// Contracts returns the contract artifacts for a network, or nil if the network is unknown.
func (g *NetworkGroup) Contracts(network string) []ContractArtifact {
	return g.contracts[network]
}

// Len returns the total number of contract artifacts across all networks.
func (g *NetworkGroup) Len() int {
	count := 0
	for _, contracts := range g.contracts {
		count += len(contracts)
	}
	return count
}

// Duplicates returns the contract names that occur more than once within a network, in the order of their first
// occurrence.
func (g *NetworkGroup) Duplicates(network string) []string {
	return DuplicateNames(g.contracts[network])
}

// DuplicateNames returns the names that occur more than once among contracts, in the order of their first occurrence.
func DuplicateNames(contracts []ContractArtifact) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, contract := range contracts {
		if counts[contract.Name] == 0 {
			order = append(order, contract.Name)
		}
		counts[contract.Name]++
	}

	duplicates := make([]string, 0)
	for _, name := range order {
		if counts[name] > 1 {
			duplicates = append(duplicates, name)
		}
	}
	return duplicates
}
