package artifacts

import (
	"bytes"
	"encoding/json"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// ContractArtifact describes a single contract interface extracted from an artifact bundle.
type ContractArtifact struct {
	// Name is the artifact file name with its extension stripped. It is never empty.
	Name string

	// ABI is the contract's interface description exactly as it appeared in the artifact file. It is always a JSON
	// array.
	ABI json.RawMessage

	// Network is the identifier of the network whose bundle the artifact was found in.
	Network string

	// SourcePath is the path of the artifact file, relative to the directory that was walked.
	SourcePath string
}

// ArtifactError describes an artifact file that could not be read or parsed.
type ArtifactError struct {
	// Path is the path of the offending artifact file.
	Path string

	// Network is the network the artifact file belongs to.
	Network string

	// Err is the underlying read or parse error.
	Err error
}

// Error returns the error message string, implementing the `error` interface.
func (e *ArtifactError) Error() string {
	return "failed to parse " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// ExtractABI detects the shape of an artifact file's content. A top-level JSON array is returned as the ABI itself, a
// top-level object is searched for an array-valued "abi" field. Returns the ABI and true if either shape matched,
// or false if the content is valid JSON of any other shape. An error is returned only if the content is not JSON.
func ExtractABI(content []byte) (json.RawMessage, bool, error) {
	var document json.RawMessage
	if err := json.Unmarshal(content, &document); err != nil {
		return nil, false, errors.WithStack(err)
	}

	switch firstByte(document) {
	case '[':
		return document, true, nil
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(document, &fields); err != nil {
			return nil, false, errors.WithStack(err)
		}
		if abiField, ok := fields["abi"]; ok && firstByte(abiField) == '[' {
			return abiField, true, nil
		}
	}
	return nil, false, nil
}

// ParseABI parses a raw ABI into go-ethereum's abi.ABI, which rejects malformed entries (unknown types, bad
// argument lists).
func ParseABI(raw json.RawMessage) (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "invalid contract ABI")
	}
	return &parsed, nil
}

// firstByte returns the first non-whitespace byte of a JSON document, or zero if there is none.
func firstByte(document []byte) byte {
	trimmed := bytes.TrimLeft(document, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
