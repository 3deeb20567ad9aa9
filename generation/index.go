package generation

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/pkg/errors"
)

// WriteNetworkIndex writes the index of a network directory. The index aggregates every source file currently in the
// directory, other than the index itself, in directory listing order.
func (e *Emitter) WriteNetworkIndex(network string, networkDirectory string) Result {
	extension := e.platform.SourceExtension()
	indexName := e.indexFileName + extension
	result := Result{Kind: ResultKindIndex, Network: network, Path: filepath.Join(networkDirectory, indexName)}

	entries, err := os.ReadDir(networkDirectory)
	if err != nil {
		return e.indexFailure(result, errors.WithStack(err))
	}

	modules := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, extension) || name == indexName {
			continue
		}
		modules = append(modules, strings.TrimSuffix(name, extension))
	}

	content, err := e.platform.NetworkIndex(network, modules)
	if err != nil {
		return e.indexFailure(result, err)
	}
	if err = utils.WriteFile(result.Path, content); err != nil {
		return e.indexFailure(result, err)
	}

	e.logger.Info("Generated index for ", colors.CyanBold, network, colors.Reset, " (", len(modules), " module(s))")
	result.Status = StatusGenerated
	return result
}

// WriteRootIndex writes the top-level index, aggregating each network's index under a namespace named after the
// network, in the order provided.
func (e *Emitter) WriteRootIndex(networks []string) Result {
	result := Result{Kind: ResultKindIndex, Path: filepath.Join(e.outputDirectory, e.indexFileName+e.platform.SourceExtension())}

	content, err := e.platform.RootIndex(networks)
	if err != nil {
		return e.indexFailure(result, err)
	}
	if err = utils.WriteFile(result.Path, content); err != nil {
		return e.indexFailure(result, err)
	}

	e.logger.Info("Generated main index: ", colors.Bold, result.Path, colors.Reset)
	result.Status = StatusGenerated
	return result
}

// indexFailure logs and returns a failed index result.
func (e *Emitter) indexFailure(result Result, err error) Result {
	e.logger.Error("Failed to write index ", colors.Bold, result.Path, colors.Reset, err)
	result.Status = StatusFailed
	result.Err = err
	return result
}
